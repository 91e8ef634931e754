package pixkey

import "errors"

var (
	// ErrInvalidKey is returned when a key value does not match the
	// format rules of its declared type, or the type is unknown.
	ErrInvalidKey = errors.New("invalid pix key for type")

	// ErrDuplicateKey is returned when the key value is already
	// registered for the account.
	ErrDuplicateKey = errors.New("pix key already registered")

	// ErrKeyNotFound is returned when no matching key exists.
	ErrKeyNotFound = errors.New("pix key not found")
)
