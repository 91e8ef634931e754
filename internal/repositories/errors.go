package repositories

import "errors"

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	ErrPixKeyNotFound     = errors.New("pix key not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicatePixKey    = errors.New("pix key already registered")
)
