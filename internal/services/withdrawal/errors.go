package withdrawal

import "errors"

// Service errors
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrPixKeyNotFound      = errors.New("no active pix key found for this account")
	ErrInvalidSchedule     = errors.New("withdrawal cannot be scheduled for the past")
	ErrInvalidAmount       = errors.New("withdrawal amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// errAlreadySettled signals that a withdrawal reached a terminal state
// between the due-list read and the row lock. The item is a no-op.
var errAlreadySettled = errors.New("withdrawal already settled")
