package account

import "errors"

var (
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrUnknownAccount    = errors.New("unknown account")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidInput      = errors.New("invalid input")
)
