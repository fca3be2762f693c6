package auth

import "errors"

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrAddressAlreadyExists = errors.New("ledger address already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrValidation           = errors.New("validation error")
)
