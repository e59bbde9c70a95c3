package domain

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid token")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed       = errors.New("email already in use")
	ErrContactIndexOutOfRange = errors.New("contact index out of range")
)
