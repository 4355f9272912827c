package service

import "errors"

// Service layer sentinels; handlers map these onto HTTP statuses.
var (
	ErrNotFound           = errors.New("record not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrNameRequired       = errors.New("name is required")
	ErrUnknownEmail       = errors.New("email is not associated with any account")
)
