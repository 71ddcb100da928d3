package apperror

import "errors"

var (
	// request errors
	ErrValidation = errors.New("validation error")

	// auth errors
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")

	// store errors
	ErrNotFound = errors.New("not found")
)
