package account

import "errors"

var (
	ErrNotFound      = errors.New("account not found")
	ErrUsernameTaken = errors.New("username already taken")

	ErrMissingCredentials = errors.New("username and password are required")
	ErrMissingUsername    = errors.New("username is required")
)
