package errors

import (
	"errors"
)

var (
	ErrUsernameOrEmailInUse = errors.New("username or email already in use")
	ErrAllFieldsRequired    = errors.New("all fields are required")
	ErrInvalidCredentials   = errors.New("username or password incorrect")
	ErrIncorrectOldPassword = errors.New("the current password is incorrect")
	ErrPasswordMismatch     = errors.New("passwords don't match")
	ErrInvalidToken         = errors.New("invalid token")
)
