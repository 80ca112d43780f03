// Package apperr defines the single error taxonomy shared by every layer:
// a machine-readable code, a human message, and the HTTP status the boundary
// answers with. Services return these sentinels directly (possibly wrapped);
// handlers translate them once via FromError.
package apperr

import (
	"errors"
	"net/http"
)

// Error is a tagged application error.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string { return e.Message }

var (
	UserNotFound          = &Error{Code: "USER_NOT_FOUND", Message: "user not found", Status: http.StatusNotFound}
	UsernameAlreadyExists = &Error{Code: "USERNAME_ALREADY_EXISTS", Message: "username already exists", Status: http.StatusConflict}
	PasswordMismatch      = &Error{Code: "PASSWORD_MISMATCH", Message: "current password does not match", Status: http.StatusBadRequest}
	InvalidCredentials    = &Error{Code: "INVALID_CREDENTIALS", Message: "invalid username or password", Status: http.StatusUnauthorized}
	InvalidLanguage       = &Error{Code: "INVALID_LANGUAGE", Message: "unsupported language code", Status: http.StatusBadRequest}
)

// FromError extracts the taxonomy error wrapped anywhere in err's chain.
func FromError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
