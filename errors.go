package fastauth

import (
	"errors"
	"net/http"
	"strings"
)

// ErrUserAlreadyExists is the error we return when registering an email
// that already has a user record
var ErrUserAlreadyExists = errors.New("user already exists")

// ErrUserNotFound is the error for lookups that match no user record
var ErrUserNotFound = errors.New("user not found")

// ErrUnauthenticated is the error for failed credential checks. We return
// the same error for unknown emails and wrong passwords
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrMismatchedHashAndPassword password does not match stored hash
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password")

// ErrUnknownEvent is the error for registering a handler on an event
// name we do not dispatch
var ErrUnknownEvent = errors.New("unknown event")

// StatusCode maps our error taxonomy to the HTTP status the transport
// binding should respond with
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// IsUniqueConstraintError will check for unique index violations across
// the drivers we support
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
