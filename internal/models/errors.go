package models

import (
	"errors"
	"strings"
)

// Sentinel errors shared across services. Handlers map these to HTTP codes:
// validation 400, conflict 409, authentication 401, not found 404.
// ErrExternalService never reaches a handler; the content generator absorbs
// it into static fallback data.
var (
	ErrValidation      = errors.New("validation error")
	ErrConflict        = errors.New("conflict")
	ErrAuthentication  = errors.New("invalid credentials")
	ErrNotFound        = errors.New("not found")
	ErrExternalService = errors.New("external service error")
)

// ErrorMessage extracts the human-readable part of a wrapped sentinel error,
// e.g. "validation error: password must be at least 6 characters" →
// "password must be at least 6 characters".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrConflict, ErrNotFound, ErrExternalService} {
		prefix := sentinel.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			return msg[len(prefix):]
		}
	}
	return msg
}
