package response

import "net/http"

// Error is an API error carrying the HTTP status it resolves to. Services
// return these; handlers convert them at the route boundary.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func NewAuthError(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func NewForbiddenError(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func NewNotFoundError(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// NewConflictError reports a duplicate resource. The original API answers
// duplicate registrations with 400, not 409, so that is kept.
func NewConflictError(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func NewServerError(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// ResolveError maps any error to an API error. Unknown errors become an
// opaque 500 so internal details never reach the client.
func ResolveError(err error) *Error {
	if apiErr, ok := err.(*Error); ok {
		return apiErr
	}
	return NewServerError("Server error")
}
