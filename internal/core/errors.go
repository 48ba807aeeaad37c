package core

// Error codes for domain errors.
const (
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeBadRequest   = "bad_request"
	ErrCodeNotFound     = "not_found"
	ErrCodeStoreFailed  = "store_failed"
)

// Error wraps a code and human-readable message. A non-nil *Error returned
// by a handler is delivered to the originating client only; it never
// propagates past the dispatcher.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func authError(msg string) *Error {
	return &Error{Code: ErrCodeUnauthorized, Message: msg}
}

func validationError(msg string) *Error {
	return &Error{Code: ErrCodeBadRequest, Message: msg}
}

func notFoundError(msg string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: msg}
}

func storeError(msg string) *Error {
	return &Error{Code: ErrCodeStoreFailed, Message: msg}
}
