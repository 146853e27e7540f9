package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for transport mapping.
type Kind string

const (
	KindUnauthorized          Kind = "UNAUTHORIZED"
	KindForbidden             Kind = "FORBIDDEN"
	KindNotFound              Kind = "NOT_FOUND"
	KindInvalidOrExpiredToken Kind = "INVALID_OR_EXPIRED_TOKEN"
	KindAlreadySigned         Kind = "ALREADY_SIGNED"
	KindValidation            Kind = "VALIDATION_ERROR"
	KindDependency            Kind = "DEPENDENCY_FAILURE"
	KindConflict              Kind = "CONFLICT"
	KindInternal              Kind = "INTERNAL"
)

// Error carries a Kind, a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Validation is shorthand for a KindValidation error.
func Validation(msg string) *Error {
	return New(KindValidation, msg)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of the first *Error in err's chain.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound, KindInvalidOrExpiredToken:
		return http.StatusNotFound
	case KindAlreadySigned, KindValidation:
		return http.StatusBadRequest
	case KindDependency:
		return http.StatusBadGateway
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
