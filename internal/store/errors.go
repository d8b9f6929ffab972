package store

import (
	"errors"
	"fmt"
)

// Kind classifies a storage failure the service layer knows how to translate.
type Kind int

// Storage failure kinds.
const (
	KindNotFound Kind = iota + 1
	KindAlreadyExists
	KindForeignKey
)

// Error is a classified storage error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so variants built with
// WithMessage or WithCause still satisfy errors.Is against the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Message: msg, Err: e.Err}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: err}
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		Kind:    KindNotFound,
		Message: "resource not found",
	}

	ErrAlreadyExists = &Error{
		Kind:    KindAlreadyExists,
		Message: "resource already exists",
	}

	ErrForeignKey = &Error{
		Kind:    KindForeignKey,
		Message: "referenced resource does not exist",
	}
)
