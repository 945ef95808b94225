package store

import (
	"errors"
	"fmt"

	domainerrors "github.com/reeltrack/reeltrack-server/internal/errors"
)

// Error is a persistence error carrying the domain code it maps to.
type Error struct {
	Kind    domainerrors.Code
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

// Is matches store errors of the same kind and message, so wrapped copies of
// a sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// WithCause wraps an underlying driver error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: err}
}

// Sentinel errors.
var (
	ErrNotFound       = &Error{Kind: domainerrors.CodeNotFound, Message: "resource not found"}
	ErrAlreadyExists  = &Error{Kind: domainerrors.CodeAlreadyExists, Message: "resource already exists"}
	ErrEmailExists    = &Error{Kind: domainerrors.CodeAlreadyExists, Message: "email already registered"}
	ErrFavoriteExists = &Error{Kind: domainerrors.CodeAlreadyExists, Message: "movie already in favorites"}
)

// Code returns the domain code for a store error anywhere in err's chain.
func Code(err error) (domainerrors.Code, bool) {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind, true
	}
	return "", false
}
