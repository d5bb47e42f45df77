package types

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindAuthorization  ErrorKind = "authorization"
	ErrorKindInvalidState   ErrorKind = "invalid_state"
	ErrorKindAuthentication ErrorKind = "authentication"
	ErrorKindDuplicate      ErrorKind = "duplicate"
	ErrorKindStorage        ErrorKind = "storage"
)

// Error carries a stable kind alongside the human readable message so the
// server can map failures onto HTTP statuses without string matching.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is lets two errors of the same kind and message match under errors.Is,
// so sentinel values below behave like the usual package sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func NewValidationError(msg string) error {
	return &Error{Kind: ErrorKindValidation, Message: msg}
}

func NewValidationErrorf(format string, args ...any) error {
	return &Error{Kind: ErrorKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(msg string) error {
	return &Error{Kind: ErrorKindNotFound, Message: msg}
}

func NewAuthorizationError(msg string) error {
	return &Error{Kind: ErrorKindAuthorization, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &Error{Kind: ErrorKindInvalidState, Message: msg}
}

func NewInvalidStateErrorf(format string, args ...any) error {
	return &Error{Kind: ErrorKindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewAuthenticationError(msg string) error {
	return &Error{Kind: ErrorKindAuthentication, Message: msg}
}

func NewDuplicateError(msg string) error {
	return &Error{Kind: ErrorKindDuplicate, Message: msg}
}

func NewStorageError(msg string, cause error) error {
	return &Error{Kind: ErrorKindStorage, Message: msg, cause: cause}
}

// KindOf reports the kind of err, or ErrorKindStorage for anything that did
// not originate from this taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrorKindStorage
}

var (
	ErrUserNotFound     = NewNotFoundError("User not found")
	ErrDonationNotFound = NewNotFoundError("Donation not found")
	ErrRequestNotFound  = NewNotFoundError("Request not found")

	ErrInvalidCredentials = NewAuthenticationError("Invalid credentials")
)
