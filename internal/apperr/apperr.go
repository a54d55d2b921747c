// Package apperr defines the closed set of error kinds the service
// surfaces to callers. Every operation returns either success or one
// of these; nothing propagates as a fatal process failure.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindTransaction
)

type Error struct {
	Kind  Kind
	Field string // set for validation errors only
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a field-level validation failure.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Msg: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Msg: entity + " not found"}
}

// Transaction wraps an unexpected persistence error from a multi-step
// commit. The caller sees a generic failure; the cause stays attached
// for logging.
func Transaction(err error) *Error {
	return &Error{Kind: KindTransaction, Msg: "operation failed", Err: err}
}

// KindOf extracts the kind from an error chain. Unrecognized errors
// report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// FieldOf returns the offending field for validation errors, or "".
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
