package apperrors

import (
	"errors"
	"fmt"
)

// Kind identifies a class of application error. The set is closed so that
// callers branch on kind instead of matching message strings.
type Kind string

const (
	KindUnauthenticated   Kind = "UNAUTHENTICATED"
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindValidation        Kind = "VALIDATION_ERROR"
	KindInternal          Kind = "INTERNAL_SERVER_ERROR"
)

// Error is an application error carrying a kind and structured context.
// It wraps an optional cause for errors.Is/As chains.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]interface{}
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Unauthenticated returns an error indicating the caller supplied no valid
// identity.
func Unauthenticated(message string) *Error {
	if message == "" {
		message = "not authenticated"
	}
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// NotFound returns an error indicating a referenced id did not resolve.
func NotFound(entity, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", entity),
		Fields: map[string]interface{}{
			"entity": entity,
			"id":     id,
		},
	}
}

// InvalidTransition returns an error indicating a status change outside the
// repair lifecycle state machine.
func InvalidTransition(repairID, from, to string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: fmt.Sprintf("cannot transition repair from %q to %q", from, to),
		Fields: map[string]interface{}{
			"repair_id": repairID,
			"from":      from,
			"to":        to,
		},
	}
}

// Validation returns an error indicating a request failed field validation.
func Validation(message string, fields map[string]interface{}) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Unrecognized errors report
// KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether the error chain contains an application error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
