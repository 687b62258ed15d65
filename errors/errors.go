package errors

import (
	stderrors "errors"
	"fmt"
)

// ResolutionError is the unified error type for failed resolutions.
type ResolutionError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Type is the string form of the type whose resolution failed.
	Type string `json:"type"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *ResolutionError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *ResolutionError) WithCause(cause error) *ResolutionError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *ResolutionError) WithDetail(key string, value any) *ResolutionError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new ResolutionError.
func New(code ErrorCode, typeName, message string) *ResolutionError {
	return &ResolutionError{
		Code:    code,
		Message: message,
		Type:    typeName,
	}
}

// --- Common Error Constructors ---

// NotConstructable creates a new ResolutionError for a type that cannot be
// auto-constructed, typically a function type with no explicit binding.
func NotConstructable(typeName string) *ResolutionError {
	return &ResolutionError{
		Code: ErrCodeNotConstructable, Message: fmt.Sprintf("type %s is not constructable", typeName),
		Type: typeName,
	}
}

// NoConstructor creates a new ResolutionError for a type with no usable
// constructor candidate.
func NoConstructor(typeName string) *ResolutionError {
	return &ResolutionError{
		Code: ErrCodeNoConstructor, Message: fmt.Sprintf("no constructor available for type %s", typeName),
		Type: typeName,
	}
}

// Ambiguous creates a new ResolutionError for a type whose constructor
// candidates tie for the maximum parameter count.
func Ambiguous(typeName string, count int) *ResolutionError {
	return &ResolutionError{
		Code: ErrCodeAmbiguousConstructor, Message: fmt.Sprintf("%d constructors for type %s tie for the maximum parameter count", count, typeName),
		Type: typeName,
		Details: map[string]any{"candidates": count},
	}
}

// Unresolvable creates a new ResolutionError for a type that could not be
// resolved without an explicit registration.
func Unresolvable(typeName string, cause error) *ResolutionError {
	return &ResolutionError{
		Code: ErrCodeUnresolvableDependency, Message: fmt.Sprintf("can't construct %s without an explicit registration", typeName),
		Type: typeName, Cause: cause,
	}
}

// --- Inspection Helpers ---

// AsResolution extracts a ResolutionError from an error chain.
func AsResolution(err error) (*ResolutionError, bool) {
	var re *ResolutionError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsCode reports whether any error in the chain carries the given code.
// Resolution failures are often layered, for example an unresolvable-
// dependency error wrapping an ambiguous-constructor cause.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		if re, ok := err.(*ResolutionError); ok && re.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
