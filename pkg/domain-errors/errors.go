// Package domainerrors defines coded domain errors shared across modules.
// Importers conventionally alias it as dErrors.
//
// Services return these instead of transport-specific errors so handlers can
// translate codes to HTTP statuses in one place and tests can assert on
// codes rather than message strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeInvalidInput: caller supplied malformed or empty input (e.g. an
	// empty selection set handed to a linking operation).
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest: request-shape problems at the transport boundary.
	CodeBadRequest Code = "bad_request"
	// CodeNotFound: a referenced record does not exist in the loaded catalogs.
	CodeNotFound Code = "not_found"
	// CodeConflict: the operation conflicts with current state.
	CodeConflict Code = "conflict"
	// CodeUnauthorized: missing or invalid caller identity.
	CodeUnauthorized Code = "unauthorized"
	// CodeInvariantViolation: a domain invariant would be broken.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeStoreUnavailable: the persistence adapter failed with an I/O or
	// remote error.
	CodeStoreUnavailable Code = "store_unavailable"
	// CodeInternal: unexpected internal failure.
	CodeInternal Code = "internal"
)

// DomainError carries a code plus a human-readable message and an optional
// wrapped cause.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// New creates a DomainError with the given code and message.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Newf creates a DomainError with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message while keeping it unwrappable.
// Returns nil if err is nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &DomainError{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) is a DomainError with
// the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is a convenience alias for HasCode used at call sites that read better
// as a predicate.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf extracts the code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeConflict:
		return http.StatusConflict
	case CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
