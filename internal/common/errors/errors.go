// Package errors provides the structured error type returned at the
// transport edge (webhook responses and job failures).
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode is a stable, machine-readable failure code.
type ErrorCode string

const (
	ErrCodeInvalidRequest          ErrorCode = "INVALID_REQUEST"
	ErrCodeActionNotFound          ErrorCode = "ACTION_NOT_FOUND"
	ErrCodeLookupIdentifierMissing ErrorCode = "LOOKUP_IDENTIFIER_MISSING"
	ErrCodeLookupFailed            ErrorCode = "LOOKUP_FAILED"
	ErrCodeLookupMalformed         ErrorCode = "LOOKUP_MALFORMED_RESPONSE"
	ErrCodeReservationRecordFailed ErrorCode = "RESERVATION_RECORD_FAILED"
	ErrCodeInternal                ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Action    string                 `json:"action_name,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error { return e.cause }

// New builds a StandardError with the default message for code.
func New(code ErrorCode, cause error) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   defaultMessage(code),
		Details:   details,
		Retryable: IsRetryable(code),
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return New(ErrCodeInvalidRequest, stderrors.New(details))
}

func NewActionNotFoundError(action string) *StandardError {
	e := New(ErrCodeActionNotFound, fmt.Errorf("no action registered as %q", action))
	e.Action = action
	return e
}

var knownCodes = map[ErrorCode]bool{
	ErrCodeInvalidRequest:          true,
	ErrCodeActionNotFound:          true,
	ErrCodeLookupIdentifierMissing: true,
	ErrCodeLookupFailed:            true,
	ErrCodeLookupMalformed:         true,
	ErrCodeReservationRecordFailed: true,
	ErrCodeInternal:                true,
}

// Normalize ensures we always have a StandardError. Action packages declare
// sentinels as errors.New("<CODE>") and wrap them with %w; the first sentinel
// in the chain whose text is a known code selects the code. Anything else is
// INTERNAL_ERROR.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if code := ErrorCode(e.Error()); knownCodes[code] {
			return New(code, err)
		}
	}
	return New(ErrCodeInternal, err)
}

// HTTPStatus is the webhook status for a code.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeLookupIdentifierMissing:
		return http.StatusBadRequest
	case ErrCodeActionNotFound:
		return http.StatusNotFound
	case ErrCodeLookupFailed, ErrCodeLookupMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// IsRetryable reports whether the dialogue manager may replay the turn.
// Lookups are at-most-once per turn, so only storage failures qualify.
func IsRetryable(code ErrorCode) bool {
	return code == ErrCodeReservationRecordFailed
}

// ToVariables flattens the error for job-failure payloads.
func (e *StandardError) ToVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    string(e.Code),
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.Metadata {
		vars[k] = v
	}
	return vars
}

func defaultMessage(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidRequest:
		return "Invalid action request"
	case ErrCodeActionNotFound:
		return "Action not registered"
	case ErrCodeLookupIdentifierMissing:
		return "Lookup needs a name or a numeric identifier"
	case ErrCodeLookupFailed:
		return "Remote lookup service failed"
	case ErrCodeLookupMalformed:
		return "Remote lookup service returned a malformed payload"
	case ErrCodeReservationRecordFailed:
		return "Could not record the reservation"
	default:
		return "Unexpected error"
	}
}
