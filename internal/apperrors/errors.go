package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUpstream indicates that the external rate provider failed or returned no data.
var ErrUpstream = errors.New("upstream fetch failed")

// ErrTransactionFailed is wrapped around any error raised inside a scoped transaction.
var ErrTransactionFailed = errors.New("transaction execution failed")

// ErrTransactionNotOpen is returned by Commit/Rollback when no transaction was begun.
var ErrTransactionNotOpen = errors.New("internal: transaction not open")

// ErrTransactionAlreadyOpen is returned when a transaction is begun while another is open.
var ErrTransactionAlreadyOpen = errors.New("internal: transaction already open")

// AppError carries a status code and a message alongside the underlying error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates an error matching ErrValidation.
func NewValidationError(message string) error {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewNotFoundError creates an error matching ErrNotFound.
func NewNotFoundError(message string) error {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewUpstreamError creates an error matching ErrUpstream and, when given, cause.
func NewUpstreamError(message string, cause error) error {
	if cause == nil {
		return &AppError{Code: http.StatusBadGateway, Message: message, Err: ErrUpstream}
	}
	return &AppError{Code: http.StatusBadGateway, Message: message, Err: fmt.Errorf("%w: %w", ErrUpstream, cause)}
}

// NewTransactionError wraps cause so that both ErrTransactionFailed and cause match errors.Is.
func NewTransactionError(cause error) error {
	return fmt.Errorf("%w: %w", ErrTransactionFailed, cause)
}
