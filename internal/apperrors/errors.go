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

// ErrInvalidID indicates that an identifier is not well formed.
// It is distinct from ErrNotFound: the caller sent something that can never resolve.
var ErrInvalidID = errors.New("invalid identifier")

// ErrIndexOutOfRange indicates a positional reference that does not address an existing element.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrStorage indicates that the storage backend failed or was unreachable.
var ErrStorage = errors.New("storage error")

// ErrTimeout indicates that a storage operation exceeded its deadline.
var ErrTimeout = errors.New("storage timeout")

// AppError carries an HTTP-facing code, a message, the error kind and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Kind: ErrNotFound}
}

func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Kind: ErrValidation}
}

func NewInvalidIDError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Kind: ErrInvalidID}
}

// NewRefOutOfRangeError reports a positional reference too large to be parsed as an index.
func NewRefOutOfRangeError(ref string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("transaction index %s out of range", ref),
		Kind:    ErrIndexOutOfRange,
	}
}

// NewIndexOutOfRangeError reports a positional reference with no element behind it.
func NewIndexOutOfRangeError(index int) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("transaction index %d out of range", index),
		Kind:    ErrIndexOutOfRange,
	}
}

func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Kind: ErrStorage, Err: err}
}

func NewTimeoutError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Kind: ErrTimeout, Err: err}
}

// StatusCode returns the HTTP status carried by the AppError in err's chain.
// Bare sentinels map by kind; unclassified errors are 500.
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidID), errors.Is(err, ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// KindName returns the public name of the error kind carried by err.
// Unclassified errors are reported as StorageError.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrInvalidID):
		return "InvalidId"
	case errors.Is(err, ErrIndexOutOfRange):
		return "IndexOutOfRange"
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrTimeout):
		return "Timeout"
	default:
		return "StorageError"
	}
}

// Message returns the AppError message when err carries one, otherwise err.Error().
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by the request rather than the server.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrIndexOutOfRange) ||
		errors.Is(err, ErrNotFound)
}
