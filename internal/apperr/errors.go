package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no valid session is present.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrNotFound is returned when a user or record is absent.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when a payload fails its schema.
	ErrValidation = errors.New("invalid data")
	// ErrPersistence wraps storage failures.
	ErrPersistence = errors.New("storage failure")
)

// FieldViolation describes one failed constraint on one field.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error"`
	Details []FieldViolation `json:"details,omitempty"`
}

// HTTPError represents an error with the status code it maps to.
type HTTPError struct {
	StatusCode int
	Message    string
	Details    []FieldViolation
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// ValidationError carries the complete list of violations for a request.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Success: false, Error: e.Message, Details: e.Details}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: verr.Error(), Details: verr.Violations}
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error())
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPersistence):
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
