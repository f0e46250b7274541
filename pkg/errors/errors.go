package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Application error types organized by category for better error handling

type ErrorType int

// Request errors - problems with what the user asked for
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound

	// Upstream errors - problems talking to the weather provider
	ErrorTypeExternalAPI
	ErrorTypeTransient

	// System errors - setup and rendering
	ErrorTypeConfiguration
	ErrorTypeRendering
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeTransient:
		return "TRANSIENT_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	case ErrorTypeRendering:
		return "RENDERING_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// HTTPStatus returns the response status used when an error of this type
// reaches the request boundary.
func (e ErrorType) HTTPStatus() int {
	switch e {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeExternalAPI:
		return http.StatusBadGateway
	case ErrorTypeTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Short aliases used across the codebase
const (
	ValidationError    = ErrorTypeValidation
	NotFoundError      = ErrorTypeNotFound
	ExternalAPIError   = ErrorTypeExternalAPI
	TransientError     = ErrorTypeTransient
	ConfigurationError = ErrorTypeConfiguration
	RenderingError     = ErrorTypeRendering
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Request Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

// Upstream Error Constructors
func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

func NewTransientError(message string, cause error) *AppError {
	return Wrap(TransientError, message, cause)
}

// System Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

func NewRenderingError(message string, cause error) *AppError {
	return Wrap(RenderingError, message, cause)
}

// TypeOf returns the type of the first AppError in err's chain.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsExternalAPIError(err error) bool {
	return TypeOf(err) == ExternalAPIError
}

func IsTransientError(err error) bool {
	return TypeOf(err) == TransientError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}
