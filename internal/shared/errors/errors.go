package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation indicates invalid input data
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeMalformedJSON indicates a body that is not valid JSON at all
	ErrorTypeMalformedJSON ErrorType = "malformed_json"
	// ErrorTypePayloadTooLarge indicates a request body over the read limit
	ErrorTypePayloadTooLarge ErrorType = "payload_too_large"
	// ErrorTypeForbidden indicates a request rejected at the transport
	// boundary, e.g. an origin missing from the CORS allow-list
	ErrorTypeForbidden ErrorType = "forbidden"
	// ErrorTypeMethodNotAllowed indicates an unsupported HTTP method
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	// ErrorTypeExternal indicates an upstream fetch failure
	ErrorTypeExternal ErrorType = "external"
	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "internal"
)

// AppError is the base error type for application errors. Message is the
// client-facing text; Err carries internal detail for logging only.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFoundf creates a not found error with formatting
func NotFoundf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Validation creates a validation error
func Validation(message string) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// Validationf creates a validation error with formatting
func Validationf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapValidation wraps an error as a validation error
func WrapValidation(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Err:     err,
	}
}

// MalformedJSON wraps a JSON syntax error. The client-facing message is
// fixed; the parser detail stays in logs.
func MalformedJSON(err error) error {
	return &AppError{
		Type:    ErrorTypeMalformedJSON,
		Message: "Malformed JSON payload",
		Err:     err,
	}
}

// PayloadTooLarge wraps the read-limit error for an oversized request body.
// The body never reached the JSON parser, so the message names the real
// cause instead of blaming the payload's syntax.
func PayloadTooLarge(err error) error {
	return &AppError{
		Type:    ErrorTypePayloadTooLarge,
		Message: "Request body too large",
		Err:     err,
	}
}

// Forbidden creates a forbidden error
func Forbidden(message string) error {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: message,
	}
}

// MethodNotAllowed creates a method not allowed error
func MethodNotAllowed(method string) error {
	return &AppError{
		Type:    ErrorTypeMethodNotAllowed,
		Message: "Method not allowed",
		Err:     fmt.Errorf("method %s not supported on this route", method),
	}
}

// Externalf creates an external service error with formatting
func Externalf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapExternal wraps an error as an external service error
func WrapExternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// GetType returns the error type of an error
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// GetMessage returns the client-facing message of an error. Errors outside
// the AppError taxonomy never leak their text to clients.
func GetMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Unexpected server error"
}
