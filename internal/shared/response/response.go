package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"gsnake-editor-api/internal/shared/errors"
)

// ErrorResponse represents the JSON error response sent to clients
type ErrorResponse struct {
	Error          string   `json:"error"`
	AllowedMethods []string `json:"allowedMethods,omitempty"`
}

// Error logs an error and sends a JSON error response to the client
// This should be the only place where errors are logged in the application
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	statusCode := mapErrorTypeToStatusCode(errorType)

	logError(logger, r, err, errorType, statusCode)

	JSON(w, statusCode, ErrorResponse{Error: errors.GetMessage(err)})
}

// MethodNotAllowed sends the 405 response for a route, advertising the verbs
// it does support both in the Allow header and in the body.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request, logger *slog.Logger, allowed []string) {
	err := errors.MethodNotAllowed(r.Method)
	logError(logger, r, err, errors.ErrorTypeMethodNotAllowed, http.StatusMethodNotAllowed)

	w.Header().Set("Allow", strings.Join(allowed, ", "))
	JSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error:          errors.GetMessage(err),
		AllowedMethods: allowed,
	})
}

// mapErrorTypeToStatusCode maps error types to HTTP status codes
func mapErrorTypeToStatusCode(errorType errors.ErrorType) int {
	switch errorType {
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeValidation, errors.ErrorTypeMalformedJSON:
		return http.StatusBadRequest
	case errors.ErrorTypePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrorTypeForbidden:
		return http.StatusForbidden
	case errors.ErrorTypeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case errors.ErrorTypeExternal:
		return http.StatusServiceUnavailable
	case errors.ErrorTypeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// logError logs the error with appropriate level and context
func logError(logger *slog.Logger, r *http.Request, err error, errorType errors.ErrorType, statusCode int) {
	logCtx := logger.With(
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", statusCode,
	)

	switch errorType {
	case errors.ErrorTypeNotFound:
		// Empty or expired store reads are expected, log at debug level
		logCtx.Debug("Resource not found", "error", err)
	case errors.ErrorTypeValidation, errors.ErrorTypeMalformedJSON, errors.ErrorTypePayloadTooLarge, errors.ErrorTypeMethodNotAllowed:
		// Client errors, log at debug level
		logCtx.Debug("Client error", "error", err)
	case errors.ErrorTypeForbidden:
		// Rejected origins might indicate probing, log at warn level
		logCtx.Warn("Request forbidden", "error", err)
	case errors.ErrorTypeExternal:
		// Upstream failures should be investigated, log at error level
		logCtx.Error("External service error", "error", err)
	case errors.ErrorTypeInternal:
		fallthrough
	default:
		logCtx.Error("Internal server error", "error", err)
	}
}

// JSON sends an arbitrary JSON body with the given status code
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		// If JSON encoding fails, there's not much we can do at this point
		// The status code has already been sent
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Success sends a JSON success response to the client
func Success(w http.ResponseWriter, statusCode int, data interface{}) {
	JSON(w, statusCode, data)
}

// Raw sends pre-serialized JSON bytes without re-encoding them.
func Raw(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}
