// Package errors provides standardized error handling for the HTTP operations.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeConfigurationMissing  ErrorCode = "CONFIGURATION_MISSING"

	ErrCodeUpstreamGenerationFailed ErrorCode = "UPSTREAM_GENERATION_FAILED"
	ErrCodeUpstreamNoResponse       ErrorCode = "UPSTREAM_NO_RESPONSE"
	ErrCodeResponseParseFailed      ErrorCode = "RESPONSE_PARSE_FAILED"

	ErrCodeResourceNotFound        ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeResourceConflict        ErrorCode = "RESOURCE_CONFLICT"
	ErrCodeDatabaseOperationFailed ErrorCode = "DATABASE_OPERATION_FAILED"
	ErrCodeServiceUnavailable      ErrorCode = "SERVICE_UNAVAILABLE"

	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInputValidationError creates a non-retryable client input error. The message
// is returned to the caller verbatim.
func NewInputValidationError(message, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationError reports a missing credential or setting.
func NewConfigurationError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationMissing,
		Message:   message,
		Details:   errText(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUpstreamError creates an error for a failed AI gateway call.
func NewUpstreamError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamGenerationFailed,
		Message:   message,
		Details:   errText(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUpstreamNoResponseError creates an error for an empty AI gateway completion.
func NewUpstreamNoResponseError(message string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamNoResponse,
		Message:   message,
		Details:   errText(err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewResponseParseError records a model output that could not be used.
func NewResponseParseError(kind string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResponseParseFailed,
		Message:   fmt.Sprintf("Model response for %s could not be parsed", kind),
		Details:   errText(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewResourceNotFoundError(resource, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewConflictError(resource, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceConflict,
		Message:   fmt.Sprintf("%s already exists", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseError creates a retryable database error.
func NewDatabaseError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseOperationFailed,
		Message:   "Database operation failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, errText(err)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewServiceUnavailableError(service string) *StandardError {
	return &StandardError{
		Code:      ErrCodeServiceUnavailable,
		Message:   fmt.Sprintf("%s is not available", service),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSessionNotFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found or expired",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, errText(err)),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInternalError wraps an unexpected error. Its text is exposed for diagnostics.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   errText(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ==========================
// 3. HTTP Mapping
// ==========================

var httpStatusMapping = map[ErrorCode]int{
	ErrCodeInputValidationFailed:    http.StatusBadRequest,
	ErrCodeConfigurationMissing:     http.StatusInternalServerError,
	ErrCodeUpstreamGenerationFailed: http.StatusBadGateway,
	ErrCodeUpstreamNoResponse:       http.StatusBadGateway,
	ErrCodeResponseParseFailed:      http.StatusInternalServerError,
	ErrCodeResourceNotFound:         http.StatusNotFound,
	ErrCodeResourceConflict:         http.StatusConflict,
	ErrCodeDatabaseOperationFailed:  http.StatusInternalServerError,
	ErrCodeServiceUnavailable:       http.StatusServiceUnavailable,
	ErrCodeAuthenticationFailed:     http.StatusUnauthorized,
	ErrCodeSessionNotFound:          http.StatusUnauthorized,
	ErrCodeNotificationSendFailed:   http.StatusBadGateway,
	ErrCodeInternal:                 http.StatusInternalServerError,
}

// HTTPStatus returns the response status for an error code.
func HTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 4. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "UPSTREAM") || strings.Contains(codeStr, "PARSE"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "RESOURCE"):
		return "DATABASE"
	case strings.Contains(codeStr, "AUTHENTICATION") || strings.Contains(codeStr, "SESSION"):
		return "AUTH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
