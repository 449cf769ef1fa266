package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Kind classifies an API error. Every kind maps to exactly one HTTP status.
type Kind string

const (
	KindValidation      Kind = "VALIDATION_FAILURE"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindNotFound        Kind = "NOT_FOUND"
	KindAlreadyExists   Kind = "ALREADY_EXISTS"
	KindRestriction     Kind = "RESTRICTION"
	KindConflict        Kind = "CONFLICT"
	KindUnexpected      Kind = "UNEXPECTED"
)

var kindStatus = map[Kind]int{
	KindValidation:      http.StatusBadRequest,
	KindUnauthenticated: http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindNotFound:        http.StatusNotFound,
	KindAlreadyExists:   http.StatusConflict,
	KindRestriction:     http.StatusConflict,
	KindConflict:        http.StatusConflict,
	KindUnexpected:      http.StatusInternalServerError,
}

// ValidationMessage prefixes the aggregated validation failure message.
const ValidationMessage = "Validation failed"

// Violation is one field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return "{" + v.Field + ": " + v.Message + "}"
}

// APIError represents a standardized API error response. The body always
// carries a single human-readable "error" message.
type APIError struct {
	Kind       Kind        `json:"-"`
	Message    string      `json:"error"`
	Violations []Violation `json:"violations,omitempty"`
	cause      error
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status for the error kind.
func (e *APIError) Status() int {
	if status, ok := kindStatus[e.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewAPIError creates a new APIError
func NewAPIError(kind Kind, message string) *APIError {
	return &APIError{Kind: kind, Message: message}
}

// Wrap attaches the underlying cause to an APIError.
func Wrap(kind Kind, message string, cause error) *APIError {
	return &APIError{Kind: kind, Message: message, cause: cause}
}

// Validation aggregates field violations into one composite message.
func Validation(violations []Violation) *APIError {
	parts := make([]string, len(violations))
	for i, v := range violations {
		parts[i] = v.String()
	}
	return &APIError{
		Kind:       KindValidation,
		Message:    ValidationMessage + ": [" + strings.Join(parts, ", ") + "]",
		Violations: violations,
	}
}

// BadRequest is a validation failure without field detail, e.g. malformed JSON.
func BadRequest(message string) *APIError {
	if message == "" {
		message = "Invalid request"
	}
	return NewAPIError(KindValidation, message)
}

func Unauthenticated(message string) *APIError {
	if message == "" {
		message = "Authentication required"
	}
	return NewAPIError(KindUnauthenticated, message)
}

func Forbidden(message string) *APIError {
	if message == "" {
		message = "Access denied"
	}
	return NewAPIError(KindForbidden, message)
}

func NotFoundf(format string, args ...any) *APIError {
	return NewAPIError(KindNotFound, fmt.Sprintf(format, args...))
}

func AlreadyExistsf(format string, args ...any) *APIError {
	return NewAPIError(KindAlreadyExists, fmt.Sprintf(format, args...))
}

func Restriction(message string) *APIError {
	return NewAPIError(KindRestriction, message)
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// Respond writes err as a JSON error response and aborts the chain. Errors
// that are not APIErrors are logged and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = Wrap(KindUnexpected, "Internal server error", err)
	}

	ctx := context.Background()
	if c.Request != nil {
		ctx = c.Request.Context()
	}
	attrs := []any{
		slog.String("kind", string(apiErr.Kind)),
		slog.String("path", c.FullPath()),
		slog.Any("error", err),
	}
	switch {
	case apiErr.Kind == KindUnexpected:
		slog.ErrorContext(ctx, "request failed", attrs...)
	case apiErr.Kind == KindValidation:
		slog.WarnContext(ctx, "request rejected", attrs...)
	default:
		slog.DebugContext(ctx, "request rejected", attrs...)
	}

	c.AbortWithStatusJSON(apiErr.Status(), apiErr)
}
