// Package validation collects field violations for request payloads.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

const (
	MsgNotBlank = "must not be blank"
	MsgNotNull  = "must not be null"
	MsgEmail    = "must be a well-formed email address"
)

var validate = validator.New()

// Errors accumulates violations in the order they are found.
type Errors struct {
	violations []apierrors.Violation
}

// Add records a violation for field.
func (e *Errors) Add(field, message string) {
	e.violations = append(e.violations, apierrors.Violation{Field: field, Message: message})
}

// NotBlank rejects empty or whitespace-only values.
func (e *Errors) NotBlank(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		e.Add(field, MsgNotBlank)
		return false
	}
	return true
}

// NotNull records a violation when a patch sent null for a required field.
func (e *Errors) NotNull(field string, isNull bool) bool {
	if isNull {
		e.Add(field, MsgNotNull)
		return false
	}
	return true
}

// Email checks value is a syntactically valid address.
func (e *Errors) Email(field, value string) bool {
	if !e.NotBlank(field, value) {
		return false
	}
	if err := validate.Var(value, "email"); err != nil {
		e.Add(field, MsgEmail)
		return false
	}
	return true
}

// Size checks the character length of value is within [min, max]. A max of
// zero means no upper bound.
func (e *Errors) Size(field, value string, min, max int) bool {
	tag := fmt.Sprintf("min=%d", min)
	message := fmt.Sprintf("size must be at least %d", min)
	if max > 0 {
		tag += fmt.Sprintf(",max=%d", max)
		message = fmt.Sprintf("size must be between %d and %d", min, max)
	}
	if err := validate.Var(value, tag); err != nil {
		e.Add(field, message)
		return false
	}
	return true
}

// Empty reports whether no violation was recorded.
func (e *Errors) Empty() bool {
	return len(e.violations) == 0
}

// Err returns the aggregated validation failure, or nil.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return apierrors.Validation(e.violations)
}
