package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrTemplateMismatch = errors.New("template mismatch")

	// ErrAmbiguousRule signals that two distinct candidates compared equal
	// under the full resolution ordering. It is an internal invariant
	// violation, never a recoverable condition.
	ErrAmbiguousRule = errors.New("ambiguous rule")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// SlideError reports a failure that aborted the rendering of a single slide.
// Sibling slides are unaffected. Err wraps one of the sentinel errors so
// callers can branch with errors.Is.
type SlideError struct {
	SlideID    string
	RuleID     string
	TemplateID string
	Err        error
}

func (e *SlideError) Error() string {
	var b strings.Builder
	b.WriteString("slide ")
	b.WriteString(e.SlideID)
	if e.RuleID != "" {
		b.WriteString(" rule ")
		b.WriteString(e.RuleID)
	}
	if e.TemplateID != "" {
		b.WriteString(" template ")
		b.WriteString(e.TemplateID)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *SlideError) Unwrap() error { return e.Err }

// MarshalJSON renders the failure for machine-readable render reports.
func (e *SlideError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		SlideID    string `json:"slideId"`
		RuleID     string `json:"ruleId,omitempty"`
		TemplateID string `json:"templateId,omitempty"`
		Error      string `json:"error"`
	}{e.SlideID, e.RuleID, e.TemplateID, e.Err.Error()})
}
