package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single failed check against one field.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is the aggregate of every failed check in one pass.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns every failure message recorded for the field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields returns the distinct field names that failed, in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Map converts the aggregate into a field -> messages map for transport.
func (ve ValidationErrors) Map() map[string][]string {
	if len(ve) == 0 {
		return nil
	}
	m := make(map[string][]string, len(ve))
	for _, err := range ve {
		m[err.Field] = append(m[err.Field], err.Message)
	}
	return m
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply executes every rule and returns the aggregated failures, or nil when
// all rules pass. Rules run unconditionally so a single pass reports every
// violation.
func Apply(rules ...Rule) error {
	var errs ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
