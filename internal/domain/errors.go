package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports the first field that prevents a record from being written.
type ValidationError struct {
	Kind   string // record kind, ex: "news"
	Field  string // JSON field name, ex: "title"
	Reason string // "required" | "invalid"
}

func (e *ValidationError) Error() string {
	if e.Reason == "invalid" {
		return fmt.Sprintf("%s: %s is invalid", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s: %s is required", e.Kind, e.Field)
}

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Field is a named value checked by RequireFields.
type Field struct {
	Name  string
	Value string
}

// RequireFields returns a ValidationError for the first blank field.
// Whitespace-only values count as blank.
func RequireFields(kind string, fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return &ValidationError{Kind: kind, Field: f.Name, Reason: "required"}
		}
	}
	return nil
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail is a shape check only: something@something.tld, no whitespace.
func ValidEmail(s string) bool {
	return emailShape.MatchString(strings.TrimSpace(s))
}
