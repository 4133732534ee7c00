package entity

import (
	"strings"
)

// FieldError describes one invalid field of an entity record.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func required(field string) FieldError {
	return FieldError{Field: field, Message: "this field is required"}
}

// Validator is implemented by every editable entity.
type Validator interface {
	Validate() []FieldError
}

// ValidationError bundles the field errors of a rejected record.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Check runs v.Validate and wraps any field errors into a *ValidationError.
func Check(v Validator) error {
	if errs := v.Validate(); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
