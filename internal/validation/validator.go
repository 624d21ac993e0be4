// Package validation checks request payloads at the HTTP boundary and
// reports every failing field at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error aggregates the field errors of one payload
type Error struct {
	Errors []FieldError `json:"errors"`
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError builds a single-field validation error
func NewError(field, code, message string) *Error {
	return &Error{Errors: []FieldError{{Field: field, Message: message, Code: code}}}
}

// Validator wraps go-playground/validator with the service's custom rules
type Validator struct {
	validate *validator.Validate
}

// New creates a validator reporting JSON field names
func New() *Validator {
	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails for an empty tag or nil func
	_ = v.validate.RegisterValidation("clock", clockValidator)
	return v
}

// clock accepts a wall-clock time written HH:MM or HH:MM:SS
func clockValidator(fl validator.FieldLevel) bool {
	_, err := ParseClock(fl.Field().String())
	return err == nil
}

// ParseClock parses HH:MM or HH:MM:SS
func ParseClock(s string) (time.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", s)
}

// Validate checks a struct against its validate tags
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	out := &Error{}
	for _, e := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   e.Field(),
			Message: message(e.Tag(), e.Param()),
			Code:    strings.ToUpper(e.Tag()),
		})
	}
	return out
}

func message(tag, param string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "datetime":
		return fmt.Sprintf("Must be a date/time formatted as %s", param)
	case "clock":
		return "Must be a time of day formatted as HH:MM or HH:MM:SS"
	case "timezone":
		return "Must be an IANA time zone such as Asia/Kolkata"
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	default:
		return fmt.Sprintf("Failed %s validation", tag)
	}
}
