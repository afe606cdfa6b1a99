// Package dto holds the transfer shapes of the HTTP layer, their validation,
// and the explicit conversion functions to and from domain entities.
package dto

import (
	"fmt"
	"regexp"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the structured list of field/message pairs produced by
// validating an input shape. It is only ever returned non-empty.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, fieldErr := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Message))
	}
	return strings.Join(messages, "; ")
}

// errsOrNil keeps the "nil means valid" contract: a typed nil slice inside a
// non-nil error interface would otherwise read as a failure.
func errsOrNil(errs ValidationErrors) error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func checkRequired(errs ValidationErrors, field, value string) ValidationErrors {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: "is required"})
	}
	return errs
}

func checkMaxLen(errs ValidationErrors, field, value string, max int) ValidationErrors {
	if len(value) > max {
		return append(errs, FieldError{Field: field, Message: fmt.Sprintf("must not exceed %d characters", max)})
	}
	return errs
}

func checkEmail(errs ValidationErrors, field, value string) ValidationErrors {
	if value != "" && !emailPattern.MatchString(value) {
		return append(errs, FieldError{Field: field, Message: "is not a valid email address"})
	}
	return errs
}
