// Package validate performs client-side form validation so that bad input
// never reaches the network. Failures are keyed by field for inline display.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

var v = validator.New()

// FieldErrors maps field names to human-readable validation messages.
// These persist until corrected, unlike transient request errors.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Credentials validates a login form
func Credentials(creds model.Credentials) error {
	return translate(v.Struct(creds))
}

// Registration validates a sign-up form
func Registration(reg model.Registration) error {
	return translate(v.Struct(reg))
}

// JobPost validates a job posting form
func JobPost(create model.JobCreate) error {
	return translate(v.Struct(create))
}

// PasswordChange validates a change-password form
func PasswordChange(change model.PasswordChange) error {
	return translate(v.Struct(change))
}

// translate converts validator errors into field-keyed messages
func translate(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = message(fe)
	}
	return fields
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	return strings.ToLower(name[:1]) + name[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "invalid value"
	}
}
