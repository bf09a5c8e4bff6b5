// Package validate wraps struct-tag validation for request payloads.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/juliencrn/twitter-clone/internal/apierror"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct checks the payload's validation tags and converts the first
// failure into a client-facing 422 APIError.
func Struct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apierror.Validation("Validation error")
	}

	return apierror.Validation(message(errs[0]))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
