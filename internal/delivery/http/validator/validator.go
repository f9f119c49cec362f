// Package validator adapts go-playground/validator to Echo's Validator
// interface and translates its failures into per-field wire errors.
package validator

import (
	"strings"

	"gatekeeper/internal/delivery/http/response"

	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator wraps a single validator instance for reuse across requests.
type CustomValidator struct {
	validate *playground.Validate
}

// New builds the Echo validator used by the HTTP server.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i any) error {
	return errors.WithStack(cv.validate.Struct(i))
}

// FieldErrors converts a validation failure into the wire-level per-field
// list. A non-validator error yields nil so callers can fall back to a
// generic message.
func FieldErrors(err error) []response.FieldError {
	var validationErrs playground.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fieldErrors := make([]response.FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrors = append(fieldErrors, response.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: describe(fe),
		})
	}

	return fieldErrors
}

func describe(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters long"
	case "max":
		return "must be at most " + fe.Param() + " characters long"
	default:
		return "is invalid"
	}
}
