// package validation provides helper functions for request data validation.
// It uses the go-playground/validator library and includes custom validation rules.
package validation

import (
	"fmt"
	"strings"

	"github.com/a2sv-g68/admissions-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// init registers custom validation rules with the validator instance.
func init() {
	// "role" accepts only the seeded role names.
	err := validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			// Allow empty strings to be handled by the 'required' tag.
			return true
		}

		return domain.Role(fl.Field().String()).Valid()
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}

	// "score" bounds review scores to 0..100; nil pointers are skipped
	// by validator before this runs.
	err = validate.RegisterValidation("score", func(fl validator.FieldLevel) bool {
		v := fl.Field().Int()

		return v >= 0 && v <= 100
	})
	if err != nil {
		panic(fmt.Sprintf("failed to register custom validation: %v", err))
	}
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

// Error returns a single string concatenating all validation error messages.
func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors []string

		for _, err := range err.(validator.ValidationErrors) {
			var message string

			switch err.Tag() {
			case "role":
				message = fmt.Sprintf(
					"field '%s' must be one of: applicant, reviewer, manager, admin",
					err.Field(),
				)
			case "score":
				message = fmt.Sprintf(
					"field '%s' must be between 0 and 100",
					err.Field(),
				)
			case "email":
				message = fmt.Sprintf(
					"field '%s' must be a valid email address",
					err.Field(),
				)
			default:
				message = fmt.Sprintf(
					"field '%s' failed on the '%s' tag",
					err.Field(),
					err.Tag(),
				)
			}
			validationErrors = append(validationErrors, message)
		}

		return &ValidationError{Errors: validationErrors}
	}

	return nil
}
