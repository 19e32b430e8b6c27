package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs the validate tags of a request DTO and folds the
// failures into a single validation error carrying per-field details
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	details := make(map[string]interface{}, len(validationErrs))
	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		field := lowerFirst(fieldErr.Field())
		details[field] = describeRule(fieldErr)
		fields = append(fields, field)
	}

	customErr := apperrors.NewCustomError(
		apperrors.ErrValidationFailed,
		fmt.Sprintf("validation failed on: %s", strings.Join(fields, ", ")),
	)
	return customErr.WithDetails(details)
}

func describeRule(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	case "datetime":
		return fmt.Sprintf("must match the format %s", fieldErr.Param())
	case "hexcolor":
		return "must be a hex color like #1a2b3c"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed rule %q", fieldErr.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
