package apperror

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BindingViolations holds the field-scoped failures from a request binding, so
// ToHTTP can surface them as structured details instead of a raw error dump.
type BindingViolations []FieldViolation

func (v BindingViolations) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", v[0].Message)
}

func (v BindingViolations) FieldViolations() []FieldViolation {
	return []FieldViolation(v)
}

func formatFieldName(s string) string {
	// recipient_phone -> Recipient Phone
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError converts a gin binding failure into field-scoped
// violations. Field names come from the json tags registered in Init.
// Anything that is not a validator error (malformed JSON, wrong types)
// collapses into the generic invalid-input error.
func MapValidationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ErrInvalidInput
	}

	violations := make(BindingViolations, 0, len(errs))
	for _, e := range errs {
		violations = append(violations, FieldViolation{
			Field:   e.Field(),
			Message: violationMessage(e),
		})
	}
	return violations
}

func violationMessage(e validator.FieldError) string {
	field := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
