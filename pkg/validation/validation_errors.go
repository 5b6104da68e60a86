package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-attributable validation failure, returned to
// the caller as structured data rather than serialized error text.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldNames maps struct field names to their wire (form/json) names.
var fieldNames = map[string]string{
	"Name":        "name",
	"Email":       "email",
	"ProjectType": "projectType",
	"Budget":      "budget",
	"Message":     "message",
	"Website":     "website",
}

// fieldLabels maps struct field names to user-friendly labels.
var fieldLabels = map[string]string{
	"Name":        "Name",
	"Email":       "Email",
	"ProjectType": "Project type",
	"Budget":      "Budget",
	"Message":     "Message",
	"Website":     "Website",
}

// FormatValidationErrors converts validator.ValidationErrors into one
// structured error per invalid field. All failures are reported at once so the
// caller can annotate every offending input in a single round trip.
func FormatValidationErrors(err error) []FieldError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error (e.g. a malformed request body).
		return []FieldError{{Field: "", Message: "Invalid request payload"}}
	}

	out := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, FieldError{
			Field:   wireName(e.Field()),
			Message: formatSingleError(e),
		})
	}
	return out
}

func formatSingleError(e validator.FieldError) string {
	label := fieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", label, e.Param())
	case "email":
		return "Please enter a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func wireName(structField string) string {
	if name, ok := fieldNames[structField]; ok {
		return name
	}
	return structField
}

func fieldLabel(structField string) string {
	if label, ok := fieldLabels[structField]; ok {
		return label
	}
	return structField
}
