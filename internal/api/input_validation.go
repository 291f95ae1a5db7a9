package api

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validatePayload describes the first validation failure as a
// "field message" string, or returns the empty string when the payload
// is valid.
func validatePayload(payload any) string {
	err := validate.Struct(payload)
	if err == nil {
		return ""
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid payload"
	}

	first := validationErrors[0]
	return toSnakeCase(first.Field()) + " " + validationMessage(first)
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + err.Param()
	case "max":
		return "must be at most " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	case "datetime":
		return "must be formatted as " + err.Param()
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var result []byte
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				result = append(result, '_')
			}
			result = append(result, byte(c+'a'-'A'))
		} else {
			result = append(result, byte(c))
		}
	}
	return string(result)
}
