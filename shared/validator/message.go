package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"oneof":    "{field} must be one of {param}",
	"max":      "{field} must be less than or equal to {param}",
	"min":      "{field} must be greater than or equal to {param}",
	"email":    "{field} must be a valid email address",
	"datetime": "{field} must be a valid date in {param} format",
}

// message turns the first validation error into a client-facing sentence.
// Tags without a template fall back to the library's own wording.
func message(err error) string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		template, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}

		replacer := strings.NewReplacer("{field}", valErr.Field(), "{param}", valErr.Param())

		return replacer.Replace(template)
	}

	return valErrors.Error()
}
