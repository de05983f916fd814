package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage turns a gin binding failure into a client-facing message.
// Validation failures name the offending fields; anything else (bad JSON,
// wrong types) gets a generic message.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format"
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag())
	}
	return "Validation failed: " + strings.Join(parts, "; ")
}
