package jwk

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across all UnmarshalJSON calls, matching the
// package-level singleton pattern go-playground/validator is built around.
var validate = validator.New()

// validateStruct runs the "validate" struct tags over val and collapses any
// violations into a single error, joining the individual field messages.
func validateStruct(val any) error {
	err := validate.Struct(val)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			messages = append(messages, fe.Error())
		}
		return errors.New("jwk: " + strings.Join(messages, "; "))
	}

	return err
}
