package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/recipebook/backend/internal/service"
)

var registerOnce sync.Once

// RegisterValidations wires the custom rules and json-tag field names into
// gin's validator engine. Idempotent; called from router setup.
func RegisterValidations() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		// The stock "email" rule is too permissive for registration (it lets
		// through underscored labels and trailing junk), so addresses go
		// through the service-level pattern instead.
		_ = v.RegisterValidation("strict_email", func(fl validator.FieldLevel) bool {
			return service.ValidateEmail(fl.Field().String()) == nil
		})
	})
}

// fieldErrors converts a binding error into a field -> message map for 400
// responses.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = validationMessage(fe)
		}
		return out
	}

	out["non_field_errors"] = "invalid request body"
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "strict_email":
		return "enter a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	default:
		return "invalid value"
	}
}
