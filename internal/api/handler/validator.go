package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to the list of reasons it was rejected.
// It is rendered verbatim as the 400 response body.
type FieldErrors map[string][]string

// Error satisfies the error interface so FieldErrors can travel through
// Echo's error pipeline.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, reasons := range fe {
		parts = append(parts, field+": "+strings.Join(reasons, ", "))
	}
	return strings.Join(parts, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report errors under the json field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Validation failures are
// returned as FieldErrors; any field failing fails the whole payload.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fe := make(FieldErrors, len(ve))
			for _, f := range ve {
				fe[f.Field()] = append(fe[f.Field()], fieldReason(f))
			}
			return fe
		}
		return err
	}
	return nil
}

// fieldReason converts a single validation error into a human-readable reason.
func fieldReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "datetime":
		return "date has wrong format, use YYYY-MM-DD"
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
