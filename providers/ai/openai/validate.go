package openai

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks the wire structs. Field names are reported with their JSON
// names, and the "token" rule accepts any value whose IsValid method agrees.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("token", isKnownToken); err != nil {
		panic(err)
	}
	return v
}

type tokenEnum interface {
	IsValid() bool
}

func isKnownToken(fl validator.FieldLevel) bool {
	token, ok := fl.Field().Interface().(tokenEnum)
	return ok && token.IsValid()
}

// fieldViolation describes the first failed rule of a validator error.
type fieldViolation struct {
	field  string
	reason string
}

func firstViolation(err error) (fieldViolation, bool) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fieldViolation{}, false
	}
	fe := validationErrs[0]

	// Namespace is "<structName>.<json path>"; keep only the JSON path.
	field := fe.Namespace()
	if _, rest, found := strings.Cut(field, "."); found {
		field = rest
	}

	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "min":
		reason = "must be at least " + fe.Param()
	case "max":
		reason = "must be at most " + fe.Param()
	case "token":
		reason = fmt.Sprintf("has unknown value %q", fmt.Sprint(fe.Value()))
	default:
		reason = "failed " + fe.Tag()
	}
	return fieldViolation{field: field, reason: reason}, true
}

// validateRequest runs the validator on a request wire struct.
func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if violation, ok := firstViolation(err); ok {
		return &ValidationError{Field: violation.field, Reason: violation.reason, Err: err}
	}
	return &ValidationError{Field: "request", Reason: err.Error(), Err: err}
}

// validateShape runs the validator on a decoded response wire struct.
func validateShape(target string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if violation, ok := firstViolation(err); ok {
		return &CodecError{Op: opDecode, Target: target, Err: fmt.Errorf("field %s %s", violation.field, violation.reason)}
	}
	return &CodecError{Op: opDecode, Target: target, Err: err}
}
