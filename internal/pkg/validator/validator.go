package validator

import (
	"github.com/go-playground/validator/v10"
)

// single instance, safe for concurrent use
var validate = validator.New()

// Validate runs the struct's `validate` tags and returns a field-to-tag map
// of violations, or nil when the value passes.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
