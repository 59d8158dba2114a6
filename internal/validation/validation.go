// Package validation checks untrusted form input against static schemas.
//
// Validators never panic or return errors for bad input: every outcome is a
// Result, which is either a typed value or a set of per-field messages.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// newValidate builds a validator that reports fields by their form name
func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}
