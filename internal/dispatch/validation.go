package dispatch

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the validator shared by the dispatcher. Field names in
// failure lists come from json tags so they reference request properties,
// not Go identifiers or storage columns. Domain rule sets (custom tags and
// cross-field checks) are registered on top of this at startup.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ruleMessage renders a stable human-readable message per violated rule.
// Messages mirror the request vocabulary, never internals.
func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return "has an invalid value"
	case "safechars":
		return "contains invalid characters"
	case "notpast":
		return "cannot be in the past"
	case "paired":
		return "latitude and longitude must both be provided together or both be empty"
	default:
		return "is invalid"
	}
}
