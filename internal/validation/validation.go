// Package validation wraps go-playground/validator for request payloads.
// Payloads are rejected here at the boundary; enum or format errors never
// reach the scheduling engine.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/dagcentrum/backend/internal/timeslot"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Use JSON tag names in error messages instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return timeslot.ValidClock(fl.Field().String())
	})
	_ = v.RegisterValidation("dateymd", func(fl validator.FieldLevel) bool {
		return timeslot.ValidDate(fl.Field().String())
	})

	return v
}

// Struct validates a request DTO and returns a single user-facing message
// for the first failing field, or nil.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "clock":
		return fmt.Errorf("%s must be a HH:MM 24-hour time", fe.Field())
	case "dateymd":
		return fmt.Errorf("%s must be a YYYY-MM-DD date", fe.Field())
	case "min", "max", "gte", "lte":
		return fmt.Errorf("%s is out of range", fe.Field())
	default:
		return fmt.Errorf("%s is invalid", fe.Field())
	}
}
