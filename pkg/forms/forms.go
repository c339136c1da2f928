// Package forms holds the typed payloads the client submits and checks them
// before anything is sent. A failed check is a ValidationError and never
// reaches the network.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"tableflip.dev/jquest/pkg/archetype"
)

// ValidationError lists every problem found in a form, in field order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// UserMessages returns the messages for display.
func (e *ValidationError) UserMessages() []string {
	return append([]string(nil), e.Messages...)
}

// IsValidationError reports whether err came from Validate.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		// Report fields by their label so messages read naturally.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if label := fld.Tag.Get("label"); label != "" {
				return label
			}
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("archetype", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true
			}
			_, ok := archetype.Lookup(s)
			return ok
		})
		validate = v
	})
	return validate
}

// Validate checks a form struct. It returns nil or a *ValidationError.
func Validate(form interface{}) error {
	err := engine().Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("forms: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range fieldErrs {
		ve.Messages = append(ve.Messages, message(fe))
	}
	return ve
}

func message(e validator.FieldError) string {
	label := e.Field()
	switch e.Tag() {
	case "required":
		return label + " is required"
	case "eqfield":
		return label + " don't match"
	case "email":
		return label + " is not a valid email address"
	case "min", "gte":
		if e.Kind() == reflect.String {
			return label + " must be at least " + e.Param() + " characters"
		}
		return label + " must be at least " + e.Param()
	case "max", "lte":
		if e.Kind() == reflect.String {
			return label + " must be at most " + e.Param() + " characters"
		}
		return label + " must be at most " + e.Param()
	case "ltefield":
		return label + " must not exceed the goal"
	case "oneof":
		return label + " must be one of: " + e.Param()
	case "archetype":
		return label + " must be one of: " + strings.Join(archetype.Names(), ", ")
	default:
		return label + " is invalid"
	}
}
