// Package validation checks service inputs with struct tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/msomdec/mercado-social/internal/domain"
)

// Validator wraps go-playground/validator and reports failures as
// domain.ErrInvalidInput.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that names fields after their JSON tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Validate checks s and returns an error wrapping domain.ErrInvalidInput that
// lists the offending fields, e.g. "invalid input: password is required".
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Field()+" "+friendlyMessage(fe))
	}
	sort.Strings(msgs)
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, ", "))
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gtfield":
		return "must be after " + fe.Param()
	case "max":
		return "must not exceed " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
