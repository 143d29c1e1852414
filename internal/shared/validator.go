package shared

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	emailRgx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRgx = regexp.MustCompile(`^[0-9]{10}$`)
)

// NewValidator returns a [validator.Validate] with the client's form rules registered:
//   - simple_email: local@domain.tld, no whitespace
//   - phone10: exactly ten ASCII digits
//   - trimmed_min=N: at least N characters once surrounding whitespace is removed
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("simple_email", func(fl validator.FieldLevel) bool {
		return emailRgx.MatchString(fl.Field().String())
	})
	v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phoneRgx.MatchString(fl.Field().String())
	})
	v.RegisterValidation("trimmed_min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})

	return v
}

// ValidateForm runs v over form and converts the first failure into a [ValidationError].
//
// messages maps "Field.tag" to the text shown to the user. Fields are checked in declaration order.
func ValidateForm(v *validator.Validate, form any, messages map[string]string) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := errs[0]
	msg, ok := messages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = fe.Field() + " is invalid"
	}
	return &ValidationError{Field: fe.Field(), Message: msg}
}
