package handler

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	mobilePattern = regexp.MustCompile(`^09\d{9}$`)
	codePattern   = regexp.MustCompile(`^\d{5}$`)
)

// validate checks request bodies before they reach the services. The
// services re-check semantic preconditions themselves; this layer exists to
// reject malformed input with a 400 at the edge.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobilePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("otpcode", func(fl validator.FieldLevel) bool {
		return codePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}
