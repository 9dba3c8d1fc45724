// Package validation wraps go-playground/validator with the password rules used
// by the auth and user endpoints.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"storerating/internal/apperrors"
)

// PasswordSpecials are the special characters a password must contain one of.
const PasswordSpecials = "!@#$&*"

const (
	minPasswordLen = 8
	maxPasswordLen = 16
)

var messages = map[string]string{
	"password":    "must be 8-16 characters with at least one uppercase letter and one special character (!@#$&*)",
	"newpassword": "must be 8-16 characters with at least one special character (!@#$&*)",
	"required":    "is required",
	"email":       "must be a valid email address",
	"role":        "must be one of NORMAL_USER, STORE_OWNER, SYSTEM_ADMIN",
}

// New returns a validator that reports json field names and knows the
// password, newpassword and role tags.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return RegistrationPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("newpassword", func(fl validator.FieldLevel) bool {
		return ChangedPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "NORMAL_USER", "STORE_OWNER", "SYSTEM_ADMIN":
			return true
		}
		return false
	})
	return v
}

func lengthOK(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minPasswordLen && n <= maxPasswordLen
}

func hasSpecial(s string) bool {
	return strings.ContainsAny(s, PasswordSpecials)
}

// RegistrationPassword: 8-16 characters, one uppercase letter, one of !@#$&*.
func RegistrationPassword(s string) bool {
	if !lengthOK(s) || !hasSpecial(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// ChangedPassword: 8-16 characters and one of !@#$&*.
func ChangedPassword(s string) bool {
	return lengthOK(s) && hasSpecial(s)
}

// Struct validates s and converts failures into a Validation error keyed by field.
func Struct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = message(e)
	}
	return apperrors.Validation("Validation failed", fields)
}

func message(e validator.FieldError) string {
	if msg, ok := messages[e.Tag()]; ok {
		return msg
	}
	switch e.Tag() {
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", e.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", e.Tag())
}
