package state

import (
	"errors"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/dentabook/booking-client/pkg/errors"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// newValidator builds the validator used on auth forms. Custom rules
// mirror what the signup/login screens enforce so a request the server
// would reject on format never leaves the device.
func newValidator() *validator.Validate {
	v := validator.New()

	// Stricter than validator's builtin email rule: the domain must
	// carry a TLD, so "a@b" fails.
	_ = v.RegisterValidation("appemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("userpassword", func(fl validator.FieldLevel) bool {
		return validPassword(fl.Field().String())
	})
	_ = v.RegisterValidation("phonenumber", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// validPassword requires at least 6 alphanumeric characters including
// a letter and a digit.
func validPassword(s string) bool {
	if len(s) < 6 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

var fieldMessages = map[string]string{
	"Email":    "Invalid email format.",
	"Password": "Password must contain at least 6 characters, including letters and numbers.",
	"Phone":    "Invalid phone number.",
	"Name":     "Please enter your name.",
}

// translate converts the first field error into the message the form
// displays inline.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		field := fieldErrs[0].Field()
		if msg, ok := fieldMessages[field]; ok {
			return apperrors.Validation(field, msg)
		}
		return apperrors.Validation(field, "invalid value")
	}
	return apperrors.Validation("form", "invalid input")
}
