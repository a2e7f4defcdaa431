// Package forms validates dialog payloads before any request is issued.
// Validation is presence-based everywhere except registration and
// password change, which also check email shape and password rules.
package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError is a user-facing form rejection; its text is shown
// verbatim inside the dialog.
type ValidationError string

func (v ValidationError) Error() string { return string(v) }

// IsValidation reports whether err is a rejected form rather than a
// failed request.
func IsValidation(err error) bool {
	var verr ValidationError
	return errors.As(err, &verr)
}

// Registration is the self-service signup form.
type Registration struct {
	Name            string `validate:"required"`
	EmailID         string `validate:"required,email"`
	Age             int    `validate:"required,gt=0"`
	Country         string `validate:"required"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// PasswordChange shares the registration password rules.
type PasswordChange struct {
	OldPassword     string `validate:"required"`
	NewPassword     string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}

// BookForm covers both author modes of the add/edit dialog: the page
// fills the author fields from a picked existing author or from the
// inline new-author inputs before validating.
type BookForm struct {
	Name          string `validate:"required"`
	Genre         string `validate:"required"`
	AuthorName    string `validate:"required"`
	AuthorEmail   string `validate:"required"`
	AuthorAge     int    `validate:"required,gt=0"`
	AuthorCountry string `validate:"required"`
}

type AuthorForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Age     int    `validate:"required,gt=0"`
	Country string `validate:"required"`
}

type StudentForm struct {
	Name    string `validate:"required"`
	EmailID string `validate:"required"`
	Age     int    `validate:"required,gt=0"`
	Country string `validate:"required"`
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Check validates v and translates the first violation into the message
// the dialogs display.
func Check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return ValidationError("Please fill in all required fields")
	}
	return ValidationError(message(verrs[0]))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Please fill in all required fields"
	case "email":
		return "Please enter a valid email address"
	case "min":
		return "Password must be at least 8 characters long"
	case "eqfield":
		return "Passwords do not match"
	case "gt":
		return "Please enter a valid age"
	default:
		return "Please fill in all required fields"
	}
}
