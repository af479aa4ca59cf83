package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Form validation messages shown to the user.
var (
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	ErrInvalidEmail     = errors.New("Invalid email address")
	ErrTitleRequired    = errors.New("title required")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrInvalidStatus    = errors.New("invalid status")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// ValidateCredentials checks that both login fields are filled in.
func ValidateCredentials(c Credentials) error {
	if err := validate.Struct(c); err != nil {
		return firstFieldError(err)
	}
	return nil
}

// ValidateRegistration runs the register form checks. A password
// mismatch is reported before a short password.
func ValidateRegistration(r Registration) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "eqfield" {
			return ErrPasswordMismatch
		}
	}
	for _, fe := range verrs {
		if fe.Field() == "Password" && fe.Tag() == "min" {
			return ErrPasswordTooShort
		}
	}
	return firstFieldError(err)
}

// ValidateNewTask checks the task form.
func ValidateNewTask(t NewTask) error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	switch verrs[0].Field() {
	case "Title":
		return ErrTitleRequired
	case "Priority":
		return ErrInvalidPriority
	case "Status":
		return ErrInvalidStatus
	}
	return firstFieldError(err)
}

func firstFieldError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return errors.New(strings.ToLower(fe.Field()) + " required")
	case "email":
		return ErrInvalidEmail
	}
	return errors.New("invalid " + strings.ToLower(fe.Field()))
}
