package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	return v
}

type registerRules struct {
	Username string `validate:"required,min=3,max=32,username"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

type profileRules struct {
	Username string `validate:"required,min=3,max=32,username"`
	AboutMe  string `validate:"max=140"`
}

func validateRegisterInput(input RegisterInput) error {
	rules := registerRules{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	}
	if err := validate.Struct(rules); err != nil {
		return ErrValidation.WithCause(err)
	}
	return nil
}

func validateProfile(username, aboutMe string) error {
	rules := profileRules{
		Username: username,
		AboutMe:  aboutMe,
	}
	if err := validate.Struct(rules); err != nil {
		return ErrValidation.WithCause(err)
	}
	return nil
}

type passwordRules struct {
	Password string `validate:"required,min=8,max=72"`
}

// ValidatePassword checks a candidate password against the same rules
// registration applies. The reset flow uses it before rehashing.
func ValidatePassword(password string) error {
	if err := validate.Struct(passwordRules{Password: password}); err != nil {
		return ErrValidation.WithCause(err)
	}
	return nil
}
