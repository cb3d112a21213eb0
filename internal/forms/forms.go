// Package forms defines the submitted form records and their field-level
// validation. Validation is pure: it never touches the credential store
// or the session, reports every violated constraint, and keeps messages
// in field declaration order.
package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// LoginData is the login form submission.
type LoginData struct {
	Email    string `form:"email" json:"email" validate:"email"`
	Password string `form:"password" json:"password" validate:"min=8"`
}

// RegisterData is the registration form submission. ConfirmPassword is
// needed only for validation and is never serialized for redisplay.
type RegisterData struct {
	Name            string `form:"name" json:"name" validate:"min=4"`
	Email           string `form:"email" json:"email" validate:"email"`
	Password        string `form:"password" json:"password" validate:"min=8"`
	ConfirmPassword string `form:"confirm_password" json:"-" validate:"eqfield=Password"`
}

var validate = validator.New()

// fieldMessages maps violated fields to their user-facing message. The
// same text is used whichever constraint on the field fails.
var fieldMessages = map[string]string{
	"LoginData.Email":              "Invalid email format",
	"LoginData.Password":           "Password must be at least 8 characters long",
	"RegisterData.Name":            "Name must be at least 4 characters long",
	"RegisterData.Email":           "Invalid email format",
	"RegisterData.Password":        "Password must be at least 8 characters long",
	"RegisterData.ConfirmPassword": "Passwords do not match",
}

// Validate checks every constraint on form and returns one user-facing
// message per violation, ordered by field declaration. A nil result
// means the form is valid.
func Validate(form any) []string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return []string{"Something went wrong"}
	}

	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		if msg, ok := fieldMessages[violation.StructNamespace()]; ok {
			messages = append(messages, msg)
			continue
		}
		messages = append(messages, violation.Field()+" is invalid")
	}
	return messages
}
