package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLoginValid(t *testing.T) {
	data := LoginData{Email: "a@b.com", Password: "longenough"}
	assert.Nil(t, Validate(data))
}

func TestValidateLoginShortPassword(t *testing.T) {
	data := LoginData{Email: "a@b.com", Password: "short"}
	assert.Equal(t, []string{"Password must be at least 8 characters long"}, Validate(data))
}

func TestValidateLoginInvalidEmail(t *testing.T) {
	data := LoginData{Email: "not-an-email", Password: "longenough"}
	assert.Equal(t, []string{"Invalid email format"}, Validate(data))
}

func TestValidateLoginAllViolationsReported(t *testing.T) {
	data := LoginData{Email: "nope", Password: "short"}

	messages := Validate(data)

	assert.Equal(t, []string{
		"Invalid email format",
		"Password must be at least 8 characters long",
	}, messages, "every violation must be reported in field declaration order")
}

func TestValidateRegisterValid(t *testing.T) {
	data := RegisterData{
		Name:            "alice",
		Email:           "alice@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}
	assert.Nil(t, Validate(data))
}

func TestValidateRegisterPasswordMismatch(t *testing.T) {
	data := RegisterData{
		Name:            "alice",
		Email:           "alice@example.com",
		Password:        "longenough",
		ConfirmPassword: "different",
	}
	assert.Equal(t, []string{"Passwords do not match"}, Validate(data))
}

func TestValidateRegisterFieldOrder(t *testing.T) {
	data := RegisterData{
		Name:            "al",
		Email:           "bad",
		Password:        "short",
		ConfirmPassword: "other",
	}

	messages := Validate(data)

	assert.Equal(t, []string{
		"Name must be at least 4 characters long",
		"Invalid email format",
		"Password must be at least 8 characters long",
		"Passwords do not match",
	}, messages)
}

func TestValidateRegisterEmptyConfirmMatchesEmptyPassword(t *testing.T) {
	// Both password fields empty: the length rule fires, the match rule
	// does not (empty equals empty).
	data := RegisterData{Name: "alice", Email: "alice@example.com"}

	messages := Validate(data)

	assert.Contains(t, messages, "Password must be at least 8 characters long")
	assert.NotContains(t, messages, "Passwords do not match")
}
