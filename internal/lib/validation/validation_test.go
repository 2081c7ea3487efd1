package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

func TestCheck_Valid(t *testing.T) {
	v := New()

	fieldErrors, err := v.Check(signupForm{
		Email:           "user@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	require.NoError(t, err)
	assert.Nil(t, fieldErrors)
}

func TestCheck_FieldErrors(t *testing.T) {
	v := New()

	fieldErrors, err := v.Check(signupForm{
		Email:           "nope",
		Password:        "short",
		ConfirmPassword: "different",
	})

	require.NoError(t, err)
	require.Len(t, fieldErrors, 3)

	assert.Equal(t, []string{"email must be a valid email address"}, fieldErrors["email"])
	assert.Equal(t, []string{"password must be at least 8 characters"}, fieldErrors["password"])
	assert.Equal(t, []string{"confirmPassword must match password"}, fieldErrors["confirmPassword"])
}

func TestCheck_OnlyViolatedFields(t *testing.T) {
	v := New()

	fieldErrors, err := v.Check(signupForm{
		Email:           "user@example.com",
		Password:        "secret123",
		ConfirmPassword: "",
	})

	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
	assert.Contains(t, fieldErrors, "confirmPassword")
}

func TestCheck_NonStructInputIsFault(t *testing.T) {
	v := New()

	_, err := v.Check("not a struct")

	require.Error(t, err)
}
