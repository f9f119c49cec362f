package validator

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name     string `validate:"required,min=1,max=50"`
	Email    string `validate:"required,email,min=3,max=100"`
	Password string `validate:"required,min=5,max=20"`
}

func TestCustomValidator_Validate(t *testing.T) {
	cv := New()

	valid := sampleInput{Name: "Duggu", Email: "meow@meow.com", Password: "password"}
	assert.NoError(t, cv.Validate(&valid))

	invalid := sampleInput{Name: "Duggu", Email: "not-an-email", Password: "1234"}
	assert.Error(t, cv.Validate(&invalid))
}

func TestFieldErrors(t *testing.T) {
	cv := New()

	err := cv.Validate(&sampleInput{Email: "not-an-email", Password: "1234"})
	require.Error(t, err)

	fieldErrors := FieldErrors(err)
	require.Len(t, fieldErrors, 3)

	byField := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		byField[fe.Field] = fe.Message
	}

	assert.Equal(t, "is required", byField["name"])
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "must be at least 5 characters long", byField["password"])
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Nil(t, FieldErrors(errors.New("not a validation failure")))
}
