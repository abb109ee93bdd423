package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/saraivavision/privacy/internal/errors"
)

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate("   "))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("value"))
	assert.Error(t, NoWhitespace.Validate(" value "))
}

func TestBase64(t *testing.T) {
	assert.NoError(t, Base64.Validate("aGVsbG8="))
	assert.NoError(t, Base64.Validate(""))
	assert.Error(t, Base64.Validate("not-base64!!"))
}

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(assert.AnError)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}
