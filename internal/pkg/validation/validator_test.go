package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelin/formatrack/internal/pkg/apperrors"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Title string `validate:"required,min=2,max=10"`
	Color string `validate:"omitempty,hexcolor"`
}

func TestValidateStructPasses(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "user@formatrack.app", Title: "Go 101"})
	require.NoError(t, err)
}

func TestValidateStructCollectsFieldFailures(t *testing.T) {
	err := ValidateStruct(sampleRequest{Email: "not-an-email", Title: "x", Color: "red"})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperrors.ErrValidationFailed))

	var customErr *apperrors.CustomError
	require.True(t, errors.As(err, &customErr))
	require.Contains(t, customErr.Details, "email")
	require.Contains(t, customErr.Details, "title")
	require.Contains(t, customErr.Details, "color")
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(sampleRequest{})
	require.Error(t, err)

	var customErr *apperrors.CustomError
	require.True(t, errors.As(err, &customErr))
	require.Equal(t, "is required", customErr.Details["email"])
}

func TestIsValidHexColor(t *testing.T) {
	require.True(t, IsValidHexColor("#3498db"))
	require.True(t, IsValidHexColor("#ABCDEF"))
	require.False(t, IsValidHexColor("3498db"))
	require.False(t, IsValidHexColor("#34-8db"))
	require.False(t, IsValidHexColor("#3498dbff"))
}

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("student@formatrack.app"))
	require.False(t, IsValidEmail("student@"))
	require.False(t, IsValidEmail("formatrack.app"))
}

func TestIsValidPassword(t *testing.T) {
	require.True(t, IsValidPassword("12345678"))
	require.False(t, IsValidPassword("1234567"))
}
