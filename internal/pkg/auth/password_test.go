package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("S3cret-password")
	require.NoError(t, err)
	require.NotEqual(t, "S3cret-password", hash)

	require.True(t, CheckPassword(hash, "S3cret-password"))
	require.False(t, CheckPassword(hash, "wrong-password"))
	require.False(t, CheckPassword("not-a-hash", "S3cret-password"))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same-input")
	require.NoError(t, err)
	second, err := HashPassword("same-input")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}
