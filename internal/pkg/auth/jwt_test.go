package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avelin/formatrack/internal/app/models"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key-for-unit-tests",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "formatrack.test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 42, Email: "trainer@formatrack.app", RoleType: models.RoleTrainer}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	require.Equal(t, int(time.Hour.Seconds()), expiresIn)
	require.Equal(t, int((24 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "trainer@formatrack.app", claims.Email)
	require.Equal(t, string(models.RoleTrainer), claims.RoleType)
	require.Equal(t, "formatrack.test", claims.Issuer)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	user := &models.User{ID: 1, Email: "x@formatrack.app", RoleType: models.RoleStudent}

	accessToken, _, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(accessToken)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := newTestJWTService(time.Hour)
	user := &models.User{ID: 1, Email: "x@formatrack.app", RoleType: models.RoleStudent}

	accessToken, _, _, _, err := issuer.GenerateTokenPair(user)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:       "a-different-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "formatrack.test",
	})
	_, err = other.ValidateAndExtractClaims(accessToken)
	require.Error(t, err)
}

func TestValidateTokenRejectsEmpty(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	_, err := svc.ValidateAndExtractClaims("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	require.ErrorIs(t, err, ErrInvalidFormat)
}
