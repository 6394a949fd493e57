package auth

import (
	"testing"
	"time"

	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "crm-backend-test",
		MaxRefreshCount:        3,
	}
}

func testTokenInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "jdoe",
		Role:     "sales_manager",
	}
}

func TestGenerateTokenPair(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	input := testTokenInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	input := testTokenInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "sales_manager", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	userID, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, userID)
}

func TestValidateAccessToken_Invalid(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		otherCfg := testJWTConfig()
		otherCfg.Secret = "another-secret-key-also-32-chars-long!!"
		other := NewJWTService(otherCfg)

		pair, err := other.GenerateTokenPair(testTokenInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("refresh token used as access token", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(testTokenInput())
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.AccessTokenExpiration = -1 * time.Minute
		expired := NewJWTService(cfg)

		pair, err := expired.GenerateTokenPair(testTokenInput())
		require.NoError(t, err)

		_, err = expired.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	input := testTokenInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, input.Username, input.Role)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, input.UserID.String(), claims.UserID)

	refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestRefreshTokenPair_RoleChangeTakesEffect(t *testing.T) {
	svc := NewJWTService(testJWTConfig())
	input := testTokenInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, input.Username, "accountant")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "accountant", claims.Role)
}

func TestRefreshTokenPair_MaxRefreshExceeded(t *testing.T) {
	cfg := testJWTConfig()
	cfg.MaxRefreshCount = 2
	svc := NewJWTService(cfg)
	input := testTokenInput()

	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)

	refreshToken := pair.RefreshToken
	for i := 0; i < 2; i++ {
		newPair, err := svc.RefreshTokenPair(refreshToken, input.Username, input.Role)
		require.NoError(t, err)
		refreshToken = newPair.RefreshToken
	}

	_, err = svc.RefreshTokenPair(refreshToken, input.Username, input.Role)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestRefreshTokenPair_AccessTokenRejected(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	pair, err := svc.GenerateTokenPair(testTokenInput())
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(pair.AccessToken, "jdoe", "sales_manager")
	assert.Error(t, err)
}

func TestClaimsHelpers(t *testing.T) {
	svc := NewJWTService(testJWTConfig())

	pair, err := svc.GenerateTokenPair(testTokenInput())
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	assert.False(t, claims.GetIssuedAtTime().IsZero())
	assert.True(t, claims.GetExpiresAtTime().After(time.Now()))
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
	assert.LessOrEqual(t, claims.GetRemainingTTL(), svc.GetAccessTokenExpiration())
}

func TestRefreshSecretFallback(t *testing.T) {
	// Without an explicit refresh secret, the access secret is reused
	cfg := testJWTConfig()
	cfg.RefreshSecret = ""
	svc := NewJWTService(cfg)

	pair, err := svc.GenerateTokenPair(testTokenInput())
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
}
