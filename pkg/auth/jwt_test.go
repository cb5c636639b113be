package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() JWTConfig {
	return JWTConfig{SecretKey: "test-secret", Issuer: "accounts-backend"}
}

func TestGenerateAndValidateToken(t *testing.T) {
	generator, err := NewJWTGenerator(testConfig())
	require.NoError(t, err)
	validator, err := NewJWTValidator(testConfig())
	require.NoError(t, err)

	token, err := generator.GenerateToken("ABC123", "Alice", "Admin")
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "accounts-backend", claims.Issuer)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	generator, err := NewJWTGenerator(testConfig())
	require.NoError(t, err)
	validator, err := NewJWTValidator(JWTConfig{SecretKey: "other-secret"})
	require.NoError(t, err)

	token, err := generator.GenerateToken("ABC123", "Alice", "User")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.Expiry = -time.Minute
	generator, err := NewJWTGenerator(cfg)
	require.NoError(t, err)
	validator, err := NewJWTValidator(testConfig())
	require.NoError(t, err)

	token, err := generator.GenerateToken("ABC123", "Alice", "User")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	generator, err := NewJWTGenerator(JWTConfig{SecretKey: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	validator, err := NewJWTValidator(testConfig())
	require.NoError(t, err)

	token, err := generator.GenerateToken("ABC123", "Alice", "User")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestValidateToken_Empty(t *testing.T) {
	validator, err := NewJWTValidator(testConfig())
	require.NoError(t, err)

	_, err = validator.ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestNewValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)

	_, err = NewJWTGenerator(JWTConfig{})
	assert.Error(t, err)
}

func TestUserContext_IsAdmin(t *testing.T) {
	assert.True(t, (&UserContext{Role: "Admin"}).IsAdmin())
	assert.False(t, (&UserContext{Role: "User"}).IsAdmin())
}

func TestUserContextRoundTrip(t *testing.T) {
	user := &UserContext{UserID: "ABC123", Name: "Alice", Role: "Admin"}

	ctx := SetUserInContext(context.Background(), user)
	got, err := GetUserFromContext(ctx)

	require.NoError(t, err)
	assert.Equal(t, user, got)

	_, err = GetUserFromContext(context.Background())
	assert.Error(t, err)
}
