package utils

import (
	"testing"

	"pixvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	claims := &models.UserClaims{
		UserID:    "user-1",
		AccountID: "acc-1",
		Email:     "owner@example.com",
	}

	access, refresh, err := GenerateTokens(claims)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	_, parsed, err := ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", parsed.UserID)
	assert.Equal(t, "acc-1", parsed.AccountID)
	assert.Equal(t, "owner@example.com", parsed.Email)
	assert.Equal(t, "pixvault-api", parsed.Issuer)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	access, _, err := GenerateTokens(&models.UserClaims{UserID: "user-1"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, _, err = ParseToken(access)
	assert.Error(t, err)
}

func TestGenerateTokensRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, _, err := GenerateTokens(&models.UserClaims{UserID: "user-1"})
	assert.Error(t, err)
}
