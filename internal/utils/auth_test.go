package utils

import (
	"context"
	"testing"
	"time"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWTConfig = models.JWTConfig{
	SecretKey: "test-secret-key",
	Issuer:    "vehicle-sales-system",
	Audience:  "vehicle-sales-system",
	Algorithm: "HS256",
	Expiry:    time.Hour,
}

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hashed)

	assert.True(t, CheckPassword("s3cret-pass", hashed))
	assert.False(t, CheckPassword("wrong-pass", hashed))
}

func TestGenerateAndParseJWT(t *testing.T) {
	user := models.JWT{
		ID:       7,
		Name:     "Asha Rao",
		Username: "asha",
		Roles:    "Owner,Back Office",
		Branches: "ALL",
	}

	token, err := GenerateJWT(user, testJWTConfig)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testJWTConfig)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "asha", claims.Username)
	assert.Equal(t, "Owner,Back Office", claims.Roles)
	assert.Equal(t, "ALL", claims.Branches)
	assert.Equal(t, testJWTConfig.Issuer, claims.Issuer)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(models.JWT{Username: "asha"}, testJWTConfig)
	require.NoError(t, err)

	other := testJWTConfig
	other.SecretKey = "a-different-secret"
	_, err = ParseJWT(token, other)
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", testJWTConfig)
	assert.Error(t, err)
}

func TestHasRole(t *testing.T) {
	claims := &models.JWT{Roles: "Back Office, Cashier"}

	assert.True(t, HasRole(claims, models.ROLE_CASHIER))
	assert.True(t, HasRole(claims, "back office"), "role match is case-insensitive")
	assert.False(t, HasRole(claims, models.ROLE_OWNER))
}

func TestCanAccessBranch(t *testing.T) {
	scoped := &models.JWT{Branches: "BR1, BR3"}
	assert.True(t, CanAccessBranch(scoped, "BR1"))
	assert.True(t, CanAccessBranch(scoped, "BR3"))
	assert.False(t, CanAccessBranch(scoped, "BR2"))

	owner := &models.JWT{Branches: "ALL"}
	assert.True(t, CanAccessBranch(owner, "BR2"))
}

func TestClaimsContextRoundTrip(t *testing.T) {
	claims := &models.JWT{Username: "asha"}
	ctx := ContextWithClaims(context.Background(), claims)

	got, ok := ClaimsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, claims, got)

	_, ok = ClaimsFromContext(context.Background())
	assert.False(t, ok)
}
