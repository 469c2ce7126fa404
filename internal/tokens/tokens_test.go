package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/editfolio/editfolio-backend/internal/config"
)

func cfgWithSecret(secret string) *config.Config {
	return &config.Config{JWT: config.JWTConfig{Secret: secret}}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	cfg := cfgWithSecret("secret-1")

	raw, err := GenerateSessionToken(cfg, SessionClaims{UID: "u1", Email: "a@b.com"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseSessionToken(cfg, raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.False(t, claims.Anonymous)
}

func TestSessionTokenAnonymousFlag(t *testing.T) {
	cfg := cfgWithSecret("secret-1")

	raw, err := GenerateSessionToken(cfg, SessionClaims{UID: "anon-1", Anonymous: true}, time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken(cfg, raw)
	require.NoError(t, err)
	assert.True(t, claims.Anonymous)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	raw, err := GenerateSessionToken(cfgWithSecret("secret-1"), SessionClaims{UID: "u1"}, time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken(cfgWithSecret("secret-2"), raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenExpired(t *testing.T) {
	cfg := cfgWithSecret("secret-1")

	raw, err := GenerateSessionToken(cfg, SessionClaims{UID: "u1"}, -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(cfg, raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken(cfgWithSecret("secret-1"), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
