package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pollapi/internal/config"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(config.AuthConfig{
		JWTSecret:     "test-secret",
		AccessTTLSec:  3600,
		RefreshTTLSec: 86400,
	})
	require.NoError(t, err)
	return m
}

func TestNewTokenManager(t *testing.T) {
	_, err := NewTokenManager(config.AuthConfig{})
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.IssuePair("account-123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.Equal(t, 3600, pair.Expires)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	id, err := m.VerifyAccess(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "account-123", id)

	id, err = m.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, "account-123", id)
}

func TestVerifyRejectsWrongUse(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.IssuePair("account-123")
	require.NoError(t, err)

	// A refresh token must not pass as a bearer credential, and vice versa.
	_, err = m.VerifyAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	_, err = m.VerifyRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager(t)

	_, err := m.VerifyAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := newTestManager(t)

	pair, err := m.IssuePair("account-123")
	require.NoError(t, err)

	// Move the manager's clock past the access TTL.
	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = m.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	m := newTestManager(t)
	other, err := NewTokenManager(config.AuthConfig{JWTSecret: "other-secret", AccessTTLSec: 3600, RefreshTTLSec: 86400})
	require.NoError(t, err)

	pair, err := other.IssuePair("account-123")
	require.NoError(t, err)

	_, err = m.VerifyAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret", 4) // min cost keeps the test fast
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}
