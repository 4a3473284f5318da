package auth

import (
	"testing"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("test-secret", time.Hour, 168*time.Hour)
}

func newTestUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Ana Souza", "ana@example.com", "hash")
	require.NoError(t, err)
	return user
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager()
	user := newTestUser(t)

	token, err := m.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Name, claims.Name)
	assert.Empty(t, claims.TokenUse)
}

func TestGenerateAndParseRefreshToken(t *testing.T) {
	m := newTestManager()
	user := newTestUser(t)

	token, err := m.GenerateRefreshToken(user)
	require.NoError(t, err)

	claims, err := m.ParseRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "refresh", claims.TokenUse)
}

func TestParseAccess_RejectsRefreshToken(t *testing.T) {
	m := newTestManager()
	user := newTestUser(t)

	refresh, err := m.GenerateRefreshToken(user)
	require.NoError(t, err)

	_, err = m.ParseAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRefresh_RejectsAccessToken(t *testing.T) {
	m := newTestManager()
	user := newTestUser(t)

	access, err := m.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = m.ParseRefresh(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsWrongSecret(t *testing.T) {
	user := newTestUser(t)

	token, err := newTestManager().GenerateAccessToken(user)
	require.NoError(t, err)

	other := NewTokenManager("other-secret", time.Hour, time.Hour)
	_, err = other.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, time.Hour)
	user := newTestUser(t)

	token, err := m.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = m.ParseAccess(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := newTestManager().ParseAccess("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
