package auth

import (
	"errors"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// token_use claim value carried by refresh tokens
const refreshUse = "refresh"

// ErrInvalidToken is returned for any token that fails validation
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload for both access and refresh tokens
type Claims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	TokenUse string `json:"token_use,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 tokens
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenManager creates a TokenManager signing with the given secret
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the access token lifetime
func (m *TokenManager) AccessTTL() time.Duration {
	return m.accessTTL
}

// GenerateAccessToken signs a short-lived access token for the user
func (m *TokenManager) GenerateAccessToken(user *domain.User) (string, error) {
	return m.sign(user, m.accessTTL, "")
}

// GenerateRefreshToken signs a long-lived refresh token for the user
func (m *TokenManager) GenerateRefreshToken(user *domain.User) (string, error) {
	return m.sign(user, m.refreshTTL, refreshUse)
}

func (m *TokenManager) sign(user *domain.User, ttl time.Duration, use string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    user.Email,
		Name:     user.Name,
		TokenUse: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseAccess validates an access token and returns its claims.
// Refresh tokens are rejected.
func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse == refreshUse {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseRefresh validates a refresh token and returns its claims.
// Access tokens are rejected.
func (m *TokenManager) ParseRefresh(token string) (*Claims, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != refreshUse {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *TokenManager) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
