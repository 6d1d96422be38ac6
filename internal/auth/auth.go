package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"pollapi/internal/config"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("wrong token use")
)

const (
	useAccess  = "access"
	useRefresh = "refresh"
)

// TokenPair is the login/refresh response shape: bearer access token plus a
// longer-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Expires      int    `json:"expires"`
}

type claims struct {
	Use string `json:"use"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 JWTs for account sessions.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a TokenManager from auth config.
func NewTokenManager(cfg config.AuthConfig) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  time.Duration(cfg.AccessTTLSec) * time.Second,
		refreshTTL: time.Duration(cfg.RefreshTTLSec) * time.Second,
		now:        time.Now,
	}, nil
}

// IssuePair signs a new access/refresh token pair for the account.
func (m *TokenManager) IssuePair(accountID string) (*TokenPair, error) {
	access, err := m.sign(accountID, useAccess, m.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := m.sign(accountID, useRefresh, m.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		Expires:      int(m.accessTTL.Seconds()),
	}, nil
}

// VerifyAccess validates an access token and returns the account ID it was
// issued for. Refresh tokens are rejected here so they cannot be used as
// bearer credentials.
func (m *TokenManager) VerifyAccess(token string) (string, error) {
	return m.verify(token, useAccess)
}

// VerifyRefresh validates a refresh token and returns the account ID.
func (m *TokenManager) VerifyRefresh(token string) (string, error) {
	return m.verify(token, useRefresh)
}

func (m *TokenManager) sign(accountID, use string, ttl time.Duration) (string, error) {
	now := m.now()
	c := claims{
		Use: use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

func (m *TokenManager) verify(token, wantUse string) (string, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if c.Use != wantUse {
		return "", ErrWrongTokenUse
	}
	if c.Subject == "" {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}

// HashPassword hashes a plaintext password with bcrypt. A cost of 0 selects
// bcrypt's default.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
