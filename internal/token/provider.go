// Package token issues and validates the JWTs that drive authentication.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the access-token payload: the username as subject plus the
// numeric user id the middleware hands to the service layer.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// RefreshClaims carries the per-login nonce that makes every issued refresh
// token distinct, even for the same user within the same second.
type RefreshClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// Provider signs and parses tokens with a shared HMAC secret.
type Provider struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewProvider(secret string, accessTTL, refreshTTL time.Duration) *Provider {
	return &Provider{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// CreateAccessToken mints a short-lived token bound to the username.
func (p *Provider) CreateAccessToken(userID int64, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// CreateRefreshToken mints a long-lived token salted with a fresh random
// nonce.
func (p *Provider) CreateRefreshToken(username string) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		Nonce: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.refreshTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature and expiry and returns the claims.
func (p *Provider) ParseAccessToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Expiration reports the expiry instant encoded in an issued access token.
// Login reads the expiry back out of the token it just minted instead of
// recomputing it from the configured lifetime, so the reported instant
// always matches the exp claim.
func (p *Provider) Expiration(tokenString string) (time.Time, error) {
	claims, err := p.ParseAccessToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}
