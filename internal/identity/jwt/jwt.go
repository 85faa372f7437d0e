// Package jwt implements token issuance and verification with golang-jwt.
package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shipyard-labs/delivery-track/internal/domain"
	"github.com/shipyard-labs/delivery-track/internal/identity"
)

// Config contains JWT authenticator configuration.
type Config struct {
	Secret        string
	TokenDuration time.Duration
}

// Claims carries the registered claims plus the role claim the authorization
// gate needs, avoiding a user lookup per request.
type Claims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"role"`
}

// Authenticator issues and verifies HS256-signed tokens.
type Authenticator struct {
	secret        []byte
	tokenDuration time.Duration
}

// NewAuthenticator creates a JWT authenticator.
func NewAuthenticator(cfg Config) *Authenticator {
	return &Authenticator{
		secret:        []byte(cfg.Secret),
		tokenDuration: cfg.TokenDuration,
	}
}

// GenerateToken issues a signed token with the user id as subject and the
// user's role as a claim. Unknown roles are rejected at issuance.
func (a *Authenticator) GenerateToken(_ context.Context, user *domain.User) (string, error) {
	role := user.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q: %w", role, identity.ErrInvalidToken)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenDuration)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and verifies a token, returning the subject and role.
// Bad signature, expiry, wrong format, and unknown role all collapse into
// identity.ErrInvalidToken.
func (a *Authenticator) VerifyToken(_ context.Context, tokenString string) (string, domain.Role, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", identity.ErrInvalidToken
	}

	if claims.Subject == "" || !claims.Role.IsValid() {
		return "", "", identity.ErrInvalidToken
	}

	return claims.Subject, claims.Role, nil
}
