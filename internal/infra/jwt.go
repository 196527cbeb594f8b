// README: HMAC JWT token verifier used by the auth middleware.
package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// AuthToken holds the verified token data used by downstream middleware.
type AuthToken struct {
	UID    string
	Email  string
	Role   string
	Claims jwt.MapClaims
}

// TokenVerifier verifies a raw bearer token and returns token data.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, raw string) (*AuthToken, error)
}

type hmacVerifier struct {
	secret []byte
}

// NewJWTVerifier verifies HS256 tokens carrying userId, email and role claims.
// exp is checked when present.
func NewJWTVerifier(secret string) TokenVerifier {
	return &hmacVerifier{secret: []byte(secret)}
}

func (v *hmacVerifier) VerifyToken(_ context.Context, raw string) (*AuthToken, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, ErrTokenExpired)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	uid, _ := claims["userId"].(string)
	if uid == "" {
		return nil, fmt.Errorf("%w: missing userId claim", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &AuthToken{UID: uid, Email: email, Role: role, Claims: claims}, nil
}

// SignToken issues an HS256 token. Used by the smoke runner and tests.
func SignToken(secret string, claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
