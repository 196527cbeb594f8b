package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTVerifier(t *testing.T) {
	v := NewJWTVerifier("secret")
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name    string
		secret  string
		claims  jwt.MapClaims
		wantUID string
		wantErr bool
	}{
		{"valid", "secret", jwt.MapClaims{"userId": "u1", "email": "a@b.fr", "role": "premium", "exp": exp}, "u1", false},
		{"wrong secret", "other", jwt.MapClaims{"userId": "u1", "exp": exp}, "", true},
		{"expired", "secret", jwt.MapClaims{"userId": "u1", "exp": time.Now().Add(-time.Hour).Unix()}, "", true},
		{"no user", "secret", jwt.MapClaims{"role": "admin", "exp": exp}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := SignToken(tt.secret, tt.claims)
			if err != nil {
				t.Fatalf("sign: %v", err)
			}
			tok, err := v.VerifyToken(context.Background(), raw)
			if tt.name == "expired" && !errors.Is(err, ErrTokenExpired) {
				t.Fatalf("expected ErrTokenExpired, got %v", err)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Fatalf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("VerifyToken: %v", err)
			}
			if tok.UID != tt.wantUID || tok.Role != "premium" || tok.Email != "a@b.fr" {
				t.Errorf("unexpected token %+v", tok)
			}
		})
	}
}
