// README: Tests for auth, role and logging middleware.
package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadtrip/internal/http/middleware"
	"roadtrip/internal/infra"
)

// stubVerifier is a test double for infra.TokenVerifier.
type stubVerifier struct {
	token *infra.AuthToken
	err   error
	seen  string
}

func (s *stubVerifier) VerifyToken(_ context.Context, raw string) (*infra.AuthToken, error) {
	s.seen = raw
	return s.token, s.err
}

func newTestRouter(verifier infra.TokenVerifier, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Logging(zap.NewNop()), middleware.Auth(verifier))
	if len(roles) > 0 {
		r.Use(middleware.RequireRole(roles...))
	}
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": middleware.CallerUID(c), "role": middleware.CallerRole(c)})
	})
	return r
}

func TestAuth_MissingToken(t *testing.T) {
	r := newTestRouter(&stubVerifier{token: &infra.AuthToken{UID: "user1"}})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidBearerPrefix(t *testing.T) {
	r := newTestRouter(&stubVerifier{token: &infra.AuthToken{UID: "user1"}})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Token sometoken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_VerifierErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"invalid", fmt.Errorf("%w: bad signature", infra.ErrInvalidToken), "INVALID_TOKEN"},
		{"expired", fmt.Errorf("%w: %w", infra.ErrInvalidToken, infra.ErrTokenExpired), "TOKEN_EXPIRED"},
		{"other", errors.New("boom"), "INVALID_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubVerifier{err: tt.err})
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", "Bearer tok")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantCode) {
				t.Errorf("expected code %s in body, got %s", tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestAuth_TokenSources(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*http.Request)
		path  string
	}{
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer abc") }, "/test"},
		{"x-access-token", func(r *http.Request) { r.Header.Set("x-access-token", "abc") }, "/test"},
		{"query", func(*http.Request) {}, "/test?token=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubVerifier{token: &infra.AuthToken{UID: "u1", Role: "premium"}}
			r := newTestRouter(v)
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if v.seen != "abc" {
				t.Errorf("verifier saw %q", v.seen)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("expected a request id header")
			}
		})
	}
}

func TestAuth_ValidToken_NoRoleClaim(t *testing.T) {
	r := newTestRouter(&stubVerifier{token: &infra.AuthToken{UID: "user456"}})
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer validtoken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"role":"user"`) {
		t.Errorf("expected default role user, got %s", w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{"premium", http.StatusOK},
		{"admin", http.StatusOK},
		{"user", http.StatusForbidden},
		{"", http.StatusForbidden},
	}
	for _, tt := range tests {
		r := newTestRouter(&stubVerifier{token: &infra.AuthToken{UID: "u1", Role: tt.role}}, "premium", "admin")
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer t")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("role %q: expected %d, got %d", tt.role, tt.want, w.Code)
		}
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
