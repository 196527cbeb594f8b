// README: Auth middleware (JWT bearer verification and role gate).
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"roadtrip/internal/infra"
)

const (
	ctxUID   = "auth.uid"
	ctxEmail = "auth.email"
	ctxRole  = "auth.role"

	defaultRole = "user"
)

// Auth verifies the caller's token and stores uid, email and role on the context.
// The token is read from the Authorization bearer header, then x-access-token, then ?token.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFrom(c)
		if raw == "" {
			Logger(c).Warn("request without token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentification requise."})
			return
		}

		tok, err := verifier.VerifyToken(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, infra.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "Session expirée, veuillez vous reconnecter.",
					"code":    "TOKEN_EXPIRED",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authentification invalide.",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		role := tok.Role
		if role == "" {
			role = defaultRole
		}
		c.Set(ctxUID, tok.UID)
		c.Set(ctxEmail, tok.Email)
		c.Set(ctxRole, role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. It must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerUID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentification requise."})
			return
		}
		role := CallerRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		Logger(c).Warn("access denied: insufficient role")
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Accès refusé - permissions insuffisantes."})
	}
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	if tok := c.GetHeader("x-access-token"); tok != "" {
		return tok
	}
	return c.Query("token")
}

// CallerUID returns the authenticated user id, or "".
func CallerUID(c *gin.Context) string { return c.GetString(ctxUID) }

// CallerEmail returns the authenticated user's email, or "".
func CallerEmail(c *gin.Context) string { return c.GetString(ctxEmail) }

// CallerRole returns the authenticated role ("user" when the token had none).
func CallerRole(c *gin.Context) string { return c.GetString(ctxRole) }
