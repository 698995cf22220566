// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication and role gating. The flow
// is split in two: Authenticate verifies the token and stores the principal,
// RequireRole rejects principals whose role does not match. Data scoping
// (agents seeing only their own assignments) happens in the service layer,
// not here.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/AgentList/internal/auth"
	"github.com/Deepanshu8560/AgentList/internal/domain"
)

// principalKey is the Gin context key under which the verified claims are
// stored. The bare user ID is additionally stored under "userID" for the
// logging and rate-limit middleware.
const principalKey = "principal"

// Authenticate returns a Gin middleware that verifies the Authorization
// bearer token on every request.
//
// Requests without a well-formed "Bearer <token>" header, or with a token
// that fails verification, are aborted with 401. Expired tokens get a
// distinct message so clients can prompt for re-login rather than retry.
func Authenticate(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				unauthorized(c, "token expired")
				return
			}
			unauthorized(c, "invalid token")
			return
		}

		c.Set(principalKey, claims)
		c.Set("userID", claims.UserID)
		c.Next()
	}
}

// RequireRole returns a Gin middleware that aborts with 403 unless the
// authenticated principal has the given role. It fails closed: a request
// that reaches it without passing Authenticate is rejected.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := PrincipalFrom(c)
		if !ok || claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"request_id": c.Writer.Header().Get(requestIDHeader),
				"code":       "forbidden",
				"message":    "insufficient role",
			})
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the verified claims stored by Authenticate.
func PrincipalFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// bearerToken extracts the token from an Authorization header value. The
// scheme comparison is case-insensitive per RFC 9110.
func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get(requestIDHeader),
		"code":       "unauthorized",
		"message":    msg,
	})
}
