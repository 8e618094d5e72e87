package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/caseworks/casegate/internal/pkg/httputils"
	"github.com/caseworks/casegate/pkg/utils/errors"
)

// Context keys for the authenticated principal.
const (
	principalKey = "casegate.principal"
	sessionKey   = "casegate.session"
)

// PrincipalClaims are the token claims CaseGate consumes. Authentication
// itself happens upstream; this service only needs to know who is asking and
// which session they hold.
type PrincipalClaims struct {
	jwt.RegisteredClaims

	// SessionID identifies the working session for confidentiality-context
	// lookup.
	SessionID string `json:"sid"`
}

// Auth extracts and verifies the bearer token, placing the principal and
// session id into the request context. Requests without a valid token never
// reach a handler.
func Auth(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			httputils.WriteResponse(c, errors.ErrUnauthenticated, nil)
			c.Abort()
			return
		}

		claims := &PrincipalClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(raw, "Bearer "), claims,
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.ErrUnauthenticated.WithMessagef(
						"unexpected signing method %v", t.Header["alg"])
				}
				return key, nil
			})
		if err != nil || !token.Valid || claims.Subject == "" {
			httputils.WriteResponse(c, errors.ErrUnauthenticated, nil)
			c.Abort()
			return
		}

		c.Set(principalKey, claims.Subject)
		c.Set(sessionKey, claims.SessionID)
		c.Next()
	}
}

// Principal returns the authenticated user id.
func Principal(c *gin.Context) string {
	return c.GetString(principalKey)
}

// SessionID returns the authenticated session id.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
