package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"clubero-server/internal/infra/identity"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// AuthMiddleware verifies the bearer token with the identity provider and
// stores the caller on the gin context.
func AuthMiddleware(v identity.Verifier, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header missing"})
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == authHeader || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Bearer token malformed"})
			return
		}

		id, err := v.Verify(c.Request.Context(), tokenString)
		if err != nil {
			log.Debug("token rejected", "path", c.FullPath(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(callerKey, *id)
		c.Next()
	}
}

// Caller returns the identity set by AuthMiddleware.
func Caller(c *gin.Context) (identity.Identity, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return identity.Identity{}, false
	}
	id, ok := v.(identity.Identity)
	return id, ok
}
