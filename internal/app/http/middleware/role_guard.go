package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"clubero-server/internal/domain/users"

	"github.com/gin-gonic/gin"
)

const roleKey = "role"

type UserLookup interface {
	FindUserByEmail(ctx context.Context, email string) (*users.User, error)
}

// RequireRole loads the caller's stored role and lets the request through
// when it is one of roles. Must run after AuthMiddleware.
func RequireRole(lookup UserLookup, log *slog.Logger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := Caller(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		user, err := lookup.FindUserByEmail(c.Request.Context(), caller.Email)
		if err != nil {
			log.Error("role lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to load user"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			return
		}

		for _, r := range roles {
			if user.Role == r {
				c.Set(roleKey, user.Role)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied"})
	}
}

// CallerRole is the role stored by RequireRole, or "" on routes without it.
func CallerRole(c *gin.Context) string {
	return c.GetString(roleKey)
}
