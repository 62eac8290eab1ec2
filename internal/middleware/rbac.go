package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
	"github.com/JayR61/congregation-connect/pkg/response"
)

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireManager admits admins and leaders.
func RequireManager() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleLeader)
}
