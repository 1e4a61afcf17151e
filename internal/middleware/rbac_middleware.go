package middleware

import (
	"net/http"

	"go-workschedule/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// PermissionService is a local interface; any package with a matching
// Enforce method satisfies it.
type PermissionService interface {
	Enforce(role, resource, action string) (bool, error)
}

// Authorize gates a route on a resource/action pair for the session role set
// by AuthMiddleware.
func Authorize(service PermissionService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(role, resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Permission check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				map[string]string{"required": resource + ":" + action},
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
