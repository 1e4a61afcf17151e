package auth

import (
	"go-workschedule/internal/middleware"
	"go-workschedule/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/refresh", handler.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(jwtSecret), middleware.RateLimitByEmployee(2, 5), handler.Me)
		auth.POST("/logout", middleware.AuthMiddleware(jwtSecret), handler.Logout)

		// Account provisioning is an admin operation.
		auth.POST("/register",
			middleware.AuthMiddleware(jwtSecret),
			middleware.Authorize(rbacService, rbac.ResourceEmployee, rbac.ActionManage),
			handler.Register,
		)
	}
}
