package holiday

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
	holidays := r.Group("/holidays")
	holidays.Use(middleware.AuthMiddleware(jwtSecret))
	{
		holidays.GET("", middleware.Authorize(rbacService, rbac.ResourceHoliday, rbac.ActionRead), handler.GetAll)
		holidays.GET("/validate", middleware.Authorize(rbacService, rbac.ResourceHoliday, rbac.ActionManage), handler.Validate)
		holidays.POST("", middleware.Authorize(rbacService, rbac.ResourceHoliday, rbac.ActionManage), handler.Create)
		holidays.POST("/generate-substitute", middleware.Authorize(rbacService, rbac.ResourceHoliday, rbac.ActionManage), handler.GenerateSubstitutes)
		holidays.PUT("/:id", middleware.Authorize(rbacService, rbac.ResourceHoliday, rbac.ActionManage), handler.Update)
		holidays.DELETE("/:id", middleware.Authorize(rbacService, rbac.ResourceHoliday, rbac.ActionManage), handler.Delete)
	}
}
