package schedule

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
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware(jwtSecret))
	{
		schedules.GET("/me", middleware.Authorize(rbacService, rbac.ResourceSchedule, rbac.ActionRead), handler.GetMySchedule)
		schedules.GET("/me/off-days", middleware.Authorize(rbacService, rbac.ResourceSchedule, rbac.ActionRead), handler.GetMyOffDays)

		schedules.GET("/employees/:id", middleware.Authorize(rbacService, rbac.ResourceSchedule, rbac.ActionReadAll), handler.GetEmployeeSchedule)
		schedules.GET("/employees/:id/off-days", middleware.Authorize(rbacService, rbac.ResourceSchedule, rbac.ActionReadAll), handler.GetEmployeeOffDays)

		schedules.GET("/employees/:id/assignment", middleware.Authorize(rbacService, rbac.ResourceSchedule, rbac.ActionManage), handler.GetAssignment)
		schedules.PUT("/employees/:id/assignment", middleware.Authorize(rbacService, rbac.ResourceSchedule, rbac.ActionManage), handler.UpsertAssignment)
	}
}
