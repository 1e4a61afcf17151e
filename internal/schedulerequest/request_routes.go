package schedulerequest

import (
	"go-workschedule/internal/middleware"
	"go-workschedule/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	jwtSecret string,
) {
	requests := r.Group("/schedule-requests")
	requests.Use(middleware.AuthMiddleware(jwtSecret))
	{
		requests.POST("",
			middleware.Authorize(rbacService, rbac.ResourceScheduleRequest, rbac.ActionCreate),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
		requests.GET("", middleware.Authorize(rbacService, rbac.ResourceScheduleRequest, rbac.ActionRead), handler.GetAll)
		requests.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceScheduleRequest, rbac.ActionRead), handler.GetByID)

		requests.PATCH("/:id/approve", middleware.Authorize(rbacService, rbac.ResourceScheduleRequest, rbac.ActionDecide), handler.Approve)
		requests.PATCH("/:id/reject", middleware.Authorize(rbacService, rbac.ResourceScheduleRequest, rbac.ActionDecide), handler.Reject)
	}
}
