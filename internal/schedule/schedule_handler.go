package schedule

import (
	"net/http"
	"strconv"

	"go-workschedule/internal/shared/apperror"
	"go-workschedule/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("schedule.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("schedule request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) getRange(c *gin.Context, employeeID string) {
	resp, err := h.service.GetRange(
		c.Request.Context(),
		employeeID,
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) getOffDays(c *gin.Context, employeeID string) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "count must be an integer", nil)
		return
	}

	resp, err := h.service.NextOffDays(c.Request.Context(), employeeID, c.Query("from"), count)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMySchedule(c *gin.Context) {
	h.getRange(c, c.GetString("employee_id"))
}

func (h *Handler) GetEmployeeSchedule(c *gin.Context) {
	h.getRange(c, c.Param("id"))
}

func (h *Handler) GetMyOffDays(c *gin.Context) {
	h.getOffDays(c, c.GetString("employee_id"))
}

func (h *Handler) GetEmployeeOffDays(c *gin.Context) {
	h.getOffDays(c, c.Param("id"))
}

func (h *Handler) GetAssignment(c *gin.Context) {
	resp, err := h.service.GetAssignment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpsertAssignment(c *gin.Context) {
	var req UpsertAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http upsert assignment validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.UpsertAssignment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
