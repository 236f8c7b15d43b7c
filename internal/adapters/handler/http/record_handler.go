package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/services"
)

type RecordHandler struct {
	svc    *services.RecordService
	logger *zap.Logger
}

func NewRecordHandler(svc *services.RecordService, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{svc: svc, logger: logger}
}

type logRecordRequest struct {
	TotalTasks     *int      `json:"total_tasks" binding:"required"`
	CompletedTasks *int      `json:"completed_tasks" binding:"required"`
	LoggedAt       time.Time `json:"logged_at"`
}

type logTasksRequest struct {
	Tasks    []domain.Task `json:"tasks" binding:"required"`
	LoggedAt time.Time     `json:"logged_at"`
}

func (h *RecordHandler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/records")
	{
		records.GET("", h.List)
		records.PUT("/:date", h.Log)
		records.POST("/:date/tasks", h.LogTasks)
		records.DELETE("/:date", h.Delete)
	}
}

// Log godoc
// @Summary      Log the task counts of a day
// @Description  Creates or replaces the record of a day. An older logged_at than the stored one is rejected.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        date  path  string            true  "YYYY-MM-DD"
// @Param        body  body  logRecordRequest  true  "counts"
// @Success      200  {object}  domain.DailyRecord
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Security     BearerAuth
// @Router       /records/{date} [put]
func (h *RecordHandler) Log(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req logRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	record, err := h.svc.Log(c.Request.Context(), services.LogRecordInput{
		UserID:         userID,
		Date:           c.Param("date"),
		TotalTasks:     *req.TotalTasks,
		CompletedTasks: *req.CompletedTasks,
		LoggedAt:       req.LoggedAt,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// LogTasks godoc
// @Summary      Log a day from raw task state
// @Description  Tasks due on the day are counted; tasks completed after their due date are not completed.
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        date  path  string           true  "YYYY-MM-DD"
// @Param        body  body  logTasksRequest  true  "tasks"
// @Success      200  {object}  domain.DailyRecord
// @Failure      400  {object}  errorResponse
// @Security     BearerAuth
// @Router       /records/{date}/tasks [post]
func (h *RecordHandler) LogTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req logTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	record, err := h.svc.LogTasks(c.Request.Context(), services.LogTasksInput{
		UserID:   userID,
		Date:     c.Param("date"),
		Tasks:    req.Tasks,
		LoggedAt: req.LoggedAt,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// List godoc
// @Summary      Records in a date range
// @Tags         records
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD, inclusive"
// @Param        to    query  string  true  "YYYY-MM-DD, inclusive"
// @Success      200  {array}   domain.DailyRecord
// @Failure      400  {object}  errorResponse
// @Security     BearerAuth
// @Router       /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "from and to are required"})
		return
	}

	records, err := h.svc.List(c.Request.Context(), userID, from, to)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// Delete godoc
// @Summary      Delete the record of a day
// @Tags         records
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /records/{date} [delete]
func (h *RecordHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("date")); err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
