package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/services"
)

type StatsHandler struct {
	svc    *services.StatsService
	logger *zap.Logger
}

func NewStatsHandler(svc *services.StatsService, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, logger: logger}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/summaries", h.GetSummaries)
		stats.GET("/streaks", h.GetStreaks)
		stats.POST("/streaks/live", h.GetLiveStreaks)
		stats.GET("/streaks/snapshot", h.GetStreakSnapshot)
	}
}

// GetSummaries godoc
// @Summary      Period summaries
// @Description  Daily, weekly or monthly completion summaries for the window selected by date.
// @Tags         stats
// @Produce      json
// @Param        granularity  query  string  true   "daily | weekly | monthly"
// @Param        date         query  string  false  "reference day, YYYY-MM-DD"
// @Param        today        query  string  false  "evaluation day, YYYY-MM-DD"
// @Success      200  {array}   domain.PeriodSummary
// @Failure      400  {object}  errorResponse
// @Security     BearerAuth
// @Router       /stats/summaries [get]
func (h *StatsHandler) GetSummaries(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	granularity, err := domain.ParseGranularity(c.Query("granularity"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	reference, err := optionalDay(c.Query("date"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}
	today, err := optionalDay(c.Query("today"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	summaries, err := h.svc.GetSummaries(c.Request.Context(), domain.SummaryInput{
		UserID:      userID,
		Granularity: granularity,
		Reference:   reference,
		Today:       today,
	})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// GetStreaks godoc
// @Summary      Current and longest streak
// @Tags         stats
// @Produce      json
// @Param        today  query  string  false  "evaluation day, YYYY-MM-DD"
// @Success      200  {object}  domain.StreakState
// @Security     BearerAuth
// @Router       /stats/streaks [get]
func (h *StatsHandler) GetStreaks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	today, err := optionalDay(c.Query("today"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	state, err := h.svc.GetStreaks(c.Request.Context(), domain.StreakInput{UserID: userID, Today: today})
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

type liveStreakRequest struct {
	Today          string        `json:"today"`
	TotalTasks     *int          `json:"total_tasks"`
	CompletedTasks *int          `json:"completed_tasks"`
	Tasks          []domain.Task `json:"tasks"`
}

// GetLiveStreaks godoc
// @Summary      Streaks with unsaved state for today
// @Description  Counts today from the request body (raw tasks or counts) instead of the stored record.
// @Tags         stats
// @Accept       json
// @Produce      json
// @Param        body  body  liveStreakRequest  true  "today's state"
// @Success      200  {object}  domain.StreakState
// @Failure      400  {object}  errorResponse
// @Security     BearerAuth
// @Router       /stats/streaks/live [post]
func (h *StatsHandler) GetLiveStreaks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req liveStreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	today, err := optionalDay(req.Today)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	input := services.LiveStreakInput{UserID: userID, Today: today, Tasks: req.Tasks}
	if req.TotalTasks != nil || req.CompletedTasks != nil {
		input.Override = &domain.DayOverride{TotalTasks: deref(req.TotalTasks), CompletedTasks: deref(req.CompletedTasks)}
	}
	if input.Override == nil && len(input.Tasks) == 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "either tasks or total_tasks/completed_tasks is required"})
		return
	}

	state, err := h.svc.GetLiveStreaks(c.Request.Context(), input)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// GetStreakSnapshot godoc
// @Summary      Last streak computed in the background
// @Tags         stats
// @Produce      json
// @Success      200  {object}  domain.StreakSnapshot
// @Failure      404  {object}  errorResponse
// @Security     BearerAuth
// @Router       /stats/streaks/snapshot [get]
func (h *StatsHandler) GetStreakSnapshot(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	snapshot, err := h.svc.GetStreakSnapshot(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
