package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-productivity-engine/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

var badRequestErrors = []error{
	domain.ErrInvalidRecord,
	domain.ErrInvalidDate,
	domain.ErrNegativeCount,
	domain.ErrCompletedTotal,
	domain.ErrFutureDate,
	domain.ErrInvalidGranularity,
	domain.ErrInvalidRange,
}

func handleError(c *gin.Context, logger *zap.Logger, err error) {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrRecordNotFound), errors.Is(err, domain.ErrStreakNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrStaleRecord):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// optionalDay parses a YYYY-MM-DD query value; empty means "not given".
func optionalDay(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return domain.ParseDay(raw)
}
