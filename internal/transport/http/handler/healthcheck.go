package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/repository"
)

// HealthCheckHandler records client-reported health pings from the site's
// background monitor.
type HealthCheckHandler struct {
	repo   repository.HealthCheckRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewHealthCheckHandler(repo repository.HealthCheckRepository, logger *slog.Logger) *HealthCheckHandler {
	return &HealthCheckHandler{
		repo:   repo,
		logger: logger.With("component", "health_check_handler"),
		now:    time.Now,
	}
}

type logHealthCheckRequest struct {
	Status string  `json:"status" binding:"required,oneof=ok error"`
	Error  *string `json:"error"`
}

// POST /health-check/log
func (h *HealthCheckHandler) Log(c *gin.Context) {
	var req logHealthCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.repo.Insert(c.Request.Context(), req.Status, req.Error, h.now())
	if err != nil {
		h.logger.Error("log health check", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}
