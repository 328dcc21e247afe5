package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/server/validator"
)

// UsageRequest is one reported usage event.
type UsageRequest struct {
	ModelName    string  `json:"model_name" binding:"required"`
	Tokens       int64   `json:"tokens" binding:"min=0"`
	Cost         float64 `json:"cost" binding:"min=0"`
	ResponseTime float64 `json:"response_time" binding:"min=0"`
}

// RecordUsage folds a usage event into the in-memory counters and, when the
// journal is enabled, persists it.
//
// POST /api/v1/usage
func (h *Handler) RecordUsage(c *gin.Context) {
	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	h.manager.RecordUsage(req.ModelName, req.Tokens, req.Cost, req.ResponseTime)
	c.Status(http.StatusAccepted)
}

// UsageStats returns the aggregated in-memory counters.
//
// GET /api/v1/usage-stats
func (h *Handler) UsageStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.UsageStats())
}

// DailyUsageStats returns the per-day rollup from the durable journal.
//
// GET /api/v1/usage-stats/daily?days=7
func (h *Handler) DailyUsageStats(c *gin.Context) {
	if h.repo == nil {
		_ = c.Error(domain.NotFoundError("usage journal is not enabled"))
		return
	}

	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			_ = c.Error(domain.BadRequestError("days must be a positive integer"))
			return
		}
		days = parsed
	}

	stats, err := h.repo.Usage().DailyStats(c.Request.Context(), days)
	if err != nil {
		_ = c.Error(domain.InternalError("Failed to load daily usage stats", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   stats,
	})
}
