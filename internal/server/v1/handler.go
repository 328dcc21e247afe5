package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptops/model-engine/internal/core/services"
	"github.com/promptops/model-engine/internal/store"
	"github.com/promptops/model-engine/internal/version"
)

// Handler exposes the engine over HTTP. repo may be nil; the daily usage
// rollup is the only endpoint that needs it.
type Handler struct {
	manager *services.Manager
	repo    store.Repository
}

func NewHandler(manager *services.Manager, repo store.Repository) *Handler {
	return &Handler{manager: manager, repo: repo}
}

// Health is the liveness probe.
//
// GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}
