package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/server/validator"
)

// ExportConfiguration returns a snapshot of the full registry state. The
// payload round-trips through ImportConfiguration unchanged.
//
// POST /api/v1/export
func (h *Handler) ExportConfiguration(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.ExportConfiguration())
}

// ImportConfiguration merges a snapshot into the registry.
//
// POST /api/v1/import
func (h *Handler) ImportConfiguration(c *gin.Context) {
	var snapshot domain.ConfigSnapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		_ = c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	if err := h.manager.ImportConfiguration(snapshot); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"imported_models":     len(snapshot.Models),
		"imported_operations": len(snapshot.Operations),
	})
}
