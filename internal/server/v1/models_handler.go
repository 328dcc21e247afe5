package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/server/validator"
)

// ListProviders returns every provider the engine can probe.
//
// GET /api/v1/providers
func (h *Handler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   domain.Providers(),
	})
}

// ListOperationTypes returns the closed set of routable operations.
//
// GET /api/v1/operation-types
func (h *Handler) ListOperationTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   domain.OperationTypes(),
	})
}

// ListModels returns every registered model, sorted by name, with the
// observed availability stamped on.
//
// GET /api/v1/models
func (h *Handler) ListModels(c *gin.Context) {
	models := h.manager.Models()

	if provider := c.Query("provider"); provider != "" {
		filtered := models[:0]
		for _, m := range models {
			if string(m.Provider) == provider {
				filtered = append(filtered, m)
			}
		}
		models = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   models,
	})
}

// CreateModel registers a model.
//
// POST /api/v1/models
func (h *Handler) CreateModel(c *gin.Context) {
	// Bind over a defaulted config so omitted fields keep their defaults.
	cfg := domain.NewModelConfig("", "", "")
	if err := c.ShouldBindJSON(&cfg); err != nil {
		_ = c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	if err := h.manager.AddModel(cfg); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.manager.Model(cfg.Name)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetModel returns one model by name.
//
// GET /api/v1/models/:name
func (h *Handler) GetModel(c *gin.Context) {
	cfg, err := h.manager.Model(c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateModel applies a partial update to a model.
//
// PATCH /api/v1/models/:name
func (h *Handler) UpdateModel(c *gin.Context) {
	var patch domain.ModelPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		_ = c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	updated, err := h.manager.UpdateModel(c.Param("name"), patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteModel removes a model and scrubs it from every routing rule.
//
// DELETE /api/v1/models/:name
func (h *Handler) DeleteModel(c *gin.Context) {
	if err := h.manager.RemoveModel(c.Param("name")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
