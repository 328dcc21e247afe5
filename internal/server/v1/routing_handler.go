package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/server/validator"
)

// SelectRequest asks the engine to pick a model for an operation, optionally
// constrained by hard requirements.
type SelectRequest struct {
	OperationType domain.OperationType `json:"operation_type" binding:"required"`
	Requirements  *domain.Requirements `json:"requirements,omitempty"`
}

// SetOperation replaces the routing rule for one operation type.
//
// PUT /api/v1/operations/:type
func (h *Handler) SetOperation(c *gin.Context) {
	op := domain.OperationType(c.Param("type"))

	var cfg domain.OperationConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		_ = c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}

	if err := h.manager.SetOperation(op, cfg); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"operation_type": op, "config": cfg})
}

// ListOperations returns every configured routing rule.
//
// GET /api/v1/operations
func (h *Handler) ListOperations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   h.manager.Operations(),
	})
}

// SelectModel runs the selection chain for an operation and returns the
// winning model plus the remaining fallbacks.
//
// POST /api/v1/select
func (h *Handler) SelectModel(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(domain.ValidationError(validator.ParseValidationError(err)))
		return
	}
	if !req.OperationType.Valid() {
		_ = c.Error(domain.BadRequestError(fmt.Sprintf("unknown operation type '%s'", req.OperationType)))
		return
	}

	// A miss is an answer, not an error: the model field is null.
	selected := h.manager.SelectModel(req.OperationType, req.Requirements)
	if selected == nil {
		c.JSON(http.StatusOK, gin.H{
			"model":     nil,
			"fallbacks": []domain.ModelConfig{},
		})
		return
	}

	fallbacks := h.manager.FallbackModels(req.OperationType, selected.Name)
	c.JSON(http.StatusOK, gin.H{
		"model":     selected,
		"fallbacks": fallbacks,
	})
}

// Recommendations scores the registered models for an operation type.
//
// GET /api/v1/recommendations/:operation_type
func (h *Handler) Recommendations(c *gin.Context) {
	op := domain.OperationType(c.Param("operation_type"))
	if !op.Valid() {
		_ = c.Error(domain.BadRequestError(fmt.Sprintf("unknown operation type '%s'", op)))
		return
	}

	recs := h.manager.Recommendations(c.Request.Context(), op)
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   recs,
	})
}
