package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunHealthChecks probes every enabled model concurrently and returns the
// per-model results.
//
// POST /api/v1/health-check
func (h *Handler) RunHealthChecks(c *gin.Context) {
	results := h.manager.RunHealthChecks(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// CheckModel probes a single model by registry name.
//
// POST /api/v1/health-check/:name
func (h *Handler) CheckModel(c *gin.Context) {
	result, err := h.manager.CheckModelHealth(c.Request.Context(), c.Param("name"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}
