package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/promptops/model-engine/internal/core/domain"
	"go.uber.org/zap"
)

// ErrorHandler converts errors attached by handlers into JSON responses.
// Problems render as RFC 9457 bodies; plain engine errors render as a
// code/message pair; anything else becomes a generic 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var problem *domain.Problem
		if errors.As(err, &problem) {
			if problem.Log != nil {
				logger.Error("Request failed", zap.Error(problem.Log))
			}

			// RFC 9457 dictates the json is at the root
			c.JSON(problem.Status, problem)
			c.Abort()
			return
		}

		var engineErr *domain.Error
		if errors.As(err, &engineErr) {
			if engineErr.Log != nil {
				logger.Error("Request failed", zap.Error(engineErr.Log))
			}
			c.JSON(engineErr.Code, gin.H{"error": engineErr.Message})
			c.Abort()
			return
		}

		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred."})
		c.Abort()
	}
}
