package server

import (
	"github.com/promptops/model-engine/internal/server/middleware"
	v1 "github.com/promptops/model-engine/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	handler := v1.NewHandler(s.manager, s.repo)

	// Liveness probe, public
	s.router.GET("/health", handler.Health)

	limiter := middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger)

	api := s.router.Group("/api/v1")
	api.Use(middleware.Auth(s.config.Server.APIKeys))
	api.Use(limiter.Middleware())
	{
		api.GET("/providers", handler.ListProviders)
		api.GET("/operation-types", handler.ListOperationTypes)

		api.GET("/models", handler.ListModels)
		api.POST("/models", handler.CreateModel)
		api.GET("/models/:name", handler.GetModel)
		api.PATCH("/models/:name", handler.UpdateModel)
		api.DELETE("/models/:name", handler.DeleteModel)

		api.PUT("/operations/:type", handler.SetOperation)
		api.GET("/operations", handler.ListOperations)

		api.POST("/select", handler.SelectModel)
		api.GET("/recommendations/:operation_type", handler.Recommendations)

		api.POST("/health-check", handler.RunHealthChecks)
		api.POST("/health-check/:name", handler.CheckModel)

		api.POST("/usage", handler.RecordUsage)
		api.GET("/usage-stats", handler.UsageStats)
		api.GET("/usage-stats/daily", handler.DailyUsageStats)

		api.POST("/export", handler.ExportConfiguration)
		api.POST("/import", handler.ImportConfiguration)
	}
}
