package server

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/promptops/model-engine/internal/config"
	"github.com/promptops/model-engine/internal/core/services"
	"github.com/promptops/model-engine/internal/store"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const serviceName = "model-engine"

type Server struct {
	router  *gin.Engine
	config  *config.Config
	logger  *zap.Logger
	manager *services.Manager
	repo    store.Repository
}

// New builds the HTTP server around an engine Manager. repo may be nil when
// durable usage storage is disabled.
func New(cfg *config.Config, logger *zap.Logger, manager *services.Manager, repo store.Repository) *Server {

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(otelgin.Middleware(serviceName))

	s := &Server{
		router:  engine,
		config:  cfg,
		logger:  logger,
		manager: manager,
		repo:    repo,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
