package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/promptops/model-engine/internal/analytics"
	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/core/ports"
	"github.com/promptops/model-engine/internal/store/model"
	"go.uber.org/zap"
)

const recommendationTTL = 30 * time.Second

// Manager composes the registry, health checker, selector, usage recorder
// and recommender into the engine facade callers interact with. It is built
// once at process start and injected; there is no package-level singleton.
//
// cache and journal may be nil: caching and durable usage logging are
// optional layers over the in-memory engine.
type Manager struct {
	logger      *zap.Logger
	registry    *Registry
	health      *HealthChecker
	selector    *Selector
	usage       *UsageRecorder
	recommender *Recommender
	cache       ports.CacheService
	journal     analytics.Ingestor

	settingsChanged chan struct{}
}

func NewManager(logger *zap.Logger, cache ports.CacheService, journal analytics.Ingestor) *Manager {
	registry := NewRegistry()
	return &Manager{
		logger:          logger,
		registry:        registry,
		health:          NewHealthChecker(registry, logger),
		selector:        NewSelector(registry),
		usage:           NewUsageRecorder(),
		recommender:     NewRecommender(registry),
		cache:           cache,
		journal:         journal,
		settingsChanged: make(chan struct{}, 1),
	}
}

// Initialize runs one full health sweep so availability flags are warm
// before the first selection. Individual probe failures never abort
// startup.
func (m *Manager) Initialize(ctx context.Context) {
	results := m.health.CheckAllModels(ctx)

	healthy := 0
	for _, res := range results {
		if res.Healthy {
			healthy++
		}
	}
	m.logger.Info("Engine initialized",
		zap.Int("models_checked", len(results)),
		zap.Int("healthy", healthy),
	)
}

// Shutdown releases background resources.
func (m *Manager) Shutdown() {
	if m.journal != nil {
		m.journal.Stop()
	}
}

// --- Model CRUD ---

func (m *Manager) AddModel(cfg domain.ModelConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.registry.AddModel(cfg)
	m.invalidateRecommendations()
	m.logger.Info("Model registered",
		zap.String("model", cfg.Name),
		zap.String("provider", string(cfg.Provider)),
	)
	return nil
}

func (m *Manager) RemoveModel(name string) error {
	if err := m.registry.RemoveModel(name); err != nil {
		return err
	}
	m.invalidateRecommendations()
	m.logger.Info("Model removed", zap.String("model", name))
	return nil
}

func (m *Manager) UpdateModel(name string, patch domain.ModelPatch) (domain.ModelConfig, error) {
	updated, err := m.registry.UpdateModel(name, patch)
	if err != nil {
		return domain.ModelConfig{}, err
	}
	m.invalidateRecommendations()
	return updated, nil
}

func (m *Manager) Model(name string) (domain.ModelConfig, error) {
	cfg, ok := m.registry.Model(name)
	if !ok {
		return domain.ModelConfig{}, domain.NotFoundError(fmt.Sprintf("model '%s' is not registered", name))
	}
	return cfg, nil
}

func (m *Manager) Models() []domain.ModelConfig {
	return m.registry.Models()
}

// --- Operation routing rules ---

func (m *Manager) SetOperation(op domain.OperationType, cfg domain.OperationConfig) error {
	if !op.Valid() {
		return domain.BadRequestError(fmt.Sprintf("unknown operation type '%s'", op))
	}
	m.registry.SetOperation(op, cfg)
	m.invalidateRecommendations()
	return nil
}

func (m *Manager) Operation(op domain.OperationType) (domain.OperationConfig, bool) {
	return m.registry.Operation(op)
}

func (m *Manager) Operations() map[domain.OperationType]domain.OperationConfig {
	return m.registry.Operations()
}

// --- Selection ---

// SelectModel picks the model that should serve an operation, or nil when
// no candidate qualifies.
func (m *Manager) SelectModel(op domain.OperationType, req *domain.Requirements) *domain.ModelConfig {
	return m.selector.SelectModelForOperation(op, req)
}

// FallbackModels lists the retry candidates after failedModel failed.
func (m *Manager) FallbackModels(op domain.OperationType, failedModel string) []domain.ModelConfig {
	return m.selector.FallbackModels(op, failedModel)
}

// --- Health ---

func (m *Manager) RunHealthChecks(ctx context.Context) map[string]domain.HealthResult {
	results := m.health.CheckAllModels(ctx)
	m.invalidateRecommendations()
	return results
}

func (m *Manager) CheckModelHealth(ctx context.Context, name string) (domain.HealthResult, error) {
	res, err := m.health.CheckModelHealth(ctx, name)
	if err != nil {
		return domain.HealthResult{}, err
	}
	m.invalidateRecommendations()
	return res, nil
}

// StartHealthLoop re-checks the fleet every HealthCheckInterval until the
// context is cancelled. An interval adopted by a later import takes effect
// without restarting the loop.
func (m *Manager) StartHealthLoop(ctx context.Context) {
	go func() {
		interval := m.registry.Settings().HealthCheckInterval
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.RunHealthChecks(ctx)
			case <-m.settingsChanged:
			case <-ctx.Done():
				return
			}
			if next := m.registry.Settings().HealthCheckInterval; next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}()
}

// notifySettingsChanged nudges the health loop; dropping the signal is fine
// when one is already pending.
func (m *Manager) notifySettingsChanged() {
	select {
	case m.settingsChanged <- struct{}{}:
	default:
	}
}

// --- Usage ---

// RecordUsage updates the in-memory counters and, when a journal is
// configured, persists the event asynchronously.
func (m *Manager) RecordUsage(modelName string, tokens int64, cost float64, responseTime float64) {
	m.usage.Record(modelName, tokens, cost, responseTime)

	if m.journal != nil {
		m.journal.Log(&model.UsageRecord{
			ID:           uuid.NewString(),
			ModelName:    modelName,
			Tokens:       tokens,
			Cost:         cost,
			ResponseTime: responseTime,
			CreatedAt:    time.Now(),
		})
	}
}

func (m *Manager) UsageStats() domain.UsageReport {
	return m.usage.Report()
}

// --- Recommendations ---

// Recommendations scores candidates for an operation, serving from cache
// when a recent identical query is available.
func (m *Manager) Recommendations(ctx context.Context, op domain.OperationType) []domain.Recommendation {
	key := recommendationKey(op)

	if m.cache != nil {
		var cached []domain.Recommendation
		if err := m.cache.Get(ctx, key, &cached); err == nil {
			return cached
		}
	}

	recs := m.recommender.Recommendations(op)

	if m.cache != nil {
		if err := m.cache.Set(ctx, key, recs, recommendationTTL); err != nil {
			m.logger.Debug("Failed to cache recommendations", zap.Error(err))
		}
	}
	return recs
}

func recommendationKey(op domain.OperationType) string {
	return fmt.Sprintf("recommendations:%s", op)
}

// invalidateRecommendations drops every cached recommendation list. The
// operation set is closed and small, so enumerating keys is cheaper than
// tracking them.
func (m *Manager) invalidateRecommendations() {
	if m.cache == nil {
		return
	}
	ctx := context.Background()
	for _, op := range domain.OperationTypes() {
		_ = m.cache.Delete(ctx, recommendationKey(op))
	}
}

// --- Configuration import/export ---

// ExportConfiguration captures the full registry state: models (with their
// observed availability), routing rules and globals.
func (m *Manager) ExportConfiguration() domain.ConfigSnapshot {
	settings := m.registry.Settings()

	snapshot := domain.ConfigSnapshot{
		Models:              make(map[string]domain.ModelConfig),
		Operations:          m.registry.Operations(),
		DefaultTimeout:      settings.DefaultTimeout.Seconds(),
		MaxRetries:          settings.MaxRetries,
		HealthCheckInterval: settings.HealthCheckInterval.Seconds(),
	}
	for _, cfg := range m.registry.Models() {
		snapshot.Models[cfg.Name] = cfg
	}
	return snapshot
}

// ImportConfiguration merges a snapshot into the registry: models are added
// or overwritten by name, operations present in the snapshot replace the
// existing rule, and non-zero globals are adopted. A payload that fails
// validation is rejected before any mutation.
func (m *Manager) ImportConfiguration(snapshot domain.ConfigSnapshot) error {
	models := make([]domain.ModelConfig, 0, len(snapshot.Models))
	for name, cfg := range snapshot.Models {
		if cfg.Name == "" {
			cfg.Name = name
		}
		if cfg.Name != name {
			return domain.BadRequestError(fmt.Sprintf("model key '%s' does not match its name '%s'", name, cfg.Name))
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		models = append(models, cfg)
	}
	for op := range snapshot.Operations {
		if !op.Valid() {
			return domain.BadRequestError(fmt.Sprintf("unknown operation type '%s'", op))
		}
	}

	for _, cfg := range models {
		m.registry.AddModel(cfg)
	}
	for op, cfg := range snapshot.Operations {
		m.registry.SetOperation(op, cfg)
	}
	m.registry.SetSettings(snapshot.Settings())
	m.notifySettingsChanged()
	m.invalidateRecommendations()

	m.logger.Info("Configuration imported",
		zap.Int("models", len(snapshot.Models)),
		zap.Int("operations", len(snapshot.Operations)),
	)
	return nil
}

// Settings exposes the engine globals.
func (m *Manager) Settings() domain.Settings {
	return m.registry.Settings()
}
