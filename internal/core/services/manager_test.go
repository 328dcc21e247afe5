package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/promptops/model-engine/internal/adapters/cache/memory"
	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(zap.NewNop(), memory.NewMemoryCache(), nil)
}

func TestManager_ModelLifecycle(t *testing.T) {
	m := newTestManager(t)

	cfg := domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4")
	assert.NoError(t, m.AddModel(cfg))

	got, err := m.Model("gpt4")
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4", got.ModelID)

	temp := 0.3
	updated, err := m.UpdateModel("gpt4", domain.ModelPatch{Temperature: &temp})
	assert.NoError(t, err)
	assert.Equal(t, 0.3, updated.Temperature)

	assert.NoError(t, m.RemoveModel("gpt4"))
	_, err = m.Model("gpt4")
	assert.Error(t, err)
}

func TestManager_AddModelValidates(t *testing.T) {
	m := newTestManager(t)

	bad := domain.NewModelConfig("", domain.ProviderOpenAI, "gpt-4")
	assert.Error(t, m.AddModel(bad))

	badProvider := domain.NewModelConfig("x", domain.Provider("bedrock"), "id")
	assert.Error(t, m.AddModel(badProvider))

	assert.Empty(t, m.Models())
}

func TestManager_SetOperationRejectsUnknownType(t *testing.T) {
	m := newTestManager(t)

	err := m.SetOperation(domain.OperationType("chatting"), domain.NewOperationConfig())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation type")

	assert.NoError(t, m.SetOperation(domain.OperationGeneration, domain.NewOperationConfig()))
}

func TestManager_UsageFlow(t *testing.T) {
	m := newTestManager(t)

	m.RecordUsage("gpt4", 1000, 0.05, 1.2)
	m.RecordUsage("gpt4", 800, 0.04, 1.0)

	report := m.UsageStats()
	assert.Equal(t, int64(2), report.TotalRequests)
	assert.Equal(t, int64(1800), report.TotalTokens)
	assert.InDelta(t, 0.09, report.TotalCost, 1e-9)
	assert.InDelta(t, 1.1, report.Models["gpt4"].AvgResponseTime, 1e-9)
}

func TestManager_ExportImportRoundTrip(t *testing.T) {
	src := newTestManager(t)

	gpt := domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4")
	gpt.CostPer1KInputTokens = 0.03
	gpt.CostPer1KOutputTokens = 0.06
	assert.NoError(t, src.AddModel(gpt))
	assert.NoError(t, src.AddModel(domain.NewModelConfig("claude", domain.ProviderAnthropic, "claude-3")))
	assert.NoError(t, src.SetOperation(domain.OperationGeneration, domain.OperationConfig{
		PrimaryModel:   "gpt4",
		FallbackModels: []string{"claude"},
		IsEnabled:      true,
	}))

	snapshot := src.ExportConfiguration()
	assert.Len(t, snapshot.Models, 2)
	assert.InDelta(t, 30.0, snapshot.DefaultTimeout, 1e-9)

	dst := newTestManager(t)
	assert.NoError(t, dst.ImportConfiguration(snapshot))

	again := dst.ExportConfiguration()
	assert.Equal(t, snapshot.Models, again.Models)
	assert.Equal(t, snapshot.Operations, again.Operations)
	assert.Equal(t, snapshot.MaxRetries, again.MaxRetries)
}

func TestManager_ImportRejectsBadPayloads(t *testing.T) {
	m := newTestManager(t)

	mismatch := domain.ConfigSnapshot{
		Models: map[string]domain.ModelConfig{
			"alias": domain.NewModelConfig("other", domain.ProviderOpenAI, "gpt-4"),
		},
	}
	err := m.ImportConfiguration(mismatch)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")

	badOp := domain.ConfigSnapshot{
		Models: map[string]domain.ModelConfig{
			"gpt4": domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"),
		},
		Operations: map[domain.OperationType]domain.OperationConfig{
			"chatting": {},
		},
	}
	err = m.ImportConfiguration(badOp)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operation type")
	// Rejected wholesale: the valid model alongside the bad operation must
	// not have been added
	assert.Empty(t, m.Models())
}

func TestManager_ImportFillsOmittedModelName(t *testing.T) {
	m := newTestManager(t)

	snapshot := domain.ConfigSnapshot{
		Models: map[string]domain.ModelConfig{
			"gpt4": domain.NewModelConfig("", domain.ProviderOpenAI, "gpt-4"),
		},
	}
	assert.NoError(t, m.ImportConfiguration(snapshot))

	// The map key names the model; it must be reachable under that key
	got, err := m.Model("gpt4")
	assert.NoError(t, err)
	assert.Equal(t, "gpt4", got.Name)

	for _, cfg := range m.Models() {
		assert.NotEmpty(t, cfg.Name)
	}
}

func TestManager_ImportIsMerge(t *testing.T) {
	m := newTestManager(t)
	assert.NoError(t, m.AddModel(domain.NewModelConfig("existing", domain.ProviderOpenAI, "gpt-4")))

	incoming := domain.ConfigSnapshot{
		Models: map[string]domain.ModelConfig{
			"new": domain.NewModelConfig("new", domain.ProviderAnthropic, "claude-3"),
		},
		MaxRetries: 5,
	}
	assert.NoError(t, m.ImportConfiguration(incoming))

	assert.Len(t, m.Models(), 2)
	assert.Equal(t, 5, m.Settings().MaxRetries)
	// Unspecified globals fall back to defaults
	assert.Equal(t, domain.DefaultTimeout, m.Settings().DefaultTimeout)
}

func TestManager_SnapshotFileRoundTrip(t *testing.T) {
	src := newTestManager(t)
	assert.NoError(t, src.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4")))
	assert.NoError(t, src.SetOperation(domain.OperationDefault, domain.OperationConfig{
		PrimaryModel: "gpt4",
		IsEnabled:    true,
	}))

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	assert.NoError(t, src.SaveSnapshot(path))

	dst := newTestManager(t)
	assert.NoError(t, dst.LoadSnapshot(path))

	got, err := dst.Model("gpt4")
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4", got.ModelID)

	op, ok := dst.Operation(domain.OperationDefault)
	assert.True(t, ok)
	assert.Equal(t, "gpt4", op.PrimaryModel)
}

func TestManager_RecommendationsCacheInvalidation(t *testing.T) {
	m := newTestManager(t)

	cheap := domain.NewModelConfig("cheap", domain.ProviderOllama, "llama3")
	cheap.IsAvailable = true
	assert.NoError(t, m.AddModel(cheap))

	ctx := context.Background()
	first := m.Recommendations(ctx, domain.OperationGeneration)
	assert.Len(t, first, 1)

	// Registry changed; the cached list must not be served stale
	pricier := domain.NewModelConfig("pricier", domain.ProviderOpenAI, "gpt-4")
	pricier.IsAvailable = true
	assert.NoError(t, m.AddModel(pricier))

	second := m.Recommendations(ctx, domain.OperationGeneration)
	assert.Len(t, second, 2)
}

func TestManager_HealthLoopAdoptsImportedInterval(t *testing.T) {
	m := newTestManager(t)

	probe := &stubProbe{provider: domain.ProviderOpenAI, healthy: true, status: domain.StatusHealthy}
	m.health.lookup = func(p domain.Provider) (ports.HealthProbe, bool) {
		return probe, p == domain.ProviderOpenAI
	}
	assert.NoError(t, m.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartHealthLoop(ctx)

	// The default interval is minutes out, so no sweep runs until the
	// imported 10ms interval takes effect
	assert.NoError(t, m.ImportConfiguration(domain.ConfigSnapshot{HealthCheckInterval: 0.01}))

	assert.Eventually(t, func() bool {
		got, _ := m.Model("gpt4")
		return got.LastHealthCheck != nil
	}, 2*time.Second, 5*time.Millisecond)
}

func TestManager_SelectAfterImport(t *testing.T) {
	m := newTestManager(t)

	available := domain.NewModelConfig("local", domain.ProviderOllama, "llama3")
	available.IsAvailable = true
	checked := time.Now()
	available.LastHealthCheck = &checked

	snapshot := domain.ConfigSnapshot{
		Models: map[string]domain.ModelConfig{"local": available},
		Operations: map[domain.OperationType]domain.OperationConfig{
			domain.OperationGeneration: {PrimaryModel: "local", IsEnabled: true},
		},
	}
	assert.NoError(t, m.ImportConfiguration(snapshot))

	selected := m.SelectModel(domain.OperationGeneration, nil)
	assert.NotNil(t, selected)
	assert.Equal(t, "local", selected.Name)
}
