package services

import (
	"context"
	"testing"
	"time"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubProbe implements ports.HealthProbe with a canned verdict.
type stubProbe struct {
	provider domain.Provider
	healthy  bool
	status   string
	delay    time.Duration
	panics   bool
}

func (s *stubProbe) Provider() domain.Provider { return s.provider }

func (s *stubProbe) Check(ctx context.Context, m *domain.ModelConfig) (bool, string) {
	if s.panics {
		panic("stub exploded")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return false, domain.StatusTimeout
		}
	}
	return s.healthy, s.status
}

func newTestChecker(r *Registry, stubs ...*stubProbe) *HealthChecker {
	byProvider := make(map[domain.Provider]ports.HealthProbe)
	for _, s := range stubs {
		byProvider[s.provider] = s
	}
	h := NewHealthChecker(r, zap.NewNop())
	h.lookup = func(p domain.Provider) (ports.HealthProbe, bool) {
		probe, ok := byProvider[p]
		return probe, ok
	}
	return h
}

func TestCheckModelHealth_UnknownModel(t *testing.T) {
	h := newTestChecker(NewRegistry())

	_, err := h.CheckModelHealth(context.Background(), "ghost")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestCheckModelHealth_RecordsOutcome(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"))
	h := newTestChecker(r, &stubProbe{provider: domain.ProviderOpenAI, healthy: true, status: domain.StatusHealthy})

	res, err := h.CheckModelHealth(context.Background(), "gpt4")
	assert.NoError(t, err)
	assert.True(t, res.Healthy)
	assert.Equal(t, domain.StatusHealthy, res.Status)
	assert.False(t, res.LastCheck.IsZero())

	m, _ := r.Model("gpt4")
	assert.True(t, m.IsAvailable)
	assert.NotNil(t, m.LastHealthCheck)
}

func TestCheckModelHealth_FailureIsDataNotError(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("claude", domain.ProviderAnthropic, "claude-3"))
	h := newTestChecker(r, &stubProbe{provider: domain.ProviderAnthropic, healthy: false, status: domain.StatusNoAPIKey})

	res, err := h.CheckModelHealth(context.Background(), "claude")
	assert.NoError(t, err)
	assert.False(t, res.Healthy)
	assert.Equal(t, "API key not configured", res.Status)

	m, _ := r.Model("claude")
	assert.False(t, m.IsAvailable)
}

func TestCheckModelHealth_UnsupportedProvider(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("hf", domain.ProviderHuggingFace, "falcon-7b"))
	h := newTestChecker(r) // no probes registered

	res, err := h.CheckModelHealth(context.Background(), "hf")
	assert.NoError(t, err)
	assert.False(t, res.Healthy)
	assert.Equal(t, "Unsupported provider: huggingface", res.Status)

	m, _ := r.Model("hf")
	assert.False(t, m.IsAvailable)
}

func TestCheckModelHealth_ProbePanicIsContained(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"))
	h := newTestChecker(r, &stubProbe{provider: domain.ProviderOpenAI, panics: true})

	res, err := h.CheckModelHealth(context.Background(), "gpt4")
	assert.NoError(t, err)
	assert.False(t, res.Healthy)
	assert.Contains(t, res.Status, "probe panic")
}

func TestCheckAllModels_SkipsDisabled(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("up", domain.ProviderOpenAI, "gpt-4"))

	disabled := domain.NewModelConfig("off", domain.ProviderOpenAI, "gpt-3.5")
	disabled.IsEnabled = false
	r.AddModel(disabled)

	h := newTestChecker(r, &stubProbe{provider: domain.ProviderOpenAI, healthy: true, status: domain.StatusHealthy})

	results := h.CheckAllModels(context.Background())
	assert.Len(t, results, 1)
	assert.Contains(t, results, "up")
	assert.NotContains(t, results, "off")
}

func TestCheckAllModels_MixedFleet(t *testing.T) {
	r := NewRegistry()
	r.AddModel(domain.NewModelConfig("gpt4", domain.ProviderOpenAI, "gpt-4"))
	r.AddModel(domain.NewModelConfig("claude", domain.ProviderAnthropic, "claude-3"))
	r.AddModel(domain.NewModelConfig("hf", domain.ProviderHuggingFace, "falcon-7b"))

	h := newTestChecker(r,
		&stubProbe{provider: domain.ProviderOpenAI, healthy: true, status: domain.StatusHealthy},
		&stubProbe{provider: domain.ProviderAnthropic, healthy: false, status: "API error: 500"},
	)

	results := h.CheckAllModels(context.Background())
	assert.Len(t, results, 3)
	assert.True(t, results["gpt4"].Healthy)
	assert.False(t, results["claude"].Healthy)
	assert.Equal(t, "API error: 500", results["claude"].Status)
	assert.Equal(t, "Unsupported provider: huggingface", results["hf"].Status)

	gpt, _ := r.Model("gpt4")
	assert.True(t, gpt.IsAvailable)
	claude, _ := r.Model("claude")
	assert.False(t, claude.IsAvailable)
}

func TestProbe_TimeoutBoundedBySettings(t *testing.T) {
	r := NewRegistry()
	r.SetSettings(domain.Settings{
		DefaultTimeout:      20 * time.Millisecond,
		MaxRetries:          domain.DefaultMaxRetries,
		HealthCheckInterval: domain.DefaultHealthCheckInterval,
	})
	r.AddModel(domain.NewModelConfig("slow", domain.ProviderOpenAI, "gpt-4"))

	h := newTestChecker(r, &stubProbe{
		provider: domain.ProviderOpenAI,
		healthy:  true,
		status:   domain.StatusHealthy,
		delay:    500 * time.Millisecond,
	})

	res, err := h.CheckModelHealth(context.Background(), "slow")
	assert.NoError(t, err)
	assert.False(t, res.Healthy)
	assert.Equal(t, "timeout", res.Status)
}
