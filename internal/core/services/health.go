package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/core/ports"
	"github.com/promptops/model-engine/internal/probes"
	"go.uber.org/zap"
)

// HealthChecker drives provider probes and owns the registry's observed
// availability state. Probe failures are data (a HealthResult), never
// errors; the only error path is referencing an unknown model.
type HealthChecker struct {
	registry *Registry
	logger   *zap.Logger
	lookup   func(domain.Provider) (ports.HealthProbe, bool)
}

func NewHealthChecker(registry *Registry, logger *zap.Logger) *HealthChecker {
	return &HealthChecker{
		registry: registry,
		logger:   logger,
		lookup:   probes.Lookup,
	}
}

// CheckModelHealth probes one model by name and records the outcome on the
// registry. Unknown names are a configuration error.
func (h *HealthChecker) CheckModelHealth(ctx context.Context, name string) (domain.HealthResult, error) {
	m, ok := h.registry.Model(name)
	if !ok {
		return domain.HealthResult{}, domain.NotFoundError(fmt.Sprintf("model '%s' is not registered", name))
	}

	res := h.probe(ctx, m)
	h.registry.SetHealth(name, res.Healthy, res.LastCheck)
	return res, nil
}

// CheckAllModels probes every enabled model concurrently, one goroutine per
// model, and joins before returning. The model set is a snapshot taken at
// call time; each probe is bounded by the configured default timeout so one
// unreachable backend cannot stall the sweep.
func (h *HealthChecker) CheckAllModels(ctx context.Context) map[string]domain.HealthResult {
	snapshot := h.registry.Models()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]domain.HealthResult)
	)

	for _, m := range snapshot {
		if !m.IsEnabled {
			continue
		}
		wg.Add(1)
		go func(m domain.ModelConfig) {
			defer wg.Done()

			res := h.probe(ctx, m)
			h.registry.SetHealth(m.Name, res.Healthy, res.LastCheck)

			mu.Lock()
			results[m.Name] = res
			mu.Unlock()

			if !res.Healthy {
				h.logger.Warn("Model health check failed",
					zap.String("model", m.Name),
					zap.String("provider", string(m.Provider)),
					zap.String("status", res.Status),
				)
			}
		}(m)
	}

	wg.Wait()
	return results
}

// probe runs a single bounded health check. Panics inside a probe are
// recovered into an unhealthy verdict so one misbehaving implementation
// cannot break reporting for the rest of the fleet.
func (h *HealthChecker) probe(ctx context.Context, m domain.ModelConfig) (res domain.HealthResult) {
	timeout := h.registry.Settings().DefaultTimeout
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = domain.HealthResult{
				Healthy:      false,
				Status:       fmt.Sprintf("probe panic: %v", r),
				ResponseTime: time.Since(start).Seconds(),
				LastCheck:    time.Now(),
			}
		}
	}()

	probe, ok := h.lookup(m.Provider)
	if !ok {
		return domain.HealthResult{
			Healthy:      false,
			Status:       fmt.Sprintf("Unsupported provider: %s", m.Provider),
			ResponseTime: time.Since(start).Seconds(),
			LastCheck:    time.Now(),
		}
	}

	healthy, status := probe.Check(ctx, &m)
	return domain.HealthResult{
		Healthy:      healthy,
		Status:       status,
		ResponseTime: time.Since(start).Seconds(),
		LastCheck:    time.Now(),
	}
}
