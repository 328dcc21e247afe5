package services

import (
	"github.com/promptops/model-engine/internal/core/domain"
)

// Selector is the stateless selection algorithm over the registry: resolve
// the operation's candidate sequence, filter, return the first survivor.
type Selector struct {
	registry *Registry
}

func NewSelector(registry *Registry) *Selector {
	return &Selector{registry: registry}
}

// sequence resolves the candidate name order for an operation, falling back
// to the default operation's sequence when the operation is unconfigured,
// disabled, or empty.
func (s *Selector) sequence(op domain.OperationType) []string {
	if cfg, ok := s.registry.Operation(op); ok && cfg.IsEnabled {
		if seq := cfg.ModelSequence(); len(seq) > 0 {
			return seq
		}
	}
	if op == domain.OperationDefault {
		return nil
	}
	if cfg, ok := s.registry.Operation(domain.OperationDefault); ok && cfg.IsEnabled {
		return cfg.ModelSequence()
	}
	return nil
}

// SelectModelForOperation returns the first candidate that is enabled,
// available, and meets the requirements, or nil when none qualify. A miss
// is an answer, not an error.
func (s *Selector) SelectModelForOperation(op domain.OperationType, req *domain.Requirements) *domain.ModelConfig {
	for _, name := range s.sequence(op) {
		m, ok := s.registry.Model(name)
		if !ok {
			// Stale names in a routing rule are skipped silently.
			continue
		}
		if !m.IsEnabled || !m.IsAvailable {
			continue
		}
		if !req.MetBy(&m) {
			continue
		}
		return &m
	}
	return nil
}

// FallbackModels returns the operation's fallback chain minus the failed
// model, filtered to enabled and available candidates, order preserved.
// Callers use this to retry after a failed invocation.
func (s *Selector) FallbackModels(op domain.OperationType, failedModel string) []domain.ModelConfig {
	cfg, ok := s.registry.Operation(op)
	if !ok {
		return nil
	}

	var out []domain.ModelConfig
	for _, name := range cfg.FallbackModels {
		if name == failedModel {
			continue
		}
		m, ok := s.registry.Model(name)
		if !ok {
			continue
		}
		if !m.IsEnabled || !m.IsAvailable {
			continue
		}
		out = append(out, m)
	}
	return out
}
