package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/promptops/model-engine/internal/core/domain"
)

// healthState is the machine-observed side of a model, kept apart from the
// operator-owned ModelConfig so ownership stays unambiguous: only the health
// checker writes here.
type healthState struct {
	available bool
	lastCheck time.Time
}

// Registry is the in-memory store of model definitions and per-operation
// routing rules. All access is guarded by a single mutex; read paths return
// copies so callers can never mutate shared state.
type Registry struct {
	mu         sync.RWMutex
	models     map[string]domain.ModelConfig
	operations map[domain.OperationType]domain.OperationConfig
	health     map[string]healthState
	settings   domain.Settings
}

// NewRegistry returns an empty registry with default globals.
func NewRegistry() *Registry {
	return &Registry{
		models:     make(map[string]domain.ModelConfig),
		operations: make(map[domain.OperationType]domain.OperationConfig),
		health:     make(map[string]healthState),
		settings:   domain.DefaultSettings(),
	}
}

// join returns a copy of the stored config with the observed health state
// stamped on.
func (r *Registry) join(m domain.ModelConfig) domain.ModelConfig {
	if hs, ok := r.health[m.Name]; ok {
		m.IsAvailable = hs.available
		if !hs.lastCheck.IsZero() {
			t := hs.lastCheck
			m.LastHealthCheck = &t
		}
	} else {
		m.IsAvailable = false
		m.LastHealthCheck = nil
	}
	return m
}

// AddModel inserts or overwrites a model by name. An imported availability
// flag is honored as the initial observed state.
func (r *Registry) AddModel(m domain.ModelConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs := healthState{available: m.IsAvailable}
	if m.LastHealthCheck != nil {
		hs.lastCheck = *m.LastHealthCheck
	}
	r.health[m.Name] = hs

	// The stored config is operator intent only.
	m.IsAvailable = false
	m.LastHealthCheck = nil
	r.models[m.Name] = m
}

// Model returns a copy of the named model joined with its health state.
func (r *Registry) Model(name string) (domain.ModelConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[name]
	if !ok {
		return domain.ModelConfig{}, false
	}
	return r.join(m), true
}

// Models returns all registered models sorted by name.
func (r *Registry) Models() []domain.ModelConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.ModelConfig, 0, len(r.models))
	for _, m := range r.models {
		list = append(list, r.join(m))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// RemoveModel deletes a model and scrubs every reference to it from the
// operation routing rules: any primary set to the name is cleared and all
// occurrences are stripped from fallback chains. The registry never
// references a name absent from the model map.
func (r *Registry) RemoveModel(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.models[name]; !ok {
		return domain.NotFoundError(fmt.Sprintf("model '%s' is not registered", name))
	}
	delete(r.models, name)
	delete(r.health, name)

	for op, cfg := range r.operations {
		changed := false
		if cfg.PrimaryModel == name {
			cfg.PrimaryModel = ""
			changed = true
		}
		kept := cfg.FallbackModels[:0:0]
		for _, fb := range cfg.FallbackModels {
			if fb == name {
				changed = true
				continue
			}
			kept = append(kept, fb)
		}
		if changed {
			cfg.FallbackModels = kept
			r.operations[op] = cfg
		}
	}
	return nil
}

// UpdateModel applies a sparse patch to an existing model and returns the
// updated copy.
func (r *Registry) UpdateModel(name string, patch domain.ModelPatch) (domain.ModelConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.models[name]
	if !ok {
		return domain.ModelConfig{}, domain.NotFoundError(fmt.Sprintf("model '%s' is not registered", name))
	}
	patch.Apply(&m)
	r.models[name] = m
	return r.join(m), nil
}

// SetHealth records a probe outcome for a model. Returns false when the
// model vanished between the snapshot and the probe completing.
func (r *Registry) SetHealth(name string, available bool, at time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.models[name]; !ok {
		return false
	}
	r.health[name] = healthState{available: available, lastCheck: at}
	return true
}

// SetOperation installs or replaces the routing rule for an operation type.
func (r *Registry) SetOperation(op domain.OperationType, cfg domain.OperationConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations[op] = cfg
}

// Operation returns the routing rule for an operation type, if configured.
func (r *Registry) Operation(op domain.OperationType) (domain.OperationConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.operations[op]
	return cfg, ok
}

// Operations returns a copy of all configured routing rules.
func (r *Registry) Operations() map[domain.OperationType]domain.OperationConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[domain.OperationType]domain.OperationConfig, len(r.operations))
	for op, cfg := range r.operations {
		out[op] = cfg
	}
	return out
}

// Settings returns the engine globals.
func (r *Registry) Settings() domain.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

// SetSettings replaces the engine globals.
func (r *Registry) SetSettings(s domain.Settings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
}
