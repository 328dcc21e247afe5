package probes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/promptops/model-engine/internal/core/domain"
	"github.com/promptops/model-engine/internal/core/ports"
	"github.com/promptops/model-engine/internal/httpclient"
)

var (
	mu       sync.RWMutex
	registry = make(map[domain.Provider]ports.HealthProbe)
)

// Register makes a probe available for its provider. Probe packages call
// this from init(); importing them for side effects wires the fleet.
func Register(p ports.HealthProbe) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[p.Provider()]; exists {
		panic(fmt.Sprintf("health probe for provider %s already registered", p.Provider()))
	}
	registry[p.Provider()] = p
}

// Lookup returns the probe for a provider, or false when the provider has
// no implementation yet.
func Lookup(provider domain.Provider) (ports.HealthProbe, bool) {
	mu.RLock()
	defer mu.RUnlock()
	p, ok := registry[provider]
	return p, ok
}

// Verdict maps a probe transport error onto the contract's status strings:
// a deadline becomes "timeout", an upstream non-2xx becomes
// "API error: <status>", anything else surfaces its message.
func Verdict(err error) (bool, string) {
	if err == nil {
		return true, domain.StatusHealthy
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false, domain.StatusTimeout
	}
	var upstream *httpclient.UpstreamError
	if errors.As(err, &upstream) {
		return false, fmt.Sprintf("API error: %d", upstream.StatusCode)
	}
	return false, err.Error()
}

// Client returns the HTTP client probes share. Per-probe deadlines come
// from the caller's context, not a client timeout.
func Client() *http.Client {
	return http.DefaultClient
}
