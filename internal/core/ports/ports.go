package ports

import (
	"context"
	"time"

	"github.com/promptops/model-engine/internal/core/domain"
)

// HealthProbe is the capability contract for one provider family. A probe
// issues the cheapest request that proves the backend is reachable and
// returns a verdict, never an error: transport failures are folded into the
// status string.
//
// Probes for providers that require credentials must short-circuit with the
// documented "not configured" status before touching the network.
type HealthProbe interface {
	Provider() domain.Provider
	Check(ctx context.Context, model *domain.ModelConfig) (healthy bool, status string)
}

// CacheService is a small marshal-through cache used for read-heavy
// derived data such as recommendation lists.
type CacheService interface {
	// Get retrieves a value, unmarshalling into dest.
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error
}
