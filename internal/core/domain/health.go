package domain

import "time"

// Health verdict strings surfaced to callers. Probe failures are data, not
// errors, so the exact wording is part of the contract.
const (
	StatusHealthy             = "Healthy"
	StatusNoAPIKey            = "API key not configured"
	StatusNoAPIKeyOrEndpoint  = "API key or endpoint not configured"
	StatusNoEndpoint          = "API endpoint not configured"
	StatusTimeout             = "timeout"
)

// HealthResult is the outcome of a single model probe. ResponseTime is in
// seconds.
type HealthResult struct {
	Healthy      bool      `json:"healthy"`
	Status       string    `json:"status"`
	ResponseTime float64   `json:"response_time"`
	LastCheck    time.Time `json:"last_check"`
}
