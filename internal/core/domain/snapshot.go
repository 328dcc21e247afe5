package domain

import "time"

// Default engine globals.
const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxRetries          = 3
	DefaultHealthCheckInterval = 300 * time.Second
)

// Settings are the process-wide engine globals.
type Settings struct {
	DefaultTimeout      time.Duration
	MaxRetries          int
	HealthCheckInterval time.Duration
}

// DefaultSettings returns the documented defaults (30s timeout, 3 retries,
// 300s health interval).
func DefaultSettings() Settings {
	return Settings{
		DefaultTimeout:      DefaultTimeout,
		MaxRetries:          DefaultMaxRetries,
		HealthCheckInterval: DefaultHealthCheckInterval,
	}
}

// ConfigSnapshot is the full exportable state of the registry: models,
// operation routing and globals. Durations travel as seconds so the payload
// mirrors the wire shape (default_timeout: 30).
type ConfigSnapshot struct {
	Models              map[string]ModelConfig            `json:"models" yaml:"models"`
	Operations          map[OperationType]OperationConfig `json:"operations" yaml:"operations"`
	DefaultTimeout      float64                           `json:"default_timeout" yaml:"default_timeout"`
	MaxRetries          int                               `json:"max_retries" yaml:"max_retries"`
	HealthCheckInterval float64                           `json:"health_check_interval" yaml:"health_check_interval"`
}

// Settings converts the snapshot's scalar globals back into Settings,
// substituting defaults for zero values.
func (s *ConfigSnapshot) Settings() Settings {
	out := DefaultSettings()
	if s.DefaultTimeout > 0 {
		out.DefaultTimeout = time.Duration(s.DefaultTimeout * float64(time.Second))
	}
	if s.MaxRetries > 0 {
		out.MaxRetries = s.MaxRetries
	}
	if s.HealthCheckInterval > 0 {
		out.HealthCheckInterval = time.Duration(s.HealthCheckInterval * float64(time.Second))
	}
	return out
}
