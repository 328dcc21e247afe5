package domain

// OperationConfig is the routing rule for one operation type: a primary
// model plus an ordered fallback chain. Names may repeat; the sequence is
// never deduplicated.
type OperationConfig struct {
	PrimaryModel     string         `json:"primary_model,omitempty" yaml:"primary_model,omitempty" mapstructure:"primary_model"`
	FallbackModels   []string       `json:"fallback_models,omitempty" yaml:"fallback_models,omitempty" mapstructure:"fallback_models"`
	IsEnabled        bool           `json:"is_enabled" yaml:"is_enabled" mapstructure:"is_enabled"`
	CustomParameters map[string]any `json:"custom_parameters,omitempty" yaml:"custom_parameters,omitempty" mapstructure:"custom_parameters"`
}

// NewOperationConfig returns an enabled OperationConfig with no models bound.
func NewOperationConfig() OperationConfig {
	return OperationConfig{IsEnabled: true}
}

// ModelSequence returns the candidate order: primary first (when set),
// then the fallbacks exactly as configured.
func (c *OperationConfig) ModelSequence() []string {
	seq := make([]string, 0, len(c.FallbackModels)+1)
	if c.PrimaryModel != "" {
		seq = append(seq, c.PrimaryModel)
	}
	return append(seq, c.FallbackModels...)
}
