package domain

// Requirements is a sparse constraint set for model selection. Nil fields
// are not checked.
type Requirements struct {
	SupportsVision          *bool    `json:"supports_vision,omitempty"`
	SupportsStreaming       *bool    `json:"supports_streaming,omitempty"`
	SupportsFunctionCalling *bool    `json:"supports_function_calling,omitempty"`
	MaxTokens               *int     `json:"max_tokens,omitempty"`
	MaxCostPer1KTokens      *float64 `json:"max_cost_per_1k_tokens,omitempty"`
}

// MetBy reports whether the model satisfies every present constraint.
//
// MaxTokens requires a known context length at least that large; a model
// without MaxContextLength fails the check. MaxCostPer1KTokens is a strict
// upper bound on the output-token rate: a model priced exactly at the
// threshold does not qualify.
func (r *Requirements) MetBy(m *ModelConfig) bool {
	if r == nil {
		return true
	}
	if r.SupportsVision != nil && m.SupportsVision != *r.SupportsVision {
		return false
	}
	if r.SupportsStreaming != nil && m.SupportsStreaming != *r.SupportsStreaming {
		return false
	}
	if r.SupportsFunctionCalling != nil && m.SupportsFunctionCalling != *r.SupportsFunctionCalling {
		return false
	}
	if r.MaxTokens != nil {
		if m.MaxContextLength == 0 || m.MaxContextLength < *r.MaxTokens {
			return false
		}
	}
	if r.MaxCostPer1KTokens != nil && m.CostPer1KOutputTokens >= *r.MaxCostPer1KTokens {
		return false
	}
	return true
}
