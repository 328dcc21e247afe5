package domain

import "time"

// ModelUsage accumulates counters for one model. AvgResponseTime is derived
// from TotalResponseTime / Requests on every update.
type ModelUsage struct {
	Requests          int64     `json:"requests"`
	Tokens            int64     `json:"tokens"`
	Cost              float64   `json:"cost"`
	TotalResponseTime float64   `json:"total_response_time"`
	AvgResponseTime   float64   `json:"avg_response_time"`
	LastUsed          time.Time `json:"last_used"`
}

// UsageReport is the aggregate view: fleet totals plus per-model counters.
// Models with no recorded usage are absent from the map.
type UsageReport struct {
	TotalRequests int64                 `json:"total_requests"`
	TotalTokens   int64                 `json:"total_tokens"`
	TotalCost     float64               `json:"total_cost"`
	Models        map[string]ModelUsage `json:"models"`
}

// Recommendation ranks one candidate model for an operation.
type Recommendation struct {
	Model  ModelConfig `json:"model"`
	Score  float64     `json:"score"`
	Reason string      `json:"reason"`
}
