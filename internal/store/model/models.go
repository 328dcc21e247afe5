package model

import "time"

// UsageRecord is one persisted usage event: a single completed request
// against a model, as reported by the caller.
type UsageRecord struct {
	ID           string    `db:"id" json:"id"`
	ModelName    string    `db:"model_name" json:"model_name"`
	Tokens       int64     `db:"tokens" json:"tokens"`
	Cost         float64   `db:"cost" json:"cost"`
	ResponseTime float64   `db:"response_time" json:"response_time"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DailyStats is one row of the per-day usage rollup.
type DailyStats struct {
	Date            string  `db:"date" json:"date"`
	TotalRequests   int64   `db:"total_requests" json:"total_requests"`
	TotalTokens     int64   `db:"total_tokens" json:"total_tokens"`
	TotalCost       float64 `db:"total_cost" json:"total_cost"`
	AvgResponseTime float64 `db:"avg_response_time" json:"avg_response_time"`
}
