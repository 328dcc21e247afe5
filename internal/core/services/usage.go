package services

import (
	"sync"
	"time"

	"github.com/promptops/model-engine/internal/core/domain"
)

// UsageRecorder accumulates per-model counters in memory. Counters are
// created zeroed on first use; a model that was never recorded is absent
// from reports rather than zero-filled.
type UsageRecorder struct {
	mu    sync.Mutex
	stats map[string]domain.ModelUsage
	now   func() time.Time
}

func NewUsageRecorder() *UsageRecorder {
	return &UsageRecorder{
		stats: make(map[string]domain.ModelUsage),
		now:   time.Now,
	}
}

// Record adds one request's worth of usage to a model's counters and
// recomputes the running average response time.
func (u *UsageRecorder) Record(modelName string, tokens int64, cost float64, responseTime float64) {
	u.mu.Lock()
	defer u.mu.Unlock()

	s := u.stats[modelName]
	s.Requests++
	s.Tokens += tokens
	s.Cost += cost
	s.TotalResponseTime += responseTime
	s.AvgResponseTime = s.TotalResponseTime / float64(s.Requests)
	s.LastUsed = u.now()
	u.stats[modelName] = s
}

// Report folds the per-model counters into fleet totals.
func (u *UsageRecorder) Report() domain.UsageReport {
	u.mu.Lock()
	defer u.mu.Unlock()

	report := domain.UsageReport{
		Models: make(map[string]domain.ModelUsage, len(u.stats)),
	}
	for name, s := range u.stats {
		report.TotalRequests += s.Requests
		report.TotalTokens += s.Tokens
		report.TotalCost += s.Cost
		report.Models[name] = s
	}
	return report
}
