package store

import (
	"context"

	"github.com/promptops/model-engine/internal/store/model"
)

// Repository is the persistence boundary for the usage journal.
type Repository interface {
	Usage() UsageRepository
	Close() error
}

// UsageRepository persists and aggregates usage events.
type UsageRepository interface {
	Insert(ctx context.Context, rec *model.UsageRecord) error
	Recent(ctx context.Context, limit int) ([]model.UsageRecord, error)
	DailyStats(ctx context.Context, days int) ([]model.DailyStats, error)
}
