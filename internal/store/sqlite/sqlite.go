package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/promptops/model-engine/internal/store"
	"github.com/promptops/model-engine/internal/store/model"
)

// DB is the query surface shared by *sqlx.DB and *sqlx.Tx.
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository on a single sqlite file.
type SqliteRepository struct {
	db       *sqlx.DB
	executor DB
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) Usage() store.UsageRepository {
	return &usageRepo{db: r.executor}
}

type usageRepo struct {
	db DB
}

func (r *usageRepo) Insert(ctx context.Context, rec *model.UsageRecord) error {
	query := `
	INSERT INTO usage_log (id, model_name, tokens, cost, response_time, created_at)
	VALUES (:id, :model_name, :tokens, :cost, :response_time, :created_at)`
	_, err := r.db.NamedExecContext(ctx, query, rec)
	return err
}

func (r *usageRepo) Recent(ctx context.Context, limit int) ([]model.UsageRecord, error) {
	var recs []model.UsageRecord
	query := `SELECT * FROM usage_log ORDER BY created_at DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &recs, query, limit)
	return recs, err
}

func (r *usageRepo) DailyStats(ctx context.Context, days int) ([]model.DailyStats, error) {
	var stats []model.DailyStats
	query := `
		SELECT
			DATE(created_at) as date,
			COUNT(*) as total_requests,
			SUM(tokens) as total_tokens,
			SUM(cost) as total_cost,
			AVG(response_time) as avg_response_time
		FROM usage_log
		WHERE created_at >= DATE('now', ?)
		GROUP BY date
		ORDER BY date DESC
	`
	// SQLite date offset format is '-7 days'.
	err := r.db.SelectContext(ctx, &stats, query, fmt.Sprintf("-%d days", days))
	return stats, err
}
