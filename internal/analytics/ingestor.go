package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/promptops/model-engine/internal/store"
	"github.com/promptops/model-engine/internal/store/model"
	"go.uber.org/zap"
)

// Ingestor handles asynchronous persistence of usage events so recording a
// request never blocks on disk.
type Ingestor interface {
	Log(rec *model.UsageRecord)
	Start(ctx context.Context)
	Stop()
}

type ingestor struct {
	logger    *zap.Logger
	repo      store.Repository
	recChan   chan *model.UsageRecord
	batchSize int
	flushTime time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewIngestor(logger *zap.Logger, repo store.Repository) Ingestor {
	return &ingestor{
		logger:    logger,
		repo:      repo,
		recChan:   make(chan *model.UsageRecord, 10000),
		batchSize: 50,
		flushTime: 5 * time.Second,
	}
}

// Log enqueues a record, dropping it if the buffer is full or the ingestor
// has been stopped.
func (i *ingestor) Log(rec *model.UsageRecord) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.closed {
		return
	}
	select {
	case i.recChan <- rec:
	default:
		i.logger.Warn("Usage journal buffer full, dropping record",
			zap.String("model", rec.ModelName))
	}
}

func (i *ingestor) Start(ctx context.Context) {
	go i.worker(ctx)
}

// Stop is idempotent and safe against concurrent Log calls; the worker
// drains and flushes whatever was queued before the close.
func (i *ingestor) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return
	}
	i.closed = true
	close(i.recChan)
}

func (i *ingestor) worker(ctx context.Context) {
	batch := make([]*model.UsageRecord, 0, i.batchSize)
	ticker := time.NewTicker(i.flushTime)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		for _, rec := range batch {
			if err := i.repo.Usage().Insert(context.Background(), rec); err != nil {
				i.logger.Error("Failed to persist usage record",
					zap.String("id", rec.ID), zap.Error(err))
			}
		}
		batch = batch[:0]
	}

	for {
		select {
		case rec, ok := <-i.recChan:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			if len(batch) >= i.batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			flush()
			return
		}
	}
}
