package repository

import (
	"context"
	"time"

	"Commander/internal/domain/models"
)

type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, r *models.ScanRecord) error
	PublishBatch(ctx context.Context, records []*models.ScanRecord) error
	Close() error
}

type Storage interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, r *models.ScanRecord) error
	StoreBatch(ctx context.Context, records []*models.ScanRecord) error
	Query(ctx context.Context, ticker string, from, to time.Time, limit int) ([]*models.ScanRecord, error)
	Health(ctx context.Context) error // ping
	Close() error
}

type Journal interface {
	Save(ctx context.Context, entry *models.JournalEntry) error
	List(ctx context.Context, filter models.JournalFilter) ([]*models.JournalEntry, error)
	Stats(ctx context.Context) ([]models.StrategyStats, error)
}

type Metrics interface {
	RecordScan(strategy, signal string)
	RecordRegime(regime string)
	RecordMacroOverride()
	RecordHistoryWrite(backend string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
