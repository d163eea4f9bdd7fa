package usecase

import (
	"context"
	"fmt"
	"time"

	"Commander/internal/domain/models"
	drepo "Commander/internal/domain/repository"
	"Commander/pkg/logger"
)

// ResultProcessor flattens scan results and routes the records to the
// configured history backend: kafka publishes for the consumer to persist,
// clickhouse writes directly.
type ResultProcessor struct {
	pub     drepo.Publisher
	store   drepo.Storage
	metrics drepo.Metrics
	log     *logger.Logger
	backend string
}

func NewResultProcessor(pub drepo.Publisher, store drepo.Storage, metrics drepo.Metrics, log *logger.Logger, backend string) *ResultProcessor {
	return &ResultProcessor{pub: pub, store: store, metrics: metrics, log: log, backend: backend}
}

func recordOf(r *models.ScanResult) *models.ScanRecord {
	return &models.ScanRecord{
		Timestamp:    r.ScannedAt,
		Ticker:       r.Snapshot.Ticker,
		Strategy:     string(r.Selected.Strategy),
		Score:        r.Selected.Score,
		Signal:       string(r.Selected.Signal),
		MissingCount: len(r.MissingData),
	}
}

// Process routes one record to the backend.
func (p *ResultProcessor) Process(ctx context.Context, r *models.ScanRecord) error {
	if r == nil {
		return fmt.Errorf("scan record is nil")
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, r)
	case "clickhouse":
		err = p.store.Store(ctx, r)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}
	if err != nil {
		p.metrics.RecordError("process_record")
		return fmt.Errorf("process scan record: %w", err)
	}

	p.metrics.RecordHistoryWrite(p.backend)
	p.metrics.RecordLatency("process_record", time.Since(start).Seconds())
	return nil
}

// ProcessBatch routes a batch of records to the backend.
func (p *ResultProcessor) ProcessBatch(ctx context.Context, records []*models.ScanRecord) error {
	if len(records) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, records)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, records)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}
	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process record batch: %w", err)
	}

	for range records {
		p.metrics.RecordHistoryWrite(p.backend)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

// ProcessResults flattens and persists scan results. History is best
// effort: a write failure is logged, never surfaced to the scan caller.
func (p *ResultProcessor) ProcessResults(ctx context.Context, results []*models.ScanResult) {
	if len(results) == 0 {
		return
	}
	records := make([]*models.ScanRecord, len(results))
	for i, r := range results {
		records[i] = recordOf(r)
	}
	if err := p.ProcessBatch(ctx, records); err != nil {
		p.log.Warn("scan history write failed", logger.Error(err))
	}
}

// Close releases the backend writer.
func (p *ResultProcessor) Close() error {
	switch p.backend {
	case "kafka":
		if p.pub != nil {
			return p.pub.Close()
		}
	case "clickhouse":
		if p.store != nil {
			return p.store.Close()
		}
	}
	return nil
}
