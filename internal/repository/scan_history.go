package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"Commander/internal/domain/models"
	"Commander/internal/domain/repository"
	pkgkafka "Commander/pkg/kafka"
)

// ScanHistorySchema creates the append-only scan history table. The
// single %s is the database name, so the statement targets the same
// qualified table the store reads and writes.
const ScanHistorySchema = `CREATE TABLE IF NOT EXISTS %s.scan_history (
	ts DateTime64(3),
	ticker LowCardinality(String),
	strategy LowCardinality(String),
	score UInt8,
	signal LowCardinality(String),
	missing_count UInt8
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(ts)
ORDER BY (ticker, ts)`

// ClickHouseScanHistory implements Storage over ClickHouse.
type ClickHouseScanHistory struct {
	db    *sql.DB
	table string
}

func NewClickHouseScanHistory(db *sql.DB, table string) repository.Storage {
	return &ClickHouseScanHistory{db: db, table: table}
}

func (s *ClickHouseScanHistory) Init(ctx context.Context) error {
	return nil // Schema init in pkg
}

func (s *ClickHouseScanHistory) Store(ctx context.Context, r *models.ScanRecord) error {
	q := fmt.Sprintf("INSERT INTO %s (ts, ticker, strategy, score, signal, missing_count) VALUES (?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		r.Timestamp,
		r.Ticker,
		r.Strategy,
		r.Score,
		r.Signal,
		r.MissingCount,
	)
	return err
}

func (s *ClickHouseScanHistory) StoreBatch(ctx context.Context, records []*models.ScanRecord) error {
	if len(records) == 0 {
		return nil
	}
	// Multi-row VALUES to cut round-trips; 2000 rows per chunk.
	const chunkSize = 2000
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*6)
		for _, r := range records[start:end] {
			if r == nil || r.Ticker == "" {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?)")
			args = append(args, r.Timestamp, r.Ticker, r.Strategy, r.Score, r.Signal, r.MissingCount)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ts, ticker, strategy, score, signal, missing_count) VALUES %s",
			s.table, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}
	return nil
}

func (s *ClickHouseScanHistory) Query(ctx context.Context, ticker string, from, to time.Time, limit int) ([]*models.ScanRecord, error) {
	q := fmt.Sprintf("SELECT ts, ticker, strategy, score, signal, missing_count FROM %s WHERE ticker = ? AND ts >= ? AND ts <= ? ORDER BY ts DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, ticker, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.ScanRecord
	for rows.Next() {
		var r models.ScanRecord
		if err := rows.Scan(&r.Timestamp, &r.Ticker, &r.Strategy, &r.Score, &r.Signal, &r.MissingCount); err != nil {
			return nil, err
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

func (s *ClickHouseScanHistory) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseScanHistory) Close() error {
	return nil // Managed by pkg
}

// KafkaScanPublisher implements Publisher for Kafka.
type KafkaScanPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaScanPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaScanPublisher{producer: producer, topic: topic}
}

func recordValue(r *models.ScanRecord) map[string]interface{} {
	return map[string]interface{}{
		"ts":            r.Timestamp.UnixMilli(),
		"ticker":        r.Ticker,
		"strategy":      r.Strategy,
		"score":         r.Score,
		"signal":        r.Signal,
		"missing_count": r.MissingCount,
	}
}

func (p *KafkaScanPublisher) Publish(ctx context.Context, r *models.ScanRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(r.Ticker), recordValue(r))
}

func (p *KafkaScanPublisher) PublishBatch(ctx context.Context, records []*models.ScanRecord) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(records))
	for i, r := range records {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(r.Ticker),
			Value: recordValue(r),
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaScanPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
