package usecase

import (
	"context"
	"encoding/json"
	"time"

	"Commander/internal/domain/models"
	domrepo "Commander/internal/domain/repository"
	pkgkafka "Commander/pkg/kafka"
)

// KafkaScansHandler consumes published scan records and persists them to
// the history store.
type KafkaScansHandler struct {
	topic   string
	storage domrepo.Storage
	metrics domrepo.Metrics
}

func NewKafkaScansHandler(topic string, storage domrepo.Storage, metrics domrepo.Metrics) *KafkaScansHandler {
	return &KafkaScansHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaScansHandler) Topic() string { return h.topic }

// incoming message schema mirrors KafkaScanPublisher's recordValue
func (h *KafkaScansHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		TS           int64  `json:"ts"`
		Ticker       string `json:"ticker"`
		Strategy     string `json:"strategy"`
		Score        int    `json:"score"`
		Signal       string `json:"signal"`
		MissingCount int    `json:"missing_count"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}

	ts := time.UnixMilli(m.TS)
	h.metrics.RecordLatency("history_e2e_seconds", time.Since(ts).Seconds())

	start := time.Now()
	err := h.storage.Store(ctx, &models.ScanRecord{
		Timestamp:    ts,
		Ticker:       m.Ticker,
		Strategy:     m.Strategy,
		Score:        m.Score,
		Signal:       m.Signal,
		MissingCount: m.MissingCount,
	})
	h.metrics.RecordLatency("history_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordHistoryWrite("clickhouse")
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaScansHandler)(nil)
