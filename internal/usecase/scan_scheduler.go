package usecase

import (
	"context"
	"fmt"
	"time"

	"Commander/internal/domain/models"
	"Commander/pkg/logger"
	"Commander/pkg/queue"
)

// WatchlistScanPayload is the message body for a scheduled watchlist scan.
type WatchlistScanPayload struct {
	Watchlist string `json:"watchlist"`
}

// WatchlistScanJob consumes scheduled scan messages and runs the scanner.
// Results flow through the usual result processor, so scheduled scans feed
// the same history pipeline as API-triggered ones.
type WatchlistScanJob struct {
	scanner *ScannerUseCase
	log     *logger.Logger
}

func NewWatchlistScanJob(scanner *ScannerUseCase, log *logger.Logger) *WatchlistScanJob {
	return &WatchlistScanJob{scanner: scanner, log: log}
}

func (j *WatchlistScanJob) Name() string { return "watchlist_scan" }
func (j *WatchlistScanJob) Type() string { return "watchlist_scan" }

func (j *WatchlistScanJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[WatchlistScanPayload](payload)
	if err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}

	results, err := j.scanner.Scan(ctx, nil, p.Watchlist, models.Strategy(""))
	if err != nil {
		return fmt.Errorf("scheduled scan %q: %w", p.Watchlist, err)
	}
	j.log.Info("scheduled scan complete",
		logger.String("watchlist", p.Watchlist),
		logger.Int("results", len(results)))
	return nil
}

var _ queue.Job = (*WatchlistScanJob)(nil)

// ScanScheduler enqueues one scan message per watchlist on a fixed
// interval. Publishing and consuming are decoupled so multiple instances
// can share the work through the queue.
type ScanScheduler struct {
	publisher  queue.QueueService
	log        *logger.Logger
	watchlists []string
	interval   time.Duration
	stopCh     chan struct{}
}

func NewScanScheduler(publisher queue.QueueService, log *logger.Logger, watchlists []string, interval time.Duration) *ScanScheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &ScanScheduler{
		publisher:  publisher,
		log:        log,
		watchlists: watchlists,
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
}

func (s *ScanScheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.enqueueAll(ctx)
			}
		}
	}()
}

func (s *ScanScheduler) Stop() {
	close(s.stopCh)
}

func (s *ScanScheduler) enqueueAll(ctx context.Context) {
	for _, name := range s.watchlists {
		payload := WatchlistScanPayload{Watchlist: name}
		if err := s.publisher.PublishMessage(ctx, "watchlist_scan", payload); err != nil {
			s.log.Error("enqueue scheduled scan failed",
				logger.String("watchlist", name), logger.Error(err))
			continue
		}
		s.log.Debug("scheduled scan enqueued", logger.String("watchlist", name))
	}
}
