package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"Commander/internal/domain/models"
	drepo "Commander/internal/domain/repository"
	domsvc "Commander/internal/domain/service"
	"Commander/internal/scoring"
	"Commander/pkg/logger"
)

// ScannerUseCase runs the strategy scorers across a ticker list. Tickers
// are fetched in fixed-size batches to bound concurrent outbound volume;
// the scoring itself is pure and unbounded.
type ScannerUseCase struct {
	market     domsvc.MarketDataProvider
	macro      domsvc.MacroProvider
	proc       *ResultProcessor
	metrics    drepo.Metrics
	log        *logger.Logger
	watchlists map[string][]string
	batchSize  int
	timeout    time.Duration
}

func NewScannerUseCase(
	market domsvc.MarketDataProvider,
	macro domsvc.MacroProvider,
	proc *ResultProcessor,
	metrics drepo.Metrics,
	log *logger.Logger,
	watchlists map[string][]string,
	batchSize int,
) *ScannerUseCase {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &ScannerUseCase{
		market:     market,
		macro:      macro,
		proc:       proc,
		metrics:    metrics,
		log:        log,
		watchlists: watchlists,
		batchSize:  batchSize,
		timeout:    30 * time.Second,
	}
}

// ScanOne scores a single ticker against a fresh macro context.
func (uc *ScannerUseCase) ScanOne(ctx context.Context, ticker string, forced models.Strategy) (*models.ScanResult, error) {
	macro, err := uc.macro.Context(ctx)
	if err != nil {
		return nil, fmt.Errorf("macro context: %w", err)
	}
	return uc.scanTicker(ctx, ticker, macro, forced)
}

// Scan scores a ticker list. A ticker whose quote cannot be fetched is
// skipped with a warning; incomplete snapshots are scored with their
// missing fields tagged. Results come back sorted by selected score.
func (uc *ScannerUseCase) Scan(ctx context.Context, tickers []string, watchlist string, forced models.Strategy) ([]*models.ScanResult, error) {
	if len(tickers) == 0 {
		tickers = uc.watchlists[watchlist]
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers to scan")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	macro, err := uc.macro.Context(ctx)
	if err != nil {
		return nil, fmt.Errorf("macro context: %w", err)
	}

	results := make([]*models.ScanResult, 0, len(tickers))
	var mu sync.Mutex

	for start := 0; start < len(tickers); start += uc.batchSize {
		end := start + uc.batchSize
		if end > len(tickers) {
			end = len(tickers)
		}

		var wg sync.WaitGroup
		for _, ticker := range tickers[start:end] {
			wg.Add(1)
			go func(ticker string) {
				defer wg.Done()
				result, err := uc.scanTicker(ctx, ticker, macro, forced)
				if err != nil {
					uc.metrics.RecordError("scan_ticker")
					uc.log.Warn("ticker skipped", logger.String("ticker", ticker), logger.Error(err))
					return
				}
				mu.Lock()
				results = append(results, result)
				mu.Unlock()
			}(ticker)
		}
		wg.Wait()
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Selected.Score > results[j].Selected.Score
	})

	uc.proc.ProcessResults(ctx, results)
	return results, nil
}

func (uc *ScannerUseCase) scanTicker(ctx context.Context, ticker string, macro models.MacroContext, forced models.Strategy) (*models.ScanResult, error) {
	start := time.Now()
	snap, err := uc.market.Snapshot(ctx, ticker)
	if err != nil {
		return nil, err
	}

	var scores []models.StrategyScore
	if forced != "" {
		score, err := uc.scoreForced(snap, macro, forced)
		if err != nil {
			return nil, err
		}
		scores = []models.StrategyScore{score}
	} else {
		scores = scoring.ScoreAll(snap, macro)
	}

	selected, err := scoring.Select(scores, forced)
	if err != nil {
		return nil, err
	}

	uc.metrics.RecordScan(string(selected.Strategy), string(selected.Signal))
	uc.metrics.RecordLatency("scan_ticker", time.Since(start).Seconds())

	return &models.ScanResult{
		Snapshot:    snap,
		Scores:      scores,
		Selected:    selected,
		MissingData: snap.MissingFields(),
		ScannedAt:   time.Now(),
	}, nil
}

func (uc *ScannerUseCase) scoreForced(snap models.MarketSnapshot, macro models.MacroContext, forced models.Strategy) (models.StrategyScore, error) {
	switch forced {
	case models.StrategyIPMCC:
		return scoring.ScoreIPMCC(snap, macro), nil
	case models.StrategyT112:
		return scoring.Score112(snap, macro), nil
	case models.StrategyStrangle:
		return scoring.ScoreStrangle(snap, macro), nil
	default:
		return models.StrategyScore{}, fmt.Errorf("unknown strategy %q", forced)
	}
}

// Watchlists exposes the configured ticker lists.
func (uc *ScannerUseCase) Watchlists() map[string][]string {
	return uc.watchlists
}
