package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Commander/internal/domain/models"
	"Commander/pkg/logger"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

type fakeMarket struct {
	snaps map[string]models.MarketSnapshot
}

func (f *fakeMarket) Snapshot(_ context.Context, ticker string) (models.MarketSnapshot, error) {
	snap, ok := f.snaps[ticker]
	if !ok {
		return models.MarketSnapshot{}, fmt.Errorf("no quote for %s", ticker)
	}
	return snap, nil
}

type fakeMacro struct {
	ctx models.MacroContext
	err error
}

func (f *fakeMacro) Context(context.Context) (models.MacroContext, error) {
	return f.ctx, f.err
}

type nopMetrics struct{}

func (nopMetrics) RecordScan(string, string)   {}
func (nopMetrics) RecordRegime(string)         {}
func (nopMetrics) RecordMacroOverride()        {}
func (nopMetrics) RecordHistoryWrite(string)   {}
func (nopMetrics) RecordError(string)          {}
func (nopMetrics) RecordLatency(string, float64) {}

type capturingStorage struct {
	records []*models.ScanRecord
}

func (s *capturingStorage) Init(context.Context) error { return nil }
func (s *capturingStorage) Store(_ context.Context, r *models.ScanRecord) error {
	s.records = append(s.records, r)
	return nil
}
func (s *capturingStorage) StoreBatch(_ context.Context, records []*models.ScanRecord) error {
	s.records = append(s.records, records...)
	return nil
}
func (s *capturingStorage) Query(context.Context, string, time.Time, time.Time, int) ([]*models.ScanRecord, error) {
	return nil, nil
}
func (s *capturingStorage) Health(context.Context) error { return nil }
func (s *capturingStorage) Close() error                 { return nil }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func goodSnapshot(ticker string) models.MarketSnapshot {
	return models.MarketSnapshot{
		Ticker:         ticker,
		Price:          150,
		ChangePct:      0.8,
		IVRank:         fp(55),
		SectorRS:       fp(1.10),
		DaysToEarnings: ip(45),
		AsOf:           time.Now(),
	}
}

func calmMacro() models.MacroContext {
	return models.MacroContext{
		VIX:             16,
		VIXRegime:       models.VIXElevated,
		SPYTrend:        models.TrendBullish,
		SPYChangePct:    0.6,
		DaysToNextEvent: 20,
	}
}

func newTestScanner(t *testing.T, market *fakeMarket, watchlists map[string][]string) (*ScannerUseCase, *capturingStorage) {
	t.Helper()
	store := &capturingStorage{}
	log := testLogger(t)
	proc := NewResultProcessor(nil, store, nopMetrics{}, log, "clickhouse")
	uc := NewScannerUseCase(market, &fakeMacro{ctx: calmMacro()}, proc, nopMetrics{}, log, watchlists, 2)
	return uc, store
}

func TestScanOneScoresAllStrategies(t *testing.T) {
	market := &fakeMarket{snaps: map[string]models.MarketSnapshot{"AAPL": goodSnapshot("AAPL")}}
	uc, _ := newTestScanner(t, market, nil)

	result, err := uc.ScanOne(context.Background(), "AAPL", "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(result.Scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(result.Scores))
	}
	if result.Selected.Score == 0 {
		t.Errorf("expected a selected strategy with non-zero score")
	}
	if len(result.MissingData) != 0 {
		t.Errorf("unexpected missing data: %v", result.MissingData)
	}
}

func TestScanOneForcedStrategy(t *testing.T) {
	market := &fakeMarket{snaps: map[string]models.MarketSnapshot{"AAPL": goodSnapshot("AAPL")}}
	uc, _ := newTestScanner(t, market, nil)

	result, err := uc.ScanOne(context.Background(), "AAPL", models.StrategyStrangle)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(result.Scores) != 1 {
		t.Fatalf("forced scan should score one strategy, got %d", len(result.Scores))
	}
	if result.Selected.Strategy != models.StrategyStrangle {
		t.Errorf("selected = %s, want strangle", result.Selected.Strategy)
	}
}

func TestScanOneUnknownForcedStrategy(t *testing.T) {
	market := &fakeMarket{snaps: map[string]models.MarketSnapshot{"AAPL": goodSnapshot("AAPL")}}
	uc, _ := newTestScanner(t, market, nil)

	if _, err := uc.ScanOne(context.Background(), "AAPL", "condor"); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestScanSkipsFailedTickers(t *testing.T) {
	market := &fakeMarket{snaps: map[string]models.MarketSnapshot{
		"AAPL": goodSnapshot("AAPL"),
		"MSFT": goodSnapshot("MSFT"),
	}}
	uc, store := newTestScanner(t, market, nil)

	results, err := uc.Scan(context.Background(), []string{"AAPL", "GONE", "MSFT"}, "", "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if len(store.records) != 2 {
		t.Errorf("expected 2 history records, got %d", len(store.records))
	}
}

func TestScanSortsByScoreDescending(t *testing.T) {
	weak := goodSnapshot("WEAK")
	weak.IVRank = fp(20)
	weak.DaysToEarnings = ip(5)
	market := &fakeMarket{snaps: map[string]models.MarketSnapshot{
		"AAPL": goodSnapshot("AAPL"),
		"WEAK": weak,
	}}
	uc, _ := newTestScanner(t, market, nil)

	results, err := uc.Scan(context.Background(), []string{"WEAK", "AAPL"}, "", "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Selected.Score < results[1].Selected.Score {
		t.Errorf("results not sorted: %d then %d",
			results[0].Selected.Score, results[1].Selected.Score)
	}
	if results[0].Snapshot.Ticker != "AAPL" {
		t.Errorf("expected AAPL first, got %s", results[0].Snapshot.Ticker)
	}
}

func TestScanWatchlistFallback(t *testing.T) {
	market := &fakeMarket{snaps: map[string]models.MarketSnapshot{
		"SPY": goodSnapshot("SPY"),
		"QQQ": goodSnapshot("QQQ"),
	}}
	uc, _ := newTestScanner(t, market, map[string][]string{"etfs": {"SPY", "QQQ"}})

	results, err := uc.Scan(context.Background(), nil, "etfs", "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestScanNoTickers(t *testing.T) {
	uc, _ := newTestScanner(t, &fakeMarket{}, nil)
	if _, err := uc.Scan(context.Background(), nil, "missing", ""); err == nil {
		t.Fatal("expected error when no tickers resolve")
	}
}

func TestScanTagsMissingData(t *testing.T) {
	snap := goodSnapshot("AAPL")
	snap.IVRank = nil
	snap.SectorRS = nil
	market := &fakeMarket{snaps: map[string]models.MarketSnapshot{"AAPL": snap}}
	uc, _ := newTestScanner(t, market, nil)

	result, err := uc.ScanOne(context.Background(), "AAPL", "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(result.MissingData) != 2 {
		t.Errorf("missing = %v, want iv_rank and sector_rs", result.MissingData)
	}
}
