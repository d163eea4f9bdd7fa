package middleware

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Commander/internal/domain/models"
)

type captureSink struct {
	quotes []*models.Quote
	fail   bool
}

func (s *captureSink) Process(_ context.Context, q *models.Quote) error {
	if s.fail {
		return fmt.Errorf("sink down")
	}
	s.quotes = append(s.quotes, q)
	return nil
}

type testMetrics struct {
	errors map[string]int
}

func newTestMetrics() *testMetrics               { return &testMetrics{errors: make(map[string]int)} }
func (m *testMetrics) RecordScan(string, string) {}
func (m *testMetrics) RecordRegime(string)       {}
func (m *testMetrics) RecordMacroOverride()      {}
func (m *testMetrics) RecordHistoryWrite(string) {}
func (m *testMetrics) RecordError(kind string)   { m.errors[kind]++ }
func (m *testMetrics) RecordLatency(string, float64) {}

func quote(ticker string, price float64) *models.Quote {
	return &models.Quote{Ticker: ticker, Price: price, Volume: 100, Timestamp: time.Now()}
}

func TestPipelineForwardsValidQuote(t *testing.T) {
	sink := &captureSink{}
	p := NewQuotePipeline(sink, newTestMetrics())

	if err := p.Process(context.Background(), quote("SPY", 560)); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(sink.quotes) != 1 || sink.quotes[0].Ticker != "SPY" {
		t.Fatalf("quote not forwarded: %+v", sink.quotes)
	}
}

func TestPipelineRejectsInvalidQuotes(t *testing.T) {
	sink := &captureSink{}
	m := newTestMetrics()
	p := NewQuotePipeline(sink, m)
	ctx := context.Background()

	bad := []*models.Quote{
		nil,
		{Ticker: "", Price: 10, Volume: 1, Timestamp: time.Now()},
		{Ticker: "SPY", Price: 0, Volume: 1, Timestamp: time.Now()},
		{Ticker: "SPY", Price: 10, Volume: 1},
	}
	for i, q := range bad {
		if err := p.Process(ctx, q); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
	if len(sink.quotes) != 0 {
		t.Errorf("invalid quotes reached the sink: %+v", sink.quotes)
	}
	if m.errors["pipeline_validate"] != len(bad) {
		t.Errorf("validate errors = %d, want %d", m.errors["pipeline_validate"], len(bad))
	}
}

func TestPipelineThrottlesPerTicker(t *testing.T) {
	sink := &captureSink{}
	m := newTestMetrics()
	p := NewQuotePipeline(sink, m, WithMaxRPS(1))
	ctx := context.Background()

	if err := p.Process(ctx, quote("SPY", 560)); err != nil {
		t.Fatalf("process: %v", err)
	}
	// Immediate second quote for the same ticker is over the 1/s budget.
	if err := p.Process(ctx, quote("SPY", 560.1)); err != nil {
		t.Fatalf("throttled quote should not error: %v", err)
	}
	// A different ticker has its own budget.
	if err := p.Process(ctx, quote("QQQ", 480)); err != nil {
		t.Fatalf("process: %v", err)
	}

	if len(sink.quotes) != 2 {
		t.Fatalf("expected 2 forwarded quotes, got %d", len(sink.quotes))
	}
	if m.errors["pipeline_throttle"] != 1 {
		t.Errorf("throttle count = %d, want 1", m.errors["pipeline_throttle"])
	}
}

func TestPipelineBuffersOnSinkFailure(t *testing.T) {
	sink := &captureSink{fail: true}
	m := newTestMetrics()
	p := NewQuotePipeline(sink, m, WithBufferSize(4))

	if err := p.Process(context.Background(), quote("SPY", 560)); err == nil {
		t.Fatal("expected downstream error")
	}
	if m.errors["pipeline_sink"] != 1 {
		t.Errorf("sink errors = %d, want 1", m.errors["pipeline_sink"])
	}
	if len(p.bufCh) != 1 {
		t.Errorf("buffered = %d, want 1", len(p.bufCh))
	}
}
