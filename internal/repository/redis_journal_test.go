package repository

import (
	"context"
	"testing"
	"time"

	"Commander/internal/domain/models"
	"Commander/pkg/cache"
)

func newTestJournal() *RedisJournal {
	return NewRedisJournal(cache.NewMemoryCache()).(*RedisJournal)
}

func entry(date string, ticker string, strategy models.Strategy, outcome models.Outcome, pnl float64) *models.JournalEntry {
	d, _ := time.Parse("2006-01-02", date)
	return &models.JournalEntry{
		Date:     d,
		Ticker:   ticker,
		Strategy: strategy,
		Entry:    100,
		Exit:     101,
		PnL:      pnl,
		Outcome:  outcome,
	}
}

func TestJournalSaveAssignsID(t *testing.T) {
	j := newTestJournal()
	ctx := context.Background()

	e := entry("2025-03-10", "AAPL", models.StrategyIPMCC, models.OutcomeWin, 120)
	if err := j.Save(ctx, e); err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.ID != "2025-03-10-AAPL-1" {
		t.Errorf("unexpected id %q", e.ID)
	}

	e2 := entry("2025-03-11", "AAPL", models.StrategyIPMCC, models.OutcomeLoss, -60)
	if err := j.Save(ctx, e2); err != nil {
		t.Fatalf("save: %v", err)
	}
	if e2.ID != "2025-03-11-AAPL-2" {
		t.Errorf("unexpected id %q", e2.ID)
	}
}

func TestJournalListFilters(t *testing.T) {
	j := newTestJournal()
	ctx := context.Background()

	seed := []*models.JournalEntry{
		entry("2025-03-10", "AAPL", models.StrategyIPMCC, models.OutcomeWin, 120),
		entry("2025-03-11", "TSLA", models.StrategyStrangle, models.OutcomeLoss, -80),
		entry("2025-03-20", "AAPL", models.StrategyT112, models.OutcomeWin, 45),
	}
	for _, e := range seed {
		if err := j.Save(ctx, e); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	all, err := j.List(ctx, models.JournalFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].Ticker != "AAPL" || all[1].Ticker != "TSLA" {
		t.Errorf("expected insertion order, got %s %s", all[0].Ticker, all[1].Ticker)
	}

	aapl, err := j.List(ctx, models.JournalFilter{Ticker: "AAPL"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(aapl) != 2 {
		t.Errorf("expected 2 AAPL entries, got %d", len(aapl))
	}

	from, _ := time.Parse("2006-01-02", "2025-03-15")
	recent, err := j.List(ctx, models.JournalFilter{From: from})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recent) != 1 || recent[0].Strategy != models.StrategyT112 {
		t.Errorf("expected only the late 112 trade, got %+v", recent)
	}
}

func TestJournalListEmpty(t *testing.T) {
	j := newTestJournal()
	entries, err := j.List(context.Background(), models.JournalFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestJournalStats(t *testing.T) {
	j := newTestJournal()
	ctx := context.Background()

	seed := []*models.JournalEntry{
		entry("2025-03-10", "AAPL", models.StrategyIPMCC, models.OutcomeWin, 100),
		entry("2025-03-11", "MSFT", models.StrategyIPMCC, models.OutcomeWin, 50),
		entry("2025-03-12", "NVDA", models.StrategyIPMCC, models.OutcomeLoss, -50),
		entry("2025-03-13", "AMD", models.StrategyIPMCC, models.OutcomeScratch, 5),
		entry("2025-03-14", "TSLA", models.StrategyStrangle, models.OutcomeLoss, -200),
	}
	for _, e := range seed {
		if err := j.Save(ctx, e); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	stats, err := j.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	var ipmcc, strangle *models.StrategyStats
	for i := range stats {
		switch stats[i].Strategy {
		case models.StrategyIPMCC:
			ipmcc = &stats[i]
		case models.StrategyStrangle:
			strangle = &stats[i]
		}
	}
	if ipmcc == nil || strangle == nil {
		t.Fatalf("missing strategies in stats: %+v", stats)
	}

	if ipmcc.Trades != 4 || ipmcc.Wins != 2 || ipmcc.Losses != 1 || ipmcc.Scratch != 1 {
		t.Errorf("ipmcc counts wrong: %+v", ipmcc)
	}
	// Scratches stay out of the denominator: 2/(2+1).
	if got := ipmcc.WinRate; got < 0.666 || got > 0.667 {
		t.Errorf("ipmcc win rate = %v", got)
	}
	if ipmcc.TotalPnL != 105 {
		t.Errorf("ipmcc pnl = %v", ipmcc.TotalPnL)
	}

	if strangle.Trades != 1 || strangle.WinRate != 0 {
		t.Errorf("strangle stats wrong: %+v", strangle)
	}
}
