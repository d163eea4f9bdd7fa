package events

import (
	"testing"
	"time"

	"Commander/internal/domain/models"
)

func mustHorizon(t *testing.T, dates []string, blackout bool) *Horizon {
	t.Helper()
	h, err := NewHorizon(dates, blackout)
	if err != nil {
		t.Fatalf("NewHorizon: %v", err)
	}
	return h
}

func TestNewHorizonRejectsBadDate(t *testing.T) {
	if _, err := NewHorizon([]string{"03/18/2026"}, false); err == nil {
		t.Fatal("expected error for non ISO date")
	}
}

func TestAssessEmptyHorizon(t *testing.T) {
	h := mustHorizon(t, []string{"2026-06-17"}, false)
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	got := h.Assess(now, nil)
	if got.DaysToNearest != -1 {
		t.Errorf("days to nearest = %d, want -1", got.DaysToNearest)
	}
	if got.Adjustment != 0 || got.BinaryEvent {
		t.Errorf("quiet horizon should be neutral, got %+v", got)
	}
}

func TestAssessBlockTier(t *testing.T) {
	h := mustHorizon(t, []string{"2026-03-18"}, false)
	now := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)

	got := h.Assess(now, nil)
	if got.Adjustment != -50 {
		t.Errorf("adjustment = %.0f, want -50 inside the block window", got.Adjustment)
	}
	if !got.BinaryEvent {
		t.Error("FOMC in 1 day must be a binary event")
	}
	if got.DaysToNearest != 1 {
		t.Errorf("days to nearest = %d, want 1", got.DaysToNearest)
	}
}

func TestAssessHighRiskTier(t *testing.T) {
	h := mustHorizon(t, []string{"2026-03-18"}, false)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	got := h.Assess(now, nil)
	if got.Adjustment != -25 {
		t.Errorf("adjustment = %.0f, want -25", got.Adjustment)
	}
	if !got.BinaryEvent {
		t.Error("high-impact event inside 5 days is binary")
	}
}

func TestAssessCautionTier(t *testing.T) {
	h := mustHorizon(t, []string{"2026-03-18"}, false)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	got := h.Assess(now, nil)
	if got.Adjustment != -10 {
		t.Errorf("adjustment = %.0f, want -10", got.Adjustment)
	}
	if got.BinaryEvent {
		t.Error("8 days out should not be binary")
	}
}

func TestAssessBlackoutLadder(t *testing.T) {
	h := mustHorizon(t, []string{"2026-03-18"}, true)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	got := h.Assess(now, nil)
	if got.Adjustment != -20 {
		t.Errorf("adjustment = %.0f, want -20 on the blackout ladder", got.Adjustment)
	}
}

func TestAssessMergesProviderEvents(t *testing.T) {
	h := mustHorizon(t, []string{"2026-06-17"}, false)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	extra := []models.MacroEvent{
		{Type: "earnings", Ticker: "NVDA", DaysAway: 3, Impact: "high", Description: "NVDA earnings"},
		{Type: "cpi", DaysAway: 8, Impact: "medium", Description: "CPI print"},
		{Type: "opex", DaysAway: 40, Impact: "low", Description: "quarterly opex"}, // beyond horizon
	}

	got := h.Assess(now, extra)
	if len(got.Events) != 2 {
		t.Fatalf("events = %d, want 2 inside the horizon", len(got.Events))
	}
	if got.Events[0].Ticker != "NVDA" {
		t.Errorf("nearest event = %+v, want NVDA earnings first", got.Events[0])
	}
	if !got.BinaryEvent {
		t.Error("high-impact earnings in 3 days is binary")
	}
	if got.Adjustment != -25 {
		t.Errorf("adjustment = %.0f, want -25 from the nearest event", got.Adjustment)
	}
}

func TestDefaultCalendarLoads(t *testing.T) {
	h := mustHorizon(t, nil, false)
	if len(h.fomc) != 24 {
		t.Fatalf("default calendar has %d dates, want 24", len(h.fomc))
	}
}
