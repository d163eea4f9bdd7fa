package scoring

import (
	"testing"

	"Commander/internal/domain/models"
)

func TestAnalyzeLegIdealWindow(t *testing.T) {
	got := AnalyzeLeg(LabCoveredCall, 100, 105, 2.50, 55, 35)
	// 50 +15 IV rich +10 ideal DTE = 75
	if got.Score != 75 {
		t.Fatalf("score = %d, want 75", got.Score)
	}
	if got.Signal != models.SignalStrongBuy {
		t.Errorf("signal = %s, want strong_buy (lab breakpoint 70)", got.Signal)
	}
	if got.Breakeven != 97.50 {
		t.Errorf("breakeven = %.2f, want 97.50", got.Breakeven)
	}
}

func TestAnalyzeLegShortDTE(t *testing.T) {
	got := AnalyzeLeg(LabCSP, 100, 95, 1.20, 20, 10)
	// 50 -10 thin IV -5 short DTE = 35
	if got.Score != 35 {
		t.Fatalf("score = %d, want 35", got.Score)
	}
	if got.Signal != models.SignalAvoid {
		t.Errorf("signal = %s, want avoid", got.Signal)
	}
	if len(got.Warnings) == 0 {
		t.Error("expected a gamma-risk warning for short DTE")
	}
	if got.Breakeven != 93.80 {
		t.Errorf("breakeven = %.2f, want 93.80", got.Breakeven)
	}
}

func TestAnalyzeLegLongDTEWarns(t *testing.T) {
	got := AnalyzeLeg(LabVertical, 100, 102, 1.00, 40, 90)
	// 50 +8 adequate IV +0 long DTE = 58
	if got.Score != 58 {
		t.Fatalf("score = %d, want 58", got.Score)
	}
	if got.Signal != models.SignalBuy {
		t.Errorf("signal = %s, want buy", got.Signal)
	}
	if len(got.Warnings) == 0 {
		t.Error("expected a slow-decay warning for long DTE")
	}
}

func TestAnalyzeLegPremiumYield(t *testing.T) {
	got := AnalyzeLeg(LabStrangle, 200, 190, 4.00, 60, 40)
	if got.PremiumYield != 0.02 {
		t.Errorf("yield = %.4f, want 0.02", got.PremiumYield)
	}
}
