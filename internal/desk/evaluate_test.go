package desk

import (
	"reflect"
	"testing"

	"Commander/internal/domain/models"
)

func trendDaySnapshot() models.DealerSnapshot {
	d := neutralSnapshot()
	d.Price = 5605
	d.ZeroGamma = 5580
	d.NetGEX = -4
	d.VolumeDelta = 2.0
	d.Institutional = models.PrintsBuying
	d.DarkPool = models.PrintsBuying
	d.Internals = &models.Internals{VOLD: 1.2, TICK: 300, ADDLine: models.LineRising}
	return d
}

func TestEvaluateTrendDayGreenLight(t *testing.T) {
	got := Evaluate(trendDaySnapshot(), nil)

	if got.Regime != models.RegimeTrendDay {
		t.Fatalf("regime = %s, want trend_day", got.Regime)
	}
	if got.Direction != models.DirectionBullish {
		t.Errorf("direction = %s, want bullish", got.Direction)
	}
	if got.Status != models.StatusGreenLight {
		t.Errorf("status = %s, want green_light", got.Status)
	}
	// 70 base +10 aligned +5 confirming
	if got.Confidence != 85 {
		t.Errorf("confidence = %d, want 85", got.Confidence)
	}
	if got.Structure == nil || got.Structure.Name != "call debit spread" {
		t.Fatalf("structure = %+v, want call debit spread", got.Structure)
	}
	// ATM 5605: legs at 5610/5615, target the nearer of wall vs ATM+15
	if got.Structure.Legs[0].Strike != 5610 || got.Structure.Legs[1].Strike != 5615 {
		t.Errorf("legs = %+v, want 5610/5615", got.Structure.Legs)
	}
	if got.ProfitTarget != 5620 {
		t.Errorf("target = %.0f, want 5620", got.ProfitTarget)
	}
	if got.Invalidation != 5570 {
		t.Errorf("invalidation = %.0f, want 5570", got.Invalidation)
	}
}

func TestEvaluateChoppyNoTradeNoStructure(t *testing.T) {
	d := neutralSnapshot()
	d.NetGEX = 0.5
	d.VolumeDelta = 0.2
	d.Internals = &models.Internals{ADDLine: models.LineFlat, VOLD: 0.1, TICK: 20}

	got := Evaluate(d, nil)
	if got.Status != models.StatusNoTrade {
		t.Fatalf("status = %s, want no_trade", got.Status)
	}
	if got.Structure != nil {
		t.Errorf("structure = %+v, want none in chop", got.Structure)
	}
	if got.Direction != models.DirectionNone {
		t.Errorf("direction = %s, want none", got.Direction)
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	d := trendDaySnapshot()
	macro := &models.MacroContext{SPYTrend: models.TrendBullish, Adjustment: 5}

	first := Evaluate(d, macro)
	second := Evaluate(d, macro)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different desk results")
	}
}

func TestEvaluateMacroBinaryEventWins(t *testing.T) {
	macro := &models.MacroContext{BinaryEvent: true, BinaryReason: "FOMC tomorrow"}
	got := Evaluate(trendDaySnapshot(), macro)
	if got.Status != models.StatusNoTrade || got.Confidence != 0 {
		t.Fatalf("status=%s confidence=%d, want no_trade/0", got.Status, got.Confidence)
	}
	if !got.MacroOverride {
		t.Error("macroOverride should be set")
	}
}

func TestEvaluateMeanReversionCondor(t *testing.T) {
	d := neutralSnapshot()
	d.Price = 5585
	d.ZeroGamma = 5580
	d.NetGEX = 5
	d.CharmEffect = models.CharmPinning
	d.VolumeDelta = 0.8
	d.Institutional = models.PrintsNeutral

	got := Evaluate(d, nil)
	if got.Regime != models.RegimeMeanReversion {
		t.Fatalf("regime = %s, want mean_reversion", got.Regime)
	}
	if got.Direction != models.DirectionNeutral {
		t.Errorf("direction = %s, want neutral inside the deadband", got.Direction)
	}
	if got.Structure == nil || got.Structure.Name != "iron condor" {
		t.Fatalf("structure = %+v, want iron condor", got.Structure)
	}
	if len(got.Structure.Legs) != 4 {
		t.Errorf("condor legs = %d, want 4", len(got.Structure.Legs))
	}
}
