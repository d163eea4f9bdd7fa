package desk

import (
	"testing"

	"Commander/internal/domain/models"
)

func neutralSnapshot() models.DealerSnapshot {
	return models.DealerSnapshot{
		Ticker:        "SPX",
		Price:         5600,
		PrevClose:     5590,
		ZeroGamma:     5580,
		CallWall:      5650,
		PutWall:       5500,
		VannaFlow:     models.VannaNeutral,
		CharmEffect:   models.CharmNeutral,
		DarkPool:      models.PrintsNeutral,
		Institutional: models.PrintsNeutral,
		VIX:           16,
	}
}

func TestClassifyTrendDay(t *testing.T) {
	d := neutralSnapshot()
	d.NetGEX = -4
	d.VolumeDelta = 2.0

	regime, _ := Classify(d)
	if regime != models.RegimeTrendDay {
		t.Fatalf("regime = %s, want trend_day", regime)
	}
}

func TestClassifyMeanReversion(t *testing.T) {
	d := neutralSnapshot()
	d.NetGEX = 5
	d.CharmEffect = models.CharmPinning
	d.VolumeDelta = 1.0

	regime, _ := Classify(d)
	if regime != models.RegimeMeanReversion {
		t.Fatalf("regime = %s, want mean_reversion", regime)
	}
}

func TestClassifyVolBreakout(t *testing.T) {
	d := neutralSnapshot()
	d.NetGEX = 1
	d.VolumeDelta = 1.0
	d.VIXChangePct = 9

	regime, _ := Classify(d)
	if regime != models.RegimeVolBreakout {
		t.Fatalf("regime = %s, want volatility_breakout", regime)
	}
}

func TestClassifyVolBreakoutFromTermStructure(t *testing.T) {
	d := neutralSnapshot()
	d.NetGEX = 1
	d.VolumeDelta = 1.0
	d.VIX = 20
	vix1d := 23.0
	d.VIX1D = &vix1d

	regime, _ := Classify(d)
	if regime != models.RegimeVolBreakout {
		t.Fatalf("regime = %s, want volatility_breakout", regime)
	}
}

func TestClassifyGammaSqueeze(t *testing.T) {
	d := neutralSnapshot()
	d.NetGEX = 1
	d.VolumeDelta = 1.0
	d.VannaFlow = models.VannaHostile
	d.CharmEffect = models.CharmUnpinning

	regime, _ := Classify(d)
	if regime != models.RegimeGammaSqueeze {
		t.Fatalf("regime = %s, want gamma_squeeze", regime)
	}
}

func TestClassifyChoppyFakeout(t *testing.T) {
	d := neutralSnapshot()
	d.NetGEX = 0.5
	d.VolumeDelta = 0.2
	d.Internals = &models.Internals{ADDLine: models.LineFlat}

	regime, desc := Classify(d)
	if regime != models.RegimeChoppyFakeout {
		t.Fatalf("regime = %s, want choppy_fakeout", regime)
	}
	if desc == "" {
		t.Error("expected a regime description")
	}
}

func TestClassifyDefaultsToChoppy(t *testing.T) {
	d := neutralSnapshot()
	d.NetGEX = 1
	d.VolumeDelta = 1.0

	regime, _ := Classify(d)
	if regime != models.RegimeChoppyFakeout {
		t.Fatalf("regime = %s, want choppy_fakeout default", regime)
	}
}

func TestClassifyOrderPrecedence(t *testing.T) {
	// Satisfies both trend_day and volatility_breakout; the first rule wins.
	d := neutralSnapshot()
	d.NetGEX = -4
	d.VolumeDelta = 2.0
	d.VIXChangePct = 12

	regime, _ := Classify(d)
	if regime != models.RegimeTrendDay {
		t.Fatalf("regime = %s, want trend_day by rule order", regime)
	}
}
