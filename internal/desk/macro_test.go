package desk

import (
	"strings"
	"testing"

	"Commander/internal/domain/models"
)

func greenTechnical() models.DeskResult {
	return models.DeskResult{
		Status:     models.StatusGreenLight,
		Regime:     models.RegimeTrendDay,
		Direction:  models.DirectionBullish,
		Confidence: 100,
	}
}

func TestApplyMacroNilPassthrough(t *testing.T) {
	technical := greenTechnical()
	got := ApplyMacro(technical, nil)
	if got.Status != models.StatusGreenLight || got.Confidence != 100 {
		t.Fatalf("passthrough changed result: %+v", got)
	}
	if got.MacroOverride {
		t.Error("macroOverride should be false without macro context")
	}
}

func TestApplyMacroBinaryEventOverridesGreenLight(t *testing.T) {
	macro := &models.MacroContext{
		BinaryEvent:  true,
		BinaryReason: "FOMC decision in 1 day",
	}

	got := ApplyMacro(greenTechnical(), macro)
	if got.Status != models.StatusNoTrade {
		t.Fatalf("status = %s, want no_trade", got.Status)
	}
	if got.Confidence != 0 {
		t.Errorf("confidence = %d, want 0", got.Confidence)
	}
	if !got.MacroOverride {
		t.Error("macroOverride should be true")
	}
	overrideWarned := false
	for _, w := range got.Warnings {
		if strings.Contains(w, "overridden") {
			overrideWarned = true
		}
	}
	if !overrideWarned {
		t.Error("expected a warning that the green light was overridden")
	}
}

func TestApplyMacroAdjustmentDowngrades(t *testing.T) {
	technical := greenTechnical()
	technical.Confidence = 70
	macro := &models.MacroContext{Adjustment: -25}

	got := ApplyMacro(technical, macro)
	if got.Confidence != 45 {
		t.Fatalf("confidence = %d, want 45", got.Confidence)
	}
	if got.Status != models.StatusCaution {
		t.Errorf("status = %s, want caution below the conviction threshold", got.Status)
	}
}

func TestApplyMacroLowConfidenceForcesNoTrade(t *testing.T) {
	technical := greenTechnical()
	technical.Confidence = 50
	macro := &models.MacroContext{Adjustment: -25}

	got := ApplyMacro(technical, macro)
	if got.Confidence != 25 {
		t.Fatalf("confidence = %d, want 25", got.Confidence)
	}
	if got.Status != models.StatusNoTrade {
		t.Errorf("status = %s, want no_trade under 30", got.Status)
	}
}

func TestApplyMacroSectorOutflow(t *testing.T) {
	macro := &models.MacroContext{SectorFlow: models.FlowOutflow}
	got := ApplyMacro(greenTechnical(), macro)
	if got.Status != models.StatusCaution {
		t.Fatalf("status = %s, want caution on sector outflow", got.Status)
	}
}

func TestApplyMacroExtremeVIX(t *testing.T) {
	macro := &models.MacroContext{VIXRegime: models.VIXExtreme}
	got := ApplyMacro(greenTechnical(), macro)
	if got.Status != models.StatusCaution {
		t.Fatalf("status = %s, want caution", got.Status)
	}
	if got.Confidence != 90 {
		t.Errorf("confidence = %d, want 90 after the extreme-VIX deduction", got.Confidence)
	}
}

func TestApplyMacroOutflowAndExtremeVIXBothApply(t *testing.T) {
	macro := &models.MacroContext{
		SectorFlow: models.FlowOutflow,
		VIXRegime:  models.VIXExtreme,
	}

	got := ApplyMacro(greenTechnical(), macro)
	if got.Status != models.StatusCaution {
		t.Fatalf("status = %s, want caution", got.Status)
	}
	if got.Confidence != 90 {
		t.Errorf("confidence = %d, want 90: the VIX deduction must fire even after the outflow downgrade", got.Confidence)
	}
}

func TestApplyMacroTrendDisagreement(t *testing.T) {
	technical := greenTechnical()
	technical.Confidence = 80
	macro := &models.MacroContext{SPYTrend: models.TrendBearish}

	got := ApplyMacro(technical, macro)
	if got.Confidence != 70 {
		t.Fatalf("confidence = %d, want 70", got.Confidence)
	}
	if len(got.Warnings) == 0 {
		t.Error("expected a disagreement warning")
	}
}

func TestApplyMacroApproachingEvents(t *testing.T) {
	technical := greenTechnical()
	technical.Confidence = 80
	macro := &models.MacroContext{
		SPYTrend: models.TrendBullish,
		Events: []models.MacroEvent{
			{Description: "CPI print", DaysAway: 7},
			{Description: "FOMC meeting", DaysAway: 9},
			{Description: "earnings", DaysAway: 20}, // outside the 6-10 window
		},
	}

	got := ApplyMacro(technical, macro)
	if got.Confidence != 70 {
		t.Fatalf("confidence = %d, want 70 (two -5 deductions)", got.Confidence)
	}
	if len(got.Warnings) != 2 {
		t.Errorf("warnings = %v, want exactly two event warnings", got.Warnings)
	}
}

func TestApplyMacroConfidenceRoundTrips(t *testing.T) {
	technical := greenTechnical()
	technical.Confidence = 60
	macro := &models.MacroContext{Adjustment: 12.4}

	got := ApplyMacro(technical, macro)
	if got.Confidence != 72 {
		t.Fatalf("confidence = %d, want 72 (rounded)", got.Confidence)
	}
}
