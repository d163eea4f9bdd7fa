package desk

import "Commander/internal/domain/models"

// regime base confidence before flow and risk adjustments
var regimeConfidence = map[models.Regime]int{
	models.RegimeTrendDay:      70,
	models.RegimeMeanReversion: 65,
	models.RegimeVolBreakout:   55,
	models.RegimeGammaSqueeze:  50,
	models.RegimeChoppyFakeout: 20,
}

// Evaluate runs the full desk pipeline on one dealer snapshot: regime
// classification, fakeout detection, status gate, structure selection and
// the macro-override layer. Pure over its inputs; the same snapshot and
// macro always produce the same result. All three surfaces call this one
// function.
func Evaluate(d models.DealerSnapshot, macro *models.MacroContext) models.DeskResult {
	regime, regimeDesc := Classify(d)
	plan := BuildPlan(regime, d)

	risk, warnings := DetectFakeout(d)
	flow := CheckVolumeDelta(d.VolumeDelta, plan.Direction)
	inst := CheckInstitutional(d.Institutional, plan.Direction)
	status, statusReason := GateStatus(regime, risk, flow, inst)

	confidence := regimeConfidence[regime]
	switch inst {
	case AlignAligned:
		confidence += 10
	case AlignOpposed:
		confidence -= 10
	}
	if flow == FlowConfirming {
		confidence += 5
	}
	switch risk {
	case models.FakeoutMedium:
		confidence -= 10
	case models.FakeoutHigh:
		confidence -= 25
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	technical := models.DeskResult{
		Status:            status,
		StatusReason:      statusReason,
		Regime:            regime,
		RegimeDescription: regimeDesc,
		Direction:         plan.Direction,
		Thesis:            plan.Thesis,
		Structure:         plan.Structure,
		EntryZone:         plan.EntryZone,
		ProfitTarget:      plan.ProfitTarget,
		Invalidation:      plan.Invalidation,
		InvalidationWhy:   plan.InvalidationWhy,
		HoldTime:          plan.HoldTime,
		Confidence:        confidence,
		Warnings:          warnings,
		FakeoutRisk:       risk,
	}

	return ApplyMacro(technical, macro)
}
