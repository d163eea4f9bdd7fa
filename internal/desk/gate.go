package desk

import "Commander/internal/domain/models"

type FlowCheck string

const (
	FlowConfirming FlowCheck = "confirming"
	FlowDiverging  FlowCheck = "diverging"
	FlowNeutralChk FlowCheck = "neutral"
)

type Alignment string

const (
	AlignAligned Alignment = "aligned"
	AlignOpposed Alignment = "opposed"
	AlignNeutral Alignment = "neutral"
)

// GateStatus applies the trading-status precedence. The order encodes a
// default-to-caution policy that escalates to no_trade on any red flag;
// rules must stay in this exact sequence.
func GateStatus(regime models.Regime, risk models.FakeoutRisk, flow FlowCheck, inst Alignment) (models.Status, string) {
	switch {
	case regime == models.RegimeChoppyFakeout:
		return models.StatusNoTrade, "choppy regime, capital preservation"
	case risk == models.FakeoutHigh:
		return models.StatusNoTrade, "high fakeout risk"
	case flow == FlowDiverging && inst == AlignOpposed:
		return models.StatusNoTrade, "volume diverging with institutions opposed"
	case risk == models.FakeoutMedium || flow == FlowNeutralChk:
		return models.StatusCaution, "mixed flow signals, reduce size"
	case flow == FlowConfirming && inst != AlignOpposed:
		return models.StatusGreenLight, "volume confirming with institutions onside"
	default:
		return models.StatusCaution, "mixed signals"
	}
}

// CheckVolumeDelta compares order-flow direction against the working
// directional thesis. Below the conviction threshold the check is neutral.
func CheckVolumeDelta(volumeDelta float64, direction models.Direction) FlowCheck {
	if volumeDelta > -0.5 && volumeDelta < 0.5 {
		return FlowNeutralChk
	}
	switch direction {
	case models.DirectionBullish:
		if volumeDelta > 0 {
			return FlowConfirming
		}
		return FlowDiverging
	case models.DirectionBearish:
		if volumeDelta < 0 {
			return FlowConfirming
		}
		return FlowDiverging
	default:
		return FlowNeutralChk
	}
}

// CheckInstitutional maps institutional print direction onto the thesis.
func CheckInstitutional(prints models.PrintDirection, direction models.Direction) Alignment {
	switch {
	case prints == models.PrintsBuying && direction == models.DirectionBullish,
		prints == models.PrintsSelling && direction == models.DirectionBearish:
		return AlignAligned
	case prints == models.PrintsBuying && direction == models.DirectionBearish,
		prints == models.PrintsSelling && direction == models.DirectionBullish:
		return AlignOpposed
	default:
		return AlignNeutral
	}
}
