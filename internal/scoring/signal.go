package scoring

import "Commander/internal/domain/models"

// MapSignal buckets a numeric score into the five-level signal. Total over
// all reals: anything below the avoid floor is strong_avoid, anything at or
// above the top breakpoint is strong_buy.
func MapSignal(score int) models.Signal {
	switch {
	case score >= 78:
		return models.SignalStrongBuy
	case score >= 62:
		return models.SignalBuy
	case score >= 42:
		return models.SignalNeutral
	case score >= 28:
		return models.SignalAvoid
	default:
		return models.SignalStrongAvoid
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
