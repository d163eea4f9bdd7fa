package desk

import (
	"fmt"
	"math"

	"Commander/internal/domain/models"
)

// ApplyMacro wraps a technical desk result with the macro layer. A nil
// macro context passes the technical result through untouched. Tier 1
// (binary event) is absolute and stops all further evaluation; Tier 2
// applies additive confidence adjustments followed by a status
// re-evaluation from the adjusted confidence.
func ApplyMacro(technical models.DeskResult, macro *models.MacroContext) models.DeskResult {
	result := technical
	if macro == nil {
		result.MacroOverride = false
		return result
	}

	// Tier 1: a binary event inside its window overrides everything.
	if macro.BinaryEvent {
		if technical.Status == models.StatusGreenLight {
			result.Warnings = append(result.Warnings,
				"technical green light overridden by binary macro event")
		}
		result.Status = models.StatusNoTrade
		result.StatusReason = macro.BinaryReason
		result.Confidence = 0
		result.MacroOverride = true
		result.MacroReason = macro.BinaryReason
		return result
	}

	// Tier 2: additive adjustments.
	confidence := float64(technical.Confidence) + macro.Adjustment
	confidence = math.Max(0, math.Min(100, confidence))

	result.Warnings = append(result.Warnings, macro.Warnings...)

	// Both downgrades key off the technical status, so an earlier rule
	// firing does not mask a later one.
	if macro.SectorFlow == models.FlowOutflow && technical.Status == models.StatusGreenLight {
		result.Status = models.StatusCaution
		result.StatusReason = "sector outflow against the setup"
	}

	if macro.VIXRegime == models.VIXExtreme && technical.Status == models.StatusGreenLight {
		result.Status = models.StatusCaution
		result.StatusReason = "extreme VIX regime"
		confidence -= 10
	}

	macroTrend := trendDirection(macro.SPYTrend)
	if macroTrend != models.DirectionNeutral && macroTrend != models.DirectionNone &&
		(result.Direction == models.DirectionBullish || result.Direction == models.DirectionBearish) &&
		macroTrend != result.Direction {
		confidence -= 10
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("macro trend %s disagrees with %s setup", macro.SPYTrend, result.Direction))
	}

	for _, ev := range macro.Events {
		if ev.DaysAway >= 6 && ev.DaysAway <= 10 {
			confidence -= 5
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s in %d days", ev.Description, ev.DaysAway))
		}
	}

	confidence = math.Max(0, math.Min(100, confidence))
	result.Confidence = int(math.Round(confidence))

	// Re-evaluation from adjusted confidence.
	switch {
	case result.Confidence < 30:
		result.Status = models.StatusNoTrade
		result.StatusReason = "macro-adjusted confidence too low"
		result.MacroReason = "confidence eroded by macro backdrop"
	case result.Confidence < 50 && result.Status == models.StatusGreenLight:
		result.Status = models.StatusCaution
		result.StatusReason = "macro-adjusted confidence below conviction threshold"
		result.MacroReason = "confidence reduced by macro backdrop"
	}

	return result
}

func trendDirection(t models.Trend) models.Direction {
	switch t {
	case models.TrendBullish:
		return models.DirectionBullish
	case models.TrendBearish:
		return models.DirectionBearish
	default:
		return models.DirectionNeutral
	}
}
