package scoring

import (
	"fmt"

	"Commander/internal/domain/models"
)

// Trade-lab strategies for one-off single-leg checks, independent of the
// scan pipeline.
const (
	LabCoveredCall = "covered_call"
	LabCSP         = "csp"
	LabStrangle    = "strangle"
	LabVertical    = "vertical"
)

// mapLabSignal uses the analyzer's own breakpoints, coarser than the scan
// mapper because the input set is smaller.
func mapLabSignal(score int) models.Signal {
	switch {
	case score >= 70:
		return models.SignalStrongBuy
	case score >= 55:
		return models.SignalBuy
	case score >= 40:
		return models.SignalNeutral
	case score >= 25:
		return models.SignalAvoid
	default:
		return models.SignalStrongAvoid
	}
}

// AnalyzeLeg scores a single manually entered position from IV and DTE
// alone. Base 50, clamped to [0,100].
func AnalyzeLeg(strategy string, price, strike, premium, ivRank float64, dte int) models.LabAnalysis {
	score := 50
	var details []models.ScoreDetail
	var warnings []string

	addRule := func(label string, delta int) {
		score += delta
		details = append(details, models.ScoreDetail{Label: label, Delta: delta})
	}

	switch {
	case ivRank >= 50:
		addRule(fmt.Sprintf("IV rank %.0f rich premium", ivRank), 15)
	case ivRank >= 30:
		addRule(fmt.Sprintf("IV rank %.0f adequate", ivRank), 8)
	default:
		addRule(fmt.Sprintf("IV rank %.0f thin premium", ivRank), -10)
	}

	switch {
	case dte >= 30 && dte <= 45:
		addRule(fmt.Sprintf("%d DTE in the ideal theta window", dte), 10)
	case dte < 21:
		addRule(fmt.Sprintf("%d DTE, gamma risk rising", dte), -5)
		warnings = append(warnings, "short DTE accelerates gamma risk")
	case dte > 60:
		addRule(fmt.Sprintf("%d DTE, slow decay", dte), 0)
		warnings = append(warnings, "long DTE ties up capital with slow decay")
	}

	score = clampScore(score)

	yield := 0.0
	if price > 0 {
		yield = premium / price
	}

	var breakeven float64
	switch strategy {
	case LabCoveredCall:
		breakeven = price - premium
	case LabVertical:
		breakeven = strike + premium
	default: // csp, strangle: put side
		breakeven = strike - premium
	}

	return models.LabAnalysis{
		Strategy:     strategy,
		Score:        score,
		Signal:       mapLabSignal(score),
		Details:      details,
		Warnings:     warnings,
		PremiumYield: yield,
		Breakeven:    breakeven,
	}
}
