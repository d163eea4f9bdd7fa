package scoring

import (
	"fmt"

	"Commander/internal/domain/models"
)

// ScoreIPMCC rates a ticker for the income poor-man's-covered-call setup:
// long deep-ITM LEAP plus short near-term call, scored for weekly premium.
// Base 50, IV in the 40-70 band is ideal (rich enough short premium without
// LEAP bleed).
func ScoreIPMCC(snap models.MarketSnapshot, macro models.MacroContext) models.StrategyScore {
	b := newScore(models.StrategyIPMCC, 50)

	switch {
	case snap.IVRank == nil:
		b.add("IV rank unavailable", 0)
		b.setReason("Missing IV data")
		b.warn("iv_rank unavailable, scored without volatility input")
	case *snap.IVRank >= 40 && *snap.IVRank <= 70:
		b.add(fmt.Sprintf("IV rank %.0f in optimal 40-70 band", *snap.IVRank), 25)
		b.setReason("IV optimal for diagonal income")
	case *snap.IVRank > 70:
		b.add(fmt.Sprintf("IV rank %.0f elevated, rich premium but LEAP expensive", *snap.IVRank), 15)
		b.setReason("IV elevated")
	case *snap.IVRank >= 30:
		b.add(fmt.Sprintf("IV rank %.0f marginal", *snap.IVRank), 8)
		b.setReason("IV marginal")
	default:
		b.add(fmt.Sprintf("IV rank %.0f too low for income", *snap.IVRank), -20)
		b.setReason("IV too low")
	}

	switch {
	case snap.SectorRS == nil:
		b.add("sector relative strength unavailable", 0)
		b.warn("sector_rs unavailable")
	case *snap.SectorRS >= 1.05:
		b.add(fmt.Sprintf("sector RS %.2f leading market", *snap.SectorRS), 12)
	case *snap.SectorRS >= 0.95:
		b.add(fmt.Sprintf("sector RS %.2f in line", *snap.SectorRS), 5)
	default:
		b.add(fmt.Sprintf("sector RS %.2f lagging", *snap.SectorRS), -15)
		b.appendReason("weak sector")
	}

	if snap.DaysToEarnings != nil {
		switch d := *snap.DaysToEarnings; {
		case d <= 14:
			b.add(fmt.Sprintf("earnings in %d days, assignment risk on short call", d), -35)
			b.appendReason("earnings imminent")
		case d <= 30:
			b.add(fmt.Sprintf("earnings in %d days", d), -12)
		}
	} else {
		b.warn("days_to_earnings unavailable")
	}

	switch macro.SPYTrend {
	case models.TrendBullish:
		b.add("macro trend bullish supports long delta", 8)
	case models.TrendBearish:
		b.add("macro trend bearish pressures the LEAP", -12)
	}

	switch macro.VIXRegime {
	case models.VIXExtreme:
		b.add(fmt.Sprintf("VIX regime extreme (%.1f)", macro.VIX), -20)
		b.appendReason("extreme volatility")
	case models.VIXHigh:
		b.add(fmt.Sprintf("VIX regime high (%.1f)", macro.VIX), -8)
	}

	return b.build()
}
