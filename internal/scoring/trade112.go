package scoring

import (
	"fmt"

	"Commander/internal/domain/models"
)

// Score112 rates a ticker for the 112 put ratio spread (1 long, 1 short,
// 2 naked short puts further out). Wants moderate IV and a directional
// market; dead-neutral tape leaves the naked puts uncompensated.
func Score112(snap models.MarketSnapshot, macro models.MacroContext) models.StrategyScore {
	b := newScore(models.StrategyT112, 50)

	switch {
	case snap.IVRank == nil:
		b.add("IV rank unavailable", 0)
		b.setReason("Missing IV data")
		b.warn("iv_rank unavailable, scored without volatility input")
	case *snap.IVRank >= 35 && *snap.IVRank <= 60:
		b.add(fmt.Sprintf("IV rank %.0f in ideal 35-60 band", *snap.IVRank), 22)
		b.setReason("IV ideal for ratio spread")
	case *snap.IVRank > 60:
		b.add(fmt.Sprintf("IV rank %.0f high, naked puts carry tail risk", *snap.IVRank), 12)
		b.setReason("IV high")
	case *snap.IVRank >= 25:
		b.add(fmt.Sprintf("IV rank %.0f marginal", *snap.IVRank), 5)
		b.setReason("IV marginal")
	default:
		b.add(fmt.Sprintf("IV rank %.0f too low, spread too cheap to finance", *snap.IVRank), -18)
		b.setReason("IV too low")
	}

	if macro.SPYTrend != models.TrendNeutral {
		b.add(fmt.Sprintf("market trending %s, directional edge for the ratio", macro.SPYTrend), 18)
		b.appendReason(fmt.Sprintf("%s trend", macro.SPYTrend))
	} else {
		b.add("market neutral, no directional edge", -8)
	}

	if snap.SectorRS != nil {
		aligned := (macro.SPYTrend == models.TrendBullish && *snap.SectorRS >= 1.0) ||
			(macro.SPYTrend == models.TrendBearish && *snap.SectorRS < 1.0)
		if aligned {
			b.add(fmt.Sprintf("sector RS %.2f aligned with %s trend", *snap.SectorRS, macro.SPYTrend), 10)
		}
	} else {
		b.warn("sector_rs unavailable")
	}

	if snap.DaysToEarnings != nil {
		if d := *snap.DaysToEarnings; d <= 21 {
			b.add(fmt.Sprintf("earnings in %d days inside the spread's window", d), -28)
			b.appendReason("earnings risk")
		}
	} else {
		b.warn("days_to_earnings unavailable")
	}

	return b.build()
}
