package scoring

import (
	"fmt"

	"Commander/internal/domain/models"
)

// ScoreStrangle rates a ticker for the short strangle. Undefined risk, so
// the base starts at 40 and the rules punish anything that can move the
// underlying: trending tape, earnings, extreme VIX.
func ScoreStrangle(snap models.MarketSnapshot, macro models.MacroContext) models.StrategyScore {
	b := newScore(models.StrategyStrangle, 40)

	switch {
	case snap.IVRank == nil:
		b.add("IV rank unavailable", 0)
		b.setReason("Missing IV data")
		b.warn("iv_rank unavailable, scored without volatility input")
	case *snap.IVRank >= 60:
		b.add(fmt.Sprintf("IV rank %.0f IDEAL for premium selling", *snap.IVRank), 38)
		b.setReason("IV IDEAL")
	case *snap.IVRank >= 50:
		b.add(fmt.Sprintf("IV rank %.0f rich", *snap.IVRank), 22)
		b.setReason("IV rich")
	case *snap.IVRank >= 40:
		b.add(fmt.Sprintf("IV rank %.0f acceptable", *snap.IVRank), 8)
		b.setReason("IV acceptable")
	default:
		b.add(fmt.Sprintf("IV rank %.0f too low to sell", *snap.IVRank), -28)
		b.setReason("IV too low")
	}

	if macro.SPYTrend == models.TrendNeutral {
		b.add("market neutral, both sides can decay", 18)
	} else {
		b.add(fmt.Sprintf("market trending %s against the short side", macro.SPYTrend), -18)
		b.appendReason("trending market")
	}

	if snap.DaysToEarnings != nil {
		if d := *snap.DaysToEarnings; d <= 30 {
			b.add(fmt.Sprintf("earnings in %d days, undefined risk through a gap", d), -45)
			b.appendReason("earnings risk")
		}
	} else {
		b.warn("days_to_earnings unavailable")
	}

	if macro.VIXRegime == models.VIXExtreme {
		b.add(fmt.Sprintf("VIX regime extreme (%.1f), margin expansion risk", macro.VIX), -30)
		b.appendReason("extreme volatility")
	}

	return b.build()
}
