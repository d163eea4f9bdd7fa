package desk

import (
	"math"

	"Commander/internal/domain/models"
)

// regimeRule is one classification predicate. Rules are checked in slice
// order and the first match wins; the order is the tie-break on inputs
// that satisfy more than one predicate and must not be rearranged.
type regimeRule struct {
	regime      models.Regime
	description string
	match       func(d models.DealerSnapshot) bool
}

var regimeRules = []regimeRule{
	{
		regime:      models.RegimeTrendDay,
		description: "dealers short gamma and chasing, moves extend",
		match: func(d models.DealerSnapshot) bool {
			return d.NetGEX < -3 && math.Abs(d.VolumeDelta) > 1.5
		},
	},
	{
		regime:      models.RegimeMeanReversion,
		description: "dealers long gamma with charm pinning, moves fade",
		match: func(d models.DealerSnapshot) bool {
			return d.NetGEX > 4 && d.CharmEffect == models.CharmPinning
		},
	},
	{
		regime:      models.RegimeVolBreakout,
		description: "vol complex repricing, expect range expansion",
		match: func(d models.DealerSnapshot) bool {
			if d.VIXChangePct > 8 {
				return true
			}
			return d.VIX1D != nil && *d.VIX1D > d.VIX*1.1
		},
	},
	{
		regime:      models.RegimeGammaSqueeze,
		description: "hostile vanna with charm unpinning, forced dealer hedging",
		match: func(d models.DealerSnapshot) bool {
			return d.VannaFlow == models.VannaHostile && d.CharmEffect == models.CharmUnpinning
		},
	},
	{
		regime:      models.RegimeChoppyFakeout,
		description: "no volume conviction and flat breadth, rotational chop",
		match: func(d models.DealerSnapshot) bool {
			if math.Abs(d.VolumeDelta) >= 0.5 {
				return false
			}
			return d.Internals != nil && d.Internals.ADDLine == models.LineFlat
		},
	},
}

// Classify maps a dealer snapshot to its regime, defaulting to
// choppy_fakeout when no predicate fires.
func Classify(d models.DealerSnapshot) (models.Regime, string) {
	for _, rule := range regimeRules {
		if rule.match(d) {
			return rule.regime, rule.description
		}
	}
	return models.RegimeChoppyFakeout, "conflicting signals, no regime consensus"
}
