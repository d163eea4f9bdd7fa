package desk

import (
	"fmt"
	"math"

	"Commander/internal/domain/models"
)

// Plan is the tradeable expression of a regime plus direction: structure,
// levels and expected hold.
type Plan struct {
	Direction       models.Direction
	Thesis          string
	Structure       *models.Structure
	EntryZone       string
	ProfitTarget    float64
	Invalidation    float64
	InvalidationWhy string
	HoldTime        string
}

// meanReversionBand is the deadband around zero gamma inside which a
// mean-reversion day is traded delta-neutral.
const meanReversionBand = 15.0

func roundStrike(price float64) float64 {
	return math.Round(price/5) * 5
}

func buy(optType string, strike float64, qty int) models.Leg {
	return models.Leg{Action: "buy", Type: optType, Strike: strike, Qty: qty}
}

func sell(optType string, strike float64, qty int) models.Leg {
	return models.Leg{Action: "sell", Type: optType, Strike: strike, Qty: qty}
}

// BuildPlan derives direction and structure for a classified regime.
func BuildPlan(regime models.Regime, d models.DealerSnapshot) Plan {
	atm := roundStrike(d.Price)

	switch regime {
	case models.RegimeTrendDay:
		if d.VolumeDelta > 0 {
			return Plan{
				Direction: models.DirectionBullish,
				Thesis:    "short-gamma dealers chase strength, ride the trend up",
				Structure: &models.Structure{
					Name: "call debit spread",
					Legs: []models.Leg{buy("call", atm+5, 1), sell("call", atm+10, 1)},
				},
				EntryZone:       fmt.Sprintf("pullbacks toward %.0f", d.ZeroGamma),
				ProfitTarget:    nearerAbove(d.Price, d.CallWall, atm+15),
				Invalidation:    d.ZeroGamma - 10,
				InvalidationWhy: "loss of zero gamma kills the trend thesis",
				HoldTime:        "2-4 hours",
			}
		}
		return Plan{
			Direction: models.DirectionBearish,
			Thesis:    "short-gamma dealers chase weakness, ride the trend down",
			Structure: &models.Structure{
				Name: "put debit spread",
				Legs: []models.Leg{buy("put", atm-5, 1), sell("put", atm-10, 1)},
			},
			EntryZone:       fmt.Sprintf("bounces toward %.0f", d.ZeroGamma),
			ProfitTarget:    nearerBelow(d.Price, d.PutWall, atm-15),
			Invalidation:    d.ZeroGamma + 10,
			InvalidationWhy: "reclaim of zero gamma kills the trend thesis",
			HoldTime:        "2-4 hours",
		}

	case models.RegimeMeanReversion:
		center := roundStrike(d.ZeroGamma)
		offset := d.Price - d.ZeroGamma
		switch {
		case offset > meanReversionBand:
			return Plan{
				Direction: models.DirectionBearish,
				Thesis:    "stretched above zero gamma in a pinning regime, fade back to the magnet",
				Structure: &models.Structure{
					Name: "put butterfly",
					Legs: []models.Leg{buy("put", center+10, 1), sell("put", center, 2), buy("put", center-10, 1)},
				},
				EntryZone:       fmt.Sprintf("near current price %.0f", d.Price),
				ProfitTarget:    d.ZeroGamma,
				Invalidation:    d.CallWall + 5,
				InvalidationWhy: "acceptance above the call wall breaks the pin",
				HoldTime:        "1-2 hours",
			}
		case offset < -meanReversionBand:
			return Plan{
				Direction: models.DirectionBullish,
				Thesis:    "stretched below zero gamma in a pinning regime, fade back to the magnet",
				Structure: &models.Structure{
					Name: "call butterfly",
					Legs: []models.Leg{buy("call", center-10, 1), sell("call", center, 2), buy("call", center+10, 1)},
				},
				EntryZone:       fmt.Sprintf("near current price %.0f", d.Price),
				ProfitTarget:    d.ZeroGamma,
				Invalidation:    d.PutWall - 5,
				InvalidationWhy: "acceptance below the put wall breaks the pin",
				HoldTime:        "1-2 hours",
			}
		default:
			return Plan{
				Direction: models.DirectionNeutral,
				Thesis:    "price pinned inside the gamma magnet, sell both sides",
				Structure: &models.Structure{
					Name: "iron condor",
					Legs: []models.Leg{
						sell("call", atm+5, 1), buy("call", atm+15, 1),
						sell("put", atm-5, 1), buy("put", atm-15, 1),
					},
				},
				EntryZone:       fmt.Sprintf("around %.0f", atm),
				ProfitTarget:    d.Price,
				Invalidation:    nearestWallBreach(d),
				InvalidationWhy: "a wall breach ends the range day",
				HoldTime:        "2-5 hours",
			}
		}

	case models.RegimeGammaSqueeze, models.RegimeVolBreakout:
		hold := "1-3 hours"
		if regime == models.RegimeGammaSqueeze {
			hold = "30-90 minutes"
		}
		if d.VolumeDelta > 0 {
			return Plan{
				Direction: models.DirectionBullish,
				Thesis:    "forced hedging amplifies the upside move",
				Structure: &models.Structure{
					Name: "call debit spread",
					Legs: []models.Leg{buy("call", atm+5, 1), sell("call", atm+15, 1)},
				},
				EntryZone:       fmt.Sprintf("breaks above %.0f", atm),
				ProfitTarget:    nearerAbove(d.Price, d.CallWall, atm+15),
				Invalidation:    d.ZeroGamma - 10,
				InvalidationWhy: "loss of zero gamma ends the squeeze",
				HoldTime:        hold,
			}
		}
		if d.VolumeDelta < 0 {
			return Plan{
				Direction: models.DirectionBearish,
				Thesis:    "forced hedging amplifies the downside move",
				Structure: &models.Structure{
					Name: "put debit spread",
					Legs: []models.Leg{buy("put", atm-5, 1), sell("put", atm-15, 1)},
				},
				EntryZone:       fmt.Sprintf("breaks below %.0f", atm),
				ProfitTarget:    nearerBelow(d.Price, d.PutWall, atm-15),
				Invalidation:    d.ZeroGamma + 10,
				InvalidationWhy: "reclaim of zero gamma ends the squeeze",
				HoldTime:        hold,
			}
		}
		return Plan{
			Direction:       models.DirectionNone,
			Thesis:          "expansion setup without directional volume, wait for the break",
			Invalidation:    d.ZeroGamma,
			InvalidationWhy: "no position to invalidate",
			HoldTime:        "n/a",
		}

	default: // choppy_fakeout
		return Plan{
			Direction:       models.DirectionNone,
			Thesis:          "rotational chop, stand aside",
			InvalidationWhy: "no position to invalidate",
			HoldTime:        "n/a",
		}
	}
}

// nearerAbove picks the closer of two targets above price; a zero wall
// means no wall data.
func nearerAbove(price, wall, fallback float64) float64 {
	if wall <= price {
		return fallback
	}
	if wall < fallback {
		return wall
	}
	return fallback
}

func nearerBelow(price, wall, fallback float64) float64 {
	if wall <= 0 || wall >= price {
		return fallback
	}
	if wall > fallback {
		return wall
	}
	return fallback
}

func nearestWallBreach(d models.DealerSnapshot) float64 {
	if d.CallWall-d.Price < d.Price-d.PutWall {
		return d.CallWall + 5
	}
	return d.PutWall - 5
}
