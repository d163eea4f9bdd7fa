package scoring

import (
	"fmt"

	"Commander/internal/domain/models"
)

// ErrStrategyNotScored is returned when a forced strategy has no computed
// score. Forcing an unscored strategy is a caller precondition violation,
// not something to default around silently.
var ErrStrategyNotScored = fmt.Errorf("forced strategy was not scored")

// evaluationOrder is the fixed tie-break: on equal scores the earlier
// strategy wins. Encoded explicitly so the precedence is testable rather
// than an accident of construction order.
var evaluationOrder = []models.Strategy{
	models.StrategyIPMCC,
	models.StrategyT112,
	models.StrategyStrangle,
}

// ScoreAll runs the three scorers in evaluation order.
func ScoreAll(snap models.MarketSnapshot, macro models.MacroContext) []models.StrategyScore {
	return []models.StrategyScore{
		ScoreIPMCC(snap, macro),
		Score112(snap, macro),
		ScoreStrangle(snap, macro),
	}
}

// Select picks the winning StrategyScore. A forced strategy is returned
// verbatim; otherwise the highest score wins with ties broken by
// evaluationOrder. The scores slice must hold at most one entry per
// strategy.
func Select(scores []models.StrategyScore, forced models.Strategy) (models.StrategyScore, error) {
	if forced != "" {
		for _, s := range scores {
			if s.Strategy == forced {
				return s, nil
			}
		}
		return models.StrategyScore{}, fmt.Errorf("%w: %s", ErrStrategyNotScored, forced)
	}

	if len(scores) == 0 {
		return models.StrategyScore{}, fmt.Errorf("no strategy scores to select from")
	}

	byStrategy := make(map[models.Strategy]models.StrategyScore, len(scores))
	for _, s := range scores {
		byStrategy[s.Strategy] = s
	}

	var best models.StrategyScore
	found := false
	for _, strat := range evaluationOrder {
		s, ok := byStrategy[strat]
		if !ok {
			continue
		}
		// strict greater keeps the earlier strategy on ties
		if !found || s.Score > best.Score {
			best = s
			found = true
		}
	}
	if !found {
		return models.StrategyScore{}, fmt.Errorf("no recognized strategy in scores")
	}
	return best, nil
}
