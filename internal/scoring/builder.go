package scoring

import "Commander/internal/domain/models"

// scoreBuilder accumulates rule deltas and their rationale lines. Rules are
// applied in a fixed order per strategy; the builder records one detail per
// rule that fired.
type scoreBuilder struct {
	strategy models.Strategy
	score    int
	reason   string
	details  []models.ScoreDetail
	warnings []string
}

func newScore(strategy models.Strategy, base int) *scoreBuilder {
	return &scoreBuilder{strategy: strategy, score: base}
}

func (b *scoreBuilder) add(label string, delta int) {
	b.score += delta
	b.details = append(b.details, models.ScoreDetail{Label: label, Delta: delta})
}

func (b *scoreBuilder) setReason(reason string) {
	b.reason = reason
}

func (b *scoreBuilder) appendReason(tag string) {
	if b.reason == "" {
		b.reason = tag
		return
	}
	b.reason += ", " + tag
}

func (b *scoreBuilder) warn(msg string) {
	b.warnings = append(b.warnings, msg)
}

// build clamps the running score into [0,100] and maps the signal.
func (b *scoreBuilder) build() models.StrategyScore {
	score := clampScore(b.score)
	return models.StrategyScore{
		Strategy: b.strategy,
		Score:    score,
		Signal:   MapSignal(score),
		Reason:   b.reason,
		Details:  b.details,
		Warnings: b.warnings,
	}
}
