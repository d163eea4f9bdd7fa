package models

import "time"

// Signal is the five-level categorical rating produced by every scorer.
type Signal string

const (
	SignalStrongBuy   Signal = "strong_buy"
	SignalBuy         Signal = "buy"
	SignalNeutral     Signal = "neutral"
	SignalAvoid       Signal = "avoid"
	SignalStrongAvoid Signal = "strong_avoid"
)

// Rank orders signals from strong_avoid (0) to strong_buy (4).
func (s Signal) Rank() int {
	switch s {
	case SignalStrongBuy:
		return 4
	case SignalBuy:
		return 3
	case SignalNeutral:
		return 2
	case SignalAvoid:
		return 1
	default:
		return 0
	}
}

type Strategy string

const (
	StrategyIPMCC    Strategy = "ipmcc"
	StrategyT112     Strategy = "112"
	StrategyStrangle Strategy = "strangle"
)

// ScoreDetail is one rationale line with the signed points it contributed.
type ScoreDetail struct {
	Label string
	Delta int
}

// StrategyScore is the outcome of one scorer invocation. Score is clamped
// to [0,100] after all rules have been applied.
type StrategyScore struct {
	Strategy Strategy
	Score    int
	Signal   Signal
	Reason   string
	Details  []ScoreDetail
	Warnings []string
}

// ScanResult aggregates one snapshot with its strategy scores and the
// selection. Selected mirrors the chosen strategy's StrategyScore exactly.
type ScanResult struct {
	Snapshot    MarketSnapshot
	Scores      []StrategyScore // evaluation order: IPMCC, 112, strangle
	Selected    StrategyScore
	MissingData []string
	ScannedAt   time.Time
}

// ScanRecord is the flattened row persisted for scan history.
type ScanRecord struct {
	Timestamp    time.Time
	Ticker       string
	Strategy     string
	Score        int
	Signal       string
	MissingCount int
}

// LabAnalysis is the output of the single-leg trade-lab analyzer.
type LabAnalysis struct {
	Strategy     string
	Score        int
	Signal       Signal
	Details      []ScoreDetail
	Warnings     []string
	PremiumYield float64 // premium / underlying price
	Breakeven    float64
}
