package models

import "time"

type Outcome string

const (
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomeScratch Outcome = "scratch"
)

// JournalEntry records one closed trade for later win-rate aggregation.
type JournalEntry struct {
	ID        string
	Date      time.Time
	Ticker    string
	Strategy  Strategy
	Direction Direction
	Entry     float64
	Exit      float64
	PnL       float64
	Outcome   Outcome
	Notes     string
}

// JournalFilter narrows a journal listing. Zero values match everything.
type JournalFilter struct {
	Ticker   string
	Strategy Strategy
	From     time.Time
	To       time.Time
}

// StrategyStats is the per-strategy aggregation over journal entries.
// Scratches are excluded from win rate.
type StrategyStats struct {
	Strategy Strategy
	Trades   int
	Wins     int
	Losses   int
	Scratch  int
	WinRate  float64
	TotalPnL float64
}
