package service

import (
	"context"
	"time"

	"Commander/internal/domain/models"
)

// MarketDataProvider supplies per-ticker snapshots. Implementations own
// the normalization from raw provider payloads into the canonical model;
// a fetch failure for an optional field yields a nil field, never an
// error for the whole snapshot.
type MarketDataProvider interface {
	Snapshot(ctx context.Context, ticker string) (models.MarketSnapshot, error)
}

// MacroProvider supplies the market-wide backdrop: VIX, benchmark trend,
// sector flow and the raw upcoming-event list. The event horizon layers
// the adjustment and binary-override semantics on top.
type MacroProvider interface {
	Context(ctx context.Context) (models.MacroContext, error)
}

// DealerFlowProvider supplies dealer positioning for the 0-DTE desk.
type DealerFlowProvider interface {
	Snapshot(ctx context.Context, ticker string) (models.DealerSnapshot, error)
	GammaProfile(ctx context.Context, ticker string) ([]models.StrikeGamma, float64, error)
}

// Clock abstracts time for the trading-window checks so they stay
// testable.
type Clock interface {
	Now() time.Time
}
