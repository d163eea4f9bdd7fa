package marketdata

import (
	"context"
	"time"

	"Commander/internal/domain/models"
	domsvc "Commander/internal/domain/service"
	"Commander/internal/events"
	"Commander/pkg/logger"
)

// HTTPMacroProvider collates the market-wide backdrop: VIX complex, SPY
// trend and sector flow from upstream, then layers the event-horizon
// assessment on top so callers get a fully derived MacroContext.
type HTTPMacroProvider struct {
	base    *HTTPProviderBase
	horizon *events.Horizon
	log     *logger.Logger
}

func NewHTTPMacroProvider(base *HTTPProviderBase, horizon *events.Horizon, log *logger.Logger) *HTTPMacroProvider {
	return &HTTPMacroProvider{base: base, horizon: horizon, log: log}
}

type vixPayload struct {
	VIX       *float64 `json:"vix"`
	Level     *float64 `json:"level"`
	ChangePct *float64 `json:"change_pct"`
	VIX1D     *float64 `json:"vix_1d"`
}

type benchmarkPayload struct {
	ChangePct    *float64 `json:"change_pct"`
	ChangePctAlt *float64 `json:"changePercent"`
	SectorFlow   string   `json:"sector_flow"`
}

type eventPayload struct {
	Type        string `json:"type"`
	Ticker      string `json:"ticker"`
	Date        string `json:"date"`
	DaysAway    int    `json:"days_away"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

type eventsPayload struct {
	Events []eventPayload `json:"events"`
}

// Context builds the macro backdrop. VIX and SPY failures fall back to
// neutral readings with a warning rather than failing the whole scan.
func (p *HTTPMacroProvider) Context(ctx context.Context) (models.MacroContext, error) {
	var macro models.MacroContext

	var vix vixPayload
	if err := p.base.GetJSONWithRetry(ctx, "/v1/vix", nil, &vix, 3); err != nil {
		p.log.Warn("vix fetch failed, assuming neutral vol", logger.Error(err))
		macro.Warnings = append(macro.Warnings, "vix unavailable, assumed neutral")
		macro.VIX = 16
	} else if level := coalesce(vix.VIX, vix.Level); level != nil {
		macro.VIX = *level
	}
	macro.VIXRegime = models.VIXRegimeFor(macro.VIX)

	var spy benchmarkPayload
	if err := p.base.GetJSON(ctx, "/v1/benchmark", nil, &spy); err != nil {
		p.log.Warn("benchmark fetch failed, assuming neutral trend", logger.Error(err))
		macro.Warnings = append(macro.Warnings, "benchmark unavailable, assumed neutral")
	} else if change := coalesce(spy.ChangePct, spy.ChangePctAlt); change != nil {
		macro.SPYChangePct = *change
	}
	macro.SPYTrend = models.TrendFor(macro.SPYChangePct)
	macro.SectorFlow = models.SectorFlow(spy.SectorFlow)

	var upcoming eventsPayload
	if err := p.base.GetJSON(ctx, "/v1/events", nil, &upcoming); err != nil {
		p.log.Debug("events fetch failed", logger.Error(err))
	}
	extra := make([]models.MacroEvent, 0, len(upcoming.Events))
	for _, ev := range upcoming.Events {
		date, _ := time.Parse("2006-01-02", ev.Date)
		extra = append(extra, models.MacroEvent{
			Type:        ev.Type,
			Ticker:      ev.Ticker,
			Date:        date,
			DaysAway:    ev.DaysAway,
			Impact:      ev.Impact,
			Description: ev.Description,
		})
	}

	assessment := p.horizon.Assess(time.Now(), extra)
	macro.Events = assessment.Events
	macro.Adjustment = assessment.Adjustment
	macro.BinaryEvent = assessment.BinaryEvent
	macro.BinaryReason = assessment.BinaryReason
	macro.DaysToNextEvent = assessment.DaysToNearest
	macro.Warnings = append(macro.Warnings, assessment.Warnings...)

	return macro, nil
}

var _ domsvc.MacroProvider = (*HTTPMacroProvider)(nil)
