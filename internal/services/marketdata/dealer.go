package marketdata

import (
	"context"
	"fmt"

	"Commander/internal/desk"
	"Commander/internal/domain/models"
	domsvc "Commander/internal/domain/service"
	"Commander/pkg/logger"
)

// HTTPDealerFlowProvider supplies dealer positioning for the 0-DTE desk.
// When the upstream snapshot lacks walls or zero gamma it derives them
// from the per-strike gamma profile.
type HTTPDealerFlowProvider struct {
	base *HTTPProviderBase
	log  *logger.Logger
}

func NewHTTPDealerFlowProvider(base *HTTPProviderBase, log *logger.Logger) *HTTPDealerFlowProvider {
	return &HTTPDealerFlowProvider{base: base, log: log}
}

type dealerPayload struct {
	Price         *float64 `json:"price"`
	Last          *float64 `json:"last"`
	PrevClose     *float64 `json:"prev_close"`
	ZeroGamma     *float64 `json:"zero_gamma"`
	GammaFlip     *float64 `json:"gamma_flip"`
	CallWall      *float64 `json:"call_wall"`
	PutWall       *float64 `json:"put_wall"`
	NetGEX        *float64 `json:"net_gex"`
	NetGamma      *float64 `json:"net_gamma"`
	VannaFlow     string   `json:"vanna_flow"`
	CharmEffect   string   `json:"charm_effect"`
	VolumeDelta   *float64 `json:"volume_delta"`
	DarkPool      string   `json:"dark_pool"`
	Institutional string   `json:"institutional"`
	VIX           *float64 `json:"vix"`
	VIXChangePct  *float64 `json:"vix_change_pct"`
	VIX1D         *float64 `json:"vix_1d"`
	Internals     *struct {
		VOLD    *float64 `json:"vold"`
		TICK    *float64 `json:"tick"`
		ADDLine string   `json:"add_line"`
	} `json:"internals"`
}

type strikeRow struct {
	Strike    float64 `json:"strike"`
	CallOI    float64 `json:"call_oi"`
	PutOI     float64 `json:"put_oi"`
	CallGamma float64 `json:"call_gamma"`
	PutGamma  float64 `json:"put_gamma"`
}

type profilePayload struct {
	Spot    *float64    `json:"spot"`
	Price   *float64    `json:"price"`
	Strikes []strikeRow `json:"strikes"`
}

func (p *HTTPDealerFlowProvider) Snapshot(ctx context.Context, ticker string) (models.DealerSnapshot, error) {
	query := map[string][]string{"symbol": {ticker}}

	var payload dealerPayload
	if err := p.base.GetJSONWithRetry(ctx, "/v1/dealer-flow", query, &payload, 3); err != nil {
		return models.DealerSnapshot{}, fmt.Errorf("dealer flow for %s: %w", ticker, err)
	}

	price := coalesce(payload.Price, payload.Last)
	if price == nil {
		return models.DealerSnapshot{}, fmt.Errorf("dealer flow for %s missing price", ticker)
	}

	snap := models.DealerSnapshot{
		Ticker:        ticker,
		Price:         *price,
		VannaFlow:     vannaOr(payload.VannaFlow, models.VannaNeutral),
		CharmEffect:   charmOr(payload.CharmEffect, models.CharmNeutral),
		DarkPool:      printsOr(payload.DarkPool, models.PrintsNeutral),
		Institutional: printsOr(payload.Institutional, models.PrintsNeutral),
		VIX1D:         payload.VIX1D,
	}
	assignF(&snap.PrevClose, payload.PrevClose)
	assignF(&snap.ZeroGamma, coalesce(payload.ZeroGamma, payload.GammaFlip))
	assignF(&snap.CallWall, payload.CallWall)
	assignF(&snap.PutWall, payload.PutWall)
	assignF(&snap.NetGEX, coalesce(payload.NetGEX, payload.NetGamma))
	assignF(&snap.VolumeDelta, payload.VolumeDelta)
	assignF(&snap.VIX, payload.VIX)
	assignF(&snap.VIXChangePct, payload.VIXChangePct)

	if payload.Internals != nil {
		internals := models.Internals{ADDLine: lineOr(payload.Internals.ADDLine, models.LineFlat)}
		assignF(&internals.VOLD, payload.Internals.VOLD)
		assignF(&internals.TICK, payload.Internals.TICK)
		snap.Internals = &internals
	}

	if snap.ZeroGamma == 0 || snap.CallWall == 0 || snap.PutWall == 0 {
		p.fillLevels(ctx, ticker, &snap)
	}
	return snap, nil
}

// GammaProfile fetches the per-strike summary and the spot it was built at.
func (p *HTTPDealerFlowProvider) GammaProfile(ctx context.Context, ticker string) ([]models.StrikeGamma, float64, error) {
	query := map[string][]string{"symbol": {ticker}}

	var payload profilePayload
	if err := p.base.GetJSON(ctx, "/v1/gamma-profile", query, &payload); err != nil {
		return nil, 0, fmt.Errorf("gamma profile for %s: %w", ticker, err)
	}
	spot := coalesce(payload.Spot, payload.Price)
	if spot == nil || len(payload.Strikes) == 0 {
		return nil, 0, fmt.Errorf("gamma profile for %s empty", ticker)
	}

	profile := make([]models.StrikeGamma, 0, len(payload.Strikes))
	for _, row := range payload.Strikes {
		profile = append(profile, models.StrikeGamma{
			Strike:    row.Strike,
			CallOI:    row.CallOI,
			PutOI:     row.PutOI,
			CallGamma: row.CallGamma,
			PutGamma:  row.PutGamma,
		})
	}
	return profile, *spot, nil
}

func (p *HTTPDealerFlowProvider) fillLevels(ctx context.Context, ticker string, snap *models.DealerSnapshot) {
	profile, spot, err := p.GammaProfile(ctx, ticker)
	if err != nil {
		p.log.Debug("gamma profile unavailable, levels stay partial",
			logger.String("ticker", ticker), logger.Error(err))
		return
	}
	levels := desk.ComputeKeyLevels(profile, spot)
	if snap.ZeroGamma == 0 {
		snap.ZeroGamma = levels.GammaFlip
	}
	if snap.CallWall == 0 {
		snap.CallWall = levels.CallWall
	}
	if snap.PutWall == 0 {
		snap.PutWall = levels.PutWall
	}
	if snap.NetGEX == 0 {
		snap.NetGEX = levels.NetGEX
	}
}

func assignF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func vannaOr(s string, fallback models.VannaFlow) models.VannaFlow {
	switch v := models.VannaFlow(s); v {
	case models.VannaSupportive, models.VannaHostile, models.VannaNeutral:
		return v
	}
	return fallback
}

func charmOr(s string, fallback models.CharmEffect) models.CharmEffect {
	switch v := models.CharmEffect(s); v {
	case models.CharmPinning, models.CharmUnpinning, models.CharmNeutral:
		return v
	}
	return fallback
}

func printsOr(s string, fallback models.PrintDirection) models.PrintDirection {
	switch v := models.PrintDirection(s); v {
	case models.PrintsBuying, models.PrintsSelling, models.PrintsMixed, models.PrintsNeutral:
		return v
	}
	return fallback
}

func lineOr(s string, fallback models.LineDirection) models.LineDirection {
	switch v := models.LineDirection(s); v {
	case models.LineRising, models.LineFalling, models.LineFlat:
		return v
	}
	return fallback
}

var _ domsvc.DealerFlowProvider = (*HTTPDealerFlowProvider)(nil)
