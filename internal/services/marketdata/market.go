package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"Commander/internal/domain/models"
	domsvc "Commander/internal/domain/service"
	"Commander/pkg/cache"
	"Commander/pkg/logger"
)

// HTTPMarketDataProvider collates a MarketSnapshot from four independent
// upstream endpoints: quote, volatility, sector strength and earnings.
// Only the quote is mandatory; any other failure degrades to a nil field
// so the scorers can still run. Upstream payloads use inconsistent field
// names, so every sub-fetch normalizes into the canonical model here and
// nothing loose crosses this boundary.
type HTTPMarketDataProvider struct {
	base     *HTTPProviderBase
	cache    cache.Service
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewHTTPMarketDataProvider(base *HTTPProviderBase, c cache.Service, ttl time.Duration, log *logger.Logger) *HTTPMarketDataProvider {
	return &HTTPMarketDataProvider{base: base, cache: c, cacheTTL: ttl, log: log}
}

// loose payloads: providers disagree on snake_case vs camelCase
type quotePayload struct {
	Price         *float64 `json:"price"`
	Last          *float64 `json:"last"`
	ChangePct     *float64 `json:"change_pct"`
	ChangePercent *float64 `json:"changePercent"`
	Sector        string   `json:"sector"`
}

type volatilityPayload struct {
	IVRank        *float64 `json:"iv_rank"`
	IVRankAlt     *float64 `json:"ivRank"`
	IVPercentile  *float64 `json:"iv_percentile"`
	IVPctAlt      *float64 `json:"ivPercentile"`
}

type sectorPayload struct {
	RelativeStrength *float64 `json:"relative_strength"`
	RSAlt            *float64 `json:"rs_ratio"`
}

type earningsPayload struct {
	DaysToEarnings *int `json:"days_to_earnings"`
	DaysAlt        *int `json:"daysToEarnings"`
}

func coalesce(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func coalesceInt(vals ...*int) *int {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

// Snapshot fetches the four sub-feeds concurrently and collates them. A
// cached streamed quote, when fresher than the REST quote, overrides the
// price.
func (p *HTTPMarketDataProvider) Snapshot(ctx context.Context, ticker string) (models.MarketSnapshot, error) {
	query := map[string][]string{"symbol": {ticker}}

	var (
		wg       sync.WaitGroup
		quote    quotePayload
		vol      volatilityPayload
		sector   sectorPayload
		earnings earningsPayload
		quoteErr error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		quoteErr = p.base.GetJSONWithRetry(ctx, "/v1/quote", query, &quote, 3)
	}()
	go func() {
		defer wg.Done()
		if err := p.base.GetJSON(ctx, "/v1/volatility", query, &vol); err != nil {
			p.log.Debug("volatility fetch failed", logger.String("ticker", ticker), logger.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := p.base.GetJSON(ctx, "/v1/sector-strength", query, &sector); err != nil {
			p.log.Debug("sector fetch failed", logger.String("ticker", ticker), logger.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		if err := p.base.GetJSON(ctx, "/v1/earnings/next", query, &earnings); err != nil {
			p.log.Debug("earnings fetch failed", logger.String("ticker", ticker), logger.Error(err))
		}
	}()
	wg.Wait()

	price := coalesce(quote.Price, quote.Last)
	if quoteErr != nil || price == nil {
		return models.MarketSnapshot{}, fmt.Errorf("quote for %s unavailable: %w", ticker, quoteErr)
	}

	snap := models.MarketSnapshot{
		Ticker:         ticker,
		Price:          *price,
		IVRank:         coalesce(vol.IVRank, vol.IVRankAlt),
		IVPercentile:   coalesce(vol.IVPercentile, vol.IVPctAlt),
		SectorRS:       coalesce(sector.RelativeStrength, sector.RSAlt),
		DaysToEarnings: coalesceInt(earnings.DaysToEarnings, earnings.DaysAlt),
		Sector:         quote.Sector,
		AsOf:           time.Now(),
	}
	if change := coalesce(quote.ChangePct, quote.ChangePercent); change != nil {
		snap.ChangePct = *change
	}

	p.overlayStreamedQuote(ctx, &snap)
	return snap, nil
}

func (p *HTTPMarketDataProvider) overlayStreamedQuote(ctx context.Context, snap *models.MarketSnapshot) {
	if p.cache == nil {
		return
	}
	var raw string
	if err := p.cache.Get(ctx, quoteCacheKey(snap.Ticker), &raw); err != nil {
		return
	}
	var q models.Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return
	}
	if q.Timestamp.After(snap.AsOf.Add(-p.cacheTTL)) && q.Price > 0 {
		snap.Price = q.Price
	}
}

func quoteCacheKey(ticker string) string {
	return "quote:" + ticker
}

var _ domsvc.MarketDataProvider = (*HTTPMarketDataProvider)(nil)
