package api

import (
	"encoding/json"
	"time"

	"Commander/internal/domain/models"
	icache "Commander/internal/service/cache"
	"Commander/internal/service/metrics"
	"Commander/internal/service/ratelimit"
	"Commander/internal/usecase"
	xhttp "Commander/pkg/http"
	xlogger "Commander/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScanHandler exposes the strategy scanner over HTTP. Single-ticker
// responses are cached briefly so dashboard polling does not hammer the
// upstream providers.
type ScanHandler struct {
	logger  *xlogger.Logger
	scanner *usecase.ScannerUseCase
	cache   icache.BytesCache
	rl      *ratelimit.Limiter
}

func NewScanHandler(logger *xlogger.Logger, scanner *usecase.ScannerUseCase) *ScanHandler {
	metrics.Register()
	return &ScanHandler{logger: logger, scanner: scanner, rl: ratelimit.New()}
}

// SetCache injects a response cache.
func (h *ScanHandler) SetCache(c icache.BytesCache) { h.cache = c }

func (h *ScanHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/scan", h.Scan)
	g.GET("/scan/:ticker", h.ScanTicker)
	g.GET("/watchlists", h.Watchlists)
}

func (h *ScanHandler) Scan(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues("scan").Observe(time.Since(start).Seconds()) }()

	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":scan", 2, 0.5) {
		metrics.APIRateLimited.WithLabelValues("scan").Inc()
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("scan rate limit exceeded"))
	}

	results, err := h.scanner.Scan(c.Request().Context(), req.Tickers, req.Watchlist, models.Strategy(req.Strategy))
	if err != nil {
		metrics.APIErrors.WithLabelValues("scan").Inc()
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, results)
}

func (h *ScanHandler) ScanTicker(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues("scan_ticker").Observe(time.Since(start).Seconds()) }()

	req := &models.TickerScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if !h.rl.Allow(c.RealIP()+":scan_ticker", 5, 2) {
		metrics.APIRateLimited.WithLabelValues("scan_ticker").Inc()
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("scan rate limit exceeded"))
	}

	cacheKey := "scan:" + req.Ticker + ":" + req.Strategy
	if h.cache != nil {
		if b, ok, err := h.cache.GetBytes(cacheKey); err != nil {
			h.logger.Warn("scan cache get error", xlogger.Error(err))
		} else if ok {
			var cached models.ScanResult
			if err := json.Unmarshal(b, &cached); err == nil {
				return xhttp.SuccessResponse(c, &cached)
			}
		}
	}

	result, err := h.scanner.ScanOne(c.Request().Context(), req.Ticker, models.Strategy(req.Strategy))
	if err != nil {
		metrics.APIErrors.WithLabelValues("scan_ticker").Inc()
		h.logger.Error("scan ticker usecase error",
			xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	if h.cache != nil {
		if b, err := json.Marshal(result); err == nil {
			if err := h.cache.SetBytes(cacheKey, b, 30*time.Second); err != nil {
				h.logger.Warn("scan cache set error", xlogger.Error(err))
			}
		}
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *ScanHandler) Watchlists(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.scanner.Watchlists())
}
