package api

import (
	"time"

	"Commander/internal/domain/models"
	"Commander/internal/service/metrics"
	"Commander/internal/usecase"
	xhttp "Commander/pkg/http"
	xlogger "Commander/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeskHandler exposes the 0-DTE desk evaluation and the session window.
type DeskHandler struct {
	logger *xlogger.Logger
	desk   *usecase.DeskUseCase
}

func NewDeskHandler(logger *xlogger.Logger, desk *usecase.DeskUseCase) *DeskHandler {
	metrics.Register()
	return &DeskHandler{logger: logger, desk: desk}
}

func (h *DeskHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/desk")
	g.POST("/analyze", h.Analyze)
	g.GET("/analyze/:ticker", h.AnalyzeTicker)
	g.GET("/window", h.Window)
}

func (h *DeskHandler) Analyze(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues("desk_analyze").Observe(time.Since(start).Seconds()) }()

	req := &models.DeskAnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	result, err := h.desk.Analyze(c.Request().Context(), dealerSnapshotFromRequest(req.Dealer), req.UseMacro)
	if err != nil {
		metrics.APIErrors.WithLabelValues("desk_analyze").Inc()
		h.logger.Error("desk analyze error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *DeskHandler) AnalyzeTicker(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues("desk_analyze").Observe(time.Since(start).Seconds()) }()

	ticker := c.Param("ticker")
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}

	result, err := h.desk.AnalyzeTicker(c.Request().Context(), ticker, true)
	if err != nil {
		metrics.APIErrors.WithLabelValues("desk_analyze").Inc()
		h.logger.Error("desk analyze error",
			xlogger.String("ticker", ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, result)
}

func (h *DeskHandler) Window(c echo.Context) error {
	report, err := h.desk.Window(c.Request().Context())
	if err != nil {
		metrics.APIErrors.WithLabelValues("desk_window").Inc()
		h.logger.Error("desk window error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func dealerSnapshotFromRequest(req models.DealerSnapshotRequest) models.DealerSnapshot {
	snap := models.DealerSnapshot{
		Ticker:        req.Ticker,
		Price:         req.Price,
		PrevClose:     req.PrevClose,
		ZeroGamma:     req.ZeroGamma,
		CallWall:      req.CallWall,
		PutWall:       req.PutWall,
		NetGEX:        req.NetGEX,
		VannaFlow:     models.VannaFlow(req.VannaFlow),
		CharmEffect:   models.CharmEffect(req.CharmEffect),
		VolumeDelta:   req.VolumeDelta,
		DarkPool:      models.PrintDirection(req.DarkPool),
		Institutional: models.PrintDirection(req.Institutional),
		VIX:           req.VIX,
		VIXChangePct:  req.VIXChangePct,
		VIX1D:         req.VIX1D,
	}
	if req.Internals != nil {
		snap.Internals = &models.Internals{
			VOLD:    req.Internals.VOLD,
			TICK:    req.Internals.TICK,
			ADDLine: models.LineDirection(req.Internals.ADDLine),
		}
	}
	return snap
}
