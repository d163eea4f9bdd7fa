package api

import (
	"time"

	drepo "Commander/internal/domain/repository"
	"Commander/internal/service/metrics"
	xhttp "Commander/pkg/http"
	xlogger "Commander/pkg/logger"
	"Commander/pkg/util"

	"github.com/labstack/echo/v4"
)

// HistoryHandler serves recent scan history from the ClickHouse-backed
// store. The table is populated directly on the clickhouse backend and
// by the scan consumer on the kafka backend, so the route is always
// registered.
type HistoryHandler struct {
	logger  *xlogger.Logger
	storage drepo.Storage
}

func NewHistoryHandler(logger *xlogger.Logger, storage drepo.Storage) *HistoryHandler {
	metrics.Register()
	return &HistoryHandler{logger: logger, storage: storage}
}

func (h *HistoryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/scan/:ticker/history", h.History)
}

func (h *HistoryHandler) History(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues("scan_history").Observe(time.Since(start).Seconds()) }()

	ticker := c.Param("ticker")
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker required")
	}
	limit := util.ParseIntDefault(c.QueryParam("limit"), 100)
	if limit < 1 || limit > 1000 {
		return xhttp.BadRequestResponse(c, "limit must be 1-1000")
	}

	to := util.ParseTimeDefault(c.QueryParam("to"), time.Now())
	from := util.ParseTimeDefault(c.QueryParam("from"), to.AddDate(0, 0, -30))
	records, err := h.storage.Query(c.Request().Context(), ticker, from, to, limit)
	if err != nil {
		metrics.APIErrors.WithLabelValues("scan_history").Inc()
		h.logger.Error("scan history error",
			xlogger.String("ticker", ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, records)
}
