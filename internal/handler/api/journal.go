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

// JournalHandler exposes the trade journal.
type JournalHandler struct {
	logger  *xlogger.Logger
	journal *usecase.JournalUseCase
}

func NewJournalHandler(logger *xlogger.Logger, journal *usecase.JournalUseCase) *JournalHandler {
	metrics.Register()
	return &JournalHandler{logger: logger, journal: journal}
}

func (h *JournalHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/journal")
	g.POST("", h.Record)
	g.GET("", h.List)
	g.GET("/stats", h.Stats)
}

func (h *JournalHandler) Record(c echo.Context) error {
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues("journal_record").Observe(time.Since(start).Seconds()) }()

	req := &models.JournalEntryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entry, err := h.journal.Record(c.Request().Context(), *req)
	if err != nil {
		metrics.APIErrors.WithLabelValues("journal_record").Inc()
		h.logger.Error("journal record error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, entry)
}

func (h *JournalHandler) List(c echo.Context) error {
	req := &models.JournalListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entries, err := h.journal.List(c.Request().Context(), *req)
	if err != nil {
		metrics.APIErrors.WithLabelValues("journal_list").Inc()
		h.logger.Error("journal list error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, entries)
}

func (h *JournalHandler) Stats(c echo.Context) error {
	stats, err := h.journal.Stats(c.Request().Context())
	if err != nil {
		metrics.APIErrors.WithLabelValues("journal_stats").Inc()
		h.logger.Error("journal stats error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, stats)
}
