package api

import (
	"Commander/internal/domain/models"
	"Commander/internal/usecase"
	xhttp "Commander/pkg/http"
	xlogger "Commander/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LabHandler exposes the single-position analyzer.
type LabHandler struct {
	logger *xlogger.Logger
	lab    *usecase.TradeLabUseCase
}

func NewLabHandler(logger *xlogger.Logger, lab *usecase.TradeLabUseCase) *LabHandler {
	return &LabHandler{logger: logger, lab: lab}
}

func (h *LabHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/v1/lab/analyze", h.Analyze)
}

func (h *LabHandler) Analyze(c echo.Context) error {
	req := &models.LabAnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, h.lab.Analyze(*req))
}
