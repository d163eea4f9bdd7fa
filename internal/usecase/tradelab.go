package usecase

import (
	"Commander/internal/domain/models"
	"Commander/internal/scoring"
	"Commander/pkg/logger"
)

// TradeLabUseCase analyzes one manually entered position outside the
// scan pipeline.
type TradeLabUseCase struct {
	log *logger.Logger
}

func NewTradeLabUseCase(log *logger.Logger) *TradeLabUseCase {
	return &TradeLabUseCase{log: log}
}

func (uc *TradeLabUseCase) Analyze(req models.LabAnalyzeRequest) models.LabAnalysis {
	analysis := scoring.AnalyzeLeg(req.Strategy, req.Price, req.Strike, req.Premium, req.IVRank, req.DTE)
	uc.log.Debug("lab analysis",
		logger.String("strategy", analysis.Strategy),
		logger.Int("score", analysis.Score),
		logger.String("signal", string(analysis.Signal)))
	return analysis
}
