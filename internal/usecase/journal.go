package usecase

import (
	"context"
	"fmt"
	"time"

	"Commander/internal/domain/models"
	drepo "Commander/internal/domain/repository"
	"Commander/pkg/logger"
)

// JournalUseCase records closed trades and aggregates win rates.
type JournalUseCase struct {
	journal drepo.Journal
	log     *logger.Logger
}

func NewJournalUseCase(journal drepo.Journal, log *logger.Logger) *JournalUseCase {
	return &JournalUseCase{journal: journal, log: log}
}

// Record validates and persists one closed trade.
func (uc *JournalUseCase) Record(ctx context.Context, req models.JournalEntryRequest) (models.JournalEntry, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("parse date: %w", err)
	}

	entry := models.JournalEntry{
		Date:      date,
		Ticker:    req.Ticker,
		Strategy:  models.Strategy(req.Strategy),
		Direction: models.Direction(req.Direction),
		Entry:     req.Entry,
		Exit:      req.Exit,
		PnL:       req.PnL,
		Outcome:   models.Outcome(req.Outcome),
		Notes:     req.Notes,
	}

	if err := uc.journal.Save(ctx, &entry); err != nil {
		return models.JournalEntry{}, fmt.Errorf("save journal entry: %w", err)
	}

	uc.log.Info("journal entry recorded",
		logger.String("id", entry.ID),
		logger.String("ticker", entry.Ticker),
		logger.String("outcome", string(entry.Outcome)))
	return entry, nil
}

// List returns entries matching the filter in insertion order.
func (uc *JournalUseCase) List(ctx context.Context, req models.JournalListRequest) ([]*models.JournalEntry, error) {
	filter := models.JournalFilter{
		Ticker:   req.Ticker,
		Strategy: models.Strategy(req.Strategy),
	}
	if req.From != "" {
		from, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			return nil, fmt.Errorf("parse from: %w", err)
		}
		filter.From = from
	}
	if req.To != "" {
		to, err := time.Parse("2006-01-02", req.To)
		if err != nil {
			return nil, fmt.Errorf("parse to: %w", err)
		}
		filter.To = to
	}
	return uc.journal.List(ctx, filter)
}

// Stats aggregates win rate and P/L per strategy.
func (uc *JournalUseCase) Stats(ctx context.Context) ([]models.StrategyStats, error) {
	return uc.journal.Stats(ctx)
}
