package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Commander/internal/domain/models"
	"Commander/internal/domain/repository"
	"Commander/pkg/cache"
)

const (
	journalKeyPrefix = "journal:entry:"
	journalIndexKey  = "journal:index"
	journalSeqKey    = "journal:seq"
	journalLockKey   = "journal:index:lock"
	journalLockTTL   = 5 * time.Second
)

// RedisJournal implements the trade journal over the cache service.
// Entries are append-only; the index is read-modify-write under a lock.
type RedisJournal struct {
	cache cache.Service
}

func NewRedisJournal(c cache.Service) repository.Journal {
	return &RedisJournal{cache: c}
}

func (j *RedisJournal) Save(ctx context.Context, entry *models.JournalEntry) error {
	if entry.ID == "" {
		seq, err := j.cache.Increment(ctx, journalSeqKey)
		if err != nil {
			return fmt.Errorf("journal seq: %w", err)
		}
		entry.ID = fmt.Sprintf("%s-%s-%d", entry.Date.Format("2006-01-02"), entry.Ticker, seq)
	}

	// Entries are stored as JSON strings so both the Redis and the
	// in-memory cache backends round-trip them identically.
	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("journal marshal %s: %w", entry.ID, err)
	}
	if err := j.cache.Set(ctx, journalKeyPrefix+entry.ID, string(b), 0); err != nil {
		return fmt.Errorf("journal save %s: %w", entry.ID, err)
	}
	return j.appendToIndex(ctx, entry.ID)
}

func (j *RedisJournal) appendToIndex(ctx context.Context, id string) error {
	locked, err := j.cache.TryLock(ctx, journalLockKey, journalLockTTL)
	if err != nil {
		return fmt.Errorf("journal index lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("journal index busy")
	}
	defer func() { _ = j.cache.Unlock(ctx, journalLockKey) }()

	index, err := j.readIndex(ctx)
	if err != nil {
		return err
	}
	index = append(index, id)
	b, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("journal index marshal: %w", err)
	}
	if err := j.cache.Set(ctx, journalIndexKey, string(b), 0); err != nil {
		return fmt.Errorf("journal index write: %w", err)
	}
	return nil
}

func (j *RedisJournal) readIndex(ctx context.Context) ([]string, error) {
	var raw string
	if err := j.cache.Get(ctx, journalIndexKey, &raw); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("journal index read: %w", err)
	}
	var index []string
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		return nil, fmt.Errorf("journal index decode: %w", err)
	}
	return index, nil
}

func (j *RedisJournal) List(ctx context.Context, filter models.JournalFilter) ([]*models.JournalEntry, error) {
	index, err := j.readIndex(ctx)
	if err != nil {
		return nil, err
	}
	if len(index) == 0 {
		return nil, nil
	}

	keys := make([]string, len(index))
	for i, id := range index {
		keys[i] = journalKeyPrefix + id
	}
	byKey, err := cache.MGetTyped[models.JournalEntry](ctx, j.cache, keys...)
	if err != nil {
		return nil, fmt.Errorf("journal entries read: %w", err)
	}

	entries := make([]*models.JournalEntry, 0, len(byKey))
	for _, id := range index {
		entry, ok := byKey[journalKeyPrefix+id]
		if !ok {
			continue
		}
		if matches(&entry, filter) {
			e := entry
			entries = append(entries, &e)
		}
	}
	return entries, nil
}

func matches(e *models.JournalEntry, f models.JournalFilter) bool {
	if f.Ticker != "" && e.Ticker != f.Ticker {
		return false
	}
	if f.Strategy != "" && e.Strategy != f.Strategy {
		return false
	}
	if !f.From.IsZero() && e.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To) {
		return false
	}
	return true
}

// Stats aggregates win rate per strategy. Scratches count as trades but
// stay out of the win-rate denominator.
func (j *RedisJournal) Stats(ctx context.Context) ([]models.StrategyStats, error) {
	entries, err := j.List(ctx, models.JournalFilter{})
	if err != nil {
		return nil, err
	}

	byStrategy := make(map[models.Strategy]*models.StrategyStats)
	for _, e := range entries {
		stats, ok := byStrategy[e.Strategy]
		if !ok {
			stats = &models.StrategyStats{Strategy: e.Strategy}
			byStrategy[e.Strategy] = stats
		}
		stats.Trades++
		stats.TotalPnL += e.PnL
		switch e.Outcome {
		case models.OutcomeWin:
			stats.Wins++
		case models.OutcomeLoss:
			stats.Losses++
		default:
			stats.Scratch++
		}
	}

	ordered := []models.Strategy{models.StrategyIPMCC, models.StrategyT112, models.StrategyStrangle}
	result := make([]models.StrategyStats, 0, len(byStrategy))
	for _, strat := range ordered {
		stats, ok := byStrategy[strat]
		if !ok {
			continue
		}
		if decided := stats.Wins + stats.Losses; decided > 0 {
			stats.WinRate = float64(stats.Wins) / float64(decided)
		}
		result = append(result, *stats)
	}
	return result, nil
}
