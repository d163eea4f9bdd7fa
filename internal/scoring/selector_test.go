package scoring

import (
	"errors"
	"testing"

	"Commander/internal/domain/models"
)

func scoresOf(ipmcc, t112, strangle int) []models.StrategyScore {
	return []models.StrategyScore{
		{Strategy: models.StrategyIPMCC, Score: ipmcc, Signal: MapSignal(ipmcc)},
		{Strategy: models.StrategyT112, Score: t112, Signal: MapSignal(t112)},
		{Strategy: models.StrategyStrangle, Score: strangle, Signal: MapSignal(strangle)},
	}
}

func TestSelectArgmax(t *testing.T) {
	got, err := Select(scoresOf(40, 85, 60), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Strategy != models.StrategyT112 || got.Score != 85 {
		t.Errorf("selected %s/%d, want 112/85", got.Strategy, got.Score)
	}
}

func TestSelectTieBreakOrder(t *testing.T) {
	// All equal: IPMCC wins.
	got, err := Select(scoresOf(60, 60, 60), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Strategy != models.StrategyIPMCC {
		t.Errorf("three-way tie selected %s, want ipmcc", got.Strategy)
	}

	// 112 and strangle tied above IPMCC: 112 wins.
	got, err = Select(scoresOf(50, 70, 70), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Strategy != models.StrategyT112 {
		t.Errorf("two-way tie selected %s, want 112", got.Strategy)
	}
}

func TestSelectForcedStrategy(t *testing.T) {
	scores := scoresOf(90, 80, 20)
	got, err := Select(scores, models.StrategyStrangle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Strategy != models.StrategyStrangle || got.Score != 20 {
		t.Errorf("forced selection = %s/%d, want strangle/20", got.Strategy, got.Score)
	}
}

func TestSelectForcedNotScored(t *testing.T) {
	scores := []models.StrategyScore{
		{Strategy: models.StrategyIPMCC, Score: 70},
	}
	_, err := Select(scores, models.StrategyStrangle)
	if !errors.Is(err, ErrStrategyNotScored) {
		t.Fatalf("err = %v, want ErrStrategyNotScored", err)
	}
}

func TestSelectEmpty(t *testing.T) {
	if _, err := Select(nil, ""); err == nil {
		t.Fatal("expected error for empty scores")
	}
}
