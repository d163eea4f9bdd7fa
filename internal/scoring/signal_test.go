package scoring

import (
	"testing"

	"Commander/internal/domain/models"
)

func TestMapSignalBreakpoints(t *testing.T) {
	cases := []struct {
		score int
		want  models.Signal
	}{
		{100, models.SignalStrongBuy},
		{78, models.SignalStrongBuy},
		{77, models.SignalBuy},
		{62, models.SignalBuy},
		{61, models.SignalNeutral},
		{42, models.SignalNeutral},
		{41, models.SignalAvoid},
		{28, models.SignalAvoid},
		{27, models.SignalStrongAvoid},
		{0, models.SignalStrongAvoid},
		{1000, models.SignalStrongBuy},
		{-50, models.SignalStrongAvoid},
	}
	for _, c := range cases {
		if got := MapSignal(c.score); got != c.want {
			t.Errorf("MapSignal(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestMapSignalMonotonic(t *testing.T) {
	prev := MapSignal(-20)
	for score := -19; score <= 120; score++ {
		cur := MapSignal(score)
		if cur.Rank() < prev.Rank() {
			t.Fatalf("signal rank decreased at score %d: %s -> %s", score, prev, cur)
		}
		prev = cur
	}
}

func TestClampScore(t *testing.T) {
	if got := clampScore(-51); got != 0 {
		t.Errorf("clampScore(-51) = %d, want 0", got)
	}
	if got := clampScore(140); got != 100 {
		t.Errorf("clampScore(140) = %d, want 100", got)
	}
	if got := clampScore(73); got != 73 {
		t.Errorf("clampScore(73) = %d, want 73", got)
	}
}
