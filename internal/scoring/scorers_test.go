package scoring

import (
	"reflect"
	"testing"

	"Commander/internal/domain/models"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestScoreIPMCCOptimalSetup(t *testing.T) {
	snap := models.MarketSnapshot{
		Ticker:   "AAPL",
		Price:    225.10,
		IVRank:   fp(55),
		SectorRS: fp(1.10),
	}
	macro := models.MacroContext{
		VIX:       17.2,
		VIXRegime: models.VIXElevated,
		SPYTrend:  models.TrendBullish,
	}

	got := ScoreIPMCC(snap, macro)
	if got.Score != 95 {
		t.Fatalf("score = %d, want 95 (50 base +25 IV +12 RS +8 trend)", got.Score)
	}
	if got.Signal != models.SignalStrongBuy {
		t.Errorf("signal = %s, want strong_buy", got.Signal)
	}
}

func TestScoreIPMCCMissingIV(t *testing.T) {
	snap := models.MarketSnapshot{Ticker: "XYZ", Price: 50}
	macro := models.MacroContext{VIXRegime: models.VIXLow, SPYTrend: models.TrendNeutral}

	got := ScoreIPMCC(snap, macro)
	if got.Score != 50 {
		t.Fatalf("score = %d, want base 50 with no IV delta", got.Score)
	}
	if got.Reason != "Missing IV data" {
		t.Errorf("reason = %q, want Missing IV data", got.Reason)
	}
	if len(got.Warnings) == 0 {
		t.Error("expected a missing-data warning")
	}
}

func TestScoreIPMCCClampsAtZero(t *testing.T) {
	snap := models.MarketSnapshot{
		Ticker:         "BAD",
		Price:          12,
		IVRank:         fp(10),
		SectorRS:       fp(0.80),
		DaysToEarnings: ip(5),
	}
	macro := models.MacroContext{
		VIX:       34,
		VIXRegime: models.VIXExtreme,
		SPYTrend:  models.TrendBearish,
	}

	got := ScoreIPMCC(snap, macro)
	if got.Score != 0 {
		t.Fatalf("score = %d, want clamp to 0", got.Score)
	}
	if got.Signal != models.SignalStrongAvoid {
		t.Errorf("signal = %s, want strong_avoid", got.Signal)
	}
}

func TestScore112TrendingAligned(t *testing.T) {
	snap := models.MarketSnapshot{
		Ticker:   "SPY",
		Price:    560,
		IVRank:   fp(45),
		SectorRS: fp(1.20),
	}
	macro := models.MacroContext{
		VIXRegime: models.VIXLow,
		SPYTrend:  models.TrendBullish,
	}

	got := Score112(snap, macro)
	// 50 +22 IV ideal +18 trending +10 sector aligned, clamped to 100
	if got.Score != 100 {
		t.Fatalf("score = %d, want 100", got.Score)
	}
	if got.Signal != models.SignalStrongBuy {
		t.Errorf("signal = %s, want strong_buy", got.Signal)
	}
}

func TestScore112NeutralLowIV(t *testing.T) {
	snap := models.MarketSnapshot{Ticker: "KO", Price: 62, IVRank: fp(20)}
	macro := models.MacroContext{VIXRegime: models.VIXLow, SPYTrend: models.TrendNeutral}

	got := Score112(snap, macro)
	// 50 -18 IV -8 neutral = 24
	if got.Score != 24 {
		t.Fatalf("score = %d, want 24", got.Score)
	}
	if got.Signal != models.SignalStrongAvoid {
		t.Errorf("signal = %s, want strong_avoid", got.Signal)
	}
}

func TestScoreStrangleTrendingWithEarnings(t *testing.T) {
	snap := models.MarketSnapshot{
		Ticker:         "NVDA",
		Price:          131,
		IVRank:         fp(35),
		DaysToEarnings: ip(10),
	}
	macro := models.MacroContext{
		VIXRegime: models.VIXLow,
		SPYTrend:  models.TrendBullish,
	}

	got := ScoreStrangle(snap, macro)
	if got.Score != 0 {
		t.Fatalf("score = %d, want clamp to 0", got.Score)
	}
	if got.Signal != models.SignalStrongAvoid {
		t.Errorf("signal = %s, want strong_avoid", got.Signal)
	}
}

func TestScoreStrangleIdealSetup(t *testing.T) {
	snap := models.MarketSnapshot{Ticker: "TLT", Price: 93, IVRank: fp(65)}
	macro := models.MacroContext{VIXRegime: models.VIXLow, SPYTrend: models.TrendNeutral}

	got := ScoreStrangle(snap, macro)
	// 40 +38 IDEAL +18 neutral = 96
	if got.Score != 96 {
		t.Fatalf("score = %d, want 96", got.Score)
	}
	if got.Signal != models.SignalStrongBuy {
		t.Errorf("signal = %s, want strong_buy", got.Signal)
	}
}

func TestScorerIdempotence(t *testing.T) {
	snap := models.MarketSnapshot{
		Ticker:         "MSFT",
		Price:          420,
		IVRank:         fp(48),
		SectorRS:       fp(1.02),
		DaysToEarnings: ip(40),
	}
	macro := models.MacroContext{
		VIX:       19,
		VIXRegime: models.VIXElevated,
		SPYTrend:  models.TrendBullish,
	}

	first := ScoreAll(snap, macro)
	second := ScoreAll(snap, macro)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different scores")
	}
}

func TestScoresAlwaysInRange(t *testing.T) {
	ivs := []*float64{nil, fp(0), fp(25), fp(45), fp(65), fp(100)}
	earnings := []*int{nil, ip(3), ip(20), ip(60)}
	trends := []models.Trend{models.TrendBullish, models.TrendBearish, models.TrendNeutral}
	regimes := []models.VIXRegime{models.VIXLow, models.VIXHigh, models.VIXExtreme}

	for _, iv := range ivs {
		for _, e := range earnings {
			for _, tr := range trends {
				for _, vr := range regimes {
					snap := models.MarketSnapshot{Ticker: "T", Price: 100, IVRank: iv, DaysToEarnings: e}
					macro := models.MacroContext{SPYTrend: tr, VIXRegime: vr}
					for _, score := range ScoreAll(snap, macro) {
						if score.Score < 0 || score.Score > 100 {
							t.Fatalf("%s score %d out of [0,100]", score.Strategy, score.Score)
						}
					}
				}
			}
		}
	}
}
