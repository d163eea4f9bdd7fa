package desk

import (
	"testing"

	"Commander/internal/domain/models"
)

func TestGateChoppyAlwaysNoTrade(t *testing.T) {
	// Even with every other input at its best.
	status, reason := GateStatus(models.RegimeChoppyFakeout, models.FakeoutLow, FlowConfirming, AlignAligned)
	if status != models.StatusNoTrade {
		t.Fatalf("status = %s, want no_trade", status)
	}
	if reason == "" {
		t.Error("expected a status reason")
	}
}

func TestGateHighFakeoutNoTrade(t *testing.T) {
	status, _ := GateStatus(models.RegimeTrendDay, models.FakeoutHigh, FlowConfirming, AlignAligned)
	if status != models.StatusNoTrade {
		t.Fatalf("status = %s, want no_trade", status)
	}
}

func TestGateDivergingOpposedNoTrade(t *testing.T) {
	status, _ := GateStatus(models.RegimeTrendDay, models.FakeoutLow, FlowDiverging, AlignOpposed)
	if status != models.StatusNoTrade {
		t.Fatalf("status = %s, want no_trade", status)
	}
}

func TestGateMediumRiskCaution(t *testing.T) {
	status, _ := GateStatus(models.RegimeTrendDay, models.FakeoutMedium, FlowConfirming, AlignAligned)
	if status != models.StatusCaution {
		t.Fatalf("status = %s, want caution", status)
	}
}

func TestGateNeutralFlowCaution(t *testing.T) {
	status, _ := GateStatus(models.RegimeMeanReversion, models.FakeoutLow, FlowNeutralChk, AlignAligned)
	if status != models.StatusCaution {
		t.Fatalf("status = %s, want caution", status)
	}
}

func TestGateGreenLight(t *testing.T) {
	status, _ := GateStatus(models.RegimeTrendDay, models.FakeoutLow, FlowConfirming, AlignNeutral)
	if status != models.StatusGreenLight {
		t.Fatalf("status = %s, want green_light", status)
	}
}

func TestGateDefaultCaution(t *testing.T) {
	// Diverging flow with aligned institutions: no rule fires until the default.
	status, _ := GateStatus(models.RegimeTrendDay, models.FakeoutLow, FlowDiverging, AlignAligned)
	if status != models.StatusCaution {
		t.Fatalf("status = %s, want caution default", status)
	}
}

func TestCheckVolumeDelta(t *testing.T) {
	cases := []struct {
		vd        float64
		direction models.Direction
		want      FlowCheck
	}{
		{2.0, models.DirectionBullish, FlowConfirming},
		{-2.0, models.DirectionBullish, FlowDiverging},
		{-2.0, models.DirectionBearish, FlowConfirming},
		{2.0, models.DirectionBearish, FlowDiverging},
		{0.3, models.DirectionBullish, FlowNeutralChk},
		{2.0, models.DirectionNeutral, FlowNeutralChk},
	}
	for _, c := range cases {
		if got := CheckVolumeDelta(c.vd, c.direction); got != c.want {
			t.Errorf("CheckVolumeDelta(%.1f, %s) = %s, want %s", c.vd, c.direction, got, c.want)
		}
	}
}

func TestCheckInstitutional(t *testing.T) {
	cases := []struct {
		prints    models.PrintDirection
		direction models.Direction
		want      Alignment
	}{
		{models.PrintsBuying, models.DirectionBullish, AlignAligned},
		{models.PrintsSelling, models.DirectionBullish, AlignOpposed},
		{models.PrintsSelling, models.DirectionBearish, AlignAligned},
		{models.PrintsBuying, models.DirectionBearish, AlignOpposed},
		{models.PrintsMixed, models.DirectionBullish, AlignNeutral},
		{models.PrintsBuying, models.DirectionNeutral, AlignNeutral},
	}
	for _, c := range cases {
		if got := CheckInstitutional(c.prints, c.direction); got != c.want {
			t.Errorf("CheckInstitutional(%s, %s) = %s, want %s", c.prints, c.direction, got, c.want)
		}
	}
}
