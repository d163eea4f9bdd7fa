package desk

import (
	"math"
	"testing"

	"Commander/internal/domain/models"
)

func TestComputeKeyLevels(t *testing.T) {
	profile := []models.StrikeGamma{
		{Strike: 90, PutOI: 2000, PutGamma: 0.03},
		{Strike: 100, CallOI: 1000, CallGamma: 0.02},
		{Strike: 110, CallOI: 3000, CallGamma: 0.02},
	}

	levels := ComputeKeyLevels(profile, 100)

	if levels.CallWall != 110 {
		t.Errorf("call wall = %.0f, want 110", levels.CallWall)
	}
	if levels.PutWall != 90 {
		t.Errorf("put wall = %.0f, want 90", levels.PutWall)
	}
	if levels.MaxPain != 110 {
		t.Errorf("max pain = %.0f, want 110", levels.MaxPain)
	}
	// per-strike net GEX: -0.06, +0.02, +0.06 -> total +0.02
	if math.Abs(levels.NetGEX-0.02) > 1e-9 {
		t.Errorf("net GEX = %.4f, want 0.02", levels.NetGEX)
	}
	// cumulative crosses zero between 100 and 110 at 2/3 of the gap
	wantFlip := 100 + 10*(2.0/3.0)
	if math.Abs(levels.GammaFlip-wantFlip) > 0.01 {
		t.Errorf("gamma flip = %.2f, want %.2f", levels.GammaFlip, wantFlip)
	}
}

func TestComputeKeyLevelsEmptyProfile(t *testing.T) {
	levels := ComputeKeyLevels(nil, 100)
	if levels != (models.KeyLevels{}) {
		t.Errorf("empty profile should give zero levels, got %+v", levels)
	}
}

func TestComputeKeyLevelsUnsortedInput(t *testing.T) {
	profile := []models.StrikeGamma{
		{Strike: 110, CallOI: 3000, CallGamma: 0.02},
		{Strike: 90, PutOI: 2000, PutGamma: 0.03},
		{Strike: 100, CallOI: 1000, CallGamma: 0.02},
	}
	levels := ComputeKeyLevels(profile, 100)
	if levels.CallWall != 110 || levels.PutWall != 90 {
		t.Errorf("walls = %.0f/%.0f, want 110/90 regardless of input order", levels.CallWall, levels.PutWall)
	}
}
