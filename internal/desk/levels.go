package desk

import (
	"sort"

	"Commander/internal/domain/models"
)

// strikeGEX converts open interest and gamma at one strike into dollar
// gamma exposure in billions. Calls are dealer-long (positive), puts
// dealer-short (negative).
func strikeGEX(gamma, oi, spot float64) float64 {
	return gamma * oi * 100 * spot * spot / 1e9
}

// ComputeKeyLevels derives the structural levels from a per-strike gamma
// profile: call wall (max call GEX above spot), put wall (max put GEX
// magnitude below spot), gamma flip (net GEX zero crossing nearest spot,
// linearly interpolated) and max pain (max total open interest).
func ComputeKeyLevels(profile []models.StrikeGamma, spot float64) models.KeyLevels {
	if len(profile) == 0 {
		return models.KeyLevels{}
	}

	sorted := make([]models.StrikeGamma, len(profile))
	copy(sorted, profile)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Strike < sorted[j].Strike })

	var levels models.KeyLevels
	var maxCallGEX, maxPutGEX, maxOI float64
	netByStrike := make([]float64, len(sorted))

	for i, row := range sorted {
		callGEX := strikeGEX(row.CallGamma, row.CallOI, spot)
		putGEX := -strikeGEX(row.PutGamma, row.PutOI, spot)
		netByStrike[i] = callGEX + putGEX
		levels.NetGEX += callGEX + putGEX

		if row.Strike > spot && callGEX > maxCallGEX {
			maxCallGEX = callGEX
			levels.CallWall = row.Strike
		}
		if row.Strike < spot && -putGEX > maxPutGEX {
			maxPutGEX = -putGEX
			levels.PutWall = row.Strike
		}
		if totalOI := row.CallOI + row.PutOI; totalOI > maxOI {
			maxOI = totalOI
			levels.MaxPain = row.Strike
		}
	}

	levels.GammaFlip = gammaFlip(sorted, netByStrike, spot)
	return levels
}

// gammaFlip finds the zero crossing of cumulative net GEX nearest spot.
func gammaFlip(sorted []models.StrikeGamma, net []float64, spot float64) float64 {
	cumulative := make([]float64, len(net))
	var running float64
	for i, v := range net {
		running += v
		cumulative[i] = running
	}

	var flip float64
	found := false
	for i := 1; i < len(cumulative); i++ {
		prev, cur := cumulative[i-1], cumulative[i]
		if prev == 0 || (prev < 0) == (cur < 0) {
			continue
		}
		// interpolate between the straddling strikes
		lo, hi := sorted[i-1].Strike, sorted[i].Strike
		frac := prev / (prev - cur)
		candidate := lo + frac*(hi-lo)
		if !found || absF(candidate-spot) < absF(flip-spot) {
			flip = candidate
			found = true
		}
	}
	if !found {
		return 0
	}
	return flip
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
