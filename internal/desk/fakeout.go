package desk

import "Commander/internal/domain/models"

// DetectFakeout flags price-versus-flow divergences. Each rule appends a
// warning and may escalate risk; risk never drops within a pass. The
// reference level is zero gamma, falling back to prior close when no
// gamma profile is available.
func DetectFakeout(d models.DealerSnapshot) (models.FakeoutRisk, []string) {
	risk := models.FakeoutLow
	var warnings []string

	reference := d.ZeroGamma
	if reference == 0 {
		reference = d.PrevClose
	}

	aboveRef := d.Price > reference
	belowRef := d.Price < reference

	if aboveRef && d.VolumeDelta <= 0 {
		risk = risk.Escalate(models.FakeoutHigh)
		warnings = append(warnings, "bull trap: price above reference without buy-side volume")
	}
	if belowRef && d.VolumeDelta > 0 {
		risk = risk.Escalate(models.FakeoutHigh)
		warnings = append(warnings, "bear trap: price below reference against buy-side volume")
	}

	if aboveRef && d.Internals != nil {
		confirmed := d.Internals.VOLD > 0.5 && d.Internals.TICK > 100
		if !confirmed {
			risk = risk.Escalate(models.FakeoutMedium)
			warnings = append(warnings, "internals not confirming the move above reference")
		}
	}

	if d.DarkPool == models.PrintsMixed {
		risk = risk.Escalate(models.FakeoutMedium)
		warnings = append(warnings, "dark pool prints mixed")
	}

	return risk, warnings
}
