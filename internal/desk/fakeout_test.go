package desk

import (
	"testing"

	"Commander/internal/domain/models"
)

func TestDetectFakeoutBullTrap(t *testing.T) {
	d := neutralSnapshot()
	d.Price = 5605
	d.ZeroGamma = 5580
	d.VolumeDelta = -0.5

	risk, warnings := DetectFakeout(d)
	if risk != models.FakeoutHigh {
		t.Fatalf("risk = %s, want high", risk)
	}
	if len(warnings) == 0 {
		t.Error("expected a bull trap warning")
	}
}

func TestDetectFakeoutBearTrap(t *testing.T) {
	d := neutralSnapshot()
	d.Price = 5550
	d.ZeroGamma = 5580
	d.VolumeDelta = 1.0

	risk, _ := DetectFakeout(d)
	if risk != models.FakeoutHigh {
		t.Fatalf("risk = %s, want high", risk)
	}
}

func TestDetectFakeoutWeakInternals(t *testing.T) {
	d := neutralSnapshot()
	d.Price = 5605
	d.ZeroGamma = 5580
	d.VolumeDelta = 1.0
	d.Internals = &models.Internals{VOLD: 0.2, TICK: 50, ADDLine: models.LineRising}

	risk, _ := DetectFakeout(d)
	if risk != models.FakeoutMedium {
		t.Fatalf("risk = %s, want medium", risk)
	}
}

func TestDetectFakeoutMixedDarkPool(t *testing.T) {
	d := neutralSnapshot()
	d.Price = 5605
	d.ZeroGamma = 5580
	d.VolumeDelta = 1.0
	d.Internals = &models.Internals{VOLD: 1.0, TICK: 300, ADDLine: models.LineRising}
	d.DarkPool = models.PrintsMixed

	risk, _ := DetectFakeout(d)
	if risk != models.FakeoutMedium {
		t.Fatalf("risk = %s, want medium", risk)
	}
}

func TestDetectFakeoutClean(t *testing.T) {
	d := neutralSnapshot()
	d.Price = 5605
	d.ZeroGamma = 5580
	d.VolumeDelta = 1.2
	d.Internals = &models.Internals{VOLD: 1.0, TICK: 300, ADDLine: models.LineRising}
	d.DarkPool = models.PrintsBuying

	risk, warnings := DetectFakeout(d)
	if risk != models.FakeoutLow {
		t.Fatalf("risk = %s, want low", risk)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestDetectFakeoutFallsBackToPrevClose(t *testing.T) {
	d := neutralSnapshot()
	d.ZeroGamma = 0
	d.PrevClose = 5610
	d.Price = 5600 // below prev close
	d.VolumeDelta = 1.0

	risk, _ := DetectFakeout(d)
	if risk != models.FakeoutHigh {
		t.Fatalf("risk = %s, want high via prev close reference", risk)
	}
}

func TestFakeoutRiskNeverDeescalates(t *testing.T) {
	if got := models.FakeoutHigh.Escalate(models.FakeoutLow); got != models.FakeoutHigh {
		t.Fatalf("high escalated to %s", got)
	}
	if got := models.FakeoutLow.Escalate(models.FakeoutMedium); got != models.FakeoutMedium {
		t.Fatalf("low -> medium gave %s", got)
	}
}
