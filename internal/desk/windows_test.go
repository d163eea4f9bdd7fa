package desk

import (
	"testing"
	"time"
)

var et = time.FixedZone("ET", -5*3600)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 10, hour, min, 0, 0, et)
}

func TestWindowAt(t *testing.T) {
	cases := []struct {
		hour, min int
		want      WindowQuality
	}{
		{8, 30, WindowInfo},        // pre-market
		{9, 35, WindowAvoid},       // opening range
		{9, 45, WindowOptimal},     // optimal entry
		{12, 0, WindowAcceptable},  // mid-day
		{14, 30, WindowCaution},    // power hour
		{15, 20, WindowDanger},     // danger zone
		{15, 55, WindowLethal},     // final minutes
		{20, 0, WindowClosed},      // after hours
		{4, 0, WindowClosed},       // overnight
	}
	for _, c := range cases {
		got := WindowAt(at(c.hour, c.min), et)
		if got.Quality != c.want {
			t.Errorf("WindowAt(%02d:%02d) = %s, want %s", c.hour, c.min, got.Quality, c.want)
		}
	}
}

func TestMustExit(t *testing.T) {
	if MustExit(at(15, 45), et) {
		t.Error("15:45 should not force exit")
	}
	if !MustExit(at(15, 50), et) {
		t.Error("15:50 should force exit")
	}
	if !MustExit(at(15, 59), et) {
		t.Error("15:59 should force exit")
	}
	if MustExit(at(16, 0), et) {
		t.Error("after the close there is nothing to exit")
	}
}

func TestKillSwitchVIX1DSpike(t *testing.T) {
	got := CheckKillSwitch(KillSwitchInput{VIX1DChangePct: 12, Window: WindowOptimal})
	if !got.Halted {
		t.Fatal("12% VIX1D spike should halt")
	}

	got = CheckKillSwitch(KillSwitchInput{VIX1DChangePct: 6, Window: WindowOptimal})
	if got.Halted {
		t.Fatal("6% VIX1D move should warn, not halt")
	}
	if len(got.Warnings) == 0 {
		t.Error("expected a warning")
	}
}

func TestKillSwitchWindows(t *testing.T) {
	for _, q := range []WindowQuality{WindowDanger, WindowLethal} {
		if got := CheckKillSwitch(KillSwitchInput{Window: q}); !got.Halted {
			t.Errorf("window %s should halt", q)
		}
	}
	if got := CheckKillSwitch(KillSwitchInput{Window: WindowOptimal}); got.Halted {
		t.Error("optimal window alone should not halt")
	}
}

func TestKillSwitchVolConditions(t *testing.T) {
	if got := CheckKillSwitch(KillSwitchInput{VIXRegimeExtreme: true, Window: WindowOptimal}); !got.Halted {
		t.Error("extreme VIX should halt")
	}
	if got := CheckKillSwitch(KillSwitchInput{Backwardation: true, Window: WindowOptimal}); !got.Halted {
		t.Error("backwardation should halt")
	}
}

func TestKillSwitchStacksReasons(t *testing.T) {
	got := CheckKillSwitch(KillSwitchInput{
		VIX1DChangePct:   15,
		VIXRegimeExtreme: true,
		Backwardation:    true,
		Window:           WindowLethal,
	})
	if !got.Halted {
		t.Fatal("should halt")
	}
	if len(got.Reasons) != 4 {
		t.Errorf("reasons = %d, want all four recorded", len(got.Reasons))
	}
}
