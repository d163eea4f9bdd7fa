package desk

import (
	"fmt"
	"time"
)

// WindowQuality grades a time-of-day window for 0-DTE entries.
type WindowQuality string

const (
	WindowInfo       WindowQuality = "info"
	WindowAvoid      WindowQuality = "avoid"
	WindowOptimal    WindowQuality = "optimal"
	WindowAcceptable WindowQuality = "acceptable"
	WindowCaution    WindowQuality = "caution"
	WindowDanger     WindowQuality = "danger"
	WindowLethal     WindowQuality = "lethal"
	WindowClosed     WindowQuality = "closed"
)

// hardExitMinute is when all 0-DTE positions come off regardless of P/L.
const hardExitMinute = 950

type TradingWindow struct {
	Name     string
	Start    int // minutes from midnight ET, inclusive
	End      int // exclusive
	Quality  WindowQuality
	Guidance string
}

var tradingWindows = []TradingWindow{
	{"Pre-Market", 480, 570, WindowInfo, "build the plan, no fills"},
	{"Opening Range", 570, 585, WindowAvoid, "let the open settle"},
	{"Optimal Entry", 585, 615, WindowOptimal, "best liquidity-to-noise ratio of the day"},
	{"Mid-Day", 615, 840, WindowAcceptable, "tradeable, expect slower tape"},
	{"Power Hour", 840, 900, WindowCaution, "charm flows accelerate"},
	{"Danger Zone", 900, 950, WindowDanger, "gamma is extreme, spreads widen"},
	{"Final Minutes", 950, 960, WindowLethal, "exit only, never enter"},
}

// WindowAt returns the trading window covering a moment in Eastern Time.
func WindowAt(t time.Time, loc *time.Location) TradingWindow {
	local := t.In(loc)
	minute := local.Hour()*60 + local.Minute()
	for _, w := range tradingWindows {
		if minute >= w.Start && minute < w.End {
			return w
		}
	}
	return TradingWindow{Name: "Closed", Quality: WindowClosed, Guidance: "market closed"}
}

// MustExit reports whether the hard exit rule is in effect.
func MustExit(t time.Time, loc *time.Location) bool {
	local := t.In(loc)
	minute := local.Hour()*60 + local.Minute()
	return minute >= hardExitMinute && minute < 960
}

// KillSwitchInput carries the vol readings the kill switch watches.
type KillSwitchInput struct {
	VIXRegimeExtreme bool
	Backwardation    bool
	VIX1DChangePct   float64
	Window           WindowQuality
}

// KillSwitchResult reports whether trading is halted and why. Warning-only
// conditions are listed without halting.
type KillSwitchResult struct {
	Halted   bool
	Reasons  []string
	Warnings []string
}

// CheckKillSwitch evaluates the hard-stop conditions. Any single halt
// condition stops new entries for the rest of the session.
func CheckKillSwitch(in KillSwitchInput) KillSwitchResult {
	var result KillSwitchResult

	if in.VIX1DChangePct > 10 {
		result.Halted = true
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("VIX1D up %.1f%%, vol event in progress", in.VIX1DChangePct))
	} else if in.VIX1DChangePct > 5 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("VIX1D up %.1f%%, watch for vol expansion", in.VIX1DChangePct))
	}

	if in.Window == WindowLethal || in.Window == WindowDanger {
		result.Halted = true
		result.Reasons = append(result.Reasons, fmt.Sprintf("inside %s window", in.Window))
	}

	if in.VIXRegimeExtreme {
		result.Halted = true
		result.Reasons = append(result.Reasons, "VIX regime extreme")
	}

	if in.Backwardation {
		result.Halted = true
		result.Reasons = append(result.Reasons, "VIX term structure in backwardation")
	}

	return result
}
