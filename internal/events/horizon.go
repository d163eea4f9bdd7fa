package events

import (
	"fmt"
	"sort"
	"time"

	"Commander/internal/domain/models"
)

// defaultFOMCDates are the scheduled rate-decision days. Overridable from
// config so the calendar can be extended without a rebuild.
var defaultFOMCDates = []string{
	"2025-01-29", "2025-03-19", "2025-05-07", "2025-06-18",
	"2025-07-30", "2025-09-17", "2025-10-29", "2025-12-10",
	"2026-01-28", "2026-03-18", "2026-04-29", "2026-06-17",
	"2026-07-29", "2026-09-16", "2026-10-28", "2026-12-09",
	"2027-01-27", "2027-03-17", "2027-04-28", "2027-06-16",
	"2027-07-28", "2027-09-15", "2027-10-27", "2027-12-08",
}

// horizonDays is how far ahead the horizon looks.
const horizonDays = 14

// Horizon assesses upcoming macro events and turns proximity into a
// confidence adjustment and, close enough, a binary no-trade override.
type Horizon struct {
	fomc     []time.Time
	blackout bool
}

// NewHorizon builds a horizon from YYYY-MM-DD calendar dates. Empty dates
// fall back to the built-in FOMC calendar. Blackout mode applies the
// stricter adjustment ladder used during earnings blackout periods.
func NewHorizon(dates []string, blackout bool) (*Horizon, error) {
	if len(dates) == 0 {
		dates = defaultFOMCDates
	}
	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("parse calendar date %q: %w", d, err)
		}
		parsed = append(parsed, t)
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })
	return &Horizon{fomc: parsed, blackout: blackout}, nil
}

// Assessment is the horizon's view of the event landscape at one moment.
type Assessment struct {
	Events        []models.MacroEvent
	Adjustment    float64 // signed, floored at -50
	BinaryEvent   bool
	BinaryReason  string
	DaysToNearest int // -1 when nothing is on the horizon
	Warnings      []string
}

// Assess merges the calendar with provider-supplied events and grades the
// horizon. The adjustment ladder keys off the nearest event: inside 2 days
// the full block applies, inside 5 high risk, inside 10 caution. A
// high-impact event inside 5 days is a binary override.
func (h *Horizon) Assess(now time.Time, extra []models.MacroEvent) Assessment {
	assessment := Assessment{DaysToNearest: -1}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var events []models.MacroEvent
	for _, date := range h.fomc {
		days := int(date.Sub(today).Hours() / 24)
		if days < 0 || days > horizonDays {
			continue
		}
		events = append(events, models.MacroEvent{
			Type:        "fomc",
			Date:        date,
			DaysAway:    days,
			Impact:      "high",
			Description: "FOMC rate decision",
		})
	}
	for _, ev := range extra {
		if ev.DaysAway < 0 || ev.DaysAway > horizonDays {
			continue
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].DaysAway < events[j].DaysAway })
	assessment.Events = events

	if len(events) == 0 {
		return assessment
	}

	nearest := events[0]
	assessment.DaysToNearest = nearest.DaysAway
	assessment.Adjustment = h.ladder(nearest.DaysAway)

	if assessment.Adjustment < -50 {
		assessment.Adjustment = -50
	}
	if assessment.Adjustment != 0 {
		assessment.Warnings = append(assessment.Warnings,
			fmt.Sprintf("%s in %d days", nearest.Description, nearest.DaysAway))
	}

	for _, ev := range events {
		if ev.Impact == "high" && ev.DaysAway <= 5 {
			assessment.BinaryEvent = true
			assessment.BinaryReason = fmt.Sprintf("%s in %d days", ev.Description, ev.DaysAway)
			break
		}
	}

	return assessment
}

func (h *Horizon) ladder(days int) float64 {
	if h.blackout {
		switch {
		case days <= 2:
			return -50
		case days <= 5:
			return -20
		case days <= 10:
			return -5
		}
		return 0
	}
	switch {
	case days <= 2:
		return -50
	case days <= 5:
		return -25
	case days <= 10:
		return -10
	}
	return 0
}
