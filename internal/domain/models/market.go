package models

import "time"

// VIX regime buckets derived from fixed level thresholds.
type VIXRegime string

const (
	VIXLow      VIXRegime = "low"      // < 15
	VIXElevated VIXRegime = "elevated" // < 20
	VIXHigh     VIXRegime = "high"     // < 30
	VIXExtreme  VIXRegime = "extreme"  // >= 30
)

// VIXRegimeFor buckets a VIX level into its regime.
func VIXRegimeFor(vix float64) VIXRegime {
	switch {
	case vix < 15:
		return VIXLow
	case vix < 20:
		return VIXElevated
	case vix < 30:
		return VIXHigh
	default:
		return VIXExtreme
	}
}

type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

// TrendFor derives the benchmark trend from its percent change,
// with a 0.5% neutral band.
func TrendFor(changePct float64) Trend {
	switch {
	case changePct > 0.5:
		return TrendBullish
	case changePct < -0.5:
		return TrendBearish
	default:
		return TrendNeutral
	}
}

// VIX term structure shape, vix1d relative to spot VIX.
type TermStructure string

const (
	TermContango      TermStructure = "contango"      // vix1d < vix*0.95
	TermBackwardation TermStructure = "backwardation" // vix1d > vix*1.05
	TermFlat          TermStructure = "flat"
)

func TermStructureFor(vix, vix1d float64) TermStructure {
	switch {
	case vix1d < vix*0.95:
		return TermContango
	case vix1d > vix*1.05:
		return TermBackwardation
	default:
		return TermFlat
	}
}

type SectorFlow string

const (
	FlowInflow  SectorFlow = "inflow"
	FlowOutflow SectorFlow = "outflow"
	FlowNeutral SectorFlow = "neutral"
)

// MarketSnapshot is the canonical per-ticker input to the strategy scorers.
// Optional fields are pointers; nil means the provider had no data and the
// scorers degrade gracefully instead of failing.
type MarketSnapshot struct {
	Ticker         string
	Price          float64
	ChangePct      float64
	IVRank         *float64 // 0-100
	IVPercentile   *float64
	SectorRS       *float64 // sector relative-strength ratio, 1.0 = in line
	DaysToEarnings *int
	Sector         string
	AsOf           time.Time
}

// MissingFields lists the optional inputs that were unavailable.
func (s *MarketSnapshot) MissingFields() []string {
	var missing []string
	if s.IVRank == nil {
		missing = append(missing, "iv_rank")
	}
	if s.SectorRS == nil {
		missing = append(missing, "sector_rs")
	}
	if s.DaysToEarnings == nil {
		missing = append(missing, "days_to_earnings")
	}
	return missing
}

// Quote is one streamed price update used to keep the snapshot cache warm.
type Quote struct {
	Ticker    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}

type MacroEvent struct {
	Type        string
	Ticker      string // empty for market-wide events
	Date        time.Time
	DaysAway    int
	Impact      string // "high", "medium", "low"
	Description string
}

// MacroContext is the market-wide backdrop applied to every scorer call and
// to the desk macro-override layer. Immutable once collated.
type MacroContext struct {
	VIX             float64
	VIXRegime       VIXRegime
	SPYTrend        Trend
	SPYChangePct    float64
	DaysToNextEvent int
	BinaryEvent     bool
	BinaryReason    string
	SectorFlow      SectorFlow // "" when unknown
	Adjustment      float64    // signed confidence contribution, floored at -50
	Events          []MacroEvent
	Warnings        []string
}
