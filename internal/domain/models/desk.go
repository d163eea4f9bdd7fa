package models

// Dealer-positioning regime, one of five mutually exclusive classifications.
type Regime string

const (
	RegimeTrendDay      Regime = "trend_day"
	RegimeMeanReversion Regime = "mean_reversion"
	RegimeVolBreakout   Regime = "volatility_breakout"
	RegimeGammaSqueeze  Regime = "gamma_squeeze"
	RegimeChoppyFakeout Regime = "choppy_fakeout"
)

type Status string

const (
	StatusGreenLight Status = "green_light"
	StatusCaution    Status = "caution"
	StatusNoTrade    Status = "no_trade"
)

type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
	DirectionNeutral Direction = "neutral"
	DirectionNone    Direction = "none"
)

type FakeoutRisk string

const (
	FakeoutLow    FakeoutRisk = "low"
	FakeoutMedium FakeoutRisk = "medium"
	FakeoutHigh   FakeoutRisk = "high"
)

// Escalate returns the higher of the two risk levels. Risk never
// de-escalates within a single detection pass.
func (r FakeoutRisk) Escalate(to FakeoutRisk) FakeoutRisk {
	if r.rank() >= to.rank() {
		return r
	}
	return to
}

func (r FakeoutRisk) rank() int {
	switch r {
	case FakeoutHigh:
		return 2
	case FakeoutMedium:
		return 1
	default:
		return 0
	}
}

type VannaFlow string

const (
	VannaSupportive VannaFlow = "supportive"
	VannaHostile    VannaFlow = "hostile"
	VannaNeutral    VannaFlow = "neutral"
)

type CharmEffect string

const (
	CharmPinning   CharmEffect = "pinning"
	CharmUnpinning CharmEffect = "unpinning"
	CharmNeutral   CharmEffect = "neutral"
)

type PrintDirection string

const (
	PrintsBuying  PrintDirection = "buying"
	PrintsSelling PrintDirection = "selling"
	PrintsMixed   PrintDirection = "mixed"
	PrintsNeutral PrintDirection = "neutral"
)

type LineDirection string

const (
	LineRising  LineDirection = "rising"
	LineFalling LineDirection = "falling"
	LineFlat    LineDirection = "flat"
)

// Internals are market breadth readings. They affect only fakeout
// detection, not regime classification.
type Internals struct {
	VOLD    float64
	TICK    float64
	ADDLine LineDirection
}

// DealerSnapshot captures dealer positioning and order flow for one
// analysis pass. All fields except Internals and VIX1D are required for
// regime classification.
type DealerSnapshot struct {
	Ticker        string
	Price         float64
	PrevClose     float64
	ZeroGamma     float64
	CallWall      float64
	PutWall       float64
	NetGEX        float64 // $B, signed
	VannaFlow     VannaFlow
	CharmEffect   CharmEffect
	VolumeDelta   float64
	DarkPool      PrintDirection
	Institutional PrintDirection
	VIX           float64
	VIXChangePct  float64
	VIX1D         *float64
	Internals     *Internals
}

// Leg is one option leg of a suggested structure.
type Leg struct {
	Action string // "buy" or "sell"
	Type   string // "call" or "put"
	Strike float64
	Qty    int
}

type Structure struct {
	Name string
	Legs []Leg
}

// DeskResult is the full output of one desk evaluation. Confidence is
// always on the 0-100 scale; presentation layers convert if they need
// a 0-10 view.
type DeskResult struct {
	Status            Status
	StatusReason      string
	Regime            Regime
	RegimeDescription string
	Direction         Direction
	Thesis            string
	Structure         *Structure
	EntryZone         string
	ProfitTarget      float64
	Invalidation      float64
	InvalidationWhy   string
	HoldTime          string
	Confidence        int
	Warnings          []string
	FakeoutRisk       FakeoutRisk
	MacroOverride     bool
	MacroReason       string
}

// StrikeGamma is one row of a per-strike option summary used to build
// the gamma-exposure profile.
type StrikeGamma struct {
	Strike    float64
	CallOI    float64
	PutOI     float64
	CallGamma float64
	PutGamma  float64
}

// KeyLevels are the structural levels derived from the GEX profile.
type KeyLevels struct {
	CallWall  float64
	PutWall   float64
	GammaFlip float64
	MaxPain   float64
	NetGEX    float64 // $B
}
