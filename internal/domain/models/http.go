package models

// Requests for the scan, desk, lab and journal HTTP endpoints. Defined in
// domain for consistency and reuse.

type ScanRequest struct {
	Tickers   []string `json:"tickers" validate:"omitempty,max=50,dive,required"`
	Watchlist string   `json:"watchlist" validate:"omitempty,max=64"`
	Strategy  string   `json:"strategy" validate:"omitempty,oneof=ipmcc 112 strangle"`
}

type TickerScanRequest struct {
	Ticker   string `param:"ticker" json:"ticker" validate:"required,max=12"`
	Strategy string `query:"strategy" json:"strategy" validate:"omitempty,oneof=ipmcc 112 strangle"`
}

type InternalsRequest struct {
	VOLD    float64 `json:"vold"`
	TICK    float64 `json:"tick"`
	ADDLine string  `json:"add_line" default:"flat" validate:"oneof=rising falling flat"`
}

type DealerSnapshotRequest struct {
	Ticker        string            `json:"ticker" validate:"required,max=12"`
	Price         float64           `json:"price" validate:"required,gt=0"`
	PrevClose     float64           `json:"prev_close" validate:"omitempty,gt=0"`
	ZeroGamma     float64           `json:"zero_gamma"`
	CallWall      float64           `json:"call_wall"`
	PutWall       float64           `json:"put_wall"`
	NetGEX        float64           `json:"net_gex"`
	VannaFlow     string            `json:"vanna_flow" default:"neutral" validate:"oneof=supportive hostile neutral"`
	CharmEffect   string            `json:"charm_effect" default:"neutral" validate:"oneof=pinning unpinning neutral"`
	VolumeDelta   float64           `json:"volume_delta"`
	DarkPool      string            `json:"dark_pool" default:"neutral" validate:"oneof=buying selling mixed neutral"`
	Institutional string            `json:"institutional" default:"neutral" validate:"oneof=buying selling mixed neutral"`
	VIX           float64           `json:"vix" validate:"gte=0"`
	VIXChangePct  float64           `json:"vix_change_pct"`
	VIX1D         *float64          `json:"vix_1d"`
	Internals     *InternalsRequest `json:"internals"`
}

type DeskAnalyzeRequest struct {
	Dealer   DealerSnapshotRequest `json:"dealer" validate:"required"`
	UseMacro bool                  `json:"use_macro" default:"true"`
}

type LabAnalyzeRequest struct {
	Strategy string  `json:"strategy" validate:"required,oneof=covered_call csp strangle vertical"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Strike   float64 `json:"strike" validate:"required,gt=0"`
	Premium  float64 `json:"premium" validate:"required,gt=0"`
	IVRank   float64 `json:"iv_rank" validate:"gte=0,lte=100"`
	DTE      int     `json:"dte" validate:"required,gte=0,lte=730"`
}

type JournalEntryRequest struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Ticker    string  `json:"ticker" validate:"required,max=12"`
	Strategy  string  `json:"strategy" validate:"required,oneof=ipmcc 112 strangle"`
	Direction string  `json:"direction" default:"neutral" validate:"oneof=bullish bearish neutral"`
	Entry     float64 `json:"entry" validate:"required,gt=0"`
	Exit      float64 `json:"exit" validate:"required,gt=0"`
	PnL       float64 `json:"pnl"`
	Outcome   string  `json:"outcome" validate:"required,oneof=win loss scratch"`
	Notes     string  `json:"notes" validate:"max=2000"`
}

type JournalListRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"omitempty,max=12"`
	Strategy string `query:"strategy" json:"strategy" validate:"omitempty,oneof=ipmcc 112 strangle"`
	From     string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
}
