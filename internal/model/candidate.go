package model

// Candidate is one row of the ranked scan table: a ticker that survived
// every screen filter. Enrichment steps append to it (news flag, trade
// plan); the filter-derived fields are never rewritten.
type Candidate struct {
	Ticker     string
	LastPrice  float64 // rounded to 4 decimals
	PctChange  float64 // latest vs. prior close, rounded to 2 decimals
	AvgVol20d  int64
	TodayVol   int64
	VolRatio   float64 // TodayVol / AvgVol20d, rounded to 2 decimals
	High20d    float64 // rounded to 4 decimals
	Breakout   bool    // last price within 0.5% of the 20-session high
	RecentNews string  // "Yes", "No" or "Unknown"
	Plan       TradePlan
}

// TradePlan holds the mechanical entry/stop/target levels derived from a
// candidate's last price. All levels are rounded to 4 decimals.
type TradePlan struct {
	Entry   float64
	Stop    float64
	Target1 float64
	Target2 float64
}
