package screener

import (
	"math"
	"sort"

	"PennyRadar/internal/calculator"
	"PennyRadar/internal/model"
)

// Thresholds holds the screen's filter settings, copied once from config.
type Thresholds struct {
	MinPrice          float64
	MaxPrice          float64
	MinAvgVol         float64
	VolRatioThreshold float64
	PctChangeMin      float64
}

// minHistory is the minimum number of observations both series need before
// any statistic is computed.
const minHistory = 5

// avgWindow is the trailing session count for the volume average and high.
const avgWindow = 20

// breakoutBand flags a last price within 0.5% of the trailing high.
const breakoutBand = 0.995

// Evaluate runs one ticker through the sequential filter chain. Checks are
// ordered cheapest and most-discriminating first and short-circuit at the
// first failure. The returned bool reports whether the ticker survived; a
// degenerate series that trips a statistic rejects that ticker only.
func Evaluate(ticker string, closes, volumes []float64, th Thresholds) (*model.Candidate, bool) {
	// 1. Minimum history
	if len(closes) < minHistory || len(volumes) < minHistory {
		return nil, false
	}

	// 2. Price band
	lastPrice := closes[len(closes)-1]
	if lastPrice < th.MinPrice || lastPrice >= th.MaxPrice {
		return nil, false
	}

	// 3. Liquidity
	avgVol, err := calculator.TailMean(volumes, avgWindow)
	if err != nil || avgVol < th.MinAvgVol {
		return nil, false
	}

	// 4. Relative volume
	todayVol := volumes[len(volumes)-1]
	volRatio := 0.0
	if avgVol > 0 {
		volRatio = todayVol / avgVol
	}
	if volRatio < th.VolRatioThreshold {
		return nil, false
	}

	// 5. Momentum
	pctChange := calculator.PercentChange(closes)
	if pctChange < th.PctChangeMin {
		return nil, false
	}

	high, err := calculator.TailMax(closes, avgWindow)
	if err != nil {
		return nil, false
	}

	return &model.Candidate{
		Ticker:    ticker,
		LastPrice: round4(lastPrice),
		PctChange: round2(pctChange),
		AvgVol20d: int64(avgVol),
		TodayVol:  int64(todayVol),
		VolRatio:  round2(volRatio),
		High20d:   round4(high),
		Breakout:  lastPrice >= high*breakoutBand,
	}, true
}

// Rank sorts candidates descending by volume ratio, then percent change.
// The sort is stable: full ties keep their discovery order.
func Rank(records []model.Candidate) []model.Candidate {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].VolRatio != records[j].VolRatio {
			return records[i].VolRatio > records[j].VolRatio
		}
		return records[i].PctChange > records[j].PctChange
	})
	return records
}

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
