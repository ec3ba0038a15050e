package plan

import (
	"github.com/shopspring/decimal"

	"PennyRadar/internal/model"
)

// Fixed plan multipliers. These are part of the published level contract,
// not tunables: entry is a 3% pullback from the last print, stop risks 10%
// of entry, targets take 12% and 25%.
var (
	entryPullback = decimal.NewFromFloat(0.97)
	stopFactor    = decimal.NewFromFloat(0.90)
	target1Factor = decimal.NewFromFloat(1.12)
	target2Factor = decimal.NewFromFloat(1.25)
)

// Build derives the mechanical trade plan from a candidate's last price.
// The entry is floored at minPrice so the plan never proposes a fill below
// the tradable band, even when the pullback multiplier would land under it.
// All levels are rounded to 4 decimals; decimal arithmetic keeps the
// published levels free of float drift.
func Build(lastPrice, minPrice float64) model.TradePlan {
	px := decimal.NewFromFloat(lastPrice)
	floor := decimal.NewFromFloat(minPrice)

	entry := px.Mul(entryPullback).Round(4)
	if entry.LessThan(floor) {
		entry = floor.Round(4)
	}

	return model.TradePlan{
		Entry:   entry.InexactFloat64(),
		Stop:    entry.Mul(stopFactor).Round(4).InexactFloat64(),
		Target1: entry.Mul(target1Factor).Round(4).InexactFloat64(),
		Target2: entry.Mul(target2Factor).Round(4).InexactFloat64(),
	}
}
