package collector

import "PennyRadar/internal/model"

// Upstream column names in the combined layout.
const (
	fieldClose  = "close"
	fieldVolume = "volume"
)

// Extract normalizes a batch result into plain close and volume series for
// one ticker. It never fails: an unknown shape, a missing ticker or a
// missing column all yield empty slices. Null entries are dropped from each
// series independently.
func Extract(res *model.BatchResult, ticker string) (closes, volumes []float64) {
	if res == nil {
		return nil, nil
	}
	switch res.Shape {
	case model.ShapeGrouped:
		series, ok := res.Grouped[ticker]
		if !ok {
			return nil, nil
		}
		return dropNil(series.Close), dropNil(series.Volume)

	case model.ShapeCombined:
		return dropNil(res.Fields[fieldClose][ticker]), dropNil(res.Fields[fieldVolume][ticker])

	case model.ShapeSingle:
		if res.Ticker != ticker || res.Single == nil {
			return nil, nil
		}
		return dropNil(res.Single.Close), dropNil(res.Single.Volume)

	default:
		return nil, nil
	}
}

func dropNil(column []*float64) []float64 {
	if len(column) == 0 {
		return nil
	}
	out := make([]float64, 0, len(column))
	for _, v := range column {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
