package model

// BatchShape tags the layout a batch history response arrived in. The
// upstream provider does not commit to a single layout and switches between
// them depending on batch size, so every consumer must go through Extract.
type BatchShape int

const (
	// ShapeUnknown marks a response that matched no known layout.
	ShapeUnknown BatchShape = iota
	// ShapeGrouped is a per-ticker map of series.
	ShapeGrouped
	// ShapeCombined is a field -> ticker -> column table.
	ShapeCombined
	// ShapeSingle is one flat table for exactly one ticker.
	ShapeSingle
)

func (s BatchShape) String() string {
	switch s {
	case ShapeGrouped:
		return "grouped"
	case ShapeCombined:
		return "combined"
	case ShapeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// RawSeries holds one ticker's daily history columns as delivered. Nil
// entries are JSON nulls (halted sessions, listing gaps) and are dropped
// during extraction, not interpolated.
type RawSeries struct {
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// BatchResult is the tagged union over the three upstream response layouts.
// Exactly one of the payload fields is populated, selected by Shape.
type BatchResult struct {
	Shape BatchShape

	// Grouped payload: ticker -> series.
	Grouped map[string]RawSeries

	// Combined payload: field name ("close", "volume") -> ticker -> column.
	Fields map[string]map[string][]*float64

	// Single payload: the one ticker the table covers, plus its series.
	Ticker string
	Single *RawSeries
}

// Empty reports whether the result carries no usable data at all. An empty
// result counts as a failed fetch attempt.
func (r *BatchResult) Empty() bool {
	if r == nil {
		return true
	}
	switch r.Shape {
	case ShapeGrouped:
		return len(r.Grouped) == 0
	case ShapeCombined:
		return len(r.Fields) == 0
	case ShapeSingle:
		return r.Single == nil
	default:
		return true
	}
}
