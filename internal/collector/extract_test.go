package collector

import (
	"testing"

	"PennyRadar/internal/model"
)

func fp(vals ...float64) []*float64 {
	out := make([]*float64, len(vals))
	for i := range vals {
		v := vals[i]
		out[i] = &v
	}
	return out
}

func TestExtract_Grouped(t *testing.T) {
	res := &model.BatchResult{
		Shape: model.ShapeGrouped,
		Grouped: map[string]model.RawSeries{
			"ABC": {Close: fp(1.0, 1.1), Volume: fp(100, 200)},
			"DEF": {Close: fp(2.0), Volume: fp(300)},
		},
	}

	closes, volumes := Extract(res, "ABC")
	if len(closes) != 2 || closes[1] != 1.1 {
		t.Errorf("closes: got %v", closes)
	}
	if len(volumes) != 2 || volumes[1] != 200 {
		t.Errorf("volumes: got %v", volumes)
	}

	closes, volumes = Extract(res, "MISSING")
	if len(closes) != 0 || len(volumes) != 0 {
		t.Errorf("missing ticker must extract to empty series, got %v / %v", closes, volumes)
	}
}

func TestExtract_Combined(t *testing.T) {
	res := &model.BatchResult{
		Shape: model.ShapeCombined,
		Fields: map[string]map[string][]*float64{
			"close":  {"ABC": fp(1.0, 1.2), "DEF": fp(3.0)},
			"volume": {"ABC": fp(500, 600), "DEF": fp(700)},
		},
	}

	closes, volumes := Extract(res, "DEF")
	if len(closes) != 1 || closes[0] != 3.0 {
		t.Errorf("closes: got %v", closes)
	}
	if len(volumes) != 1 || volumes[0] != 700 {
		t.Errorf("volumes: got %v", volumes)
	}
}

func TestExtract_Single(t *testing.T) {
	res := &model.BatchResult{
		Shape:  model.ShapeSingle,
		Ticker: "ABC",
		Single: &model.RawSeries{Close: fp(1.5), Volume: fp(900)},
	}

	closes, volumes := Extract(res, "ABC")
	if len(closes) != 1 || closes[0] != 1.5 {
		t.Errorf("closes: got %v", closes)
	}
	if len(volumes) != 1 || volumes[0] != 900 {
		t.Errorf("volumes: got %v", volumes)
	}

	// The single table covers exactly one ticker; any other is absent.
	closes, volumes = Extract(res, "DEF")
	if len(closes) != 0 || len(volumes) != 0 {
		t.Errorf("other ticker must extract to empty series, got %v / %v", closes, volumes)
	}
}

func TestExtract_UnknownShapeAndNil(t *testing.T) {
	if c, v := Extract(&model.BatchResult{Shape: model.ShapeUnknown}, "ABC"); len(c) != 0 || len(v) != 0 {
		t.Errorf("unknown shape: got %v / %v", c, v)
	}
	if c, v := Extract(nil, "ABC"); len(c) != 0 || len(v) != 0 {
		t.Errorf("nil result: got %v / %v", c, v)
	}
}

func TestExtract_DropsNulls(t *testing.T) {
	one, three := 1.0, 3.0
	hundred := 100.0
	res := &model.BatchResult{
		Shape: model.ShapeGrouped,
		Grouped: map[string]model.RawSeries{
			"ABC": {
				Close:  []*float64{&one, nil, &three},
				Volume: []*float64{nil, &hundred, nil},
			},
		},
	}

	closes, volumes := Extract(res, "ABC")
	if len(closes) != 2 || closes[0] != 1.0 || closes[1] != 3.0 {
		t.Errorf("nulls must be dropped from closes: got %v", closes)
	}
	// Each series drops its own nulls; no cross-series alignment.
	if len(volumes) != 1 || volumes[0] != 100.0 {
		t.Errorf("nulls must be dropped from volumes: got %v", volumes)
	}
}
