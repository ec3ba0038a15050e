package calculator

import "testing"

func TestTailMean(t *testing.T) {
	// Window larger than the series: full-series mean.
	got, err := TailMean([]float64{1, 2, 3}, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("full-series mean: got %v, want 2", got)
	}

	// Window smaller than the series: only the tail counts.
	got, err = TailMean([]float64{100, 100, 2, 4}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("tail mean: got %v, want 3", got)
	}

	if _, err := TailMean(nil, 20); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestTailMax(t *testing.T) {
	got, err := TailMax([]float64{9, 1, 5, 3}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("tail max must ignore values outside the window: got %v, want 5", got)
	}

	if _, err := TailMax(nil, 3); err == nil {
		t.Error("expected error for empty series")
	}
}

func TestPercentChange(t *testing.T) {
	if got := PercentChange([]float64{1.0, 1.1}); got < 9.99 || got > 10.01 {
		t.Errorf("percent change: got %v, want ~10", got)
	}
	if got := PercentChange([]float64{1.0}); got != 0 {
		t.Errorf("single observation must fall back to 0, got %v", got)
	}
	if got := PercentChange(nil); got != 0 {
		t.Errorf("empty series must fall back to 0, got %v", got)
	}
	if got := PercentChange([]float64{0, 1.0}); got != 0 {
		t.Errorf("zero prior close must fall back to 0, got %v", got)
	}
}
