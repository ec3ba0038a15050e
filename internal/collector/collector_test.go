package collector

import (
	"errors"
	"testing"

	"PennyRadar/internal/model"
)

// poisonFetcher fails any batch containing the poison symbol and returns a
// grouped result for every other batch.
type poisonFetcher struct {
	poison string
	calls  int
}

func (f *poisonFetcher) Name() string { return "poison" }

func (f *poisonFetcher) FetchDailyHistory(symbols []string, _ int) (*model.BatchResult, error) {
	f.calls++
	grouped := make(map[string]model.RawSeries, len(symbols))
	for _, s := range symbols {
		if s == f.poison {
			return nil, errors.New("provider rejected request")
		}
		grouped[s] = model.RawSeries{Close: fp(1.0), Volume: fp(100)}
	}
	return &model.BatchResult{Shape: model.ShapeGrouped, Grouped: grouped}, nil
}

func testCollector(f Fetcher) *Collector {
	return &Collector{Fetcher: f, BatchSize: 2, Retries: 3}
}

func TestCollect_FailedBatchDoesNotAbortRun(t *testing.T) {
	f := &poisonFetcher{poison: "BAD"}
	c := testCollector(f)

	outcomes := c.Collect([]string{"AA", "BB", "BAD", "DD", "EE", "FF"}, 30)
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(outcomes))
	}
	if outcomes[0].Result == nil || outcomes[2].Result == nil {
		t.Error("healthy batches must not be affected by a failing sibling")
	}
	if outcomes[1].Result != nil {
		t.Error("poisoned batch must be skipped after exhausting retries")
	}
	// 1 attempt for each healthy batch, all 3 retries for the poisoned one.
	if f.calls != 5 {
		t.Errorf("expected 5 fetch attempts, got %d", f.calls)
	}
}

func TestCollect_EmptyResultCountsAsFailure(t *testing.T) {
	f := &MockFetcher{Result: &model.BatchResult{Shape: model.ShapeGrouped}}
	c := testCollector(f)

	outcomes := c.Collect([]string{"AA"}, 30)
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(outcomes))
	}
	if outcomes[0].Result != nil {
		t.Error("an empty result must count as a failed attempt")
	}
	if f.Calls != 3 {
		t.Errorf("expected all 3 attempts, got %d", f.Calls)
	}
}

func TestCollect_EmptyUniverse(t *testing.T) {
	f := &MockFetcher{}
	c := testCollector(f)

	outcomes := c.Collect(nil, 30)
	if len(outcomes) != 0 {
		t.Errorf("expected no batches for an empty universe, got %d", len(outcomes))
	}
	if f.Calls != 0 {
		t.Errorf("expected no fetch calls, got %d", f.Calls)
	}
}

func TestChunk(t *testing.T) {
	batches := chunk([]string{"A", "B", "C", "D", "E"}, 2)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[0]) != 2 || len(batches[1]) != 2 || len(batches[2]) != 1 {
		t.Errorf("unexpected batch sizes: %v", batches)
	}
	if batches[2][0] != "E" {
		t.Errorf("order not preserved: %v", batches)
	}
}
