package collector

import (
	"log"
	"time"

	"PennyRadar/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Result *model.BatchResult
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(_ []string, _ int) (*model.BatchResult, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// BatchOutcome pairs a batch's symbols with its fetch result. Result is nil
// when every retry attempt was exhausted; the batch is skipped, never
// retried later.
type BatchOutcome struct {
	Symbols []string
	Result  *model.BatchResult
}

// Collector partitions the universe into fixed-size batches and retrieves
// history for each with bounded retries. Fetching is strictly sequential:
// one in-flight request at a time keeps every retry attributable to a
// single batch, at the cost of throughput.
type Collector struct {
	Fetcher   Fetcher
	BatchSize int
	Retries   int
	// Throttle is the fixed delay before each batch request; Backoff is the
	// base delay between failed attempts, growing linearly with the attempt
	// index. Both are fields so tests can zero them.
	Throttle time.Duration
	Backoff  time.Duration
}

// NewCollector creates a Collector with production pacing.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{
		Fetcher:   fetcher,
		BatchSize: 200,
		Retries:   3,
		Throttle:  2 * time.Second,
		Backoff:   time.Second,
	}
}

// Collect fetches history for the whole universe batch by batch. A batch
// whose retries all fail is reported with a nil Result; the remaining
// batches are still fetched.
func (c *Collector) Collect(symbols []string, days int) []BatchOutcome {
	batches := chunk(symbols, c.BatchSize)
	outcomes := make([]BatchOutcome, 0, len(batches))
	for i, batch := range batches {
		res := c.fetchBatch(batch, days)
		if res == nil {
			log.Printf("[WARN] batch %d/%d (%d symbols) unavailable after %d attempts, skipping",
				i+1, len(batches), len(batch), c.Retries)
		}
		outcomes = append(outcomes, BatchOutcome{Symbols: batch, Result: res})
	}
	return outcomes
}

// fetchBatch attempts one batch up to Retries times. An error, a nil result
// and an empty result all count as failed attempts.
func (c *Collector) fetchBatch(batch []string, days int) *model.BatchResult {
	for attempt := 0; attempt < c.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * c.Backoff)
		}
		time.Sleep(c.Throttle)

		res, err := c.Fetcher.FetchDailyHistory(batch, days)
		if err != nil {
			log.Printf("[WARN] batch fetch attempt %d/%d failed: %v", attempt+1, c.Retries, err)
			continue
		}
		if res.Empty() {
			log.Printf("[WARN] batch fetch attempt %d/%d returned no data", attempt+1, c.Retries)
			continue
		}
		return res
	}
	return nil
}

// chunk splits symbols into consecutive slices of at most size elements,
// preserving order.
func chunk(symbols []string, size int) [][]string {
	if size <= 0 || len(symbols) == 0 {
		return nil
	}
	var batches [][]string
	for i := 0; i < len(symbols); i += size {
		end := i + size
		if end > len(symbols) {
			end = len(symbols)
		}
		batches = append(batches, symbols[i:end])
	}
	return batches
}
