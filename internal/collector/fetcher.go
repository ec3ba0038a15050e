package collector

import "PennyRadar/internal/model"

// Fetcher defines the interface for fetching batched daily history.
type Fetcher interface {
	// FetchDailyHistory retrieves the trailing days of close/volume history
	// for all symbols in one request. The response layout varies by
	// provider mood and batch size; callers must go through Extract.
	FetchDailyHistory(symbols []string, days int) (*model.BatchResult, error)
	Name() string
}
