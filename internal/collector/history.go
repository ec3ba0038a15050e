package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PennyRadar/internal/model"
)

// HistoryFetcher implements Fetcher against the market-data REST API.
type HistoryFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHistoryFetcher creates a new fetcher with optional proxy support.
func NewHistoryFetcher(baseURL, proxyURL string) *HistoryFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &HistoryFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *HistoryFetcher) Name() string { return "marketdata" }

// historyResponse covers every layout the provider is known to send. Which
// fields are populated depends on the batch size and provider version, so
// classification happens after decoding, not by content negotiation.
type historyResponse struct {
	// Grouped layout: ticker -> series.
	Data map[string]model.RawSeries `json:"data"`
	// Combined layout: field -> ticker -> column.
	Fields map[string]map[string][]*float64 `json:"fields"`
	// Single-ticker flat layout.
	Symbol string     `json:"symbol"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// FetchDailyHistory requests the trailing days of daily history for all
// symbols in one call and classifies the response layout.
func (f *HistoryFetcher) FetchDailyHistory(symbols []string, days int) (*model.BatchResult, error) {
	endpoint := fmt.Sprintf("%s/api/v1/history/daily?symbols=%s&days=%d&interval=1d",
		f.BaseURL, url.QueryEscape(strings.Join(symbols, ",")), days)

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read history body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch history: status %d, body: %s", resp.StatusCode, string(body))
	}

	var hr historyResponse
	if err := json.Unmarshal(body, &hr); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return classify(&hr), nil
}

// classify maps a decoded response onto the tagged BatchResult union. A
// response matching no layout is ShapeUnknown, which extracts to empty
// series everywhere; it is not an error at this level.
func classify(hr *historyResponse) *model.BatchResult {
	switch {
	case len(hr.Data) > 0:
		return &model.BatchResult{Shape: model.ShapeGrouped, Grouped: hr.Data}
	case len(hr.Fields) > 0:
		return &model.BatchResult{Shape: model.ShapeCombined, Fields: hr.Fields}
	case hr.Symbol != "":
		return &model.BatchResult{
			Shape:  model.ShapeSingle,
			Ticker: hr.Symbol,
			Single: &model.RawSeries{Close: hr.Close, Volume: hr.Volume},
		}
	default:
		return &model.BatchResult{Shape: model.ShapeUnknown}
	}
}
