package news

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Flag values. Unknown means the lookup itself failed; it is downgraded
// information, never a run failure.
const (
	FlagYes     = "Yes"
	FlagNo      = "No"
	FlagUnknown = "Unknown"
)

// timestampFields are probed in order; the first one present on an item
// wins. Numeric fields are unix seconds, string fields RFC3339. The feed
// has shipped items under all of these names at one point or another.
var timestampFields = []string{"providerPublishTime", "pubDate", "publishedAt", "published_at"}

// Client checks whether a ticker has news items inside the lookback window.
// It is the least reliable upstream dependency, so every failure degrades
// to FlagUnknown.
type Client struct {
	BaseURL      string
	LookbackDays int
	HTTPClient   *http.Client
	// Now is stubbed in tests.
	Now func() time.Time
}

// NewClient creates a news client. A lookbackDays of 0 or less disables the
// check entirely, which is the default operating mode.
func NewClient(baseURL, proxyURL string, lookbackDays int) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL:      baseURL,
		LookbackDays: lookbackDays,
		HTTPClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
		Now: time.Now,
	}
}

// Flag reports whether the ticker has a news item newer than the UTC cutoff.
func (c *Client) Flag(ticker string) string {
	if c.LookbackDays <= 0 {
		return FlagNo
	}

	items, err := c.fetchItems(ticker)
	if err != nil {
		return FlagUnknown
	}

	cutoff := c.Now().UTC().AddDate(0, 0, -c.LookbackDays)
	for _, item := range items {
		ts, ok := itemTimestamp(item)
		if ok && !ts.Before(cutoff) {
			return FlagYes
		}
	}
	return FlagNo
}

func (c *Client) fetchItems(ticker string) ([]map[string]any, error) {
	endpoint := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=10", c.BaseURL, url.QueryEscape(ticker))
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch news: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news body: %w", err)
	}
	var result struct {
		News []map[string]any `json:"news"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode news: %w", err)
	}
	return result.News, nil
}

// itemTimestamp extracts an item's publish time from whichever known field
// is present first.
func itemTimestamp(item map[string]any) (time.Time, bool) {
	for _, field := range timestampFields {
		v, ok := item[field]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return time.Unix(int64(t), 0).UTC(), true
		case string:
			if ts, err := time.Parse(time.RFC3339, t); err == nil {
				return ts.UTC(), true
			}
		}
	}
	return time.Time{}, false
}
