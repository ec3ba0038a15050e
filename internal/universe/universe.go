package universe

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

// seedTickers is the fallback universe used whenever the remote listing
// cannot be fetched or parsed. Known liquid low-priced names.
var seedTickers = []string{
	"RR", "SNDL", "BBIG", "GME", "AMC", "NNDM", "GNS", "NAKD", "CEI", "MARA", "RIOT",
}

// minListingSize guards against a truncated or mangled listing download:
// anything smaller is treated as a failed fetch.
const minListingSize = 50

// Provider loads the candidate ticker universe from a remote listing,
// falling back to the seed list on any failure. Load never fails outward.
type Provider struct {
	URL    string
	Client *http.Client
}

// NewProvider creates a universe provider with optional proxy support.
func NewProvider(listingURL, proxyURL string) *Provider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Provider{
		URL: listingURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// Load returns the ordered, deduplicated, validated ticker universe, capped
// to maxSymbols. On any transport or parse failure it returns the seed list.
func (p *Provider) Load(maxSymbols int) []string {
	tickers, err := p.fetchListing()
	if err != nil {
		log.Printf("[WARN] universe listing fetch failed, using seed list: %v", err)
		tickers = seedTickers
	}

	tickers = normalize(tickers)
	if len(tickers) > maxSymbols {
		tickers = tickers[:maxSymbols]
	}
	log.Printf("[INFO] universe loaded: %d symbols", len(tickers))
	return tickers
}

// fetchListing downloads the delimited listing and extracts its Symbol column.
func (p *Provider) fetchListing() ([]string, error) {
	resp, err := p.Client.Get(p.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch listing: status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read listing header: %w", err)
	}
	symbolCol := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "Symbol") {
			symbolCol = i
			break
		}
	}
	if symbolCol < 0 {
		return nil, fmt.Errorf("listing has no Symbol column")
	}

	var tickers []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read listing row: %w", err)
		}
		if symbolCol < len(row) {
			tickers = append(tickers, row[symbolCol])
		}
	}
	if len(tickers) < minListingSize {
		return nil, fmt.Errorf("listing too small: %d symbols", len(tickers))
	}
	return tickers, nil
}

// normalize validates, uppercases, deduplicates and sorts the raw symbols.
func normalize(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if !validSymbol(sym) || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// validSymbol accepts purely alphabetic symbols of 1 to 5 characters.
func validSymbol(s string) bool {
	if len(s) < 1 || len(s) > 5 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
