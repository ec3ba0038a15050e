package universe

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
)

// listingCSV builds a Symbol-column CSV with n generated symbols plus the
// provided extras.
func listingCSV(n int, extras ...string) string {
	var b strings.Builder
	b.WriteString("Company Name,Symbol\n")
	for i := 0; i < n; i++ {
		// SAA, SAB, ... deterministic alphabetic symbols
		b.WriteString(fmt.Sprintf("Test Corp,S%c%c\n", 'A'+i/26, 'A'+i%26))
	}
	for _, e := range extras {
		b.WriteString("Extra Corp," + e + "\n")
	}
	return b.String()
}

func serveListing(t *testing.T, status int, body string) *Provider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewProvider(srv.URL, "")
}

func TestLoad_RemoteListing(t *testing.T) {
	p := serveListing(t, http.StatusOK, listingCSV(60, "AAPL^B", "TOOLONGX", "ok7", "zz"))

	got := p.Load(1000)
	if len(got) != 61 {
		t.Fatalf("expected 60 generated + ZZ, got %d symbols", len(got))
	}
	if !sort.StringsAreSorted(got) {
		t.Error("universe must be sorted")
	}
	for _, s := range got {
		if len(s) < 1 || len(s) > 5 {
			t.Errorf("symbol %q outside length bounds", s)
		}
		if strings.ToUpper(s) != s {
			t.Errorf("symbol %q not uppercased", s)
		}
	}
	for _, s := range got {
		if s == "AAPL^B" || s == "TOOLONGX" {
			t.Errorf("invalid symbol %q survived validation", s)
		}
	}
}

func TestLoad_CapsToMaxSymbols(t *testing.T) {
	p := serveListing(t, http.StatusOK, listingCSV(60))
	got := p.Load(10)
	if len(got) != 10 {
		t.Errorf("expected cap at 10, got %d", len(got))
	}
}

func TestLoad_Deduplicates(t *testing.T) {
	p := serveListing(t, http.StatusOK, listingCSV(55, "GME", "GME", "gme"))
	got := p.Load(1000)
	count := 0
	for _, s := range got {
		if s == "GME" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected GME exactly once, got %d", count)
	}
}

func TestLoad_FallbackOnServerError(t *testing.T) {
	p := serveListing(t, http.StatusInternalServerError, "")
	got := p.Load(1000)
	if len(got) != len(seedTickers) {
		t.Fatalf("expected the %d seed tickers, got %d", len(seedTickers), len(got))
	}
	if !sort.StringsAreSorted(got) {
		t.Error("fallback universe must still be sorted")
	}
}

func TestLoad_FallbackOnSmallListing(t *testing.T) {
	// A truncated download is treated the same as a failed one.
	p := serveListing(t, http.StatusOK, listingCSV(5))
	got := p.Load(1000)
	if len(got) != len(seedTickers) {
		t.Errorf("expected seed fallback for a tiny listing, got %d symbols", len(got))
	}
}

func TestLoad_FallbackOnMissingColumn(t *testing.T) {
	p := serveListing(t, http.StatusOK, "Name,Price\nFoo,1\n")
	got := p.Load(1000)
	if len(got) != len(seedTickers) {
		t.Errorf("expected seed fallback without a Symbol column, got %d symbols", len(got))
	}
}

func TestLoad_NeverFails(t *testing.T) {
	// Unreachable host: Load still returns a usable universe.
	p := NewProvider("http://127.0.0.1:1/listing.csv", "")
	got := p.Load(1000)
	if len(got) == 0 {
		t.Error("Load must fall back, never return an empty universe on transport failure")
	}
}
