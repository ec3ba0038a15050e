package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"PennyRadar/internal/model"
)

// columns is the report schema. It is written even when the table is empty,
// so downstream consumers never have to probe for it.
var columns = []string{
	"Ticker", "LastPrice", "Entry", "Stop", "Target1", "Target2",
	"VolRatio", "PctChange", "RecentNews48h",
}

// WriteCSV writes the first topN ranked candidates to a dated report file
// under dir and returns its path. The filename carries the run's UTC date.
func WriteCSV(dir string, records []model.Candidate, topN int, runDate time.Time) (string, error) {
	if len(records) > topN {
		records = records[:topN]
	}

	path := filepath.Join(dir, fmt.Sprintf("penny_scan_%s.csv", runDate.UTC().Format("2006-01-02")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("write report header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Ticker,
			floatStr(r.LastPrice),
			floatStr(r.Plan.Entry),
			floatStr(r.Plan.Stop),
			floatStr(r.Plan.Target1),
			floatStr(r.Plan.Target2),
			floatStr(r.VolRatio),
			floatStr(r.PctChange),
			r.RecentNews,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush report: %w", err)
	}
	return path, nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
