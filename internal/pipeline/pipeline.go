package pipeline

import (
	"log"
	"time"

	"PennyRadar/internal/collector"
	"PennyRadar/internal/model"
	"PennyRadar/internal/notifier"
	"PennyRadar/internal/plan"
	"PennyRadar/internal/recorder"
	"PennyRadar/internal/reporter"
	"PennyRadar/internal/screener"
)

// lookbackDays is the fixed daily-history window retrieved per batch.
const lookbackDays = 30

// UniverseLoader provides the candidate ticker set for a run.
type UniverseLoader interface {
	Load(maxSymbols int) []string
}

// NewsFlagger reports recent-news status for a ticker.
type NewsFlagger interface {
	Flag(ticker string) string
}

// Notifier delivers the run digest.
type Notifier interface {
	Send(text string) error
}

// Pipeline runs one complete scan: universe, batched history, filtering,
// ranking, enrichment, report emission. Everything is sequential and every
// failure is contained to its unit; a run never aborts.
type Pipeline struct {
	Universe  UniverseLoader
	Collector *collector.Collector
	News      NewsFlagger
	Notifier  Notifier // nil disables webhook delivery
	Recorder  recorder.Recorder

	Thresholds screener.Thresholds
	TopN       int
	MaxSymbols int
	OutputDir  string
	// NewsThrottle paces the per-ticker news lookups during enrichment.
	NewsThrottle time.Duration
}

// Run executes one scan and returns its summary.
func (p *Pipeline) Run() *recorder.RunSummary {
	start := time.Now().UTC()
	log.Println("[INFO] scan starting")

	symbols := p.Universe.Load(p.MaxSymbols)
	outcomes := p.Collector.Collect(symbols, lookbackDays)

	var records []model.Candidate
	failed := 0
	for _, out := range outcomes {
		if out.Result == nil {
			failed++
			continue
		}
		for _, sym := range out.Symbols {
			closes, volumes := collector.Extract(out.Result, sym)
			if c, ok := screener.Evaluate(sym, closes, volumes, p.Thresholds); ok {
				records = append(records, *c)
			}
		}
	}
	records = screener.Rank(records)
	log.Printf("[INFO] scan evaluated %d symbols: %d candidates, %d/%d batches failed",
		len(symbols), len(records), failed, len(outcomes))

	// Enrichment: news flag and trade plan per survivor, paced for the
	// news feed's rate limits.
	for i := range records {
		if i > 0 {
			time.Sleep(p.NewsThrottle)
		}
		records[i].RecentNews = p.News.Flag(records[i].Ticker)
		records[i].Plan = plan.Build(records[i].LastPrice, p.Thresholds.MinPrice)
	}

	sum := &recorder.RunSummary{
		StartedAt:      start,
		UniverseSize:   len(symbols),
		BatchesTotal:   len(outcomes),
		BatchesFailed:  failed,
		CandidateCount: len(records),
	}

	path, err := reporter.WriteCSV(p.OutputDir, records, p.TopN, start)
	if err != nil {
		log.Printf("[ERROR] write report: %v", err)
	} else {
		sum.ReportPath = path
		log.Printf("[INFO] report saved: %s", path)
	}

	emitted := records
	if len(emitted) > p.TopN {
		emitted = emitted[:p.TopN]
	}
	if err := p.Recorder.RecordRun(sum, emitted); err != nil {
		log.Printf("[WARN] record run: %v", err)
	}

	if p.Notifier != nil {
		digest := notifier.FormatDigest(records, min(p.TopN, 10))
		if err := p.Notifier.Send(digest); err != nil {
			log.Printf("[WARN] send digest: %v", err)
		}
	} else {
		log.Println("[INFO] no webhook configured, skipping notification")
	}

	log.Printf("[INFO] scan finished in %s", time.Since(start).Round(time.Millisecond))
	return sum
}
