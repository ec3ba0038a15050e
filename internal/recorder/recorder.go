package recorder

import (
	"time"

	"PennyRadar/internal/model"
)

// RunSummary holds the per-run facts worth keeping.
type RunSummary struct {
	StartedAt      time.Time
	UniverseSize   int
	BatchesTotal   int
	BatchesFailed  int
	CandidateCount int
	ReportPath     string
}

// Recorder persists scan history for later inspection.
type Recorder interface {
	RecordRun(sum *RunSummary, records []model.Candidate) error
	Close() error
}
