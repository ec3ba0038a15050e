package recorder

import "PennyRadar/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunSummary, _ []model.Candidate) error { return nil }
func (n *NoopRecorder) Close() error                                       { return nil }
