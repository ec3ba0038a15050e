package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"PennyRadar/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at      INTEGER NOT NULL,
			universe_size   INTEGER,
			batches_total   INTEGER,
			batches_failed  INTEGER,
			candidate_count INTEGER,
			report_path     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON scan_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS scan_candidates (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL,
			rank        INTEGER NOT NULL,
			ticker      TEXT NOT NULL,
			last_price  REAL,
			pct_change  REAL,
			avg_vol_20d INTEGER,
			today_vol   INTEGER,
			vol_ratio   REAL,
			high_20d    REAL,
			breakout    INTEGER,
			recent_news TEXT,
			entry       REAL,
			stop        REAL,
			target1     REAL,
			target2     REAL,
			FOREIGN KEY (run_id) REFERENCES scan_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_candidates_run ON scan_candidates(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run summary plus one row per ranked candidate, in a
// single transaction.
func (r *SQLiteRecorder) RecordRun(sum *RunSummary, records []model.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO scan_runs
		(started_at, universe_size, batches_total, batches_failed, candidate_count, report_path)
		VALUES (?,?,?,?,?,?)`,
		sum.StartedAt.Unix(), sum.UniverseSize, sum.BatchesTotal,
		sum.BatchesFailed, sum.CandidateCount, sum.ReportPath,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	for i, c := range records {
		breakout := 0
		if c.Breakout {
			breakout = 1
		}
		if _, err := tx.Exec(`INSERT INTO scan_candidates
			(run_id, rank, ticker, last_price, pct_change, avg_vol_20d, today_vol,
			 vol_ratio, high_20d, breakout, recent_news, entry, stop, target1, target2)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
			runID, i+1, c.Ticker, c.LastPrice, c.PctChange, c.AvgVol20d, c.TodayVol,
			c.VolRatio, c.High20d, breakout, c.RecentNews,
			c.Plan.Entry, c.Plan.Stop, c.Plan.Target1, c.Plan.Target2,
		); err != nil {
			return fmt.Errorf("insert candidate %s: %w", c.Ticker, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
