package batch

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run is a row from the runs table.
type Run struct {
	ID          string `json:"run_id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"created_at"`
	Pairs       int    `json:"pairs"`
	Failed      int    `json:"failed"`
}

// Store persists batch runs and their pair scores.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path and ensures the
// runs and pair_scores tables exist.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open batch store: %w", err)
	}

	const ddl = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id      TEXT PRIMARY KEY,
		kind        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL,
		pairs       INTEGER NOT NULL DEFAULT 0,
		failed      INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS pair_scores (
		run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
		line   INTEGER NOT NULL,
		a      TEXT NOT NULL,
		b      TEXT NOT NULL,
		score  REAL NOT NULL,
		error  TEXT,
		PRIMARY KEY (run_id, line)
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create batch tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun inserts an empty run and returns its ID.
func (s *Store) CreateRun(kind, description string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`INSERT INTO runs (run_id, kind, description, created_at) VALUES (?, ?, ?, ?)`,
		id, kind, description, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// InsertScores writes results for runID in one transaction and updates the
// run's pair and failure counters.
func (s *Store) InsertScores(runID string, results []Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := insertScores(tx, runID, results); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveRun creates a run and stores its results in a single transaction, so a
// failed write leaves no run behind.
func (s *Store) SaveRun(kind, description string, results []Result) (Run, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Run{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	run := Run{ID: uuid.NewString(), Kind: kind, Description: description, CreatedAt: time.Now().Unix()}
	if _, err := tx.Exec(`INSERT INTO runs (run_id, kind, description, created_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Kind, run.Description, run.CreatedAt); err != nil {
		return Run{}, fmt.Errorf("create run: %w", err)
	}
	if err := insertScores(tx, run.ID, results); err != nil {
		return Run{}, err
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit run %s: %w", run.ID, err)
	}

	run.Pairs = len(results)
	for _, r := range results {
		if r.Err != "" {
			run.Failed++
		}
	}
	return run, nil
}

func insertScores(tx *sql.Tx, runID string, results []Result) error {
	stmt, err := tx.Prepare(`INSERT INTO pair_scores (run_id, line, a, b, score, error) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var failed int
	for _, r := range results {
		var errPtr *string
		if r.Err != "" {
			e := r.Err
			errPtr = &e
			failed++
		}
		if _, err := stmt.Exec(runID, r.Line, r.A, r.B, r.Score, errPtr); err != nil {
			return fmt.Errorf("insert line %d: %w", r.Line, err)
		}
	}

	res, err := tx.Exec(`UPDATE runs SET pairs = pairs + ?, failed = failed + ? WHERE run_id = ?`,
		len(results), failed, runID)
	if err != nil {
		return fmt.Errorf("update run %s: %w", runID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

// GetRun returns the run with the given ID.
func (s *Store) GetRun(id string) (Run, error) {
	var r Run
	err := s.db.QueryRow(`SELECT run_id, kind, description, created_at, pairs, failed
		FROM runs WHERE run_id = ?`, id).Scan(&r.ID, &r.Kind, &r.Description, &r.CreatedAt, &r.Pairs, &r.Failed)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`SELECT run_id, kind, description, created_at, pairs, failed
		FROM runs ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.Description, &r.CreatedAt, &r.Pairs, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListScores returns the results stored for runID ordered by line.
func (s *Store) ListScores(runID string) ([]Result, error) {
	rows, err := s.db.Query(`SELECT line, a, b, score, error FROM pair_scores
		WHERE run_id = ? ORDER BY line`, runID)
	if err != nil {
		return nil, fmt.Errorf("list scores for %s: %w", runID, err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var errStr sql.NullString
		if err := rows.Scan(&r.Line, &r.A, &r.B, &r.Score, &errStr); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		r.Err = errStr.String
		results = append(results, r)
	}
	return results, rows.Err()
}
