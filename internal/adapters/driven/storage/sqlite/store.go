package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/acadia-labs/acadia-cli/internal/core/domain"
	"github.com/acadia-labs/acadia-cli/internal/core/ports/driven"
)

// Store is a SQLite-backed storage providing the relational document
// record and the run tracker through wrapper types.
//
// The documents and chunks tables are rebuilt (dropped and recreated)
// at the start of every load run; the pipeline_runs and run_metrics
// tables are durable across runs.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the SQLite database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite: database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.ensureTrackingTables(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// RunTracker returns a RunTracker interface backed by this store.
func (s *Store) RunTracker() driven.RunTracker {
	return &runTracker{store: s}
}

// ensureTrackingTables creates the durable run-tracking tables.
// Unlike the document tables these are never dropped.
func (s *Store) ensureTrackingTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS pipeline_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pipeline_id TEXT NOT NULL,
			run_at TEXT NOT NULL,
			step TEXT NOT NULL,
			duration_sec REAL NOT NULL,
			items_in INTEGER NOT NULL,
			items_out INTEGER NOT NULL,
			items_skipped INTEGER NOT NULL,
			status TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_metrics (
			run_id INTEGER NOT NULL REFERENCES pipeline_runs(id),
			metric_name TEXT NOT NULL,
			metric_value REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_pipeline_runs_step ON pipeline_runs(step, id);
	`)
	if err != nil {
		return fmt.Errorf("creating tracking tables: %w", err)
	}
	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Rebuild drops and recreates the documents and chunks tables so the
// store reflects exactly one load run. Chunks are dropped first; the
// doc_id reference must never point at a missing document row.
func (s *documentStore) Rebuild(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, `
		DROP TABLE IF EXISTS chunks;
		DROP TABLE IF EXISTS documents;
		CREATE TABLE documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			purpose TEXT NOT NULL,
			raw_filename TEXT NOT NULL,
			full_text_length INTEGER NOT NULL,
			processed_at TEXT NOT NULL
		);
		CREATE TABLE chunks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id INTEGER NOT NULL REFERENCES documents(id),
			chunk_index INTEGER NOT NULL,
			text TEXT NOT NULL,
			chunk_length INTEGER NOT NULL,
			char_offset INTEGER NOT NULL
		);
		CREATE INDEX idx_chunks_doc ON chunks(doc_id, chunk_index);
	`)
	if err != nil {
		return fmt.Errorf("rebuilding document tables: %w", err)
	}
	return nil
}

// InsertDocument stores one document row and returns its generated id.
func (s *documentStore) InsertDocument(ctx context.Context, doc *domain.Document) (int64, error) {
	purpose := doc.Purpose
	if purpose == "" {
		purpose = domain.PurposeUnknown
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (source, purpose, raw_filename, full_text_length, processed_at)
		VALUES (?, ?, ?, ?, ?)
	`, doc.Source, purpose, doc.RawFilename, doc.FullTextLength, doc.ProcessedAt)
	if err != nil {
		return 0, fmt.Errorf("inserting document %q: %w", doc.Source, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("document id for %q: %w", doc.Source, err)
	}
	return id, nil
}

// InsertChunk stores one chunk row and returns the generated chunk id.
func (s *documentStore) InsertChunk(ctx context.Context, chunk *domain.Chunk) (int64, error) {
	if chunk.DocID == 0 {
		return 0, fmt.Errorf("inserting chunk %d: %w: missing doc_id", chunk.Index, domain.ErrInvalidInput)
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO chunks (doc_id, chunk_index, text, chunk_length, char_offset)
		VALUES (?, ?, ?, ?, ?)
	`, chunk.DocID, chunk.Index, chunk.Text, chunk.Length, chunk.CharOffset)
	if err != nil {
		return 0, fmt.Errorf("inserting chunk %d of doc %d: %w", chunk.Index, chunk.DocID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("chunk id for doc %d: %w", chunk.DocID, err)
	}
	return id, nil
}

// CountDocuments returns the number of document rows.
func (s *documentStore) CountDocuments(ctx context.Context) (int, error) {
	return s.count(ctx, "documents")
}

// CountChunks returns the number of chunk rows.
func (s *documentStore) CountChunks(ctx context.Context) (int, error) {
	return s.count(ctx, "chunks")
}

func (s *documentStore) count(ctx context.Context, table string) (int, error) {
	var n int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// ==================== Run Tracker ====================

// runTracker implements driven.RunTracker.
type runTracker struct {
	store *Store
}

var _ driven.RunTracker = (*runTracker)(nil)

// Record stores one stage outcome with its metrics.
func (t *runTracker) Record(ctx context.Context, run *domain.StepRun) error {
	runAt := run.RunAt
	if runAt.IsZero() {
		runAt = time.Now().UTC()
	}

	res, err := t.store.db.ExecContext(ctx, `
		INSERT INTO pipeline_runs (pipeline_id, run_at, step, duration_sec, items_in, items_out, items_skipped, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.PipelineID, runAt.UTC().Format(time.RFC3339), run.Step,
		run.Duration.Seconds(), run.ItemsIn, run.ItemsOut, run.ItemsSkipped, string(run.Status))
	if err != nil {
		return fmt.Errorf("recording %s run: %w", run.Step, err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id for %s: %w", run.Step, err)
	}
	run.ID = runID

	for name, value := range run.Metrics {
		if _, err := t.store.db.ExecContext(ctx, `
			INSERT INTO run_metrics (run_id, metric_name, metric_value) VALUES (?, ?, ?)
		`, runID, name, value); err != nil {
			return fmt.Errorf("recording metric %s for %s run: %w", name, run.Step, err)
		}
	}

	return nil
}

// LastRuns returns up to limit most recent runs of a step, newest first.
func (t *runTracker) LastRuns(ctx context.Context, step string, limit int) ([]domain.StepRun, error) {
	rows, err := t.store.db.QueryContext(ctx, `
		SELECT id, pipeline_id, run_at, duration_sec, items_in, items_out, items_skipped, status
		FROM pipeline_runs
		WHERE step = ?
		ORDER BY id DESC
		LIMIT ?
	`, step, limit)
	if err != nil {
		return nil, fmt.Errorf("querying %s runs: %w", step, err)
	}
	defer rows.Close()

	var runs []domain.StepRun
	for rows.Next() {
		var run domain.StepRun
		var runAt string
		var durationSec float64
		var status string
		if err := rows.Scan(&run.ID, &run.PipelineID, &runAt, &durationSec,
			&run.ItemsIn, &run.ItemsOut, &run.ItemsSkipped, &status); err != nil {
			return nil, fmt.Errorf("scanning %s run: %w", step, err)
		}

		run.Step = step
		run.Status = domain.RunStatus(status)
		run.Duration = time.Duration(durationSec * float64(time.Second))
		if ts, err := time.Parse(time.RFC3339, runAt); err == nil {
			run.RunAt = ts
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s runs: %w", step, err)
	}

	for i := range runs {
		metrics, err := t.runMetrics(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Metrics = metrics
	}

	return runs, nil
}

func (t *runTracker) runMetrics(ctx context.Context, runID int64) (map[string]float64, error) {
	rows, err := t.store.db.QueryContext(ctx, `
		SELECT metric_name, metric_value FROM run_metrics WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying metrics for run %d: %w", runID, err)
	}
	defer rows.Close()

	metrics := make(map[string]float64)
	for rows.Next() {
		var name string
		var value float64
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scanning metric for run %d: %w", runID, err)
		}
		metrics[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating metrics for run %d: %w", runID, err)
	}

	return metrics, nil
}
