package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunRunning     = "running"
	RunCompleted   = "completed"
	RunFailed      = "failed"
	RunInterrupted = "interrupted"
)

// Page result statuses.
const (
	PageOK      = "ok"      // chunked
	PageSkipped = "skipped" // fetched and parsed, too few words
	PageFailed  = "failed"
)

// Run represents one scrape invocation
type Run struct {
	RunID       string
	BaseURL     string
	StartedAt   time.Time
	FinishedAt  *time.Time
	PageCount   int
	FailedCount int
	ChunkCount  int
	OutputPath  string
	Status      string
}

// Duration returns how long the run took, or zero while it is still running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// PageRecord is the outcome of one page attempt within a run
type PageRecord struct {
	URL          string
	Status       string
	StatusCode   int
	ErrorType    string
	ErrorMessage string
	WordCount    int
	ChunkCount   int
}

// StartRun inserts a running run and returns its generated ID.
func (db *DB) StartRun(baseURL, outputPath string, pageCount int) (string, error) {
	runID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO runs (run_id, base_url, started_at, page_count, output_path, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, baseURL, time.Now().UTC(), pageCount, outputPath, RunRunning)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}
	return runID, nil
}

// RecordPage stores the outcome of a page attempt.
func (db *DB) RecordPage(runID string, rec PageRecord) error {
	urlID, err := db.InsertURL(rec.URL)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO page_results (run_id, url_id, status, status_code, error_type, error_message, word_count, chunk_count, attempted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, urlID, rec.Status, rec.StatusCode, NewNullString(rec.ErrorType), NewNullString(rec.ErrorMessage),
		rec.WordCount, rec.ChunkCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record page result: %w", err)
	}
	return nil
}

// FinishRun closes a run with its final status and counts.
func (db *DB) FinishRun(runID, status string, failedCount, chunkCount int) error {
	res, err := db.Exec(`
		UPDATE runs
		SET finished_at = ?, status = ?, failed_count = ?, chunk_count = ?
		WHERE run_id = ?
	`, time.Now().UTC(), status, failedCount, chunkCount, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}

const runColumns = `run_id, base_url, started_at, finished_at, page_count, failed_count, chunk_count, output_path, status`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var finished sql.NullTime
	if err := row.Scan(&r.RunID, &r.BaseURL, &r.StartedAt, &finished, &r.PageCount,
		&r.FailedCount, &r.ChunkCount, &r.OutputPath, &r.Status); err != nil {
		return nil, err
	}
	if finished.Valid {
		r.FinishedAt = &finished.Time
	}
	return &r, nil
}

// GetRun retrieves a run by its ID or by a unique ID prefix.
func (db *DB) GetRun(idOrPrefix string) (*Run, error) {
	rows, err := db.Query(`
		SELECT `+runColumns+`
		FROM runs
		WHERE substr(run_id, 1, length(?)) = ?
		LIMIT 2
	`, idOrPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("run %s not found", idOrPrefix)
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("run prefix %s is ambiguous", idOrPrefix)
	}
}

// ListRuns retrieves runs ordered by most recent first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRunPages retrieves all page results for a run in attempt order
func (db *DB) GetRunPages(runID string) ([]PageRecord, error) {
	rows, err := db.Query(`
		SELECT u.original_url, pr.status, pr.status_code, pr.error_type, pr.error_message,
		       pr.word_count, pr.chunk_count
		FROM page_results pr
		JOIN urls u ON pr.url_id = u.url_id
		WHERE pr.run_id = ?
		ORDER BY pr.result_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run pages: %w", err)
	}
	defer rows.Close()

	var pages []PageRecord
	for rows.Next() {
		var p PageRecord
		var errorType, errorMessage sql.NullString
		if err := rows.Scan(&p.URL, &p.Status, &p.StatusCode, &errorType, &errorMessage,
			&p.WordCount, &p.ChunkCount); err != nil {
			return nil, fmt.Errorf("failed to scan page result: %w", err)
		}
		p.ErrorType = errorType.String
		p.ErrorMessage = errorMessage.String
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// URLAttempt is one recorded attempt at a URL, across runs
type URLAttempt struct {
	RunID       string
	AttemptedAt time.Time
	PageRecord
}

// GetURLAttempts retrieves every recorded attempt at rawURL, newest first.
func (db *DB) GetURLAttempts(rawURL string) ([]URLAttempt, error) {
	urlID, err := db.GetURLID(rawURL)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT run_id, attempted_at, status, status_code, error_type, error_message,
		       word_count, chunk_count
		FROM page_results
		WHERE url_id = ?
		ORDER BY result_id DESC
	`, urlID)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL attempts: %w", err)
	}
	defer rows.Close()

	var attempts []URLAttempt
	for rows.Next() {
		a := URLAttempt{PageRecord: PageRecord{URL: rawURL}}
		var errorType, errorMessage sql.NullString
		if err := rows.Scan(&a.RunID, &a.AttemptedAt, &a.Status, &a.StatusCode, &errorType, &errorMessage,
			&a.WordCount, &a.ChunkCount); err != nil {
			return nil, fmt.Errorf("failed to scan URL attempt: %w", err)
		}
		a.ErrorType = errorType.String
		a.ErrorMessage = errorMessage.String
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
