package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"vcfolio"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ vcfolio.RecordWriter = (*RunService)(nil)

// Run is one recorded scrape run.
type Run struct {
	ID          string
	CreatedAt   time.Time
	RecordCount int
}

// RunService stores each batch of extracted records as a run. It keeps a
// history across invocations, unlike the CSV output which holds only the
// latest run.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// WriteRecords stores records under a freshly created run. The run row
// and its records are inserted in one transaction: a failed batch leaves
// no run behind.
func (s *RunService) WriteRecords(ctx context.Context, records []*vcfolio.Company) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	runID := uuid.New().String()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, record_count)
		VALUES (?, ?, ?)
	`, runID, createdAt, len(records)); err != nil {
		return err
	}

	for _, c := range records {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO companies (run_id, url, name, description, source, location, domain, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, c.URL, c.Name, c.Description, c.Source, c.Location, c.Domain, contentHash(c)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// contentHash fingerprints a record so identical extractions can be
// spotted across runs without comparing every column.
func contentHash(c *vcfolio.Company) string {
	fields := strings.Join([]string{c.URL, c.Name, c.Description, c.Source, c.Location, c.Domain}, "\x00")
	return fmt.Sprintf("%016x", xxhash.Sum64String(fields))
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*Run, error) {
	var run Run
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, record_count
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &createdAt, &run.RecordCount)

	if err == sql.ErrNoRows {
		return nil, vcfolio.Errorf(vcfolio.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves all runs, newest first.
func (s *RunService) FindRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, record_count
		FROM runs
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.RecordCount); err != nil {
			return nil, err
		}
		run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// FindRecordsByRunID retrieves the records stored under a run, ordered
// by URL.
func (s *RunService) FindRecordsByRunID(ctx context.Context, runID string) ([]*vcfolio.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, name, description, source, location, domain
		FROM companies
		WHERE run_id = ?
		ORDER BY url
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*vcfolio.Company
	for rows.Next() {
		var c vcfolio.Company
		if err := rows.Scan(&c.URL, &c.Name, &c.Description, &c.Source, &c.Location, &c.Domain); err != nil {
			return nil, err
		}
		records = append(records, &c)
	}
	return records, rows.Err()
}
