// Package sqlite persists emitted chunk records in a SQLite database so the
// filter stage can read a whole run back without walking chunk files.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/maastricht-university/oralargs/chunking"
	"github.com/maastricht-university/oralargs/store/sqlite/migrations"
	"github.com/maastricht-university/oralargs/transcript"
)

// Store is a chunk store backed by one database file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
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

// migrate runs every *.up.sql file newer than the recorded schema version.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}
	var upFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			upFiles = append(upFiles, e.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// SaveCase replaces every stored record of caseID with records. Two records
// opening on the same utterance violate the store's uniqueness and fail
// with transcript.ErrDataIntegrity; nothing is written then.
func (s *Store) SaveCase(ctx context.Context, caseID string, records []chunking.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE case_id = ?", caseID); err != nil {
		return fmt.Errorf("clearing case %s: %w", caseID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (case_id, utt_id_first, utt_id_last, case_year, justice_name, advocate_name, record)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if r.CaseID != caseID {
			return fmt.Errorf("%w: record of case %s saved under %s", transcript.ErrDataIntegrity, r.CaseID, caseID)
		}
		payload, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshalling record: %w", err)
		}
		_, err = stmt.ExecContext(ctx, r.CaseID, r.UttIDFirst, r.UttIDLast, r.CaseYear, r.JusticeName, r.AdvocateName, string(payload))
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate chunk %s in case %s", transcript.ErrDataIntegrity, r.UttIDFirst, caseID)
		}
		if err != nil {
			return fmt.Errorf("saving chunk %s: %w", r.UttIDFirst, err)
		}
	}
	return tx.Commit()
}

func isUniqueViolation(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		(se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE"))
}

// All returns every stored record ordered by case and insertion order.
func (s *Store) All(ctx context.Context) ([]chunking.Record, error) {
	return s.query(ctx, "SELECT record FROM chunks ORDER BY case_id, rowid")
}

// Case returns the stored records of one case.
func (s *Store) Case(ctx context.Context, caseID string) ([]chunking.Record, error) {
	return s.query(ctx, "SELECT record FROM chunks WHERE case_id = ? ORDER BY rowid", caseID)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]chunking.Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var out []chunking.Record
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		var r chunking.Record
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decoding chunk: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Run is the summary row of one pipeline run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	YearStart  int
	YearEnd    int
	Cases      int
	Chunks     int
}

// SaveRun records a finished run.
func (s *Store) SaveRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, year_start, year_end, cases, chunks)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.StartedAt.UTC(), r.FinishedAt.UTC(), r.YearStart, r.YearEnd, r.Cases, r.Chunks)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Runs lists recorded runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, year_start, year_end, cases, chunks
		FROM runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.YearStart, &r.YearEnd, &r.Cases, &r.Chunks); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
