package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const recordsSchema = `
	CREATE TABLE IF NOT EXISTS records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		source_url TEXT NOT NULL,
		captured_at TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id);
	CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind);
`

// Sink stores every record of a run in a sqlite table
type Sink struct {
	db    *sql.DB
	path  string
	runID string
}

// OpenSink opens (or creates) the database at path. Use ":memory:" for an
// in-memory database.
func OpenSink(path, runID string) (*Sink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	setup := []string{"PRAGMA busy_timeout = 5000"}
	if path != ":memory:" {
		setup = append(setup, "PRAGMA journal_mode = WAL")
	}
	setup = append(setup, recordsSchema)

	for _, stmt := range setup {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare database: %w", err)
		}
	}

	return &Sink{db: db, path: path, runID: runID}, nil
}

// Insert stores r under the sink's run id
func (s *Sink) Insert(ctx context.Context, r model.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	h := r.Meta()
	name, phone, email, location := model.Summary(r)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (run_id, kind, source_url, captured_at, name, phone, email, location, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.runID, string(r.Kind()), h.SourceURL, h.CapturedAt.UTC().Format(time.RFC3339Nano),
		name, phone, email, location, string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// CountByKind returns how many records of each kind the run stored
func (s *Sink) CountByKind(ctx context.Context) (map[model.Kind]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM records WHERE run_id = ? GROUP BY kind`, s.runID)
	if err != nil {
		return nil, fmt.Errorf("count records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[model.Kind(kind)] = n
	}
	return counts, rows.Err()
}

// Close closes the database
func (s *Sink) Close() error {
	return s.db.Close()
}
