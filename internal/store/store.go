// Package store persists analysis runs to a local SQLite database so
// past results can be listed and compared without re-analyzing.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/janetyc/citecheck/internal/analyzer"
)

// DB wraps a SQLite database holding analysis history.
type DB struct {
	db *sql.DB
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	ID             int64          `json:"id"`
	Source         string         `json:"source"`
	CreatedAt      time.Time      `json:"created_at"`
	ReferenceCount int            `json:"reference_count"`
	ResolvedCount  int            `json:"resolved_count"`
	StyleCounts    map[string]int `json:"style_counts"`
}

// Open opens or creates the history database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite does not support concurrent writers.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			created_at TEXT NOT NULL,
			reference_count INTEGER NOT NULL,
			resolved_count INTEGER NOT NULL,
			style_counts_json TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS run_references (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			order_index INTEGER NOT NULL,
			text TEXT NOT NULL,
			style TEXT NOT NULL,
			confidence REAL NOT NULL,
			identifier_kind TEXT NOT NULL,
			identifier TEXT,
			resolution TEXT NOT NULL,
			PRIMARY KEY (run_id, order_index)
		);

		CREATE INDEX IF NOT EXISTS idx_run_references_run
			ON run_references(run_id);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveRun stores one analysis result under a source label (usually the
// input filename) and returns the run id.
func (d *DB) SaveRun(source string, result *analyzer.Result) (int64, error) {
	styleJSON, err := json.Marshal(result.StyleCounts)
	if err != nil {
		return 0, fmt.Errorf("failed to encode style counts: %w", err)
	}

	resolved := 0
	for _, ref := range result.References {
		if ref.Validation.Resolution == analyzer.ResolutionResolved {
			resolved++
		}
	}

	tx, err := d.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (source, created_at, reference_count, resolved_count, style_counts_json)
		 VALUES (?, ?, ?, ?, ?)`,
		source,
		result.GeneratedAt.UTC().Format(time.RFC3339),
		len(result.References),
		resolved,
		string(styleJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO run_references (run_id, order_index, text, style, confidence, identifier_kind, identifier, resolution)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare reference insert: %w", err)
	}
	defer stmt.Close()

	for _, ref := range result.References {
		_, err := stmt.Exec(
			runID,
			ref.Reference.OrderIndex,
			ref.Reference.Text,
			ref.Classification.Style,
			ref.Classification.Confidence,
			ref.Validation.IdentifierKind,
			ref.Validation.Identifier,
			string(ref.Validation.Resolution),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert reference %d: %w", ref.Reference.OrderIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns run summaries, newest first.
func (d *DB) ListRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.db.Query(
		`SELECT id, source, created_at, reference_count, resolved_count, style_counts_json
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			run       RunSummary
			createdAt string
			styleJSON string
		)
		if err := rows.Scan(&run.ID, &run.Source, &createdAt, &run.ReferenceCount, &run.ResolvedCount, &styleJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		if err := json.Unmarshal([]byte(styleJSON), &run.StyleCounts); err != nil {
			return nil, fmt.Errorf("failed to decode style counts for run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunReferences returns the stored references of one run in order.
func (d *DB) RunReferences(runID int64) ([]StoredReference, error) {
	rows, err := d.db.Query(
		`SELECT order_index, text, style, confidence, identifier_kind, identifier, resolution
		 FROM run_references WHERE run_id = ? ORDER BY order_index`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query references: %w", err)
	}
	defer rows.Close()

	var refs []StoredReference
	for rows.Next() {
		var (
			ref        StoredReference
			identifier sql.NullString
		)
		if err := rows.Scan(&ref.OrderIndex, &ref.Text, &ref.Style, &ref.Confidence, &ref.IdentifierKind, &identifier, &ref.Resolution); err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		ref.Identifier = identifier.String
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// StoredReference is one persisted reference row.
type StoredReference struct {
	OrderIndex     int     `json:"order_index"`
	Text           string  `json:"text"`
	Style          string  `json:"style"`
	Confidence     float64 `json:"confidence"`
	IdentifierKind string  `json:"identifier_kind"`
	Identifier     string  `json:"identifier,omitempty"`
	Resolution     string  `json:"resolution"`
}
