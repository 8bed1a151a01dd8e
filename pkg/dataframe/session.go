// Package dataframe provides a small tabular execution engine backed by an
// in-memory SQLite database. A Session owns the database; a DataFrame is an
// immutable handle to one materialized table inside it. Every operation
// (select, filter, join, group-by, derived columns) materializes a new table
// and returns a new handle, so intermediate results stay addressable for the
// lifetime of the session.
//
// The engine is deliberately narrow: it exposes only the operations the
// pipeline's transforms need, and it moves rows to the driver side only
// through Collect.
package dataframe

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// Session is one engine instance. Frames created from a session are only
// valid against that session. A run of the pipeline is a single logical
// thread, so the underlying pool is pinned to one connection; with the
// in-memory DSN this also guarantees every statement sees the same database.
type Session struct {
	db  *sql.DB
	seq atomic.Int64
}

// Open creates a new in-memory session.
func Open() (*Session, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return &Session{db: db}, nil
}

// Close releases the session and every frame materialized in it.
func (s *Session) Close() error {
	return s.db.Close()
}

// nextTable returns a fresh backing-table name.
func (s *Session) nextTable() string {
	return fmt.Sprintf("df_%05d", s.seq.Add(1))
}

// CreateDataFrame materializes driver-side rows into a new frame. Columns are
// declared without type affinity; values keep whatever dynamic type they
// arrive with. Row length must match the column list.
func (s *Session) CreateDataFrame(ctx context.Context, columns []string, rows [][]any) (*DataFrame, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("creating frame: %w", ErrEmptySchema)
	}
	seen := make(map[string]bool, len(columns))
	quoted := make([]string, len(columns))
	for i, c := range columns {
		if c == "" {
			return nil, fmt.Errorf("creating frame: %w: empty name at position %d", ErrUnknownColumn, i)
		}
		if seen[c] {
			return nil, fmt.Errorf("creating frame: %w: %s", ErrDuplicateColumn, c)
		}
		seen[c] = true
		quoted[i] = quoteIdent(c)
	}

	table := s.nextTable()
	create := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(quoted, ", "))
	if _, err := s.db.ExecContext(ctx, create); err != nil {
		return nil, fmt.Errorf("creating frame table: %w", err)
	}

	if len(rows) > 0 {
		placeholders := make([]string, len(columns))
		for i := range placeholders {
			placeholders[i] = "?"
		}
		insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(table), strings.Join(placeholders, ", "))
		stmt, err := s.db.PrepareContext(ctx, insert)
		if err != nil {
			return nil, fmt.Errorf("preparing frame insert: %w", err)
		}
		defer stmt.Close()
		for i, row := range rows {
			if len(row) != len(columns) {
				return nil, fmt.Errorf("inserting frame row %d: got %d values for %d columns", i, len(row), len(columns))
			}
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				return nil, fmt.Errorf("inserting frame row %d: %w", i, err)
			}
		}
	}

	return &DataFrame{sess: s, table: table, cols: append([]string(nil), columns...)}, nil
}

// quoteIdent escapes an identifier for direct inclusion in SQL text.
func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// quoteText escapes a string for inclusion as a SQL text literal. Used only
// for JSON object keys inside aggregate expressions; plain values always go
// through placeholders.
func quoteText(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
