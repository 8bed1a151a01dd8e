package lakestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
)

// SourceStore is the raw landing zone: one flat JSONL file per table,
// unpartitioned, exactly as the sources delivered it. Bronze tables extract
// from here.
type SourceStore struct {
	dir string
}

// NewSourceStore returns a raw-zone reader/writer rooted at dir.
func NewSourceStore(dir string) *SourceStore {
	return &SourceStore{dir: dir}
}

// Dir returns the raw-zone root.
func (s *SourceStore) Dir() string {
	return s.dir
}

// tablePath returns the file backing one raw table.
func (s *SourceStore) tablePath(table string) string {
	return filepath.Join(s.dir, table+".jsonl")
}

// ReadTable loads one raw table into a frame. A raw table must exist and
// carry at least one row; bronze extraction has nothing to conform
// otherwise.
func (s *SourceStore) ReadTable(ctx context.Context, sess *dataframe.Session, table string) (*dataframe.DataFrame, error) {
	rows, err := readJSONLFile(s.tablePath(table))
	if err != nil {
		return nil, fmt.Errorf("reading raw table %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("raw table %s has no rows", table)
	}
	return frameFromRows(ctx, sess, rows)
}

// WriteTable lands rows as one raw table, replacing any previous landing.
// The raw zone is a delivery area, not the warehouse: unlike table storage
// there is no partition history here.
func (s *SourceStore) WriteTable(table string, rows []map[string]any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating raw dir %s: %w", s.dir, err)
	}
	if err := writeJSONLFile(s.tablePath(table), rows); err != nil {
		return fmt.Errorf("landing raw table %s: %w", table, err)
	}
	return nil
}
