// Package lakestore persists dataset partitions as hive-style directory
// trees of JSONL part files:
//
//	<storage_path>/etl_inserted=<value>/part-00000-<uuid>.jsonl
//
// Partition-column values live in the directory names, not in the part
// files; reads re-attach them to every row (schema-on-read). Writes are
// append-only: a write lands new part files and never rewrites existing
// ones, so every previously written partition stays readable forever.
// Concurrent writers targeting the same partition value are not locked
// against each other; they land as separate part files.
package lakestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/ctxlog"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// Store implements the pipeline's storage engine contract over the local
// filesystem. The zero value works; options add catalog registration.
type Store struct {
	catalogDir string
}

// Option configures a Store.
type Option func(*Store)

// WithCatalogDir enables best-effort catalog registration: every successful
// write upserts the table under <dir>/<database>.json.
func WithCatalogDir(dir string) Option {
	return func(s *Store) { s.catalogDir = dir }
}

// NewStore creates a store.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write appends the frame's rows to the location as one part file per
// distinct partition-key tuple. The partition columns are stripped from the
// file rows; the directory name carries them.
func (s *Store) Write(ctx context.Context, frame *dataframe.DataFrame, loc etl.Location, mode etl.WriteMode) error {
	if mode != etl.Append {
		return fmt.Errorf("writing %s: %w: %q", loc.Table, ErrUnsupportedMode, mode)
	}
	if loc.Format != FormatJSONL {
		return fmt.Errorf("writing %s: %w: %q", loc.Table, ErrUnknownFormat, loc.Format)
	}

	rows, err := frame.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collecting %s: %w", loc.Table, err)
	}

	groups := make(map[string][]map[string]any)
	for _, row := range rows {
		rel := ""
		fileRow := make(map[string]any, len(row))
		for k, v := range row {
			fileRow[k] = v
		}
		for _, key := range loc.PartitionKeys {
			v, ok := row[key]
			if !ok {
				return fmt.Errorf("writing %s: partition column %s missing from rows", loc.Table, key)
			}
			value, err := partitionValueString(key, v)
			if err != nil {
				return fmt.Errorf("writing %s: %w", loc.Table, err)
			}
			rel = filepath.Join(rel, segment(key, value))
			delete(fileRow, key)
		}
		groups[rel] = append(groups[rel], fileRow)
	}

	if err := os.MkdirAll(loc.Path, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", loc.Path, err)
	}
	for rel, group := range groups {
		dir := filepath.Join(loc.Path, rel)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating partition %s: %w", dir, err)
		}
		name := fmt.Sprintf("part-00000-%s.jsonl", uuid.NewString())
		if err := writeJSONLFile(filepath.Join(dir, name), group); err != nil {
			return fmt.Errorf("writing partition %s: %w", rel, err)
		}
	}

	ctxlog.FromContext(ctx).Info("wrote table partitions",
		"table", loc.Table, "rows", len(rows), "partitions", len(groups), "path", loc.Path)

	if s.catalogDir != "" {
		if err := s.registerTable(loc); err != nil {
			ctxlog.FromContext(ctx).Warn("catalog registration failed",
				"table", loc.Table, "database", loc.Database, "error", err)
		}
	}
	return nil
}

// Read loads the location's partitions into a frame, pruned to those
// matching every filter. Partition columns are re-attached from the
// directory names as string values. A missing table path is an error; a
// table with no matching partitions is ErrNoPartitions.
func (s *Store) Read(ctx context.Context, sess *dataframe.Session, loc etl.Location, filters []etl.PartitionFilter) (*dataframe.DataFrame, error) {
	if loc.Format != FormatJSONL {
		return nil, fmt.Errorf("reading %s: %w: %q", loc.Table, ErrUnknownFormat, loc.Format)
	}
	if _, err := os.Stat(loc.Path); err != nil {
		return nil, fmt.Errorf("reading %s: %w", loc.Table, err)
	}

	keySet := make(map[string]bool, len(loc.PartitionKeys))
	for _, k := range loc.PartitionKeys {
		keySet[k] = true
	}
	for _, f := range filters {
		if !keySet[f.Key] {
			return nil, fmt.Errorf("reading %s: %s is not a partition column", loc.Table, f.Key)
		}
	}

	parts, err := listPartitions(loc.Path, loc.PartitionKeys)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", loc.Table, err)
	}

	var rows []map[string]any
	matched := 0
	for _, p := range parts {
		if !matchesFilters(p.values, filters) {
			continue
		}
		matched++
		files, err := partFiles(p.dir)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", loc.Table, err)
		}
		for _, file := range files {
			fileRows, err := readJSONLFile(file)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", loc.Table, err)
			}
			for _, row := range fileRows {
				for k, v := range p.values {
					row[k] = v
				}
				rows = append(rows, row)
			}
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading %s at %s: %w (matched %d of %d partition dirs)",
			loc.Table, loc.Path, ErrNoPartitions, matched, len(parts))
	}

	ctxlog.FromContext(ctx).Debug("loaded table partitions",
		"table", loc.Table, "rows", len(rows), "partitions", matched)
	return frameFromRows(ctx, sess, rows)
}

// matchesFilters reports whether a partition's values satisfy every filter.
func matchesFilters(values map[string]string, filters []etl.PartitionFilter) bool {
	for _, f := range filters {
		if values[f.Key] != f.Value {
			return false
		}
	}
	return true
}

// frameFromRows materializes row maps into a frame over the sorted union of
// their keys. Rows missing a key hold NULL there; the schema is whatever
// the files collectively carry.
func frameFromRows(ctx context.Context, sess *dataframe.Session, rows []map[string]any) (*dataframe.DataFrame, error) {
	colSet := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			colSet[k] = true
		}
	}
	cols := make([]string, 0, len(colSet))
	for k := range colSet {
		cols = append(cols, k)
	}
	sort.Strings(cols)

	data := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(cols))
		for j, c := range cols {
			vals[j] = row[c]
		}
		data[i] = vals
	}
	frame, err := sess.CreateDataFrame(ctx, cols, data)
	if err != nil {
		return nil, fmt.Errorf("materializing rows: %w", err)
	}
	return frame, nil
}
