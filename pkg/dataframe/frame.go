package dataframe

import (
	"context"
	"fmt"
	"strings"
)

// DataFrame is an immutable handle to one materialized table. Operations
// never mutate the receiver; they return a new frame backed by a new table.
type DataFrame struct {
	sess  *Session
	table string
	cols  []string
}

// Columns returns the frame's column list in order.
func (f *DataFrame) Columns() []string {
	return append([]string(nil), f.cols...)
}

// HasColumn reports whether the frame carries the named column.
func (f *DataFrame) HasColumn(name string) bool {
	for _, c := range f.cols {
		if c == name {
			return true
		}
	}
	return false
}

// derive materializes a SELECT over this frame's session into a new frame
// with the given column list.
func (f *DataFrame) derive(ctx context.Context, selectSQL string, args []any, columns []string) (*DataFrame, error) {
	table := f.sess.nextTable()
	create := fmt.Sprintf("CREATE TABLE %s AS %s", quoteIdent(table), selectSQL)
	if _, err := f.sess.db.ExecContext(ctx, create, args...); err != nil {
		return nil, fmt.Errorf("materializing frame: %w", err)
	}
	return &DataFrame{sess: f.sess, table: table, cols: append([]string(nil), columns...)}, nil
}

// Select projects the frame to exactly the named columns, in the given order.
func (f *DataFrame) Select(ctx context.Context, columns ...string) (*DataFrame, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("selecting: %w", ErrEmptySchema)
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		if !f.HasColumn(c) {
			return nil, fmt.Errorf("selecting: %w: %s", ErrUnknownColumn, c)
		}
		quoted[i] = quoteIdent(c)
	}
	sel := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(f.table))
	return f.derive(ctx, sel, nil, columns)
}

// Drop removes the named columns, keeping the rest in order.
func (f *DataFrame) Drop(ctx context.Context, columns ...string) (*DataFrame, error) {
	dropped := make(map[string]bool, len(columns))
	for _, c := range columns {
		if !f.HasColumn(c) {
			return nil, fmt.Errorf("dropping: %w: %s", ErrUnknownColumn, c)
		}
		dropped[c] = true
	}
	var kept []string
	for _, c := range f.cols {
		if !dropped[c] {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("dropping: %w", ErrEmptySchema)
	}
	return f.Select(ctx, kept...)
}

// Rename changes one column's name, keeping its position.
func (f *DataFrame) Rename(ctx context.Context, from, to string) (*DataFrame, error) {
	if !f.HasColumn(from) {
		return nil, fmt.Errorf("renaming: %w: %s", ErrUnknownColumn, from)
	}
	if from != to && f.HasColumn(to) {
		return nil, fmt.Errorf("renaming: %w: %s", ErrDuplicateColumn, to)
	}
	parts := make([]string, len(f.cols))
	columns := make([]string, len(f.cols))
	for i, c := range f.cols {
		if c == from {
			parts[i] = quoteIdent(from) + " AS " + quoteIdent(to)
			columns[i] = to
		} else {
			parts[i] = quoteIdent(c)
			columns[i] = c
		}
	}
	sel := fmt.Sprintf("SELECT %s FROM %s", strings.Join(parts, ", "), quoteIdent(f.table))
	return f.derive(ctx, sel, nil, columns)
}

// Filter keeps only rows matching the predicate.
func (f *DataFrame) Filter(ctx context.Context, cond Cond) (*DataFrame, error) {
	sel := fmt.Sprintf("SELECT * FROM %s WHERE %s", quoteIdent(f.table), cond.sql)
	out, err := f.derive(ctx, sel, cond.args, f.cols)
	if err != nil {
		return nil, fmt.Errorf("filtering: %w", err)
	}
	return out, nil
}

// WithColumn adds a derived column. When the name already exists the column
// is replaced in place, keeping its position; otherwise it is appended.
func (f *DataFrame) WithColumn(ctx context.Context, name string, expr Expr) (*DataFrame, error) {
	if name == "" {
		return nil, fmt.Errorf("deriving column: %w: empty name", ErrUnknownColumn)
	}
	derived := expr.sql + " AS " + quoteIdent(name)

	var parts, columns []string
	replaced := false
	for _, c := range f.cols {
		if c == name {
			parts = append(parts, derived)
			replaced = true
		} else {
			parts = append(parts, quoteIdent(c))
		}
		columns = append(columns, c)
	}
	if !replaced {
		parts = append(parts, derived)
		columns = append(columns, name)
	}
	sel := fmt.Sprintf("SELECT %s FROM %s", strings.Join(parts, ", "), quoteIdent(f.table))
	out, err := f.derive(ctx, sel, expr.args, columns)
	if err != nil {
		return nil, fmt.Errorf("deriving column %s: %w", name, err)
	}
	return out, nil
}

// JoinKind selects the join semantics.
type JoinKind string

// Supported join kinds.
const (
	Inner JoinKind = "inner"
	Left  JoinKind = "left"
)

// Join combines this frame with other on equality of the named key columns.
// Key columns appear once in the output, taken from the left side and kept in
// their left-side positions; remaining left columns follow, then remaining
// right columns. A non-key column present on both sides is an error; drop or
// rename one side first.
func (f *DataFrame) Join(ctx context.Context, other *DataFrame, keys []string, kind JoinKind) (*DataFrame, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("joining: no key columns")
	}
	var joinOp string
	switch kind {
	case Inner:
		joinOp = "JOIN"
	case Left:
		joinOp = "LEFT JOIN"
	default:
		return nil, fmt.Errorf("joining: unsupported join kind %q", kind)
	}

	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !f.HasColumn(k) {
			return nil, fmt.Errorf("joining: %w: %s on left side", ErrUnknownColumn, k)
		}
		if !other.HasColumn(k) {
			return nil, fmt.Errorf("joining: %w: %s on right side", ErrUnknownColumn, k)
		}
		keySet[k] = true
	}
	for _, c := range other.cols {
		if !keySet[c] && f.HasColumn(c) {
			return nil, fmt.Errorf("joining: %w: %s on both sides", ErrAmbiguousColumn, c)
		}
	}

	var parts, columns []string
	for _, c := range f.cols {
		parts = append(parts, "l."+quoteIdent(c))
		columns = append(columns, c)
	}
	for _, c := range other.cols {
		if keySet[c] {
			continue
		}
		parts = append(parts, "r."+quoteIdent(c))
		columns = append(columns, c)
	}
	on := make([]string, len(keys))
	for i, k := range keys {
		on[i] = "l." + quoteIdent(k) + " = r." + quoteIdent(k)
	}

	sel := fmt.Sprintf("SELECT %s FROM %s AS l %s %s AS r ON %s",
		strings.Join(parts, ", "),
		quoteIdent(f.table),
		joinOp,
		quoteIdent(other.table),
		strings.Join(on, " AND "))
	out, err := f.derive(ctx, sel, nil, columns)
	if err != nil {
		return nil, fmt.Errorf("joining on %s: %w", strings.Join(keys, ", "), err)
	}
	return out, nil
}

// Distinct removes duplicate rows.
func (f *DataFrame) Distinct(ctx context.Context) (*DataFrame, error) {
	quoted := make([]string, len(f.cols))
	for i, c := range f.cols {
		quoted[i] = quoteIdent(c)
	}
	sel := fmt.Sprintf("SELECT DISTINCT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(f.table))
	return f.derive(ctx, sel, nil, f.cols)
}

// Count returns the number of rows.
func (f *DataFrame) Count(ctx context.Context) (int64, error) {
	var n int64
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdent(f.table))
	if err := f.sess.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return n, nil
}

// Collect materializes every row driver-side, one map per row keyed by column
// name. Text values are normalized to string; integers, floats, and NULLs
// keep their scanned Go types (int64, float64, nil).
func (f *DataFrame) Collect(ctx context.Context) ([]map[string]any, error) {
	quoted := make([]string, len(f.cols))
	for i, c := range f.cols {
		quoted[i] = quoteIdent(c)
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(f.table))
	rows, err := f.sess.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("collecting rows: %w", err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(f.cols))
		ptrs := make([]any, len(f.cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		row := make(map[string]any, len(f.cols))
		for i, c := range f.cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
			} else {
				row[c] = vals[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("collecting rows: %w", err)
	}
	return out, nil
}
