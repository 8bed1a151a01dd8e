package dataframe

import (
	"context"
	"fmt"
	"strings"
)

// GroupedFrame is a frame with grouping keys applied, awaiting aggregation.
// An empty key list aggregates the whole frame into a single row.
type GroupedFrame struct {
	frame *DataFrame
	keys  []string
}

// GroupBy groups the frame by the given key columns.
func (f *DataFrame) GroupBy(keys ...string) *GroupedFrame {
	return &GroupedFrame{frame: f, keys: append([]string(nil), keys...)}
}

type aggKind int

const (
	aggSum aggKind = iota
	aggMean
	aggMax
	aggCollectStruct
)

// Agg describes one aggregate output column. Build with Sum, Mean, Max, or
// CollectStruct.
type Agg struct {
	kind    aggKind
	column  string
	columns []string
	as      string
}

// Sum aggregates the column's total, NULLs ignored.
func Sum(column, as string) Agg {
	return Agg{kind: aggSum, column: column, as: as}
}

// Mean aggregates the column's arithmetic mean, NULLs ignored.
func Mean(column, as string) Agg {
	return Agg{kind: aggMean, column: column, as: as}
}

// Max aggregates the column's maximum value.
func Max(column, as string) Agg {
	return Agg{kind: aggMax, column: column, as: as}
}

// CollectStruct gathers the named columns of every row in the group into a
// JSON array of objects, one object per row.
func CollectStruct(as string, columns ...string) Agg {
	return Agg{kind: aggCollectStruct, columns: columns, as: as}
}

// Agg materializes the grouped aggregation. The output carries the grouping
// keys followed by one column per aggregate, named by its as-label.
func (g *GroupedFrame) Agg(ctx context.Context, aggs ...Agg) (*DataFrame, error) {
	if len(aggs) == 0 {
		return nil, fmt.Errorf("aggregating: no aggregates")
	}
	used := make(map[string]bool, len(g.keys)+len(aggs))
	var parts, columns []string
	for _, k := range g.keys {
		if !g.frame.HasColumn(k) {
			return nil, fmt.Errorf("aggregating: %w: group key %s", ErrUnknownColumn, k)
		}
		if used[k] {
			return nil, fmt.Errorf("aggregating: %w: group key %s", ErrDuplicateColumn, k)
		}
		used[k] = true
		parts = append(parts, quoteIdent(k))
		columns = append(columns, k)
	}
	for _, a := range aggs {
		if a.as == "" {
			return nil, fmt.Errorf("aggregating: unnamed aggregate")
		}
		if used[a.as] {
			return nil, fmt.Errorf("aggregating: %w: %s", ErrDuplicateColumn, a.as)
		}
		used[a.as] = true
		expr, err := a.render(g.frame)
		if err != nil {
			return nil, err
		}
		parts = append(parts, expr+" AS "+quoteIdent(a.as))
		columns = append(columns, a.as)
	}

	sel := fmt.Sprintf("SELECT %s FROM %s", strings.Join(parts, ", "), quoteIdent(g.frame.table))
	if len(g.keys) > 0 {
		quoted := make([]string, len(g.keys))
		for i, k := range g.keys {
			quoted[i] = quoteIdent(k)
		}
		sel += " GROUP BY " + strings.Join(quoted, ", ")
	}
	out, err := g.frame.derive(ctx, sel, nil, columns)
	if err != nil {
		return nil, fmt.Errorf("aggregating: %w", err)
	}
	return out, nil
}

func (a Agg) render(f *DataFrame) (string, error) {
	switch a.kind {
	case aggSum, aggMean, aggMax:
		if !f.HasColumn(a.column) {
			return "", fmt.Errorf("aggregating: %w: %s", ErrUnknownColumn, a.column)
		}
		fn := map[aggKind]string{aggSum: "sum", aggMean: "avg", aggMax: "max"}[a.kind]
		return fn + "(" + quoteIdent(a.column) + ")", nil
	case aggCollectStruct:
		if len(a.columns) == 0 {
			return "", fmt.Errorf("aggregating: %w: empty struct", ErrEmptySchema)
		}
		pairs := make([]string, 0, len(a.columns)*2)
		for _, c := range a.columns {
			if !f.HasColumn(c) {
				return "", fmt.Errorf("aggregating: %w: %s", ErrUnknownColumn, c)
			}
			pairs = append(pairs, quoteText(c), quoteIdent(c))
		}
		return "json_group_array(json_object(" + strings.Join(pairs, ", ") + "))", nil
	default:
		return "", fmt.Errorf("aggregating: unknown aggregate kind %d", a.kind)
	}
}
