package etl

import (
	"context"
	"fmt"
	"sort"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/ctxlog"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
)

// Write appends the envelope's rows to the table's storage location,
// partitioned by the table's partition keys. With write_data off it is a
// no-op. Each call lands a new ingestion-timestamp partition; prior
// partitions are never touched, so repeated writes stay independently
// readable by their own timestamps.
func (t *Table) Write(ctx context.Context, ds DataSet) error {
	if !t.writeData {
		ctxlog.FromContext(ctx).Debug("write skipped", "table", t.spec.Name)
		return nil
	}
	if ds.Data == nil {
		return fmt.Errorf("writing %s: envelope has no data", t.spec.Name)
	}
	if err := t.rt.store.Write(ctx, ds.Data, t.location(), Append); err != nil {
		return fmt.Errorf("writing %s: %w", t.spec.Name, err)
	}
	return nil
}

// Read returns the table's canonical envelope, always projected to the
// published column list. Three modes, in priority order:
//
//  1. write_data off: serve the cached transform output, no storage access.
//  2. explicit partitionValues: load only the partitions matching every
//     key/value pair exactly.
//  3. otherwise: probe storage for the maximum ingestion timestamp and load
//     that partition (the latest snapshot).
func (t *Table) Read(ctx context.Context, partitionValues map[string]string) (DataSet, error) {
	log := ctxlog.FromContext(ctx)

	if !t.writeData {
		if t.current == nil {
			return DataSet{}, fmt.Errorf("reading %s: %w: nothing cached and writes disabled", t.spec.Name, ErrNoSnapshot)
		}
		f, err := t.current.Select(ctx, t.spec.Columns...)
		if err != nil {
			return DataSet{}, fmt.Errorf("reading %s from cache: %w", t.spec.Name, err)
		}
		return t.envelope(f), nil
	}

	loc := t.location()
	if len(partitionValues) > 0 {
		filters := make([]PartitionFilter, 0, len(partitionValues))
		keys := make([]string, 0, len(partitionValues))
		for k := range partitionValues {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			filters = append(filters, PartitionFilter{Key: k, Value: partitionValues[k]})
		}
		f, err := t.rt.store.Read(ctx, t.rt.sess, loc, filters)
		if err != nil {
			return DataSet{}, fmt.Errorf("reading %s: %w", t.spec.Name, err)
		}
		log.Debug("read explicit partitions", "table", t.spec.Name, "filters", len(filters))
		return t.project(ctx, f)
	}

	f, err := t.rt.store.Read(ctx, t.rt.sess, loc, nil)
	if err != nil {
		return DataSet{}, fmt.Errorf("reading %s: %w", t.spec.Name, err)
	}
	latest, err := t.latestStamp(ctx, f)
	if err != nil {
		return DataSet{}, err
	}
	snapshot, err := f.Filter(ctx, dataframe.Eq(StampColumn, latest))
	if err != nil {
		return DataSet{}, fmt.Errorf("reading %s: %w", t.spec.Name, err)
	}
	log.Debug("read latest partition", "table", t.spec.Name, "etl_inserted", latest)
	return t.project(ctx, snapshot)
}

// project narrows a frame to the canonical published columns and wraps it.
func (t *Table) project(ctx context.Context, f *dataframe.DataFrame) (DataSet, error) {
	out, err := f.Select(ctx, t.spec.Columns...)
	if err != nil {
		return DataSet{}, fmt.Errorf("projecting %s: %w", t.spec.Name, err)
	}
	return t.envelope(out), nil
}

// latestStamp probes a loaded frame for the maximum ingestion timestamp.
func (t *Table) latestStamp(ctx context.Context, f *dataframe.DataFrame) (string, error) {
	probe, err := f.GroupBy().Agg(ctx, dataframe.Max(StampColumn, "latest_inserted"))
	if err != nil {
		return "", fmt.Errorf("probing %s: %w", t.spec.Name, err)
	}
	rows, err := probe.Collect(ctx)
	if err != nil {
		return "", fmt.Errorf("probing %s: %w", t.spec.Name, err)
	}
	if len(rows) == 0 || rows[0]["latest_inserted"] == nil {
		return "", fmt.Errorf("probing %s: %w", t.spec.Name, ErrNoSnapshot)
	}
	latest, ok := rows[0]["latest_inserted"].(string)
	if !ok {
		return "", fmt.Errorf("probing %s: ingestion timestamp is %T, want string", t.spec.Name, rows[0]["latest_inserted"])
	}
	return latest, nil
}
