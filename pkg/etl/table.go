package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/ctxlog"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
)

// Factory constructs a table bound to a runtime. Upstream dependencies are
// declared as factories rather than instances, so a table is only built,
// with the parent's execution flags, when its edge is actually walked.
type Factory func(rt *Runtime, opts ...Option) *Table

// TransformFunc collapses the upstream envelopes, in declaration order, into
// one output frame. The ingested value is the run's ingestion timestamp; the
// transform stamps it on every output row as the StampColumn.
type TransformFunc func(ctx context.Context, upstreams []DataSet, ingested string) (*dataframe.DataFrame, error)

// ExtractFunc replaces upstream resolution for leaf tables that pull from an
// external source instead of other tables.
type ExtractFunc func(ctx context.Context, t *Table) ([]DataSet, error)

// Spec declares one table: its identity, its persisted shape, its upstream
// dependencies, and its transform.
type Spec struct {
	// Name is the logical table name.
	Name string

	// Layer is the conformance layer (bronze, silver, gold); with Name it
	// determines the default storage path inside the warehouse.
	Layer string

	// PrimaryKeys lists the columns validation requires to be non-null and
	// unique as a tuple.
	PrimaryKeys []string

	// Columns is the canonical published column list. Every read mode
	// projects to exactly these columns, whatever intermediate columns the
	// transform produced.
	Columns []string

	// StoragePath, Format, Database, and PartitionKeys override the
	// runtime-derived defaults when set.
	StoragePath   string
	Format        string
	Database      string
	PartitionKeys []string

	// Upstreams are the dependency factories, in the order the transform
	// indexes into its input envelopes. Declaration order is a contract.
	Upstreams []Factory

	// Extract, when set, replaces upstream resolution (leaf tables).
	Extract ExtractFunc

	// Transform produces the table's output frame.
	Transform TransformFunc
}

// Table is one ETL unit: one logical table's lifecycle, instantiated once
// per run. No state survives an instance except what was written to storage.
type Table struct {
	rt   *Runtime
	spec Spec

	runUpstream bool
	writeData   bool

	// current caches the latest transform output so a read can serve it
	// without a storage round trip when persistence was skipped.
	current *dataframe.DataFrame
}

// New builds a table from its spec, filling unset persistence metadata from
// the runtime defaults: storage path <warehouse>/<layer>/<name>, the runtime
// database and format, and the ingestion-timestamp partition key.
func New(rt *Runtime, spec Spec, opts ...Option) *Table {
	if spec.StoragePath == "" {
		spec.StoragePath = rt.TablePath(spec.Layer, spec.Name)
	}
	if spec.Format == "" {
		spec.Format = rt.Format()
	}
	if spec.Database == "" {
		spec.Database = rt.Database()
	}
	if len(spec.PartitionKeys) == 0 {
		spec.PartitionKeys = []string{StampColumn}
	}
	t := &Table{rt: rt, spec: spec, runUpstream: true, writeData: true}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the logical table name.
func (t *Table) Name() string { return t.spec.Name }

// Layer returns the table's conformance layer.
func (t *Table) Layer() string { return t.spec.Layer }

// PrimaryKeys returns the table's primary-key columns.
func (t *Table) PrimaryKeys() []string {
	return append([]string(nil), t.spec.PrimaryKeys...)
}

// Columns returns the table's canonical published column list.
func (t *Table) Columns() []string {
	return append([]string(nil), t.spec.Columns...)
}

// StoragePath returns where the table's persisted form lives.
func (t *Table) StoragePath() string { return t.spec.StoragePath }

// Runtime returns the execution context the table is bound to.
func (t *Table) Runtime() *Runtime { return t.rt }

// location addresses the table's persisted form for the store.
func (t *Table) location() Location {
	return Location{
		Table:         t.spec.Name,
		Path:          t.spec.StoragePath,
		Format:        t.spec.Format,
		Database:      t.spec.Database,
		PartitionKeys: append([]string(nil), t.spec.PartitionKeys...),
	}
}

// envelope wraps a frame in a fresh dataset envelope carrying the table's
// own metadata.
func (t *Table) envelope(f *dataframe.DataFrame) DataSet {
	return DataSet{
		Name:          t.spec.Name,
		Data:          f,
		PrimaryKeys:   append([]string(nil), t.spec.PrimaryKeys...),
		StoragePath:   t.spec.StoragePath,
		Format:        t.spec.Format,
		Database:      t.spec.Database,
		PartitionKeys: append([]string(nil), t.spec.PartitionKeys...),
	}
}

// Run executes the full lifecycle: extract upstreams, transform, validate,
// write. A validation rejection returns ErrInvalidData and skips the write;
// any other failure aborts the whole recursive chain. After a successful Run
// the table is ready to Read.
func (t *Table) Run(ctx context.Context) error {
	log := ctxlog.FromContext(ctx)
	log.Info("running table",
		"layer", t.spec.Layer,
		"table", t.spec.Name,
		"run_upstream", t.runUpstream,
		"write_data", t.writeData)
	started := time.Now()

	upstreams, err := t.ExtractUpstream(ctx)
	if err != nil {
		return fmt.Errorf("extracting upstreams of %s: %w", t.spec.Name, err)
	}
	out, err := t.TransformUpstream(ctx, upstreams)
	if err != nil {
		return err
	}
	ok, err := t.Validate(ctx, out)
	if err != nil {
		return fmt.Errorf("validating %s: %w", t.spec.Name, err)
	}
	if !ok {
		return fmt.Errorf("table %s: %w", t.spec.Name, ErrInvalidData)
	}
	if err := t.Write(ctx, out); err != nil {
		return err
	}

	log.Info("table done", "table", t.spec.Name, "elapsed", time.Since(started))
	return nil
}
