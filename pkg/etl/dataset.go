package etl

import "github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"

// DataSet is the envelope passed between pipeline stages: one tabular result
// together with the identity and persistence metadata of the table that
// produced it. Envelopes are value objects: every transform and every read
// creates a fresh one, none is mutated in place.
type DataSet struct {
	// Name is the logical table name, stable across runs.
	Name string

	// Data is the tabular result itself.
	Data *dataframe.DataFrame

	// PrimaryKeys lists the columns whose value tuples are unique and
	// non-null in any envelope that has passed validation.
	PrimaryKeys []string

	// StoragePath is where the canonical persisted form lives.
	StoragePath string

	// Format names the storage encoding of the persisted form.
	Format string

	// Database is the logical namespace used for catalog registration.
	Database string

	// PartitionKeys is the physical partition layout of the persisted form;
	// in this pipeline always the single ingestion-timestamp column.
	PartitionKeys []string
}

// Column names and encodings shared across the whole pipeline.
const (
	// StampColumn is the synthetic ingestion-timestamp column every
	// transform stamps on its output. It is the partition key of every
	// table and the cursor for latest-snapshot reads.
	StampColumn = "etl_inserted"

	// StampLayout renders ingestion timestamps fixed-width in UTC, so the
	// string order of stamps is their chronological order and the value is
	// safe to use as a partition directory name.
	StampLayout = "20060102T150405.000000000Z"
)
