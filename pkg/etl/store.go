package etl

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
)

// Location addresses one table's persisted form. It is the only state a
// store needs to read or write a table; there is no per-table connection.
type Location struct {
	Table         string
	Path          string
	Format        string
	Database      string
	PartitionKeys []string
}

// WriteMode selects write semantics. The pipeline is append-only.
type WriteMode string

// Append adds a new partition without touching existing ones.
const Append WriteMode = "append"

// PartitionFilter is one exact-match clause over a partition column. Reads
// combine filters as a conjunction; no range or comparison operators exist
// at this boundary.
type PartitionFilter struct {
	Key   string
	Value string
}

// Store is the storage engine the lifecycle persists through.
type Store interface {
	// Write appends the frame's rows to the location, laid out by its
	// partition keys.
	Write(ctx context.Context, frame *dataframe.DataFrame, loc Location, mode WriteMode) error

	// Read loads the location's rows into a frame on the given session,
	// restricted to partitions matching every filter. With no filters, all
	// partitions load.
	Read(ctx context.Context, sess *dataframe.Session, loc Location, filters []PartitionFilter) (*dataframe.DataFrame, error)
}

// RawSource is the landing zone bronze tables extract from.
type RawSource interface {
	// ReadTable loads one raw table into a frame on the given session.
	ReadTable(ctx context.Context, sess *dataframe.Session, table string) (*dataframe.DataFrame, error)
}
