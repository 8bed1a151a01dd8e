package lakestore

import "errors"

// FormatJSONL is the storage encoding this store implements: one JSON object
// per line per part file, hive-style partition directories.
const FormatJSONL = "jsonl"

// Sentinel errors returned by the store. Callers test with errors.Is.
var (
	// ErrUnknownFormat indicates a location names a format this store does
	// not implement.
	ErrUnknownFormat = errors.New("unknown storage format")

	// ErrUnsupportedMode indicates a write mode other than append.
	ErrUnsupportedMode = errors.New("unsupported write mode")

	// ErrNoPartitions indicates a read found no partitions: the table was
	// never written, or no partition matched the given filters.
	ErrNoPartitions = errors.New("no partitions")
)
