package etl

import "errors"

// Sentinel errors returned by the lifecycle. Callers test with errors.Is.
var (
	// ErrInvalidData is returned by Run when validation rejects the transform
	// output. The write is skipped; whether the larger pipeline halts is the
	// caller's decision.
	ErrInvalidData = errors.New("invalid data")

	// ErrUnknownTable is returned by registry lookups for unregistered names.
	ErrUnknownTable = errors.New("unknown table")

	// ErrNoSnapshot is returned by Read when there is nothing to serve: no
	// cached transform output in memory-only mode, or no ingestion timestamp
	// to resolve a latest-partition read against.
	ErrNoSnapshot = errors.New("no snapshot")
)
