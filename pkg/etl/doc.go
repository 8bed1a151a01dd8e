// Package etl defines the contract every table in the layered pipeline is
// built from: the dataset envelope, the table unit with its
// extract/transform/validate/write/read lifecycle, the runtime that carries
// the engine session and the storage collaborators, and the registry mapping
// table names to factories.
//
// A table declares its upstream dependencies as an ordered list of factories.
// Running a table resolves that list recursively: each upstream is
// instantiated with the same execution flags, run first (post-order) when
// run_upstream is set, and read back as a dataset envelope. The envelope
// order always matches declaration order; transforms index into it
// positionally.
//
// Every transform stamps its output rows with a single ingestion timestamp
// that doubles as the storage partition key, so writes are append-only and
// the newest partition is the table's latest snapshot.
package etl
