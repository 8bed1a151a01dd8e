package etl

// Option configures a table at construction. Both execution flags default to
// true and are propagated unchanged to every upstream a table instantiates.
type Option func(*Table)

// WithRunUpstream controls whether upstream tables execute their own
// lifecycle during extraction, or are assumed already persisted and only
// read.
func WithRunUpstream(run bool) Option {
	return func(t *Table) { t.runUpstream = run }
}

// WithWriteData controls whether results persist to storage, or stay in
// memory and are served from the transform cache on read.
func WithWriteData(write bool) Option {
	return func(t *Table) { t.writeData = write }
}
