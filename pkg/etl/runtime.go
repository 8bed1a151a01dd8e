package etl

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
)

// Runtime is the execution context shared by every table instantiated during
// one pipeline invocation: the engine session, the storage collaborators, the
// warehouse layout defaults, and the optional run-scoped dataset cache.
type Runtime struct {
	sess  *dataframe.Session
	store Store
	raw   RawSource

	warehouse string
	database  string
	format    string
	clock     func() time.Time

	mu   sync.Mutex
	memo map[string]DataSet
}

// RuntimeOption configures a Runtime at construction.
type RuntimeOption func(*Runtime)

// WithWarehouseDir sets the root directory table storage paths derive from.
func WithWarehouseDir(dir string) RuntimeOption {
	return func(rt *Runtime) { rt.warehouse = dir }
}

// WithDatabase sets the logical database name tables register under.
func WithDatabase(name string) RuntimeOption {
	return func(rt *Runtime) { rt.database = name }
}

// WithFormat sets the storage format name tables persist in.
func WithFormat(format string) RuntimeOption {
	return func(rt *Runtime) { rt.format = format }
}

// WithClock overrides the ingestion-timestamp source.
func WithClock(clock func() time.Time) RuntimeOption {
	return func(rt *Runtime) { rt.clock = clock }
}

// WithMemoization enables the run-scoped dataset cache: when two tables in
// one invocation share an upstream, the shared table runs once and later
// readers are served its first envelope. Off by default: without it every
// dependency path re-materializes its ancestors.
func WithMemoization() RuntimeOption {
	return func(rt *Runtime) { rt.memo = make(map[string]DataSet) }
}

// NewRuntime bundles an engine session with the storage collaborators.
// Defaults: database "rainforest", format "jsonl", wall-clock ingestion
// timestamps, memoization off.
func NewRuntime(sess *dataframe.Session, store Store, raw RawSource, opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		sess:     sess,
		store:    store,
		raw:      raw,
		database: "rainforest",
		format:   "jsonl",
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Session returns the engine session frames are materialized on.
func (rt *Runtime) Session() *dataframe.Session {
	return rt.sess
}

// Database returns the default logical database name.
func (rt *Runtime) Database() string {
	return rt.database
}

// Format returns the default storage format name.
func (rt *Runtime) Format() string {
	return rt.format
}

// TablePath returns the storage path for a table within the warehouse.
func (rt *Runtime) TablePath(layer, name string) string {
	return filepath.Join(rt.warehouse, layer, name)
}

// Memoizing reports whether the run-scoped dataset cache is enabled.
func (rt *Runtime) Memoizing() bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.memo != nil
}

// stamp renders the current ingestion timestamp.
func (rt *Runtime) stamp() string {
	return rt.clock().UTC().Format(StampLayout)
}

// memoLoad returns the cached envelope for a table name, when memoization is
// enabled and the table already resolved during this run.
func (rt *Runtime) memoLoad(name string) (DataSet, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.memo == nil {
		return DataSet{}, false
	}
	ds, ok := rt.memo[name]
	return ds, ok
}

// memoStore caches a table's envelope for the rest of the run.
func (rt *Runtime) memoStore(name string, ds DataSet) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.memo == nil {
		return
	}
	rt.memo[name] = ds
}
