package etl

import (
	"context"
	"fmt"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/ctxlog"
)

// ExtractUpstream resolves the table's dependencies into envelopes, one per
// declared upstream, in declaration order. Each upstream is instantiated
// fresh with the parent's execution flags, run first when run_upstream is
// set, and then read. Tables with an ExtractFunc (leaves) delegate to it
// instead.
//
// With memoization enabled on the runtime, an upstream already resolved
// during this run is served its cached envelope without re-running.
func (t *Table) ExtractUpstream(ctx context.Context) ([]DataSet, error) {
	if t.spec.Extract != nil {
		return t.spec.Extract(ctx, t)
	}

	log := ctxlog.FromContext(ctx)
	out := make([]DataSet, 0, len(t.spec.Upstreams))
	for _, factory := range t.spec.Upstreams {
		up := factory(t.rt, WithRunUpstream(t.runUpstream), WithWriteData(t.writeData))
		if ds, ok := t.rt.memoLoad(up.Name()); ok {
			log.Debug("upstream served from run cache", "table", t.spec.Name, "upstream", up.Name())
			out = append(out, ds)
			continue
		}
		if t.runUpstream {
			if err := up.Run(ctx); err != nil {
				return nil, fmt.Errorf("running upstream %s: %w", up.Name(), err)
			}
		}
		ds, err := up.Read(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("reading upstream %s: %w", up.Name(), err)
		}
		t.rt.memoStore(up.Name(), ds)
		out = append(out, ds)
	}
	return out, nil
}

// FromRaw returns an ExtractFunc that reads one raw-zone table and wraps it
// in an envelope carrying the extracting table's own metadata. Bronze tables
// are built on this: their single input is the raw landing of the same name.
func FromRaw(table string) ExtractFunc {
	return func(ctx context.Context, t *Table) ([]DataSet, error) {
		f, err := t.rt.raw.ReadTable(ctx, t.rt.sess, table)
		if err != nil {
			return nil, fmt.Errorf("extracting raw table %s: %w", table, err)
		}
		return []DataSet{t.envelope(f)}, nil
	}
}
