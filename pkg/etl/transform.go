package etl

import (
	"context"
	"fmt"
)

// TransformUpstream collapses the upstream envelopes into the table's output
// envelope. One ingestion timestamp is captured per call and handed to the
// transform, so every output row of a single transform shares the same
// partition value. The output frame is cached on the instance for the
// memory-only read mode before being wrapped.
func (t *Table) TransformUpstream(ctx context.Context, upstreams []DataSet) (DataSet, error) {
	if t.spec.Transform == nil {
		return DataSet{}, fmt.Errorf("table %s has no transform", t.spec.Name)
	}
	ingested := t.rt.stamp()
	f, err := t.spec.Transform(ctx, upstreams, ingested)
	if err != nil {
		return DataSet{}, fmt.Errorf("transforming %s: %w", t.spec.Name, err)
	}
	t.current = f
	return t.envelope(f), nil
}
