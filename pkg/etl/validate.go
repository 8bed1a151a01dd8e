package etl

import (
	"context"
	"fmt"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/ctxlog"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
)

// Validate checks the envelope against the table's primary-key contract:
// no null value in any primary-key column, and no duplicate primary-key
// tuple. A violation returns false, never an error; the caller decides
// whether a rejected table halts the pipeline. Errors are reserved for
// engine failures.
func (t *Table) Validate(ctx context.Context, ds DataSet) (bool, error) {
	if ds.Data == nil {
		return false, fmt.Errorf("validating %s: envelope has no data", t.spec.Name)
	}
	if len(ds.PrimaryKeys) == 0 {
		return true, nil
	}
	log := ctxlog.FromContext(ctx)

	total, err := ds.Data.Count(ctx)
	if err != nil {
		return false, err
	}
	if total == 0 {
		return true, nil
	}

	nullChecks := make([]dataframe.Cond, len(ds.PrimaryKeys))
	for i, pk := range ds.PrimaryKeys {
		nullChecks[i] = dataframe.IsNull(pk)
	}
	withNulls, err := ds.Data.Filter(ctx, dataframe.Or(nullChecks...))
	if err != nil {
		return false, err
	}
	nulls, err := withNulls.Count(ctx)
	if err != nil {
		return false, err
	}
	if nulls > 0 {
		log.Warn("validation rejected table: null primary keys",
			"table", t.spec.Name, "rows", nulls)
		return false, nil
	}

	keyTuples, err := ds.Data.Select(ctx, ds.PrimaryKeys...)
	if err != nil {
		return false, err
	}
	uniqueTuples, err := keyTuples.Distinct(ctx)
	if err != nil {
		return false, err
	}
	distinct, err := uniqueTuples.Count(ctx)
	if err != nil {
		return false, err
	}
	if distinct != total {
		log.Warn("validation rejected table: duplicate primary keys",
			"table", t.spec.Name, "rows", total, "distinct", distinct)
		return false, nil
	}
	return true, nil
}
