// Package bronze defines the ingestion layer of the warehouse. Every bronze
// unit mirrors one raw-zone table: extraction reads the raw landing of the
// same name, and the transform appends the ingestion timestamp without
// conforming anything. Whatever the sources delivered is what bronze keeps.
package bronze

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// Layer is the conformance layer name of every unit in this package.
const Layer = "bronze"

// unit assembles the one bronze table shape: raw extraction, stamp-only
// transform, published columns = raw columns plus the stamp.
func unit(rt *etl.Runtime, name string, primaryKeys, rawColumns []string, opts []etl.Option) *etl.Table {
	columns := make([]string, 0, len(rawColumns)+1)
	columns = append(columns, rawColumns...)
	columns = append(columns, etl.StampColumn)
	return etl.New(rt, etl.Spec{
		Name:        name,
		Layer:       Layer,
		PrimaryKeys: primaryKeys,
		Columns:     columns,
		Extract:     etl.FromRaw(name),
		Transform:   stamp,
	}, opts...)
}

// stamp appends the ingestion timestamp to the extracted rows.
func stamp(ctx context.Context, upstreams []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	return upstreams[0].Data.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
