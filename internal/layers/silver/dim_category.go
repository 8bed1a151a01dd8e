package silver

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// DimCategory conforms the product category reference data.
func DimCategory(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableDimCategory,
		Layer:       Layer,
		PrimaryKeys: []string{"category_id"},
		Columns:     []string{"category_id", "category_name", etl.StampColumn},
		Upstreams:   []etl.Factory{bronze.Category},
		Transform:   transformDimCategory,
	}, opts...)
}

func transformDimCategory(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	categories, err := in[0].Data.Select(ctx, "category_id", "name")
	if err != nil {
		return nil, err
	}
	categories, err = categories.Rename(ctx, "name", "category_name")
	if err != nil {
		return nil, err
	}
	return categories.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
