package silver

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// BrgProductCategory conforms the many-to-many product/category assignment.
// The composite key makes validation reject a doubled assignment.
func BrgProductCategory(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableBrgProductCategory,
		Layer:       Layer,
		PrimaryKeys: []string{"product_id", "category_id"},
		Columns:     []string{"product_id", "category_id", etl.StampColumn},
		Upstreams:   []etl.Factory{bronze.ProductCategory},
		Transform:   transformBrgProductCategory,
	}, opts...)
}

func transformBrgProductCategory(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	bridge, err := in[0].Data.Select(ctx, "product_id", "category_id")
	if err != nil {
		return nil, err
	}
	return bridge.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
