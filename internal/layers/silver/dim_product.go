package silver

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// DimProduct conforms the product listings.
func DimProduct(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableDimProduct,
		Layer:       Layer,
		PrimaryKeys: []string{"product_id"},
		Columns:     []string{"product_id", "product_name", "description", "price", etl.StampColumn},
		Upstreams:   []etl.Factory{bronze.Product},
		Transform:   transformDimProduct,
	}, opts...)
}

func transformDimProduct(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	products, err := in[0].Data.Select(ctx, "product_id", "name", "description", "price")
	if err != nil {
		return nil, err
	}
	products, err = products.Rename(ctx, "name", "product_name")
	if err != nil {
		return nil, err
	}
	return products.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
