package gold

import (
	"context"
	"fmt"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/silver"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// WideOrderItems denormalizes line items with product, seller, and category
// context. A product's categories collapse to one JSON array column, so the
// line item grain survives the many-to-many bridge.
func WideOrderItems(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableWideOrderItems,
		Layer:       Layer,
		PrimaryKeys: []string{"order_item_id"},
		Columns: []string{
			"order_item_id", "order_id", "product_id", "seller_id",
			"quantity", "base_price", "actual_price", "created_ts", "tax",
			"categories", etl.StampColumn,
		},
		Upstreams: []etl.Factory{
			silver.FactOrderItems,
			silver.DimProduct,
			silver.DimSeller,
			silver.BrgProductCategory,
			silver.DimCategory,
		},
		Transform: transformWideOrderItems,
	}, opts...)
}

func transformWideOrderItems(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	items, err := in[0].Data.Drop(ctx, etl.StampColumn)
	if err != nil {
		return nil, err
	}
	products, err := in[1].Data.Drop(ctx, etl.StampColumn)
	if err != nil {
		return nil, err
	}
	sellers, err := in[2].Data.Drop(ctx, etl.StampColumn)
	if err != nil {
		return nil, err
	}
	bridge, err := in[3].Data.Drop(ctx, etl.StampColumn)
	if err != nil {
		return nil, err
	}
	categories, err := in[4].Data.Drop(ctx, etl.StampColumn)
	if err != nil {
		return nil, err
	}

	wide, err := items.Join(ctx, products, []string{"product_id"}, dataframe.Left)
	if err != nil {
		return nil, fmt.Errorf("joining products: %w", err)
	}
	wide, err = wide.Join(ctx, sellers, []string{"seller_id"}, dataframe.Left)
	if err != nil {
		return nil, fmt.Errorf("joining sellers: %w", err)
	}

	named, err := bridge.Join(ctx, categories, []string{"category_id"}, dataframe.Inner)
	if err != nil {
		return nil, fmt.Errorf("naming bridged categories: %w", err)
	}
	perProduct, err := named.GroupBy("product_id").Agg(ctx,
		dataframe.CollectStruct("categories", "category_id", "category_name"))
	if err != nil {
		return nil, fmt.Errorf("collecting categories per product: %w", err)
	}
	wide, err = wide.Join(ctx, perProduct, []string{"product_id"}, dataframe.Left)
	if err != nil {
		return nil, fmt.Errorf("joining categories: %w", err)
	}
	return wide.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
