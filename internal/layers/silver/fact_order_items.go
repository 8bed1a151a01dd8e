package silver

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// FactOrderItems conforms order line items. actual_price is the price after
// tax comes off the base: base_price minus tax, derived per row.
func FactOrderItems(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableFactOrderItems,
		Layer:       Layer,
		PrimaryKeys: []string{"order_item_id"},
		Columns: []string{
			"order_item_id", "order_id", "product_id", "seller_id",
			"quantity", "base_price", "actual_price", "created_ts", "tax",
			etl.StampColumn,
		},
		Upstreams: []etl.Factory{bronze.OrderItems},
		Transform: transformFactOrderItems,
	}, opts...)
}

func transformFactOrderItems(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	items, err := in[0].Data.Select(ctx,
		"order_item_id", "order_id", "product_id", "seller_id",
		"quantity", "base_price", "tax", "created_ts")
	if err != nil {
		return nil, err
	}
	items, err = items.WithColumn(ctx, "actual_price",
		dataframe.Sub(dataframe.Col("base_price"), dataframe.Col("tax")))
	if err != nil {
		return nil, err
	}
	return items.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
