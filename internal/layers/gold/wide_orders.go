package gold

import (
	"context"
	"fmt"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/silver"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// WideOrders denormalizes order facts with buyer identity. The join result
// persists wider than the published schema; reads narrow it.
func WideOrders(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableWideOrders,
		Layer:       Layer,
		PrimaryKeys: []string{"order_id"},
		Columns:     []string{"order_id", "buyer_id", "username", "email", "order_ts", "total_price", "is_active", etl.StampColumn},
		Upstreams:   []etl.Factory{silver.FactOrders, silver.DimBuyer},
		Transform:   transformWideOrders,
	}, opts...)
}

func transformWideOrders(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	orders, err := in[0].Data.Drop(ctx, etl.StampColumn)
	if err != nil {
		return nil, err
	}
	buyers, err := in[1].Data.Drop(ctx, etl.StampColumn)
	if err != nil {
		return nil, err
	}
	wide, err := orders.Join(ctx, buyers, []string{"buyer_id"}, dataframe.Left)
	if err != nil {
		return nil, fmt.Errorf("joining buyers: %w", err)
	}
	return wide.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
