package silver

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// FactOrders conforms order headers. The source status string collapses to
// an is_active flag; downstream metrics never see the raw vocabulary.
func FactOrders(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableFactOrders,
		Layer:       Layer,
		PrimaryKeys: []string{"order_id"},
		Columns:     []string{"order_id", "buyer_id", "order_ts", "total_price", "is_active", etl.StampColumn},
		Upstreams:   []etl.Factory{bronze.Orders},
		Transform:   transformFactOrders,
	}, opts...)
}

func transformFactOrders(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	orders, err := in[0].Data.Select(ctx, "order_id", "buyer_id", "order_ts", "total_price", "status")
	if err != nil {
		return nil, err
	}
	orders, err = orders.WithColumn(ctx, "is_active",
		dataframe.Equals(dataframe.Col("status"), dataframe.Lit("active")))
	if err != nil {
		return nil, err
	}
	orders, err = orders.Drop(ctx, "status")
	if err != nil {
		return nil, err
	}
	return orders.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
