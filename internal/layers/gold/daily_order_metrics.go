package gold

import (
	"context"
	"fmt"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// DailyOrderMetrics aggregates active orders per calendar day: total and
// mean spend. Cancelled orders are excluded before aggregation, so a day of
// nothing but cancellations simply has no row.
func DailyOrderMetrics(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableDailyOrderMetrics,
		Layer:       Layer,
		PrimaryKeys: []string{"order_date"},
		Columns:     []string{"order_date", "total_price_sum", "total_price_mean", etl.StampColumn},
		Upstreams:   []etl.Factory{WideOrders},
		Transform:   transformDailyOrderMetrics,
	}, opts...)
}

func transformDailyOrderMetrics(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	orders, err := in[0].Data.WithColumn(ctx, "order_date", dataframe.DateOf(dataframe.Col("order_ts")))
	if err != nil {
		return nil, err
	}
	active, err := orders.Filter(ctx, dataframe.IsTrue("is_active"))
	if err != nil {
		return nil, err
	}
	metrics, err := active.GroupBy("order_date").Agg(ctx,
		dataframe.Sum("total_price", "total_price_sum"),
		dataframe.Mean("total_price", "total_price_mean"))
	if err != nil {
		return nil, fmt.Errorf("aggregating daily spend: %w", err)
	}
	return metrics.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
