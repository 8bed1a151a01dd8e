// Package gold defines the reporting layer: wide denormalized tables and
// daily aggregates built from silver. Gold transforms join freely and may
// carry more columns than they publish; the published list is the public
// schema a read narrows to.
package gold

// Layer is the conformance layer name of every unit in this package.
const Layer = "gold"

// Gold table names.
const (
	TableWideOrders        = "wide_orders"
	TableWideOrderItems    = "wide_order_items"
	TableDailyOrderMetrics = "daily_order_metrics"
)
