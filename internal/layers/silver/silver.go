// Package silver defines the conformance layer: dimensions, a bridge, and
// facts built from bronze. Each unit narrows its upstreams to the columns it
// publishes, derives what reporting needs, and stamps a fresh ingestion
// timestamp. Upstream stamps never leak through: a silver row's stamp is
// the silver run that produced it.
package silver

// Layer is the conformance layer name of every unit in this package.
const Layer = "silver"

// Silver table names.
const (
	TableDimCategory        = "dim_category"
	TableDimSeller          = "dim_seller"
	TableDimBuyer           = "dim_buyer"
	TableDimProduct         = "dim_product"
	TableBrgProductCategory = "brg_product_category"
	TableFactOrders         = "fact_orders"
	TableFactOrderItems     = "fact_order_items"
)
