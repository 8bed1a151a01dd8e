package bronze

import "github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"

// Bronze table names, one per raw-zone table.
const (
	TableAppuser         = "appuser"
	TableSeller          = "seller"
	TableBuyer           = "buyer"
	TableCategory        = "category"
	TableProduct         = "product"
	TableProductCategory = "product_category"
	TableOrders          = "orders"
	TableOrderItems      = "order_items"
)

// Appuser ingests the platform account table.
func Appuser(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return unit(rt, TableAppuser,
		[]string{"user_id"},
		[]string{"user_id", "username", "email", "created_ts", "last_updated_by", "last_updated_ts"},
		opts)
}

// Seller ingests the seller role table.
func Seller(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return unit(rt, TableSeller,
		[]string{"seller_id"},
		[]string{"seller_id", "user_id", "first_time_sold_timestamp", "created_ts", "last_updated_by", "last_updated_ts"},
		opts)
}

// Buyer ingests the buyer role table.
func Buyer(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return unit(rt, TableBuyer,
		[]string{"buyer_id"},
		[]string{"buyer_id", "user_id", "first_time_purchased_timestamp", "created_ts", "last_updated_by", "last_updated_ts"},
		opts)
}

// Category ingests the product category reference table.
func Category(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return unit(rt, TableCategory,
		[]string{"category_id"},
		[]string{"category_id", "name", "created_ts", "last_updated_by", "last_updated_ts"},
		opts)
}

// Product ingests the product listing table.
func Product(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return unit(rt, TableProduct,
		[]string{"product_id"},
		[]string{"product_id", "name", "description", "price", "created_ts", "last_updated_by", "last_updated_ts"},
		opts)
}

// ProductCategory ingests the product-to-category assignment table.
func ProductCategory(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return unit(rt, TableProductCategory,
		[]string{"product_id", "category_id"},
		[]string{"product_id", "category_id", "created_ts", "last_updated_by", "last_updated_ts"},
		opts)
}

// Orders ingests the order header table.
func Orders(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return unit(rt, TableOrders,
		[]string{"order_id"},
		[]string{"order_id", "buyer_id", "order_ts", "total_price", "status", "created_ts", "last_updated_by", "last_updated_ts"},
		opts)
}

// OrderItems ingests the order line-item table.
func OrderItems(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return unit(rt, TableOrderItems,
		[]string{"order_item_id"},
		[]string{"order_item_id", "order_id", "product_id", "seller_id", "quantity", "base_price", "tax", "created_ts"},
		opts)
}
