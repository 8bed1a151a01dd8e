// Package layers wires the warehouse table graph: every bronze, silver, and
// gold unit registered under its logical name.
package layers

import (
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/gold"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/silver"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// RawTables lists the raw-zone landings bronze ingests, in seed order.
var RawTables = []string{
	bronze.TableAppuser,
	bronze.TableSeller,
	bronze.TableBuyer,
	bronze.TableCategory,
	bronze.TableProduct,
	bronze.TableProductCategory,
	bronze.TableOrders,
	bronze.TableOrderItems,
}

// Registry returns the full descriptor table of the warehouse, every unit
// name bound to its factory.
func Registry() *etl.Registry {
	r := etl.NewRegistry()

	r.Register(bronze.TableAppuser, bronze.Appuser)
	r.Register(bronze.TableSeller, bronze.Seller)
	r.Register(bronze.TableBuyer, bronze.Buyer)
	r.Register(bronze.TableCategory, bronze.Category)
	r.Register(bronze.TableProduct, bronze.Product)
	r.Register(bronze.TableProductCategory, bronze.ProductCategory)
	r.Register(bronze.TableOrders, bronze.Orders)
	r.Register(bronze.TableOrderItems, bronze.OrderItems)

	r.Register(silver.TableDimCategory, silver.DimCategory)
	r.Register(silver.TableDimSeller, silver.DimSeller)
	r.Register(silver.TableDimBuyer, silver.DimBuyer)
	r.Register(silver.TableDimProduct, silver.DimProduct)
	r.Register(silver.TableBrgProductCategory, silver.BrgProductCategory)
	r.Register(silver.TableFactOrders, silver.FactOrders)
	r.Register(silver.TableFactOrderItems, silver.FactOrderItems)

	r.Register(gold.TableWideOrders, gold.WideOrders)
	r.Register(gold.TableWideOrderItems, gold.WideOrderItems)
	r.Register(gold.TableDailyOrderMetrics, gold.DailyOrderMetrics)

	return r
}
