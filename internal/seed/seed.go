// Package seed generates a deterministic fake raw zone: referentially
// consistent users, sellers, buyers, categories, products, orders, and line
// items, landed as flat JSONL for bronze to ingest. The same seed and scale
// always produce byte-identical landings, so pipelines built on a seeded
// zone are reproducible end to end.
package seed

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/lakestore"
)

// Options size and key the generated zone.
type Options struct {
	// Scale multiplies every row count. Scale 1 is a small demo zone.
	Scale int

	// Seed keys the generator. Identical seed and scale reproduce the zone
	// exactly.
	Seed int64
}

// Summary reports how many rows each landing received.
type Summary struct {
	Users       int
	Sellers     int
	Buyers      int
	Categories  int
	Products    int
	Assignments int
	Orders      int
	OrderItems  int
}

// Row counts at scale 1.
const (
	usersPerScale    = 20
	productsPerScale = 12
	ordersPerScale   = 30
)

const updatedBy = "seed"

// categoryNames is the fixed category vocabulary; it does not scale.
var categoryNames = []string{
	"potions", "cauldrons", "menhirs", "shields", "boars", "lyres", "helmets", "sandals",
}

var firstNames = []string{
	"asta", "bram", "cleo", "dara", "egon", "fife", "gwen", "hardy",
	"iona", "jules", "kira", "lars", "mira", "nils", "oda", "piotr",
}

var productAdjectives = []string{
	"copper", "oaken", "gilded", "sturdy", "humble", "ornate",
}

var productNouns = []string{
	"kettle", "lantern", "satchel", "chisel", "goblet", "loom", "anvil", "flute",
}

// statuses is drawn from per order; active outnumbers cancelled three to one.
var statuses = []string{"active", "active", "active", "cancelled"}

// Generate writes the full raw zone through the source store and reports the
// landed row counts. Every foreign key references a generated row, and each
// order's total_price is the sum of its items' prices after tax.
func Generate(src *lakestore.SourceStore, opts Options) (Summary, error) {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	base := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	stamp := func(offset time.Duration) string {
		return base.Add(offset).Format(time.RFC3339)
	}

	numUsers := usersPerScale * opts.Scale
	users := make([]map[string]any, numUsers)
	for i := range users {
		id := i + 1
		name := fmt.Sprintf("%s%02d", firstNames[i%len(firstNames)], id)
		ts := stamp(time.Duration(i) * time.Minute)
		users[i] = map[string]any{
			"user_id":         id,
			"username":        name,
			"email":           name + "@rainforest.example",
			"created_ts":      ts,
			"last_updated_by": updatedBy,
			"last_updated_ts": ts,
		}
	}

	// Sellers and buyers are disjoint draws from the user pool.
	perm := rng.Perm(numUsers)
	numSellers := numUsers / 4
	numBuyers := numUsers / 2
	sellers := make([]map[string]any, numSellers)
	for i := range sellers {
		ts := stamp(24*time.Hour + time.Duration(i)*time.Minute)
		sellers[i] = map[string]any{
			"seller_id":                 i + 1,
			"user_id":                   perm[i] + 1,
			"first_time_sold_timestamp": stamp(72*time.Hour + time.Duration(rng.Intn(96))*time.Hour),
			"created_ts":                ts,
			"last_updated_by":           updatedBy,
			"last_updated_ts":           ts,
		}
	}
	buyers := make([]map[string]any, numBuyers)
	for i := range buyers {
		ts := stamp(24*time.Hour + time.Duration(numSellers+i)*time.Minute)
		buyers[i] = map[string]any{
			"buyer_id":                       i + 1,
			"user_id":                        perm[numSellers+i] + 1,
			"first_time_purchased_timestamp": stamp(72*time.Hour + time.Duration(rng.Intn(96))*time.Hour),
			"created_ts":                     ts,
			"last_updated_by":                updatedBy,
			"last_updated_ts":                ts,
		}
	}

	categories := make([]map[string]any, len(categoryNames))
	for i, name := range categoryNames {
		ts := stamp(time.Duration(i) * time.Second)
		categories[i] = map[string]any{
			"category_id":     i + 1,
			"name":            name,
			"created_ts":      ts,
			"last_updated_by": updatedBy,
			"last_updated_ts": ts,
		}
	}

	numProducts := productsPerScale * opts.Scale
	products := make([]map[string]any, numProducts)
	prices := make([]float64, numProducts)
	for i := range products {
		id := i + 1
		name := fmt.Sprintf("%s %s",
			productAdjectives[rng.Intn(len(productAdjectives))],
			productNouns[rng.Intn(len(productNouns))])
		prices[i] = round2(5 + rng.Float64()*195)
		ts := stamp(48*time.Hour + time.Duration(i)*time.Minute)
		products[i] = map[string]any{
			"product_id":      id,
			"name":            name,
			"description":     fmt.Sprintf("%s, item %d of the catalog", name, id),
			"price":           prices[i],
			"created_ts":      ts,
			"last_updated_by": updatedBy,
			"last_updated_ts": ts,
		}
	}

	// Each product belongs to one to three distinct categories.
	var assignments []map[string]any
	for i := range products {
		count := 1 + rng.Intn(3)
		for _, c := range rng.Perm(len(categoryNames))[:count] {
			ts := stamp(49*time.Hour + time.Duration(len(assignments))*time.Second)
			assignments = append(assignments, map[string]any{
				"product_id":      i + 1,
				"category_id":     c + 1,
				"created_ts":      ts,
				"last_updated_by": updatedBy,
				"last_updated_ts": ts,
			})
		}
	}

	numOrders := ordersPerScale * opts.Scale
	orders := make([]map[string]any, numOrders)
	var items []map[string]any
	for i := range orders {
		orderID := i + 1
		orderTS := base.AddDate(0, 1, rng.Intn(7)).Add(time.Duration(8+rng.Intn(12)) * time.Hour)

		total := 0.0
		for n := 1 + rng.Intn(4); n > 0; n-- {
			productIdx := rng.Intn(numProducts)
			quantity := 1 + rng.Intn(5)
			basePrice := round2(prices[productIdx] * float64(quantity))
			tax := round2(basePrice / 10)
			total += round2(basePrice - tax)
			items = append(items, map[string]any{
				"order_item_id": len(items) + 1,
				"order_id":      orderID,
				"product_id":    productIdx + 1,
				"seller_id":     1 + rng.Intn(numSellers),
				"quantity":      quantity,
				"base_price":    basePrice,
				"tax":           tax,
				"created_ts":    orderTS.Format(time.RFC3339),
			})
		}

		ts := orderTS.Format(time.RFC3339)
		orders[i] = map[string]any{
			"order_id":        orderID,
			"buyer_id":        1 + rng.Intn(numBuyers),
			"order_ts":        ts,
			"total_price":     round2(total),
			"status":          statuses[rng.Intn(len(statuses))],
			"created_ts":      ts,
			"last_updated_by": updatedBy,
			"last_updated_ts": ts,
		}
	}

	landings := []struct {
		table string
		rows  []map[string]any
	}{
		{bronze.TableAppuser, users},
		{bronze.TableSeller, sellers},
		{bronze.TableBuyer, buyers},
		{bronze.TableCategory, categories},
		{bronze.TableProduct, products},
		{bronze.TableProductCategory, assignments},
		{bronze.TableOrders, orders},
		{bronze.TableOrderItems, items},
	}
	for _, landing := range landings {
		if err := src.WriteTable(landing.table, landing.rows); err != nil {
			return Summary{}, fmt.Errorf("seeding %s: %w", landing.table, err)
		}
	}

	return Summary{
		Users:       len(users),
		Sellers:     len(sellers),
		Buyers:      len(buyers),
		Categories:  len(categories),
		Products:    len(products),
		Assignments: len(assignments),
		Orders:      len(orders),
		OrderItems:  len(items),
	}, nil
}

// round2 rounds to cents. Prices travel as floats end to end, so generated
// money must start on a representable grid.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
