// Unit tests for raw-zone generation.
package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/gold"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/lakestore"
)

func collectTable(t *testing.T, sess *dataframe.Session, src *lakestore.SourceStore, table string) []map[string]any {
	t.Helper()
	frame, err := src.ReadTable(context.Background(), sess, table)
	require.NoError(t, err)
	rows, err := frame.Collect(context.Background())
	require.NoError(t, err)
	return rows
}

func idSet(rows []map[string]any, column string) map[float64]bool {
	ids := make(map[float64]bool, len(rows))
	for _, row := range rows {
		ids[row[column].(float64)] = true
	}
	return ids
}

func TestGenerateIsDeterministic(t *testing.T) {
	opts := Options{Scale: 1, Seed: 42}

	first := filepath.Join(t.TempDir(), "raw")
	_, err := Generate(lakestore.NewSourceStore(first), opts)
	require.NoError(t, err)

	second := filepath.Join(t.TempDir(), "raw")
	_, err = Generate(lakestore.NewSourceStore(second), opts)
	require.NoError(t, err)

	for _, table := range layers.RawTables {
		a, err := os.ReadFile(filepath.Join(first, table+".jsonl"))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, table+".jsonl"))
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b), "landing %s differs between identical seeds", table)
	}

	third := filepath.Join(t.TempDir(), "raw")
	_, err = Generate(lakestore.NewSourceStore(third), Options{Scale: 1, Seed: 43})
	require.NoError(t, err)
	a, err := os.ReadFile(filepath.Join(first, bronze.TableOrders+".jsonl"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(third, bronze.TableOrders+".jsonl"))
	require.NoError(t, err)
	assert.NotEqual(t, string(a), string(b), "different seeds should differ")
}

func TestGenerateReferentialIntegrity(t *testing.T) {
	sess, err := dataframe.Open()
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	src := lakestore.NewSourceStore(filepath.Join(t.TempDir(), "raw"))
	summary, err := Generate(src, Options{Scale: 1, Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, 20, summary.Users)
	assert.Equal(t, 5, summary.Sellers)
	assert.Equal(t, 10, summary.Buyers)
	assert.Equal(t, 8, summary.Categories)
	assert.Equal(t, 12, summary.Products)
	assert.Equal(t, 30, summary.Orders)

	users := idSet(collectTable(t, sess, src, bronze.TableAppuser), "user_id")
	sellers := collectTable(t, sess, src, bronze.TableSeller)
	buyers := collectTable(t, sess, src, bronze.TableBuyer)
	categories := idSet(collectTable(t, sess, src, bronze.TableCategory), "category_id")
	products := idSet(collectTable(t, sess, src, bronze.TableProduct), "product_id")
	assignments := collectTable(t, sess, src, bronze.TableProductCategory)
	orders := collectTable(t, sess, src, bronze.TableOrders)
	items := collectTable(t, sess, src, bronze.TableOrderItems)

	for _, s := range sellers {
		assert.True(t, users[s["user_id"].(float64)], "seller user %v missing", s["user_id"])
	}
	for _, b := range buyers {
		assert.True(t, users[b["user_id"].(float64)], "buyer user %v missing", b["user_id"])
	}
	seen := map[[2]float64]bool{}
	for _, a := range assignments {
		pair := [2]float64{a["product_id"].(float64), a["category_id"].(float64)}
		assert.False(t, seen[pair], "assignment %v doubled", pair)
		seen[pair] = true
		assert.True(t, products[pair[0]])
		assert.True(t, categories[pair[1]])
	}

	buyerIDs := idSet(buyers, "buyer_id")
	orderIDs := idSet(orders, "order_id")
	for _, o := range orders {
		assert.True(t, buyerIDs[o["buyer_id"].(float64)])
	}
	sellerIDs := idSet(sellers, "seller_id")
	itemSum := map[float64]float64{}
	for _, it := range items {
		assert.True(t, orderIDs[it["order_id"].(float64)])
		assert.True(t, products[it["product_id"].(float64)])
		assert.True(t, sellerIDs[it["seller_id"].(float64)])
		itemSum[it["order_id"].(float64)] += round2(it["base_price"].(float64) - it["tax"].(float64))
	}
	for _, o := range orders {
		assert.InDelta(t, o["total_price"].(float64), round2(itemSum[o["order_id"].(float64)]), 1e-6,
			"order %v total is not the sum of its items after tax", o["order_id"])
	}
}

func TestGenerateScales(t *testing.T) {
	src := lakestore.NewSourceStore(filepath.Join(t.TempDir(), "raw"))
	summary, err := Generate(src, Options{Scale: 3, Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, 60, summary.Users)
	assert.Equal(t, 36, summary.Products)
	assert.Equal(t, 90, summary.Orders)
	assert.Equal(t, 8, summary.Categories, "the category vocabulary does not scale")
}

func TestSeededPipelineRuns(t *testing.T) {
	ctx := context.Background()
	sess, err := dataframe.Open()
	require.NoError(t, err)
	t.Cleanup(func() { sess.Close() })

	src := lakestore.NewSourceStore(filepath.Join(t.TempDir(), "raw"))
	_, err = Generate(src, Options{Scale: 1, Seed: 99})
	require.NoError(t, err)

	rt := etl.NewRuntime(sess, lakestore.NewStore(), src,
		etl.WithWarehouseDir(t.TempDir()),
		etl.WithMemoization())
	registry := layers.Registry()

	for _, target := range []string{gold.TableDailyOrderMetrics, gold.TableWideOrderItems} {
		factory, err := registry.Lookup(target)
		require.NoError(t, err)
		table := factory(rt)
		require.NoError(t, table.Run(ctx), "running %s over the seeded zone", target)

		ds, err := table.Read(ctx, nil)
		require.NoError(t, err)
		n, err := ds.Data.Count(ctx)
		require.NoError(t, err)
		assert.Positive(t, n, "%s produced no rows", target)
	}
}
