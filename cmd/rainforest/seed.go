// Seed command generates a fake raw zone.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/ctxlog"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/seed"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/lakestore"
)

var (
	flagSeedScale int
	flagSeedKey   int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a deterministic fake raw zone",
	Long: `Seed lands referentially consistent fake source tables in the raw zone:
users, sellers, buyers, categories, products, orders, and line items. The
same --seed and --scale always produce the identical zone.

Example:
  rainforest seed
  rainforest seed --scale 5 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&flagSeedScale, "scale", 1, "row count multiplier")
	seedCmd.Flags().Int64Var(&flagSeedKey, "seed", 1, "generator seed")
}

func runSeed(cmd *cobra.Command, args []string) error {
	src := lakestore.NewSourceStore(runtimeCfg.rawDir)
	summary, err := seed.Generate(src, seed.Options{Scale: flagSeedScale, Seed: flagSeedKey})
	if err != nil {
		return err
	}

	ctxlog.FromContext(commandContext(cmd)).Info("seeded raw zone",
		"dir", src.Dir(),
		"users", summary.Users,
		"sellers", summary.Sellers,
		"buyers", summary.Buyers,
		"categories", summary.Categories,
		"products", summary.Products,
		"assignments", summary.Assignments,
		"orders", summary.Orders,
		"order_items", summary.OrderItems)
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %s: %d orders, %d items\n",
		src.Dir(), summary.Orders, summary.OrderItems)
	return nil
}
