// Read command prints a table's rows as JSON lines.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagPartitions []string

var readCmd = &cobra.Command{
	Use:   "read <table>",
	Short: "Read a table's latest snapshot, or explicit partitions",
	Long: `Read loads one warehouse table and prints its rows to stdout as JSON
lines, projected to the table's published columns.

Without --partition the latest ingestion-timestamp partition is served.
Each --partition key=value restricts the read to partitions matching every
given pair exactly.

Example:
  rainforest read dim_seller
  rainforest read fact_orders --partition etl_inserted=20240501T100000.000000000Z`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().StringArrayVar(&flagPartitions, "partition", nil, "partition filter as key=value (repeatable)")
}

func runRead(cmd *cobra.Command, args []string) error {
	factory, err := registry.Lookup(args[0])
	if err != nil {
		return err
	}
	partitionValues, err := parsePartitions(flagPartitions)
	if err != nil {
		return err
	}

	rt, cleanup, err := buildRuntime()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := commandContext(cmd)
	table := factory(rt)
	ds, err := table.Read(ctx, partitionValues)
	if err != nil {
		return err
	}
	rows, err := ds.Data.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collecting %s: %w", table.Name(), err)
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encoding row: %w", err)
		}
	}
	return nil
}

// parsePartitions splits repeated key=value flags into partition values.
func parsePartitions(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: invalid partition %q (expected key=value)", errUsage, pair)
		}
		values[key] = value
	}
	return values, nil
}
