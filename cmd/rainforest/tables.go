// Tables command lists the registered warehouse units.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List every registered warehouse table",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

func runTables(cmd *cobra.Command, args []string) error {
	rt, cleanup, err := buildRuntime()
	if err != nil {
		return err
	}
	defer cleanup()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LAYER\tTABLE\tPRIMARY KEYS\tPATH")
	for _, name := range registry.Names() {
		factory, err := registry.Lookup(name)
		if err != nil {
			return err
		}
		t := factory(rt)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			t.Layer(), t.Name(), strings.Join(t.PrimaryKeys(), ","), t.StoragePath())
	}
	return w.Flush()
}
