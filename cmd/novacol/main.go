package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "novacol",
		Short: "novacol dynamic column store",
		Long:  "Store heterogeneously-typed rows in dynamic columns and read their virtual subcolumns.",
	}
	root.PersistentFlags().String("config", "", "config file (yaml)")
	root.PersistentFlags().String("data-dir", "", "data directory (overrides config)")
	root.PersistentFlags().Bool("pretty", false, "human readable log output")

	addCommands(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
