package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title        Lumina Library Ledger API
// @version      1.0
// @description  Catalog, lending lifecycle and AI librarian of a single library.
// @BasePath     /api/v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ledger",
		Short:        "Library ledger service",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	return root
}
