package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kokiddp/elkcms/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "elkcms",
		Short: "ElkCMS - attribute-driven content management",
		Long: `ElkCMS derives database schema, admin forms, validation rules and
translation behavior from declarative content-model metadata.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.MakeMigrationCmd())
	rootCmd.AddCommand(cli.ModelsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
