package cli

import (
	"fmt"

	"github.com/kokiddp/elkcms/internal/config"
	"github.com/kokiddp/elkcms/internal/meta"
	"github.com/kokiddp/elkcms/internal/migration"
	"github.com/kokiddp/elkcms/internal/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// MakeMigrationCmd writes a CREATE TABLE migration for a registered model,
// or a pivot table migration when --pivot names a belongsToMany relation.
func MakeMigrationCmd() *cobra.Command {
	var (
		configPath string
		outDir     string
		pivot      string
	)

	cmd := &cobra.Command{
		Use:   "make-migration <model>",
		Short: "Generate a SQL migration for a content model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.MigrationsDir
			}

			models.RegisterContentModels()

			model, err := meta.Lookup(args[0])
			if err != nil {
				return err
			}

			gen := migration.NewGenerator(meta.Default(), logger)

			var path string
			if pivot != "" {
				path, err = gen.GeneratePivot(model, pivot, outDir)
				if err == nil && path == "" {
					return fmt.Errorf("relation %q on %s is not a belongsToMany relation", pivot, args[0])
				}
			} else {
				path, err = gen.Generate(model, outDir)
			}
			if err != nil {
				return err
			}

			logger.Info("migration written", zap.String("path", path))
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to YAML config file")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to the configured migrations dir)")
	cmd.Flags().StringVar(&pivot, "pivot", "", "generate the pivot table for the named relation instead")
	return cmd
}
