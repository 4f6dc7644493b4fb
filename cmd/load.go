package cmd

import (
	"context"
	"fmt"

	"github.com/dohalabs/bankgen/internal/config"
	"github.com/dohalabs/bankgen/internal/dataset"
	"github.com/dohalabs/bankgen/internal/db"
	"github.com/dohalabs/bankgen/internal/loader"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the generated CSV files into the database",
	Long: `
Load the generated CSV files into the database tables in dependency order
(customers, accounts, transactions). Each table is recreated on its first
batch and appended to batch by batch afterwards. A failing batch aborts
that table's load; tables already loaded stay in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.BindPFlag("data.dir", cmd.Flags().Lookup("dir"))
		viper.BindPFlag("data.batch_size", cmd.Flags().Lookup("batch-size"))

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		conn, err := db.NewConnection(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		if manifest, err := dataset.ReadManifest(cfg.Data.Dir); err == nil {
			color.Cyan("📋 Dataset generated at %s (seed %d)", manifest.GeneratedAt, manifest.Seed)
		}

		l := loader.New(conn.DB, cfg.Database.Provider, cfg.Data.BatchSize)

		results, err := l.LoadAll(context.Background(), cfg.Data.Dir)
		if err != nil {
			return err
		}

		color.Green("\n✅ All data loading completed successfully!")
		for _, result := range results {
			color.White("   %s: %d rows in %d batches", result.Table, result.Rows, result.Batches)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().String("dir", "", "directory holding the CSV files (default data/raw)")
	loadCmd.Flags().Int("batch-size", 0, "rows per insert batch (default 5000)")
}
