package cmd

import (
	"fmt"

	"github.com/dohalabs/bankgen/internal/config"
	"github.com/dohalabs/bankgen/internal/db"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check database connectivity",
	Long:  `Connect to the configured database and print the server version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		conn, err := db.NewConnection(cfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		version, err := conn.ServerVersion()
		if err != nil {
			return err
		}

		color.Green("✅ Database connection successful!")
		color.White("   provider: %s", cfg.Database.Provider)
		color.White("   version:  %s", version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
