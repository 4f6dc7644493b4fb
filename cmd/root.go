package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "1.0.0"
)

var rootCmd = &cobra.Command{
	Use:   "bankgen",
	Short: "Synthesize a retail-banking dataset and bulk-load it into a database",
	Long: `
bankgen generates a fictitious retail-banking dataset (customers, accounts,
transactions) as CSV files, and bulk-loads those files into a relational
database in chunked, type-safe batches.

Database credentials are read from the environment (or a .env file):
DB_USER, DB_PASSWORD, DB_NAME (required), DB_HOST, DB_PORT, DB_PROVIDER.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bankgen.config.json)")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("bankgen.config")
	}

	viper.AutomaticEnv()

	// The config file is optional; env variables and defaults cover everything.
	viper.ReadInConfig()
}
