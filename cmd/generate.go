package cmd

import (
	"fmt"
	"time"

	"github.com/dohalabs/bankgen/internal/config"
	"github.com/dohalabs/bankgen/internal/dataset"
	"github.com/dohalabs/bankgen/internal/generator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateSeed int64

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the sample banking dataset as CSV files",
	Long: `
Generate customers, accounts and transactions in dependency order and save
them as CSV files (plus a manifest.yaml describing the run). No database
access happens during generation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bind here rather than in init so the load command's --dir flag
		// does not shadow --out on the shared data.dir key.
		viper.BindPFlag("generate.customers", cmd.Flags().Lookup("customers"))
		viper.BindPFlag("generate.accounts_per_customer", cmd.Flags().Lookup("accounts-per-customer"))
		viper.BindPFlag("generate.txns_per_account_per_month", cmd.Flags().Lookup("txns-per-month"))
		viper.BindPFlag("generate.months", cmd.Flags().Lookup("months"))
		viper.BindPFlag("data.dir", cmd.Flags().Lookup("out"))

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.ValidateGenerate(); err != nil {
			return err
		}

		seed := generateSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		gen := generator.New(seed)

		color.Cyan("🏦 Generating sample customer data...")
		customers := gen.Customers(cfg.Generate.Customers)
		customerFile, err := dataset.WriteCustomers(cfg.Data.Dir, customers)
		if err != nil {
			return fmt.Errorf("failed to write customer data: %w", err)
		}
		color.Green("✅ Saved %d customers to %s", len(customers), customerFile)

		color.Cyan("🏦 Generating sample account data...")
		accounts := gen.Accounts(customers, cfg.Generate.AccountsPerCustomer)
		accountFile, err := dataset.WriteAccounts(cfg.Data.Dir, accounts)
		if err != nil {
			return fmt.Errorf("failed to write account data: %w", err)
		}
		color.Green("✅ Saved %d accounts to %s", len(accounts), accountFile)

		color.Cyan("🏦 Generating sample transaction data...")
		transactions := gen.Transactions(accounts, cfg.Generate.Months, cfg.Generate.TxnsPerAccountPerMonth)
		transactionFile, err := dataset.WriteTransactions(cfg.Data.Dir, transactions)
		if err != nil {
			return fmt.Errorf("failed to write transaction data: %w", err)
		}
		color.Green("✅ Saved %d transactions to %s", len(transactions), transactionFile)

		manifest := dataset.Manifest{
			GeneratedAt: time.Now().Format(dataset.TimestampFormat),
			Seed:        seed,
			Files: []dataset.FileEntry{
				{Name: dataset.CustomersFile, Table: "customers", Rows: len(customers)},
				{Name: dataset.AccountsFile, Table: "accounts", Rows: len(accounts)},
				{Name: dataset.TransactionsFile, Table: "transactions", Rows: len(transactions)},
			},
		}
		if err := dataset.WriteManifest(cfg.Data.Dir, manifest); err != nil {
			return err
		}

		color.Green("\n✅ Data generation complete (seed %d)", seed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().Int("customers", 0, "number of customers to generate (default 500)")
	generateCmd.Flags().Float64("accounts-per-customer", 0, "average accounts per customer (default 1.5)")
	generateCmd.Flags().Float64("txns-per-month", 0, "average transactions per account per month (default 10)")
	generateCmd.Flags().Int("months", 0, "months of transaction history (default 12)")
	generateCmd.Flags().String("out", "", "output directory for CSV files (default data/raw)")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 0, "random seed for a reproducible run (default: time-based)")
}
