package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dohalabs/bankgen/internal/model"
)

// Flat file names, one per entity.
const (
	CustomersFile    = "customers.csv"
	AccountsFile     = "accounts.csv"
	TransactionsFile = "transactions.csv"
)

// On-disk date formats. Explicit so the files have a stable representation
// regardless of locale or driver defaults.
const (
	DateFormat      = "2006-01-02"
	TimestampFormat = "2006-01-02 15:04:05"
)

// WriteCustomers serializes customers to dir/customers.csv and returns the path.
func WriteCustomers(dir string, customers []model.Customer) (string, error) {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.CustomerID,
			c.CustomerName,
			c.Region,
			c.AccountOpenDate.Format(DateFormat),
		})
	}

	header := []string{"customer_id", "customer_name", "region", "account_open_date"}
	return writeCSV(dir, CustomersFile, header, rows)
}

// WriteAccounts serializes accounts to dir/accounts.csv and returns the path.
func WriteAccounts(dir string, accounts []model.Account) (string, error) {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{
			a.AccountID,
			a.CustomerID,
			a.AccountType,
			strconv.FormatFloat(a.Balance, 'f', 2, 64),
		})
	}

	header := []string{"account_id", "customer_id", "account_type", "balance"}
	return writeCSV(dir, AccountsFile, header, rows)
}

// WriteTransactions serializes transactions to dir/transactions.csv and
// returns the path. Timestamps use TimestampFormat; the merchant category
// code is written verbatim as a string.
func WriteTransactions(dir string, transactions []model.Transaction) (string, error) {
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			t.TransactionID,
			t.AccountID,
			t.TransactionDate.Format(TimestampFormat),
			t.TransactionType,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.MerchantCategoryCode,
			t.Description,
		})
	}

	header := []string{
		"transaction_id", "account_id", "transaction_date",
		"transaction_type", "amount", "merchant_category_code", "description",
	}
	return writeCSV(dir, TransactionsFile, header, rows)
}

func writeCSV(dir, name string, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV file %s: %w", path, err)
	}

	return path, nil
}
