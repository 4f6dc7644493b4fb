package loader

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dohalabs/bankgen/internal/dataset"
	"github.com/dohalabs/bankgen/internal/generator"
	"github.com/dohalabs/bankgen/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bankgen_test.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

func sampleCustomers() []model.Customer {
	open := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	return []model.Customer{
		{CustomerID: "CUST_00001", CustomerName: "Customer 1", Region: "Qatar_North", AccountOpenDate: open},
		{CustomerID: "CUST_00002", CustomerName: "Customer 2", Region: "Qatar_South", AccountOpenDate: open},
		{CustomerID: "CUST_00003", CustomerName: "Customer 3", Region: "Doha_Central", AccountOpenDate: open},
	}
}

func TestLoadTableBatchesAndRowCount(t *testing.T) {
	dir := t.TempDir()
	path, err := dataset.WriteCustomers(dir, sampleCustomers())
	if err != nil {
		t.Fatalf("Failed to write customers: %v", err)
	}

	db := openTestDB(t)
	l := New(db, "sqlite", 1)

	result, err := l.LoadTable(context.Background(), path, CustomersTable)
	if err != nil {
		t.Fatalf("Failed to load customers: %v", err)
	}

	if result.Batches != 3 {
		t.Errorf("Expected 3 batches with batch size 1, got %d", result.Batches)
	}
	if result.Rows != 3 {
		t.Errorf("Expected 3 rows loaded, got %d", result.Rows)
	}
	if n := countRows(t, db, "customers"); n != 3 {
		t.Errorf("Expected 3 rows in table, got %d", n)
	}
}

func TestLoadTableReplacesExistingRows(t *testing.T) {
	dir := t.TempDir()
	path, err := dataset.WriteCustomers(dir, sampleCustomers())
	if err != nil {
		t.Fatalf("Failed to write customers: %v", err)
	}

	db := openTestDB(t)
	if _, err := db.Exec("CREATE TABLE customers (customer_id VARCHAR(255))"); err != nil {
		t.Fatalf("Failed to create pre-existing table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO customers (customer_id) VALUES ('STALE')"); err != nil {
		t.Fatalf("Failed to insert pre-existing row: %v", err)
	}

	l := New(db, "sqlite", 2)
	if _, err := l.LoadTable(context.Background(), path, CustomersTable); err != nil {
		t.Fatalf("Failed to load customers: %v", err)
	}

	if n := countRows(t, db, "customers"); n != 3 {
		t.Errorf("Expected table recreated with 3 rows, got %d", n)
	}

	var stale int
	if err := db.QueryRow("SELECT COUNT(*) FROM customers WHERE customer_id = 'STALE'").Scan(&stale); err != nil {
		t.Fatalf("Failed to query stale rows: %v", err)
	}
	if stale != 0 {
		t.Error("Pre-existing rows survived a full-replace load")
	}
}

func TestLoadTransactionsMissingMCCColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, dataset.TransactionsFile)

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create CSV: %v", err)
	}
	writer := csv.NewWriter(file)
	writer.Write([]string{"transaction_id", "account_id", "transaction_date", "transaction_type", "amount", "description"})
	writer.Write([]string{"TXN_0000000001", "ACC_0000001", "2026-05-01 10:30:00", "Deposit", "120.50", "Deposit at Unknown"})
	writer.Write([]string{"TXN_0000000002", "ACC_0000001", "2026-05-02 09:00:00", "Payment", "40.00", "Payment at Grocery"})
	writer.Flush()
	file.Close()
	if err := writer.Error(); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}

	db := openTestDB(t)
	l := New(db, "sqlite", 100)

	result, err := l.LoadTable(context.Background(), path, TransactionsTable)
	if err != nil {
		t.Fatalf("Load should tolerate a missing merchant_category_code column: %v", err)
	}
	if result.Rows != 2 {
		t.Errorf("Expected 2 rows loaded, got %d", result.Rows)
	}

	var loaded int
	if err := db.QueryRow("SELECT COUNT(*) FROM transactions WHERE transaction_type = 'Deposit' AND amount = 120.50").Scan(&loaded); err != nil {
		t.Fatalf("Failed to query loaded rows: %v", err)
	}
	if loaded != 1 {
		t.Error("Remaining columns were not loaded correctly")
	}

	var nullMCC int
	if err := db.QueryRow("SELECT COUNT(*) FROM transactions WHERE merchant_category_code IS NULL").Scan(&nullMCC); err != nil {
		t.Fatalf("Failed to query MCC column: %v", err)
	}
	if nullMCC != 2 {
		t.Errorf("Expected merchant_category_code NULL for all 2 rows, got %d", nullMCC)
	}
}

func TestLoadCoercesBadDatesToNull(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, dataset.CustomersFile)

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create CSV: %v", err)
	}
	writer := csv.NewWriter(file)
	writer.Write([]string{"customer_id", "customer_name", "region", "account_open_date"})
	writer.Write([]string{"CUST_00001", "Customer 1", "Qatar_North", "2025-03-10"})
	writer.Write([]string{"CUST_00002", "Customer 2", "Qatar_South", "not-a-date"})
	writer.Flush()
	file.Close()

	db := openTestDB(t)
	l := New(db, "sqlite", 100)

	result, err := l.LoadTable(context.Background(), path, CustomersTable)
	if err != nil {
		t.Fatalf("An unparsable date should not fail the batch: %v", err)
	}
	if result.Rows != 2 {
		t.Errorf("Expected 2 rows loaded, got %d", result.Rows)
	}

	var nullDates int
	if err := db.QueryRow("SELECT COUNT(*) FROM customers WHERE account_open_date IS NULL").Scan(&nullDates); err != nil {
		t.Fatalf("Failed to query null dates: %v", err)
	}
	if nullDates != 1 {
		t.Errorf("Expected 1 NULL date, got %d", nullDates)
	}
}

func TestLoadFailsOnInvalidNumeric(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, dataset.AccountsFile)

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create CSV: %v", err)
	}
	writer := csv.NewWriter(file)
	writer.Write([]string{"account_id", "customer_id", "account_type", "balance"})
	writer.Write([]string{"ACC_0000001", "CUST_00001", "Savings", "not-a-number"})
	writer.Flush()
	file.Close()

	db := openTestDB(t)
	l := New(db, "sqlite", 100)

	if _, err := l.LoadTable(context.Background(), path, AccountsTable); err == nil {
		t.Fatal("Expected a batch error for an invalid numeric value, got nil")
	}
}

func TestLoadLargeBatchWithinSQLiteVariableLimit(t *testing.T) {
	dir := t.TempDir()

	// 5000 rows x 7 columns would bind 35000 variables in a single
	// statement, past sqlite's 32766 ceiling. The loader must split the
	// batch into conforming statements.
	const rows = 5000
	transactions := make([]model.Transaction, rows)
	for i := range transactions {
		transactions[i] = model.Transaction{
			TransactionID:        fmt.Sprintf("TXN_%010d", i+1),
			AccountID:            "ACC_0000001",
			TransactionDate:      time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
			TransactionType:      "Deposit",
			Amount:               120.50,
			MerchantCategoryCode: "0000",
			Description:          "Deposit at Unknown",
		}
	}

	path, err := dataset.WriteTransactions(dir, transactions)
	if err != nil {
		t.Fatalf("Failed to write transactions: %v", err)
	}

	db := openTestDB(t)
	l := New(db, "sqlite", rows)

	result, err := l.LoadTable(context.Background(), path, TransactionsTable)
	if err != nil {
		t.Fatalf("Failed to load %d-row batch: %v", rows, err)
	}
	if result.Batches != 1 {
		t.Errorf("Expected 1 batch, got %d", result.Batches)
	}
	if n := countRows(t, db, "transactions"); n != rows {
		t.Errorf("Expected %d rows in table, got %d", rows, n)
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	db := openTestDB(t)
	l := New(db, "sqlite", 100)

	_, err := l.LoadTable(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), CustomersTable)
	if err == nil {
		t.Fatal("Expected error for missing input file, got nil")
	}
}

func TestLoadAllEndToEnd(t *testing.T) {
	dir := t.TempDir()

	gen := generator.New(42)
	customers := gen.Customers(10)
	accounts := gen.Accounts(customers, 1.5)
	transactions := gen.Transactions(accounts, 1, 10)

	if _, err := dataset.WriteCustomers(dir, customers); err != nil {
		t.Fatalf("Failed to write customers: %v", err)
	}
	if _, err := dataset.WriteAccounts(dir, accounts); err != nil {
		t.Fatalf("Failed to write accounts: %v", err)
	}
	if _, err := dataset.WriteTransactions(dir, transactions); err != nil {
		t.Fatalf("Failed to write transactions: %v", err)
	}

	db := openTestDB(t)
	l := New(db, "sqlite", 50)

	results, err := l.LoadAll(context.Background(), dir)
	if err != nil {
		t.Fatalf("Failed to load dataset: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 table results, got %d", len(results))
	}
	expectedOrder := []string{"customers", "accounts", "transactions"}
	for i, table := range expectedOrder {
		if results[i].Table != table {
			t.Errorf("Expected table %s at position %d, got %s", table, i, results[i].Table)
		}
	}

	if n := countRows(t, db, "customers"); n != 10 {
		t.Errorf("Expected 10 customers, got %d", n)
	}
	if n := countRows(t, db, "accounts"); n != len(accounts) {
		t.Errorf("Expected %d accounts, got %d", len(accounts), n)
	}
	if n := countRows(t, db, "transactions"); n != len(transactions) {
		t.Errorf("Expected %d transactions, got %d", len(transactions), n)
	}

	// Referential closure after the round trip through CSV and SQL.
	var orphans int
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM accounts a
		LEFT JOIN customers c ON c.customer_id = a.customer_id
		WHERE c.customer_id IS NULL
	`).Scan(&orphans); err != nil {
		t.Fatalf("Failed to check account references: %v", err)
	}
	if orphans != 0 {
		t.Errorf("Found %d accounts referencing missing customers", orphans)
	}

	if err := db.QueryRow(`
		SELECT COUNT(*) FROM transactions t
		LEFT JOIN accounts a ON a.account_id = t.account_id
		WHERE a.account_id IS NULL
	`).Scan(&orphans); err != nil {
		t.Fatalf("Failed to check transaction references: %v", err)
	}
	if orphans != 0 {
		t.Errorf("Found %d transactions referencing missing accounts", orphans)
	}

	// Leading zeros must survive the full write/load round trip.
	var zeroMCC int
	if err := db.QueryRow("SELECT COUNT(*) FROM transactions WHERE merchant_category_code = '0000'").Scan(&zeroMCC); err != nil {
		t.Fatalf("Failed to query MCC codes: %v", err)
	}
	var deposits int
	if err := db.QueryRow("SELECT COUNT(*) FROM transactions WHERE transaction_type = 'Deposit'").Scan(&deposits); err != nil {
		t.Fatalf("Failed to count deposits: %v", err)
	}
	if deposits > 0 && zeroMCC != deposits {
		t.Errorf("Expected %d rows with MCC '0000' (one per deposit), got %d", deposits, zeroMCC)
	}
}
