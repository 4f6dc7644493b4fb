package loader

import (
	"fmt"
	"strings"

	"github.com/dohalabs/bankgen/internal/dataset"
)

// ColumnKind drives the per-batch normalization applied before insert.
type ColumnKind int

const (
	// KindString values stay strings end to end, even when they look
	// numeric. Leading-zero codes would be corrupted by numeric coercion.
	KindString ColumnKind = iota
	KindDate
	KindTimestamp
	KindNumeric
)

func (k ColumnKind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindTimestamp:
		return "timestamp"
	case KindNumeric:
		return "numeric"
	default:
		return "string"
	}
}

type Column struct {
	Name    string
	Kind    ColumnKind
	Default string // substituted when a string value is empty
}

type TableSchema struct {
	Name    string
	File    string
	Columns []Column
}

// Schemas returns the table schemas in their fixed load order. Accounts
// reference customers and transactions reference accounts, so the order
// satisfies foreign-key-like dependencies.
func Schemas() []TableSchema {
	return []TableSchema{CustomersTable, AccountsTable, TransactionsTable}
}

var CustomersTable = TableSchema{
	Name: "customers",
	File: dataset.CustomersFile,
	Columns: []Column{
		{Name: "customer_id", Kind: KindString},
		{Name: "customer_name", Kind: KindString},
		{Name: "region", Kind: KindString},
		{Name: "account_open_date", Kind: KindDate},
	},
}

var AccountsTable = TableSchema{
	Name: "accounts",
	File: dataset.AccountsFile,
	Columns: []Column{
		{Name: "account_id", Kind: KindString},
		{Name: "customer_id", Kind: KindString},
		{Name: "account_type", Kind: KindString},
		{Name: "balance", Kind: KindNumeric},
	},
}

var TransactionsTable = TableSchema{
	Name: "transactions",
	File: dataset.TransactionsFile,
	Columns: []Column{
		{Name: "transaction_id", Kind: KindString},
		{Name: "account_id", Kind: KindString},
		{Name: "transaction_date", Kind: KindTimestamp},
		{Name: "transaction_type", Kind: KindString},
		{Name: "amount", Kind: KindNumeric},
		{Name: "merchant_category_code", Kind: KindString, Default: "0000"},
		{Name: "description", Kind: KindString},
	},
}

// sqlType maps a column kind to the provider's column type.
func sqlType(kind ColumnKind, provider string) string {
	switch kind {
	case KindDate:
		return "DATE"
	case KindTimestamp:
		if provider == "mysql" {
			return "DATETIME"
		}
		return "TIMESTAMP"
	case KindNumeric:
		if provider == "sqlite" || provider == "sqlite3" {
			return "REAL"
		}
		return "NUMERIC(15,2)"
	default:
		return "VARCHAR(255)"
	}
}

// DropSQL returns the statement that discards the table's prior contents.
func (s TableSchema) DropSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", s.Name)
}

// CreateSQL returns the CREATE TABLE statement for the provider.
func (s TableSchema) CreateSQL(provider string) string {
	defs := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		defs = append(defs, fmt.Sprintf("%s %s", col.Name, sqlType(col.Kind, provider)))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", s.Name, strings.Join(defs, ", "))
}
