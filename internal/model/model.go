package model

import "time"

// Customer is a generated retail-banking customer.
type Customer struct {
	CustomerID      string
	CustomerName    string
	Region          string
	AccountOpenDate time.Time
}

// Account links back to the customer that owns it.
type Account struct {
	AccountID   string
	CustomerID  string
	AccountType string
	Balance     float64
}

// Transaction links back to the account it was posted against.
// MerchantCategoryCode is a fixed-width numeric string (e.g. "0000") and
// must never be coerced to a numeric type: leading zeros are significant.
type Transaction struct {
	TransactionID        string
	AccountID            string
	TransactionDate      time.Time
	TransactionType      string
	Amount               float64
	MerchantCategoryCode string
	Description          string
}

// Account types produced by the generator.
const (
	AccountSavings  = "Savings"
	AccountChecking = "Checking"
	AccountCredit   = "Credit"
)

// Transaction types produced by the generator.
const (
	TxnDeposit     = "Deposit"
	TxnWithdrawal  = "Withdrawal"
	TxnTransferIn  = "Transfer_In"
	TxnTransferOut = "Transfer_Out"
	TxnPayment     = "Payment"
)

// IsInflow reports whether a transaction type increases the balance.
func IsInflow(txnType string) bool {
	return txnType == TxnDeposit || txnType == TxnTransferIn
}

// IsOutflow reports whether a transaction type decreases the balance.
func IsOutflow(txnType string) bool {
	return txnType == TxnWithdrawal || txnType == TxnTransferOut || txnType == TxnPayment
}
