package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dohalabs/bankgen/internal/model"
)

// Transaction type distribution per account type.
var txnTypeWeights = map[string][]weightedChoice{
	model.AccountSavings: {
		{model.TxnDeposit, 0.4},
		{model.TxnWithdrawal, 0.2},
		{model.TxnTransferIn, 0.15},
		{model.TxnTransferOut, 0.15},
		{model.TxnPayment, 0.1},
	},
	model.AccountChecking: {
		{model.TxnDeposit, 0.2},
		{model.TxnWithdrawal, 0.3},
		{model.TxnTransferIn, 0.1},
		{model.TxnTransferOut, 0.1},
		{model.TxnPayment, 0.3},
	},
	model.AccountCredit: {
		{model.TxnDeposit, 0.1},
		{model.TxnWithdrawal, 0.05},
		{model.TxnTransferIn, 0.05},
		{model.TxnTransferOut, 0.05},
		{model.TxnPayment, 0.75},
	},
}

// Merchant categories sampled for Payment transactions.
var paymentCategoryWeights = []weightedChoice{
	{"Grocery", 0.2},
	{"Gas_Station", 0.15},
	{"Restaurant", 0.2},
	{"Online_Retail", 0.2},
	{"Entertainment", 0.1},
	{"Service_Payment", 0.15},
}

// Merchant category codes are fixed-width numeric strings. Leading zeros
// are significant, so these must never pass through a numeric type.
var mccCodes = map[string]string{
	"Grocery":         "5411",
	"Gas_Station":     "5541",
	"Restaurant":      "5812",
	"Online_Retail":   "5964",
	"Entertainment":   "7996",
	"ATM_Withdrawal":  "6010",
	"Transfer":        "6012",
	"Service_Payment": "4814",
	"Unknown":         "0000",
}

const defaultMCC = "0000"

// Transactions generates a transaction history for every account. Dates are
// drawn uniformly within the history window and sorted ascending per
// account; the sort is the only ordering guarantee. A running balance seeded
// from the account balance caps outflow draws at max(10, balance*0.5) while
// positive, or 1000 once it is not. The cap bounds the draw, not the
// post-transaction balance, so cumulative drift below zero is expected.
func (g *Generator) Transactions(accounts []model.Account, months int, avgPerMonth float64) []model.Transaction {
	endDate := g.now
	startDate := endDate.AddDate(0, 0, -30*months)

	var transactions []model.Transaction

	for _, account := range accounts {
		totalTxns := int(g.normal(avgPerMonth*float64(months), 3))
		if totalTxns < 5 {
			totalTxns = 5
		}

		dates := make([]time.Time, totalTxns)
		for i := range dates {
			dates[i] = g.timeBetween(startDate, endDate)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		runningBalance := account.Balance
		for _, date := range dates {
			g.txnSeq++

			txnType := g.pickWeighted(txnTypeWeights[account.AccountType])

			var amount float64
			switch {
			case model.IsInflow(txnType):
				amount = round2(g.logNormal(6, 1.2))
			case model.IsOutflow(txnType):
				maxOutflow := 1000.0
				if runningBalance > 0 {
					maxOutflow = runningBalance * 0.5
					if maxOutflow < 10 {
						maxOutflow = 10
					}
				}
				amount = round2(min(maxOutflow, g.logNormal(5.5, 1.3)))
				if amount < 1.0 {
					amount = 1.0
				}
			default:
				amount = round2(g.logNormal(5, 1.0))
			}

			if model.IsInflow(txnType) {
				runningBalance += amount
			} else if model.IsOutflow(txnType) {
				runningBalance -= amount
			}

			category := g.categoryFor(txnType)
			code, ok := mccCodes[category]
			if !ok {
				code = defaultMCC
			}

			transactions = append(transactions, model.Transaction{
				TransactionID:        fmt.Sprintf("TXN_%010d", g.txnSeq),
				AccountID:            account.AccountID,
				TransactionDate:      date,
				TransactionType:      txnType,
				Amount:               amount,
				MerchantCategoryCode: code,
				Description:          describe(txnType, category),
			})
		}
	}

	return transactions
}

// categoryFor maps a transaction type to a merchant category description.
// Deposits carry no merchant category.
func (g *Generator) categoryFor(txnType string) string {
	switch txnType {
	case model.TxnWithdrawal:
		return "ATM_Withdrawal"
	case model.TxnTransferIn, model.TxnTransferOut:
		return "Transfer"
	case model.TxnPayment:
		return g.pickWeighted(paymentCategoryWeights)
	default:
		return "Unknown"
	}
}

func describe(txnType, category string) string {
	return fmt.Sprintf("%s at %s",
		strings.ReplaceAll(txnType, "_", " "),
		strings.ReplaceAll(category, "_", " "))
}
