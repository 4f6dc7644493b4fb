package generator

import (
	"fmt"

	"github.com/dohalabs/bankgen/internal/model"
)

var accountTypeWeights = []weightedChoice{
	{model.AccountSavings, 0.5},
	{model.AccountChecking, 0.4},
	{model.AccountCredit, 0.1},
}

// Log-normal balance parameters per account type.
var balanceParams = map[string]struct{ Mean, Sigma float64 }{
	model.AccountSavings:  {9, 0.8},
	model.AccountChecking: {8, 1.0},
	model.AccountCredit:   {7, 1.2},
}

// Accounts generates accounts linked to the given customers. Each customer
// gets max(1, Normal(avgPerCustomer, 0.7)) accounts. Credit balances are
// negated to model debt; Savings and Checking balances are floored at zero.
func (g *Generator) Accounts(customers []model.Customer, avgPerCustomer float64) []model.Account {
	var accounts []model.Account

	for _, customer := range customers {
		numAccounts := int(g.normal(avgPerCustomer, 0.7))
		if numAccounts < 1 {
			numAccounts = 1
		}

		for i := 0; i < numAccounts; i++ {
			g.accountSeq++

			accountType := g.pickWeighted(accountTypeWeights)
			params := balanceParams[accountType]
			balance := g.logNormal(params.Mean, params.Sigma)
			if accountType == model.AccountCredit {
				balance = -balance
			} else if balance < 0 {
				balance = 0
			}

			accounts = append(accounts, model.Account{
				AccountID:   fmt.Sprintf("ACC_%07d", g.accountSeq),
				CustomerID:  customer.CustomerID,
				AccountType: accountType,
				Balance:     round2(balance),
			})
		}
	}

	return accounts
}
