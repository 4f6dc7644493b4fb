package generator

import (
	"fmt"

	"github.com/dohalabs/bankgen/internal/model"
)

var regions = []string{
	"Qatar_North",
	"Qatar_South",
	"Qatar_East",
	"Qatar_West",
	"Doha_Central",
}

// Customers generates n customer records with sequential identifiers.
// Account open dates fall uniformly in the window from three years ago
// to thirty days ago.
func (g *Generator) Customers(n int) []model.Customer {
	startDate := g.now.AddDate(-3, 0, 0)
	endDate := g.now.AddDate(0, 0, -30)

	customers := make([]model.Customer, 0, n)
	for i := 1; i <= n; i++ {
		customers = append(customers, model.Customer{
			CustomerID:      fmt.Sprintf("CUST_%05d", i),
			CustomerName:    fmt.Sprintf("Customer %d", i),
			Region:          regions[g.rand.Intn(len(regions))],
			AccountOpenDate: g.timeBetween(startDate, endDate),
		})
	}

	return customers
}
