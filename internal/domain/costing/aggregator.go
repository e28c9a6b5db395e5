// Package costing computes derived cost figures for purchase requests.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

// Total returns the total estimated cost of a request: the sum over line
// items of quantity times unit cost, as an exact decimal. An empty item set
// totals zero. A zero-value cost contributes nothing, so items with missing
// cost data degrade to zero instead of poisoning the total.
func Total(items []entity.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.RequiredQuantity))
		total = total.Add(item.EstimatedCost.Mul(qty))
	}
	return total
}
