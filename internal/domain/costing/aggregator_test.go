package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/procurehub/procurehub/internal/domain/entity"
)

func TestTotal(t *testing.T) {
	items := []entity.LineItem{
		{RequiredQuantity: 3, EstimatedCost: decimal.RequireFromString("19.99")},
		{RequiredQuantity: 2, EstimatedCost: decimal.RequireFromString("0.01")},
	}

	assert.True(t, Total(items).Equal(decimal.RequireFromString("59.99")))
}

func TestTotal_Empty(t *testing.T) {
	assert.True(t, Total(nil).Equal(decimal.Zero))
}

func TestTotal_ZeroCostContributesNothing(t *testing.T) {
	items := []entity.LineItem{
		{RequiredQuantity: 5},
		{RequiredQuantity: 1, EstimatedCost: decimal.RequireFromString("100")},
	}

	assert.True(t, Total(items).Equal(decimal.RequireFromString("100")))
}

func TestTotal_ExactDecimalArithmetic(t *testing.T) {
	// 0.1 + 0.2 style sums must not drift
	items := []entity.LineItem{
		{RequiredQuantity: 1, EstimatedCost: decimal.RequireFromString("0.1")},
		{RequiredQuantity: 1, EstimatedCost: decimal.RequireFromString("0.2")},
	}

	assert.Equal(t, "0.3", Total(items).String())
}
