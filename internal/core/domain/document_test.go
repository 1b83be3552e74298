package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestComputeTotals(t *testing.T) {
	items := []LineItem{
		{Description: "Drain cleaning", Quantity: dec("2"), Rate: dec("75"), Type: LineItemService},
		{Description: "Pipe fittings", Quantity: dec("1"), Rate: dec("50"), Type: LineItemMaterial},
	}

	result, totals := ComputeTotals(items, dec("10"))

	assert.True(t, totals.Subtotal.Equal(dec("200")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(dec("20")), "tax: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(dec("220")), "total: %s", totals.Total)
	assert.True(t, result[0].Amount.Equal(dec("150")))
	assert.True(t, result[1].Amount.Equal(dec("50")))
}

func TestComputeTotals_RecomputesAmounts(t *testing.T) {
	// Client-supplied amounts are ignored; qty x rate wins.
	items := []LineItem{
		{Description: "Labor", Quantity: dec("3"), Rate: dec("40"), Amount: dec("999"), Type: LineItemLabor},
	}

	result, totals := ComputeTotals(items, decimal.Zero)

	assert.True(t, result[0].Amount.Equal(dec("120")))
	assert.True(t, totals.Subtotal.Equal(dec("120")))
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.Equal(dec("120")))
}

func TestComputeTotals_Rounding(t *testing.T) {
	items := []LineItem{
		{Description: "Hourly work", Quantity: dec("1.5"), Rate: dec("33.33"), Type: LineItemService},
	}

	result, totals := ComputeTotals(items, dec("8.25"))

	// 1.5 * 33.33 = 49.995 -> 50.00 at two places
	assert.True(t, result[0].Amount.Equal(dec("50")), "amount: %s", result[0].Amount)
	assert.True(t, totals.Subtotal.Equal(dec("50")))
	// 50 * 8.25% = 4.125 -> 4.13
	assert.True(t, totals.Tax.Equal(dec("4.13")), "tax: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(dec("54.13")), "total: %s", totals.Total)
}

func TestComputeTotals_Empty(t *testing.T) {
	result, totals := ComputeTotals(nil, dec("10"))

	assert.Empty(t, result)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestValidLineItemType(t *testing.T) {
	assert.True(t, ValidLineItemType(LineItemService))
	assert.True(t, ValidLineItemType(LineItemMaterial))
	assert.True(t, ValidLineItemType(LineItemLabor))
	assert.True(t, ValidLineItemType(""), "empty defaults to service later")
	assert.False(t, ValidLineItemType("equipment"))
}
