package domain

import "github.com/shopspring/decimal"

// LineItemType categorizes a priced unit on an estimate or invoice.
type LineItemType string

const (
	LineItemService  LineItemType = "service"
	LineItemMaterial LineItemType = "material"
	LineItemLabor    LineItemType = "labor"
)

// LineItem is a priced unit belonging to exactly one estimate or invoice.
// Amount is always recomputed server-side as Quantity × Rate; a client
// supplied amount is ignored.
type LineItem struct {
	LineItemID  string          `json:"lineItemID"` // Primary Key (UUID)
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Type        LineItemType    `json:"type"`
}

// DocumentTotals holds the derived monetary summary of a document.
type DocumentTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// moneyPlaces is the number of decimal places monetary values are rounded to
// at the document boundary.
const moneyPlaces = 2

// ComputeTotals recomputes each line item's amount and the document's
// subtotal, tax and total from the given line items and tax rate (percent).
// The result is independent of line-item order:
//
//	amount_i = quantity_i × rate_i
//	subtotal = Σ amount_i
//	tax      = subtotal × taxRate / 100
//	total    = subtotal + tax
func ComputeTotals(items []LineItem, taxRate decimal.Decimal) ([]LineItem, DocumentTotals) {
	out := make([]LineItem, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		item.Amount = item.Quantity.Mul(item.Rate).Round(moneyPlaces)
		subtotal = subtotal.Add(item.Amount)
		out[i] = item
	}

	tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(moneyPlaces)
	return out, DocumentTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ValidLineItemType reports whether t is a known line item type. The empty
// string is accepted and defaults to service at the persistence boundary.
func ValidLineItemType(t LineItemType) bool {
	switch t {
	case "", LineItemService, LineItemMaterial, LineItemLabor:
		return true
	}
	return false
}
