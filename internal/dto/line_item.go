package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// LineItemRequest defines an incoming line item on a create or update.
// Amount is intentionally absent: the server always recomputes it.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate"`
	Type        string          `json:"type" binding:"omitempty,oneof=service material labor"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID  string              `json:"lineItemID"`
	Description string              `json:"description"`
	Quantity    decimal.Decimal     `json:"quantity"`
	Rate        decimal.Decimal     `json:"rate"`
	Amount      decimal.Decimal     `json:"amount"`
	Type        domain.LineItemType `json:"type"`
}

// ToLineItemDomain converts a line item request to its domain form. The
// type defaults to service when omitted; amount is computed later.
func ToLineItemDomain(req LineItemRequest) domain.LineItem {
	itemType := domain.LineItemType(req.Type)
	if itemType == "" {
		itemType = domain.LineItemService
	}
	return domain.LineItem{
		Description: req.Description,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
		Type:        itemType,
	}
}

// ToLineItemsDomain converts a slice of line item requests.
func ToLineItemsDomain(reqs []LineItemRequest) []domain.LineItem {
	items := make([]domain.LineItem, len(reqs))
	for i, r := range reqs {
		items[i] = ToLineItemDomain(r)
	}
	return items
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:  li.LineItemID,
		Description: li.Description,
		Quantity:    li.Quantity,
		Rate:        li.Rate,
		Amount:      li.Amount,
		Type:        li.Type,
	}
}

// ToLineItemResponses converts a slice of domain.LineItem.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	res := make([]LineItemResponse, len(items))
	for i, li := range items {
		res[i] = ToLineItemResponse(&li)
	}
	return res
}
