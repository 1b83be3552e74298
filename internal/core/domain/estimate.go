package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateStatus is the state of an estimate's approval lifecycle.
type EstimateStatus string

const (
	EstimateDraft    EstimateStatus = "draft"
	EstimateSent     EstimateStatus = "sent"
	EstimateViewed   EstimateStatus = "viewed"
	EstimateApproved EstimateStatus = "approved"
	EstimateRejected EstimateStatus = "rejected"
	EstimateExpired  EstimateStatus = "expired"
)

// estimateTransitions is the single source of truth for legal estimate
// status changes. Every writer (send action, portal response, invoice
// conversion) goes through CanTransitionTo, so an already-responded
// estimate cannot be silently flipped.
var estimateTransitions = map[EstimateStatus][]EstimateStatus{
	EstimateDraft:    {EstimateSent, EstimateApproved, EstimateRejected},
	EstimateSent:     {EstimateViewed, EstimateApproved, EstimateRejected, EstimateExpired},
	EstimateViewed:   {EstimateApproved, EstimateRejected, EstimateExpired},
	EstimateApproved: {},
	EstimateRejected: {},
	EstimateExpired:  {},
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle transition.
func (s EstimateStatus) CanTransitionTo(target EstimateStatus) bool {
	for _, allowed := range estimateTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the estimate can still change state.
func (s EstimateStatus) IsTerminal() bool {
	return len(estimateTransitions[s]) == 0
}

// ValidEstimateStatus reports whether s is one of the known estimate states.
func ValidEstimateStatus(s EstimateStatus) bool {
	_, ok := estimateTransitions[s]
	return ok
}

// Estimate is a priced proposal sent to a customer for approval.
type Estimate struct {
	EstimateID     string          `json:"estimateID"` // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`
	CustomerID     string          `json:"customerID"`
	EstimateNumber string          `json:"estimateNumber"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Status         EstimateStatus  `json:"status"`
	ValidUntil     *time.Time      `json:"validUntil"`
	LineItems      []LineItem      `json:"lineItems"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	Tax            decimal.Decimal `json:"tax"`
	Total          decimal.Decimal `json:"total"`
	Notes          string          `json:"notes"`
	ApprovedAt     *time.Time      `json:"approvedAt"`
	RejectedAt     *time.Time      `json:"rejectedAt"`
	AuditFields
}
