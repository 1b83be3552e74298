package domain

import "time"

// Customer is a person or business the company does work for. Customers do
// not hold accounts; they reach their documents through the token
// authenticated portal.
type Customer struct {
	CustomerID string   `json:"customerID"` // Primary Key (UUID)
	CompanyID  string   `json:"companyID"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	Zip        string   `json:"zip"`
	Notes      string   `json:"notes"`
	Tags       []string `json:"tags"`

	// Portal magic-link state; the token is single use and never serialized.
	PortalToken        *string    `json:"-"`
	PortalTokenExpires *time.Time `json:"-"`

	AuditFields
}

// LeadStatus tracks a lead through the sales funnel.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadWon       LeadStatus = "won"
	LeadLost      LeadStatus = "lost"
)

// Lead is a prospective customer. Converting a lead creates a Customer and
// marks the lead won.
type Lead struct {
	LeadID    string     `json:"leadID"` // Primary Key (UUID)
	CompanyID string     `json:"companyID"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Source    string     `json:"source"`
	Status    LeadStatus `json:"status"`
	Notes     string     `json:"notes"`

	// CustomerID is set once the lead has been converted.
	CustomerID *string `json:"customerID"`

	AuditFields
}

// ValidLeadStatus reports whether s is one of the known lead states.
func ValidLeadStatus(s LeadStatus) bool {
	switch s {
	case LeadNew, LeadContacted, LeadQualified, LeadWon, LeadLost:
		return true
	}
	return false
}
