package domain

// PricingModel determines who absorbs the card processing fee on online
// payments: the merchant (standard) or the paying customer (pass_through).
type PricingModel string

const (
	PricingStandard    PricingModel = "standard"
	PricingPassThrough PricingModel = "pass_through"
)

// Company is the tenant: it owns every other business record and is the
// isolation boundary for all queries.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (UUID)
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	LogoURL   string `json:"logoURL"`
	TaxID     string `json:"taxID"`
	Timezone  string `json:"timezone"`

	// Payments integration
	StripeAccountID    string       `json:"stripeAccountID"`
	StripePricingModel PricingModel `json:"stripePricingModel"`

	// Gmail sending integration; refresh token never leaves the server.
	GoogleEmail        string `json:"googleEmail"`
	GoogleRefreshToken string `json:"-"`

	AuditFields
}

// UserRole defines the possible roles a staff user can have within a company.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleWorker UserRole = "worker"
)

// User represents a staff member of a company.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	CompanyID    string   `json:"companyID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
