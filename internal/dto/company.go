package dto

import (
	"time"

	"github.com/tradehive/tradehive_backend/internal/core/domain"
)

// UpdateCompanyRequest defines the data allowed for updating company settings.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCompanyRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Zip          *string `json:"zip"`
	LogoURL      *string `json:"logoURL"`
	TaxID        *string `json:"taxID"`
	Timezone     *string `json:"timezone"`
	PricingModel *string `json:"pricingModel" binding:"omitempty,oneof=standard pass_through"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID       string              `json:"companyID"`
	Name            string              `json:"name"`
	Email           string              `json:"email"`
	Phone           string              `json:"phone"`
	Address         string              `json:"address"`
	City            string              `json:"city"`
	State           string              `json:"state"`
	Zip             string              `json:"zip"`
	LogoURL         string              `json:"logoURL"`
	TaxID           string              `json:"taxID"`
	Timezone        string              `json:"timezone"`
	StripeConnected bool                `json:"stripeConnected"`
	PricingModel    domain.PricingModel `json:"pricingModel"`
	GoogleConnected bool                `json:"googleConnected"`
	GoogleEmail     string              `json:"googleEmail"`
	CreatedAt       time.Time           `json:"createdAt"`
	LastUpdatedAt   time.Time           `json:"lastUpdatedAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:       c.CompanyID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		City:            c.City,
		State:           c.State,
		Zip:             c.Zip,
		LogoURL:         c.LogoURL,
		TaxID:           c.TaxID,
		Timezone:        c.Timezone,
		StripeConnected: c.StripeAccountID != "",
		PricingModel:    c.StripePricingModel,
		GoogleConnected: c.GoogleRefreshToken != "",
		GoogleEmail:     c.GoogleEmail,
		CreatedAt:       c.CreatedAt,
		LastUpdatedAt:   c.LastUpdatedAt,
	}
}
