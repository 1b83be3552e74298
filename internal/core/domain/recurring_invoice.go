package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecurringFrequency is how often a recurring invoice generates a new
// invoice from its template.
type RecurringFrequency string

const (
	FrequencyWeekly    RecurringFrequency = "weekly"
	FrequencyMonthly   RecurringFrequency = "monthly"
	FrequencyQuarterly RecurringFrequency = "quarterly"
	FrequencyYearly    RecurringFrequency = "yearly"
)

// ValidRecurringFrequency reports whether f is a known frequency.
func ValidRecurringFrequency(f RecurringFrequency) bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// NextAfter advances t by one period of frequency f. Monthly and longer
// periods use calendar arithmetic, so Jan 31 + monthly normalizes per
// time.AddDate rules.
func (f RecurringFrequency) NextAfter(t time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0)
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyYearly:
		return t.AddDate(1, 0, 0)
	}
	return t
}

// InvoiceTemplate is the reusable body a recurring schedule stamps onto
// each generated invoice. Stored as JSON alongside the schedule.
type InvoiceTemplate struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	LineItems   []LineItem      `json:"lineItems"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Notes       string          `json:"notes"`
	DueInDays   int             `json:"dueInDays"`
}

// RecurringInvoice is a schedule that generates draft invoices for a
// customer at a fixed cadence.
type RecurringInvoice struct {
	RecurringInvoiceID string             `json:"recurringInvoiceID"` // Primary Key (UUID)
	CompanyID          string             `json:"companyID"`
	CustomerID         string             `json:"customerID"`
	Frequency          RecurringFrequency `json:"frequency"`
	NextRunDate        time.Time          `json:"nextRunDate"`
	EndDate            *time.Time         `json:"endDate"`
	IsActive           bool               `json:"isActive"`
	Template           InvoiceTemplate    `json:"template"`
	LastRunAt          *time.Time         `json:"lastRunAt"`
	AuditFields
}

// Due reports whether the schedule should produce an invoice as of now.
func (r RecurringInvoice) Due(now time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.EndDate != nil && now.After(*r.EndDate) {
		return false
	}
	return !r.NextRunDate.After(now)
}
