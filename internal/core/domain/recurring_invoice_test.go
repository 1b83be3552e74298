package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecurringFrequencyNextAfter(t *testing.T) {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), FrequencyWeekly.NextAfter(base))
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), FrequencyMonthly.NextAfter(base))
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), FrequencyQuarterly.NextAfter(base))
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), FrequencyYearly.NextAfter(base))
}

func TestRecurringInvoiceDue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	assert.True(t, RecurringInvoice{IsActive: true, NextRunDate: past}.Due(now))
	assert.True(t, RecurringInvoice{IsActive: true, NextRunDate: now}.Due(now))
	assert.False(t, RecurringInvoice{IsActive: true, NextRunDate: future}.Due(now))
	assert.False(t, RecurringInvoice{IsActive: false, NextRunDate: past}.Due(now))

	ended := past
	assert.False(t, RecurringInvoice{IsActive: true, NextRunDate: past, EndDate: &ended}.Due(now))
}
