package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateStatusTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    EstimateStatus
		to      EstimateStatus
		allowed bool
	}{
		{"draft to sent", EstimateDraft, EstimateSent, true},
		{"draft to approved", EstimateDraft, EstimateApproved, true},
		{"draft to rejected", EstimateDraft, EstimateRejected, true},
		{"draft to viewed", EstimateDraft, EstimateViewed, false},
		{"draft to expired", EstimateDraft, EstimateExpired, false},
		{"sent to viewed", EstimateSent, EstimateViewed, true},
		{"sent to approved", EstimateSent, EstimateApproved, true},
		{"sent to rejected", EstimateSent, EstimateRejected, true},
		{"sent to expired", EstimateSent, EstimateExpired, true},
		{"sent back to draft", EstimateSent, EstimateDraft, false},
		{"viewed to approved", EstimateViewed, EstimateApproved, true},
		{"viewed to rejected", EstimateViewed, EstimateRejected, true},
		{"viewed to expired", EstimateViewed, EstimateExpired, true},
		{"viewed back to sent", EstimateViewed, EstimateSent, false},
		{"approved is terminal", EstimateApproved, EstimateRejected, false},
		{"rejected is terminal", EstimateRejected, EstimateApproved, false},
		{"expired is terminal", EstimateExpired, EstimateApproved, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestEstimateStatusIsTerminal(t *testing.T) {
	assert.False(t, EstimateDraft.IsTerminal())
	assert.False(t, EstimateSent.IsTerminal())
	assert.False(t, EstimateViewed.IsTerminal())
	assert.True(t, EstimateApproved.IsTerminal())
	assert.True(t, EstimateRejected.IsTerminal())
	assert.True(t, EstimateExpired.IsTerminal())
}

func TestValidEstimateStatus(t *testing.T) {
	assert.True(t, ValidEstimateStatus(EstimateDraft))
	assert.True(t, ValidEstimateStatus(EstimateExpired))
	assert.False(t, ValidEstimateStatus("pending"))
}
