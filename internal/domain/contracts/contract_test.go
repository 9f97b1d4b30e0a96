//go:build unit
// +build unit

package contracts

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContract() *Contract {
	now := time.Now()
	return &Contract{
		ID:              uuid.NewString(),
		OrganizationID:  uuid.NewString(),
		Title:           "Master Services Agreement",
		Counterparty:    "Globex",
		Status:          StatusDraft,
		OwnerID:         uuid.NewString(),
		CurrentVersion:  1,
		Value:           125000,
		Currency:        "EUR",
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{StatusDraft, StatusInReview, true},
		{StatusDraft, StatusArchived, true},
		{StatusDraft, StatusApproved, false},
		{StatusInReview, StatusApproved, true},
		{StatusInReview, StatusRejected, true},
		{StatusInReview, StatusDraft, false},
		{StatusRejected, StatusDraft, true},
		{StatusApproved, StatusExecuted, true},
		{StatusApproved, StatusDraft, false},
		{StatusExecuted, StatusExpired, true},
		{StatusExecuted, StatusTerminated, true},
		{StatusExpired, StatusExecuted, false},
		{StatusArchived, StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsWorkflowStatus(t *testing.T) {
	assert.True(t, IsWorkflowStatus(StatusApproved))
	assert.True(t, IsWorkflowStatus(StatusInReview))
	assert.False(t, IsWorkflowStatus(StatusExecuted))
}

func TestContract_Validate(t *testing.T) {
	require.NoError(t, validContract().Validate())

	badStatus := validContract()
	badStatus.Status = "signed"
	assert.Error(t, badStatus.Validate())

	badCurrency := validContract()
	badCurrency.Currency = "euro"
	assert.Error(t, badCurrency.Validate())

	negative := validContract()
	negative.Value = -1
	assert.Error(t, negative.Validate())

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	inverted := validContract()
	inverted.EffectiveDate = &start
	inverted.ExpiryDate = &end
	err := inverted.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before effective date")
}

func TestContract_IsEditable(t *testing.T) {
	c := validContract()
	assert.True(t, c.IsEditable())

	c.Status = StatusRejected
	assert.True(t, c.IsEditable())

	c.Status = StatusInReview
	assert.False(t, c.IsEditable())
}

func TestContractInput_Validate(t *testing.T) {
	withBody := &ContractInput{Title: "NDA", Counterparty: "Initech", Body: "<p>terms</p>", Currency: "USD"}
	assert.NoError(t, withBody.Validate())

	templateID := uuid.NewString()
	withTemplate := &ContractInput{Title: "NDA", Counterparty: "Initech", TemplateID: &templateID, Currency: "USD"}
	assert.NoError(t, withTemplate.Validate())

	neither := &ContractInput{Title: "NDA", Counterparty: "Initech", Currency: "USD"}
	assert.Error(t, neither.Validate())
}

func TestContractUpdate_IsEmpty(t *testing.T) {
	assert.True(t, (&ContractUpdate{Comment: "noop"}).IsEmpty())

	title := "Renamed"
	assert.False(t, (&ContractUpdate{Title: &title}).IsEmpty())
}
