package collection

import (
	"testing"

	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestClient(t *testing.T) *Client {
	c, err := NewClient("12345678", "Maria Quispe")
	require.NoError(t, err)
	c.ClearDomainEvents()
	return c
}

// ============================================
// DelinquencyStatus Tests
// ============================================

func TestDelinquencyStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  DelinquencyStatus
		isValid bool
	}{
		{DelinquencyCurrent, true},
		{DelinquencyEarly, true},
		{DelinquencyModerate, true},
		{DelinquencySevere, true},
		{DelinquencyCritical, true},
		{DelinquencyStatus("PAID"), false},
		{DelinquencyStatus("current"), false},
		{DelinquencyStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestDelinquencyStatus_Severity(t *testing.T) {
	assert.Equal(t, 0, DelinquencyCurrent.Severity())
	assert.Equal(t, 4, DelinquencyCritical.Severity())
	assert.Equal(t, -1, DelinquencyStatus("UNKNOWN").Severity())

	assert.True(t, DelinquencyCritical.IsWorseThan(DelinquencySevere))
	assert.True(t, DelinquencyEarly.IsWorseThan(DelinquencyCurrent))
	assert.False(t, DelinquencyCurrent.IsWorseThan(DelinquencyCritical))
}

// ============================================
// Client Tests
// ============================================

func TestNewClient(t *testing.T) {
	c, err := NewClient("45678912", "Jorge Mamani")

	require.NoError(t, err)
	assert.Equal(t, "45678912", c.Document)
	assert.Equal(t, DelinquencyCurrent, c.DelinquencyStatus)
	assert.Equal(t, ClientStatusActive, c.Status)
	assert.Nil(t, c.AdvisorID)

	events := c.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventClientRegistered, events[0].EventType())
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name     string
		document string
		fullName string
	}{
		{"empty document", "", "Maria Quispe"},
		{"whitespace document", "   ", "Maria Quispe"},
		{"empty name", "12345678", ""},
		{"whitespace name", "12345678", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.document, tt.fullName)
			assert.Error(t, err)
		})
	}
}

func TestClient_ChangeDelinquencyStatus(t *testing.T) {
	c := createTestClient(t)
	actor := uuid.New()

	transition, err := c.ChangeDelinquencyStatus(
		DelinquencyModerate, actor, "Ana Torres",
		"60 days without payment", "called twice, no answer",
		AuditMetadata{IPAddress: "10.0.0.5", UserAgent: "audicob-web"},
	)

	require.NoError(t, err)
	assert.Equal(t, DelinquencyModerate, c.DelinquencyStatus)

	assert.Equal(t, c.ID, transition.ClientID)
	assert.Equal(t, DelinquencyCurrent, transition.PreviousStatus)
	assert.Equal(t, DelinquencyModerate, transition.NewStatus)
	assert.Equal(t, actor, transition.ChangedBy)
	assert.Equal(t, "60 days without payment", transition.Reason)
	assert.Equal(t, "10.0.0.5", transition.IPAddress)
	assert.False(t, transition.ChangedAt.IsZero())

	events := c.GetDomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*DelinquencyStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, DelinquencyCurrent, changed.PreviousStatus)
	assert.Equal(t, DelinquencyModerate, changed.NewStatus)
}

func TestClient_ChangeDelinquencyStatus_InvalidStatus(t *testing.T) {
	c := createTestClient(t)

	_, err := c.ChangeDelinquencyStatus(
		DelinquencyStatus("BANKRUPT"), uuid.New(), "Ana Torres",
		"some reason", "", AuditMetadata{},
	)

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, DelinquencyCurrent, c.DelinquencyStatus)
	assert.Empty(t, c.GetDomainEvents())
}

func TestClient_ChangeDelinquencyStatus_NoOp(t *testing.T) {
	c := createTestClient(t)

	_, err := c.ChangeDelinquencyStatus(
		DelinquencyCurrent, uuid.New(), "Ana Torres",
		"some reason", "", AuditMetadata{},
	)

	assert.ErrorIs(t, err, ErrNoOpTransition)
	assert.Empty(t, c.GetDomainEvents())
}

func TestClient_ChangeDelinquencyStatus_MissingReason(t *testing.T) {
	c := createTestClient(t)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := c.ChangeDelinquencyStatus(
			DelinquencySevere, uuid.New(), "Ana Torres",
			reason, "", AuditMetadata{},
		)
		assert.ErrorIs(t, err, ErrMissingReason)
	}

	assert.Equal(t, DelinquencyCurrent, c.DelinquencyStatus)
}

// Invalid status outranks the no-op check even when the current value is
// itself outside the scale.
func TestClient_ChangeDelinquencyStatus_ValidationOrder(t *testing.T) {
	c := createTestClient(t)

	_, err := c.ChangeDelinquencyStatus(
		DelinquencyStatus("BANKRUPT"), uuid.New(), "Ana Torres",
		"", "", AuditMetadata{},
	)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = c.ChangeDelinquencyStatus(
		DelinquencyCurrent, uuid.New(), "Ana Torres",
		"", "", AuditMetadata{},
	)
	assert.ErrorIs(t, err, ErrNoOpTransition)
}

func TestClient_ChangeDelinquencyStatus_Recovery(t *testing.T) {
	c := createTestClient(t)

	_, err := c.ChangeDelinquencyStatus(
		DelinquencyCritical, uuid.New(), "Ana Torres",
		"no contact in 180 days", "", AuditMetadata{},
	)
	require.NoError(t, err)

	transition, err := c.ChangeDelinquencyStatus(
		DelinquencyCurrent, uuid.New(), "Ana Torres",
		"full payment received", "", AuditMetadata{},
	)

	require.NoError(t, err)
	assert.Equal(t, DelinquencyCritical, transition.PreviousStatus)
	assert.Equal(t, DelinquencyCurrent, c.DelinquencyStatus)
}

func TestClient_AssignAdvisor(t *testing.T) {
	c := createTestClient(t)
	advisorID := uuid.New()

	require.NoError(t, c.AssignAdvisor(advisorID))

	assert.True(t, c.IsAssignedTo(advisorID))
	assert.False(t, c.IsAssignedTo(uuid.New()))

	events := c.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventClientAssigned, events[0].EventType())

	c.UnassignAdvisor()
	assert.Nil(t, c.AdvisorID)
	assert.False(t, c.IsAssignedTo(advisorID))
}

func TestClient_AssignAdvisor_Empty(t *testing.T) {
	c := createTestClient(t)
	assert.Error(t, c.AssignAdvisor(uuid.Nil))
}

func TestClient_SetMonthlyIncome(t *testing.T) {
	c := createTestClient(t)

	require.NoError(t, c.SetMonthlyIncome(valueobject.NewMoneyPENFromFloat(2500.00)))
	assert.Equal(t, "2500", c.MonthlyIncome.String())

	err := c.SetMonthlyIncome(valueobject.NewMoneyPENFromFloat(-1.00))
	assert.Error(t, err)
}

func TestClient_SuspendAndReinstate(t *testing.T) {
	c := createTestClient(t)

	require.NoError(t, c.Suspend())
	assert.False(t, c.IsActive())
	assert.Error(t, c.Suspend())

	require.NoError(t, c.Reinstate())
	assert.True(t, c.IsActive())
	assert.Error(t, c.Reinstate())
}
