package collection

import (
	"testing"
	"time"

	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestDebt(t *testing.T, principal float64, dueDate time.Time) *Debt {
	d, err := NewDebt(uuid.New(), valueobject.NewMoneyPENFromFloat(principal), dueDate)
	require.NoError(t, err)
	return d
}

// ============================================
// ComputePenalty Tests
// ============================================

func TestComputePenalty_ThirtyDaysOverdue(t *testing.T) {
	principal := decimal.NewFromFloat(1000.00)
	dueDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := dueDate.AddDate(0, 0, 30)

	result := ComputePenalty(principal, dueDate, asOf, DefaultMonthlyPenaltyRate)

	assert.Equal(t, 30, result.DaysOverdue)
	assert.True(t, result.Penalty.Equal(decimal.NewFromFloat(15.00)),
		"expected 15.00, got %s", result.Penalty)
	assert.True(t, result.Total.Equal(decimal.NewFromFloat(1015.00)),
		"expected 1015.00, got %s", result.Total)
}

func TestComputePenalty_NotYetDue(t *testing.T) {
	principal := decimal.NewFromFloat(1000.00)
	dueDate := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		asOf time.Time
	}{
		{"day before due", dueDate.AddDate(0, 0, -1)},
		{"month before due", dueDate.AddDate(0, -1, 0)},
		{"exactly on due date", dueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputePenalty(principal, dueDate, tt.asOf, DefaultMonthlyPenaltyRate)

			assert.Equal(t, 0, result.DaysOverdue)
			assert.True(t, result.Penalty.IsZero())
			assert.True(t, result.Total.Equal(principal))
		})
	}
}

func TestComputePenalty_PartialDayDoesNotCount(t *testing.T) {
	principal := decimal.NewFromFloat(500.00)
	dueDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	asOf := dueDate.Add(23 * time.Hour)

	result := ComputePenalty(principal, dueDate, asOf, DefaultMonthlyPenaltyRate)

	assert.Equal(t, 0, result.DaysOverdue)
	assert.True(t, result.Penalty.IsZero())
}

func TestComputePenalty_Deterministic(t *testing.T) {
	principal := decimal.NewFromFloat(2500.50)
	dueDate := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	asOf := dueDate.AddDate(0, 0, 45)

	first := ComputePenalty(principal, dueDate, asOf, DefaultMonthlyPenaltyRate)
	second := ComputePenalty(principal, dueDate, asOf, DefaultMonthlyPenaltyRate)

	assert.Equal(t, first.DaysOverdue, second.DaysOverdue)
	assert.True(t, first.Penalty.Equal(second.Penalty))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestComputePenalty_GrowsWithDays(t *testing.T) {
	principal := decimal.NewFromFloat(1000.00)
	dueDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	previous := decimal.Zero
	for days := 1; days <= 90; days += 7 {
		result := ComputePenalty(principal, dueDate, dueDate.AddDate(0, 0, days), DefaultMonthlyPenaltyRate)

		assert.True(t, result.Penalty.GreaterThan(previous),
			"penalty at %d days should exceed penalty at fewer days", days)
		previous = result.Penalty
	}
}

func TestComputePenalty_TotalIsPrincipalPlusPenalty(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		days      int
	}{
		{"small debt short overdue", 150.00, 3},
		{"large debt long overdue", 85000.00, 365},
		{"one day overdue", 1000.00, 1},
	}

	dueDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := decimal.NewFromFloat(tt.principal)
			result := ComputePenalty(principal, dueDate, dueDate.AddDate(0, 0, tt.days), DefaultMonthlyPenaltyRate)

			assert.True(t, result.Total.Equal(principal.Add(result.Penalty)))
		})
	}
}

func TestComputePenalty_DailyRate(t *testing.T) {
	result := ComputePenalty(decimal.NewFromFloat(1000.00),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		DefaultMonthlyPenaltyRate)

	expected := decimal.NewFromFloat(0.015).Div(decimal.NewFromInt(30))
	assert.True(t, result.DailyRate.Equal(expected))
}

// ============================================
// Debt Tests
// ============================================

func TestNewDebt(t *testing.T) {
	clientID := uuid.New()
	dueDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	d, err := NewDebt(clientID, valueobject.NewMoneyPENFromFloat(1200.00), dueDate)

	require.NoError(t, err)
	assert.Equal(t, clientID, d.ClientID)
	assert.True(t, d.Principal.Equal(decimal.NewFromFloat(1200.00)))
	assert.True(t, d.Penalty.IsZero())
	assert.True(t, d.Total.Equal(d.Principal))
	assert.Nil(t, d.LastAssessedAt)

	events := d.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventDebtRegistered, events[0].EventType())
}

func TestNewDebt_Validation(t *testing.T) {
	dueDate := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty client", func(t *testing.T) {
		_, err := NewDebt(uuid.Nil, valueobject.NewMoneyPENFromFloat(100.00), dueDate)
		assert.Error(t, err)
	})

	t.Run("zero principal", func(t *testing.T) {
		_, err := NewDebt(uuid.New(), valueobject.ZeroPEN(), dueDate)
		assert.Error(t, err)
	})

	t.Run("negative principal", func(t *testing.T) {
		_, err := NewDebt(uuid.New(), valueobject.NewMoneyPENFromFloat(-50.00), dueDate)
		assert.Error(t, err)
	})

	t.Run("zero due date", func(t *testing.T) {
		_, err := NewDebt(uuid.New(), valueobject.NewMoneyPENFromFloat(100.00), time.Time{})
		assert.Error(t, err)
	})
}

func TestDebt_Assess_DoesNotMutate(t *testing.T) {
	dueDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := createTestDebt(t, 1000.00, dueDate)

	assessment := d.Assess(dueDate.AddDate(0, 0, 30))

	assert.True(t, assessment.Penalty.Equal(decimal.NewFromFloat(15.00)))
	assert.True(t, d.Penalty.IsZero(), "Assess must not touch the snapshot")
	assert.Nil(t, d.LastAssessedAt)
}

func TestDebt_RefreshAssessment(t *testing.T) {
	dueDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := createTestDebt(t, 1000.00, dueDate)
	asOf := dueDate.AddDate(0, 0, 30)

	assessment := d.RefreshAssessment(asOf)

	assert.True(t, d.Penalty.Equal(assessment.Penalty))
	assert.True(t, d.Total.Equal(decimal.NewFromFloat(1015.00)))
	require.NotNil(t, d.LastAssessedAt)
	assert.Equal(t, asOf, *d.LastAssessedAt)
}

func TestDebt_IsOverdue(t *testing.T) {
	dueDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	d := createTestDebt(t, 100.00, dueDate)

	assert.False(t, d.IsOverdue(dueDate.AddDate(0, 0, -1)))
	assert.False(t, d.IsOverdue(dueDate))
	assert.True(t, d.IsOverdue(dueDate.Add(time.Hour)))
}

func TestDebt_DaysOverdue(t *testing.T) {
	dueDate := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	d := createTestDebt(t, 100.00, dueDate)

	assert.Equal(t, 0, d.DaysOverdue(dueDate.AddDate(0, 0, -5)))
	assert.Equal(t, 0, d.DaysOverdue(dueDate))
	assert.Equal(t, 7, d.DaysOverdue(dueDate.AddDate(0, 0, 7)))
}
