package collection

import (
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMonthlyPenaltyRate is the fixed surcharge rate applied to overdue
// principal: 1.5% per month, pro-rated daily over a 30-day month. The rate
// is a system constant, not configurable per debt.
var DefaultMonthlyPenaltyRate = decimal.NewFromFloat(0.015)

// daysPerMonth is the fixed month length used to pro-rate the monthly
// penalty rate. Deliberately not calendar-accurate.
const daysPerMonth = 30

// PenaltyAssessment is the result of computing the penalty for an overdue
// debt at a point in time.
type PenaltyAssessment struct {
	DaysOverdue int             `json:"days_overdue"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	Penalty     decimal.Decimal `json:"penalty"`
	Total       decimal.Decimal `json:"total"`
}

// ComputePenalty calculates the overdue surcharge for a debt. It is a pure
// function of its inputs: the same arguments always produce the same
// assessment.
//
// daysOverdue is the whole number of days between dueDate and asOf, clamped
// at zero, so a debt that is not yet due carries no penalty. The penalty is
// principal * (monthlyRate / 30) * daysOverdue, and the total payable is
// always principal + penalty.
func ComputePenalty(principal decimal.Decimal, dueDate, asOf time.Time, monthlyRate decimal.Decimal) PenaltyAssessment {
	dailyRate := monthlyRate.Div(decimal.NewFromInt(daysPerMonth))

	days := int(asOf.Sub(dueDate).Hours() / 24)
	if days < 0 {
		days = 0
	}

	penalty := decimal.Zero
	if days > 0 {
		penalty = principal.Mul(dailyRate).Mul(decimal.NewFromInt(int64(days)))
	}

	return PenaltyAssessment{
		DaysOverdue: days,
		DailyRate:   dailyRate,
		Penalty:     penalty,
		Total:       principal.Add(penalty),
	}
}

// Debt is the aggregate root for a client's outstanding obligation. Each
// client has at most one debt. The penalty fields are a cached snapshot of
// the last assessment; the authoritative value is always recomputed from
// principal, due date and the fixed rate via Assess.
type Debt struct {
	shared.BaseAggregateRoot
	ClientID       uuid.UUID
	Principal      decimal.Decimal
	DueDate        time.Time
	Penalty        decimal.Decimal // Snapshot of last assessment
	Total          decimal.Decimal // Snapshot: principal + penalty
	LastAssessedAt *time.Time      // When the snapshot was computed
}

// NewDebt registers a debt for a client
func NewDebt(clientID uuid.UUID, principal valueobject.Money, dueDate time.Time) (*Debt, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if principal.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Debt principal must be greater than zero")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}

	d := &Debt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Principal:         principal.Amount(),
		DueDate:           dueDate,
		Penalty:           decimal.Zero,
		Total:             principal.Amount(),
	}

	d.AddDomainEvent(NewDebtRegisteredEvent(d))

	return d, nil
}

// Assess computes the penalty for this debt as of the given time without
// mutating the aggregate.
func (d *Debt) Assess(asOf time.Time) PenaltyAssessment {
	return ComputePenalty(d.Principal, d.DueDate, asOf, DefaultMonthlyPenaltyRate)
}

// RefreshAssessment recomputes the penalty snapshot stored on the debt.
// The snapshot exists only for dashboards and exports; reads that need the
// exact value call Assess directly.
func (d *Debt) RefreshAssessment(asOf time.Time) PenaltyAssessment {
	assessment := d.Assess(asOf)

	d.Penalty = assessment.Penalty
	d.Total = assessment.Total
	d.LastAssessedAt = &asOf
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return assessment
}

// IsOverdue reports whether the debt is past its due date as of the given time
func (d *Debt) IsOverdue(asOf time.Time) bool {
	return asOf.After(d.DueDate)
}

// DaysOverdue returns whole days past due as of the given time, zero if not overdue
func (d *Debt) DaysOverdue(asOf time.Time) int {
	days := int(asOf.Sub(d.DueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// PrincipalMoney returns the principal as Money
func (d *Debt) PrincipalMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(d.Principal)
}
