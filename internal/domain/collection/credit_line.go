package collection

import (
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinCreditLineAmount is the smallest amount a supervisor may approve,
// in PEN.
var MinCreditLineAmount = decimal.NewFromInt(180)

// CreditLine is the credit amount a supervisor has approved for a client.
// A client has at most one credit line; adjustments overwrite the amount
// and record who made the change.
type CreditLine struct {
	shared.BaseAggregateRoot
	ClientID   uuid.UUID
	Amount     decimal.Decimal
	AssignedBy uuid.UUID
	AssignedAt time.Time
}

// NewCreditLine approves a credit line for a client
func NewCreditLine(clientID uuid.UUID, amount valueobject.Money, assignedBy uuid.UUID) (*CreditLine, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if amount.Amount().LessThan(MinCreditLineAmount) {
		return nil, shared.NewDomainError("AMOUNT_BELOW_MINIMUM", "Credit line amount must be at least 180")
	}
	if assignedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Assigning user is required")
	}

	return &CreditLine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Amount:            amount.Amount(),
		AssignedBy:        assignedBy,
		AssignedAt:        time.Now().UTC(),
	}, nil
}

// Adjust replaces the approved amount
func (cl *CreditLine) Adjust(amount valueobject.Money, adjustedBy uuid.UUID) error {
	if amount.Amount().LessThan(MinCreditLineAmount) {
		return shared.NewDomainError("AMOUNT_BELOW_MINIMUM", "Credit line amount must be at least 180")
	}
	if adjustedBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Adjusting user is required")
	}

	cl.Amount = amount.Amount()
	cl.AssignedBy = adjustedBy
	cl.AssignedAt = time.Now().UTC()
	cl.UpdatedAt = time.Now()
	cl.IncrementVersion()

	return nil
}

// AmountMoney returns the approved amount as Money
func (cl *CreditLine) AmountMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(cl.Amount)
}
