package collection

import (
	"strings"
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientStatus represents the lifecycle status of a client record
type ClientStatus string

const (
	ClientStatusActive    ClientStatus = "ACTIVE"
	ClientStatusSuspended ClientStatus = "SUSPENDED" // Removed from active collection
	ClientStatusArchived  ClientStatus = "ARCHIVED"
)

// IsValid checks if the client status is valid
func (s ClientStatus) IsValid() bool {
	switch s {
	case ClientStatusActive, ClientStatusSuspended, ClientStatusArchived:
		return true
	}
	return false
}

// Client is the aggregate root for a debtor under management.
// It carries the current delinquency classification; every change of that
// classification goes through ChangeDelinquencyStatus so a transition
// record is always produced alongside the update.
type Client struct {
	shared.BaseAggregateRoot
	Document          string // National identity document (DNI/RUC)
	Name              string
	Email             string
	Phone             string
	MonthlyIncome     decimal.Decimal
	TotalDebt         decimal.Decimal
	DelinquencyStatus DelinquencyStatus
	Status            ClientStatus
	UserID            *uuid.UUID // Optional link to a login account
	AdvisorID         *uuid.UUID // Collection advisor currently assigned
}

// NewClient creates a new client with the given identity document and name.
// New clients start up to date (CURRENT) and active.
func NewClient(document, name string) (*Client, error) {
	document = strings.TrimSpace(document)
	name = strings.TrimSpace(name)

	if document == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Identity document cannot be empty")
	}
	if len(document) > 20 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Identity document cannot exceed 20 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}

	c := &Client{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Document:          document,
		Name:              name,
		MonthlyIncome:     decimal.Zero,
		TotalDebt:         decimal.Zero,
		DelinquencyStatus: DelinquencyCurrent,
		Status:            ClientStatusActive,
	}

	c.AddDomainEvent(NewClientRegisteredEvent(c))

	return c, nil
}

// ChangeDelinquencyStatus validates and applies a delinquency status change,
// returning the audit record that must be persisted atomically with the
// client. Checks run in a fixed order: scale membership, no-op transition,
// reason presence. Portfolio authorization is the caller's concern because
// it requires the acting user's assignments.
func (c *Client) ChangeDelinquencyStatus(
	newStatus DelinquencyStatus,
	changedBy uuid.UUID,
	changedByName string,
	reason, notes string,
	audit AuditMetadata,
) (*StatusTransition, error) {
	if !newStatus.IsValid() {
		return nil, ErrInvalidStatus
	}
	if newStatus == c.DelinquencyStatus {
		return nil, ErrNoOpTransition
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	transition := newStatusTransition(
		c.ID,
		c.DelinquencyStatus,
		newStatus,
		changedBy,
		changedByName,
		strings.TrimSpace(reason),
		notes,
		audit,
	)

	previous := c.DelinquencyStatus
	c.DelinquencyStatus = newStatus
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewDelinquencyStatusChangedEvent(c, previous, transition))

	return transition, nil
}

// SetContact updates the client's contact information
func (c *Client) SetContact(email, phone string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	c.Email = strings.TrimSpace(email)
	c.Phone = strings.TrimSpace(phone)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetMonthlyIncome updates the declared monthly income
func (c *Client) SetMonthlyIncome(income valueobject.Money) error {
	if income.IsNegative() {
		return shared.NewDomainError("INVALID_INCOME", "Monthly income cannot be negative")
	}

	c.MonthlyIncome = income.Amount()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetTotalDebt replaces the aggregated debt snapshot shown on dashboards
func (c *Client) SetTotalDebt(total decimal.Decimal) {
	c.TotalDebt = total
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// AssignAdvisor links the client to a collection advisor's portfolio
func (c *Client) AssignAdvisor(advisorID uuid.UUID) error {
	if advisorID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADVISOR", "Advisor ID cannot be empty")
	}

	c.AdvisorID = &advisorID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewClientAssignedEvent(c, advisorID))

	return nil
}

// UnassignAdvisor removes the client from its advisor's portfolio
func (c *Client) UnassignAdvisor() {
	c.AdvisorID = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// LinkUser connects the client record to a login account
func (c *Client) LinkUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	c.UserID = &userID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Suspend removes the client from active collection
func (c *Client) Suspend() error {
	if c.Status == ClientStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Client is already suspended")
	}

	c.Status = ClientStatusSuspended
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Reinstate returns a suspended client to active collection
func (c *Client) Reinstate() error {
	if c.Status != ClientStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Only suspended clients can be reinstated")
	}

	c.Status = ClientStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive reports whether the client is under active collection
func (c *Client) IsActive() bool {
	return c.Status == ClientStatusActive
}

// IsAssignedTo reports whether the client belongs to the given advisor's portfolio
func (c *Client) IsAssignedTo(advisorID uuid.UUID) bool {
	return c.AdvisorID != nil && *c.AdvisorID == advisorID
}

// MonthlyIncomeMoney returns the monthly income as Money
func (c *Client) MonthlyIncomeMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(c.MonthlyIncome)
}

// TotalDebtMoney returns the total debt snapshot as Money
func (c *Client) TotalDebtMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(c.TotalDebt)
}
