package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/audicob/backend/internal/domain/collection"
)

// ClientModel is the persistence model for the Client aggregate.
type ClientModel struct {
	AggregateModel
	Document          string                       `gorm:"type:varchar(20);not null;uniqueIndex:idx_clients_document"`
	Name              string                       `gorm:"type:varchar(200);not null"`
	Email             string                       `gorm:"type:varchar(200)"`
	Phone             string                       `gorm:"type:varchar(50)"`
	MonthlyIncome     decimal.Decimal              `gorm:"type:decimal(18,4);not null;default:0"`
	TotalDebt         decimal.Decimal              `gorm:"type:decimal(18,4);not null;default:0"`
	DelinquencyStatus collection.DelinquencyStatus `gorm:"type:varchar(20);not null;default:'CURRENT';index"`
	Status            collection.ClientStatus      `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	UserID            *uuid.UUID                   `gorm:"type:uuid;index"`
	AdvisorID         *uuid.UUID                   `gorm:"type:uuid;index"`
}

func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client.
func (m *ClientModel) ToDomain() *collection.Client {
	return &collection.Client{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Document:          m.Document,
		Name:              m.Name,
		Email:             m.Email,
		Phone:             m.Phone,
		MonthlyIncome:     m.MonthlyIncome,
		TotalDebt:         m.TotalDebt,
		DelinquencyStatus: m.DelinquencyStatus,
		Status:            m.Status,
		UserID:            m.UserID,
		AdvisorID:         m.AdvisorID,
	}
}

// FromDomain populates the persistence model from a domain Client.
func (m *ClientModel) FromDomain(c *collection.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Document = c.Document
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.MonthlyIncome = c.MonthlyIncome
	m.TotalDebt = c.TotalDebt
	m.DelinquencyStatus = c.DelinquencyStatus
	m.Status = c.Status
	m.UserID = c.UserID
	m.AdvisorID = c.AdvisorID
}

// ClientModelFromDomain creates a new persistence model from a domain Client.
func ClientModelFromDomain(c *collection.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// StatusTransitionModel is the persistence model for the append-only
// delinquency status history.
type StatusTransitionModel struct {
	BaseModel
	ClientID       uuid.UUID                    `gorm:"type:uuid;not null;index:idx_transitions_client"`
	PreviousStatus collection.DelinquencyStatus `gorm:"type:varchar(20);not null"`
	NewStatus      collection.DelinquencyStatus `gorm:"type:varchar(20);not null"`
	ChangedBy      uuid.UUID                    `gorm:"type:uuid;not null;index"`
	ChangedByName  string                       `gorm:"type:varchar(200);not null"`
	Reason         string                       `gorm:"type:text;not null"`
	Notes          string                       `gorm:"type:text"`
	IPAddress      string                       `gorm:"type:varchar(45)"`
	UserAgent      string                       `gorm:"type:varchar(500)"`
	ChangedAt      time.Time                    `gorm:"not null;index"`
}

func (StatusTransitionModel) TableName() string {
	return "status_transitions"
}

func (m *StatusTransitionModel) ToDomain() *collection.StatusTransition {
	return &collection.StatusTransition{
		BaseEntity:     m.BaseModel.ToDomain(),
		ClientID:       m.ClientID,
		PreviousStatus: m.PreviousStatus,
		NewStatus:      m.NewStatus,
		ChangedBy:      m.ChangedBy,
		ChangedByName:  m.ChangedByName,
		Reason:         m.Reason,
		Notes:          m.Notes,
		IPAddress:      m.IPAddress,
		UserAgent:      m.UserAgent,
		ChangedAt:      m.ChangedAt,
	}
}

func (m *StatusTransitionModel) FromDomain(t *collection.StatusTransition) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.ClientID = t.ClientID
	m.PreviousStatus = t.PreviousStatus
	m.NewStatus = t.NewStatus
	m.ChangedBy = t.ChangedBy
	m.ChangedByName = t.ChangedByName
	m.Reason = t.Reason
	m.Notes = t.Notes
	m.IPAddress = t.IPAddress
	m.UserAgent = t.UserAgent
	m.ChangedAt = t.ChangedAt
}

func StatusTransitionModelFromDomain(t *collection.StatusTransition) *StatusTransitionModel {
	m := &StatusTransitionModel{}
	m.FromDomain(t)
	return m
}

// DebtModel is the persistence model for the Debt aggregate. Penalty and
// Total are dashboard snapshots, not authoritative values.
type DebtModel struct {
	AggregateModel
	ClientID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_debts_client"`
	Principal      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DueDate        time.Time       `gorm:"not null;index"`
	Penalty        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastAssessedAt *time.Time
}

func (DebtModel) TableName() string {
	return "debts"
}

func (m *DebtModel) ToDomain() *collection.Debt {
	return &collection.Debt{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ClientID:          m.ClientID,
		Principal:         m.Principal,
		DueDate:           m.DueDate,
		Penalty:           m.Penalty,
		Total:             m.Total,
		LastAssessedAt:    m.LastAssessedAt,
	}
}

func (m *DebtModel) FromDomain(d *collection.Debt) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.ClientID = d.ClientID
	m.Principal = d.Principal
	m.DueDate = d.DueDate
	m.Penalty = d.Penalty
	m.Total = d.Total
	m.LastAssessedAt = d.LastAssessedAt
}

func DebtModelFromDomain(d *collection.Debt) *DebtModel {
	m := &DebtModel{}
	m.FromDomain(d)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate.
type PaymentModel struct {
	AggregateModel
	ClientID     uuid.UUID                `gorm:"type:uuid;not null;index:idx_payments_client"`
	Amount       decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	PaidAt       time.Time                `gorm:"not null;index"`
	Status       collection.PaymentStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Observation  string                   `gorm:"type:text"`
	RegisteredBy uuid.UUID                `gorm:"type:uuid;not null"`
	ReviewedBy   *uuid.UUID               `gorm:"type:uuid"`
	ReviewedAt   *time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}

func (m *PaymentModel) ToDomain() *collection.Payment {
	return &collection.Payment{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ClientID:          m.ClientID,
		Amount:            m.Amount,
		PaidAt:            m.PaidAt,
		Status:            m.Status,
		Observation:       m.Observation,
		RegisteredBy:      m.RegisteredBy,
		ReviewedBy:        m.ReviewedBy,
		ReviewedAt:        m.ReviewedAt,
	}
}

func (m *PaymentModel) FromDomain(p *collection.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ClientID = p.ClientID
	m.Amount = p.Amount
	m.PaidAt = p.PaidAt
	m.Status = p.Status
	m.Observation = p.Observation
	m.RegisteredBy = p.RegisteredBy
	m.ReviewedBy = p.ReviewedBy
	m.ReviewedAt = p.ReviewedAt
}

func PaymentModelFromDomain(p *collection.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// AssignmentModel is the persistence model for portfolio assignments.
type AssignmentModel struct {
	AggregateModel
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_assignments_client"`
	AdvisorID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_assignments_advisor"`
	AdvisorName string     `gorm:"type:varchar(200)"`
	AssignedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedAt  time.Time  `gorm:"not null"`
	Active      bool       `gorm:"not null;default:true;index"`
	ReleasedAt  *time.Time
}

func (AssignmentModel) TableName() string {
	return "assignments"
}

func (m *AssignmentModel) ToDomain() *collection.Assignment {
	return &collection.Assignment{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ClientID:          m.ClientID,
		AdvisorID:         m.AdvisorID,
		AdvisorName:       m.AdvisorName,
		AssignedBy:        m.AssignedBy,
		AssignedAt:        m.AssignedAt,
		Active:            m.Active,
		ReleasedAt:        m.ReleasedAt,
	}
}

func (m *AssignmentModel) FromDomain(a *collection.Assignment) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.ClientID = a.ClientID
	m.AdvisorID = a.AdvisorID
	m.AdvisorName = a.AdvisorName
	m.AssignedBy = a.AssignedBy
	m.AssignedAt = a.AssignedAt
	m.Active = a.Active
	m.ReleasedAt = a.ReleasedAt
}

func AssignmentModelFromDomain(a *collection.Assignment) *AssignmentModel {
	m := &AssignmentModel{}
	m.FromDomain(a)
	return m
}

// CreditLineModel is the persistence model for approved credit lines.
type CreditLineModel struct {
	AggregateModel
	ClientID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_credit_lines_client"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AssignedBy uuid.UUID       `gorm:"type:uuid;not null"`
	AssignedAt time.Time       `gorm:"not null"`
}

func (CreditLineModel) TableName() string {
	return "credit_lines"
}

func (m *CreditLineModel) ToDomain() *collection.CreditLine {
	return &collection.CreditLine{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ClientID:          m.ClientID,
		Amount:            m.Amount,
		AssignedBy:        m.AssignedBy,
		AssignedAt:        m.AssignedAt,
	}
}

func (m *CreditLineModel) FromDomain(cl *collection.CreditLine) {
	m.FromDomainAggregateRoot(cl.BaseAggregateRoot)
	m.ClientID = cl.ClientID
	m.Amount = cl.Amount
	m.AssignedBy = cl.AssignedBy
	m.AssignedAt = cl.AssignedAt
}

func CreditLineModelFromDomain(cl *collection.CreditLine) *CreditLineModel {
	m := &CreditLineModel{}
	m.FromDomain(cl)
	return m
}

// EvaluationModel is the persistence model for client risk evaluations.
type EvaluationModel struct {
	AggregateModel
	ClientID    uuid.UUID                   `gorm:"type:uuid;not null;index:idx_evaluations_client"`
	Status      collection.EvaluationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Comment     string                      `gorm:"type:text"`
	Responsible uuid.UUID                   `gorm:"type:uuid;not null"`
	EvaluatedAt time.Time                   `gorm:"not null"`
}

func (EvaluationModel) TableName() string {
	return "evaluations"
}

func (m *EvaluationModel) ToDomain() *collection.Evaluation {
	return &collection.Evaluation{
		BaseAggregateRoot: m.ToAggregateRoot(),
		ClientID:          m.ClientID,
		Status:            m.Status,
		Comment:           m.Comment,
		Responsible:       m.Responsible,
		EvaluatedAt:       m.EvaluatedAt,
	}
}

func (m *EvaluationModel) FromDomain(e *collection.Evaluation) {
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.ClientID = e.ClientID
	m.Status = e.Status
	m.Comment = e.Comment
	m.Responsible = e.Responsible
	m.EvaluatedAt = e.EvaluatedAt
}

func EvaluationModelFromDomain(e *collection.Evaluation) *EvaluationModel {
	m := &EvaluationModel{}
	m.FromDomain(e)
	return m
}
