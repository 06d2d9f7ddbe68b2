package collection

import (
	"context"
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientFilter defines filtering options for client queries
type ClientFilter struct {
	shared.Filter
	Status            *ClientStatus      // Filter by account status
	DelinquencyStatus *DelinquencyStatus // Filter by delinquency severity
	AdvisorID         *uuid.UUID         // Filter by assigned advisor
	Search            string             // Match against document or name
	MinDebt           *decimal.Decimal   // Filter by minimum total debt
	MaxDebt           *decimal.Decimal   // Filter by maximum total debt
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByDocument finds a client by identity document
	FindByDocument(ctx context.Context, document string) (*Client, error)

	// FindByUserID finds the client linked to a portal user account
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Client, error)

	// FindAll finds clients with filtering and pagination
	FindAll(ctx context.Context, filter ClientFilter) ([]Client, error)

	// FindByAdvisor finds the clients in an advisor's portfolio
	FindByAdvisor(ctx context.Context, advisorID uuid.UUID, filter ClientFilter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, client *Client) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, client *Client) error

	// Delete soft deletes a client
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts clients matching the filter
	Count(ctx context.Context, filter ClientFilter) (int64, error)

	// CountByDelinquencyStatus counts clients per delinquency status
	CountByDelinquencyStatus(ctx context.Context) (map[DelinquencyStatus]int64, error)

	// SumDebtByDelinquencyStatus totals client debt per delinquency status
	SumDebtByDelinquencyStatus(ctx context.Context) (map[DelinquencyStatus]decimal.Decimal, error)

	// ExistsByDocument checks whether a document is already registered
	ExistsByDocument(ctx context.Context, document string) (bool, error)
}

// TransitionFilter defines filtering options for status history queries
type TransitionFilter struct {
	shared.Filter
	ClientID  *uuid.UUID // Filter by client
	ChangedBy *uuid.UUID // Filter by acting user
	FromDate  *time.Time // Filter by change date range start
	ToDate    *time.Time // Filter by change date range end
}

// TransitionRecorder persists a validated status change atomically.
// The history row and the client's current status must commit together
// or not at all.
type TransitionRecorder interface {
	// RecordTransition appends the transition and updates the client in
	// a single transaction, with optimistic locking on the client.
	RecordTransition(ctx context.Context, client *Client, transition *StatusTransition) error
}

// StatusTransitionRepository defines the interface for status history reads
type StatusTransitionRepository interface {
	TransitionRecorder

	// FindByID finds a transition by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StatusTransition, error)

	// FindByClient returns a client's transitions, most recent first
	FindByClient(ctx context.Context, clientID uuid.UUID, filter TransitionFilter) ([]StatusTransition, error)

	// FindAll finds transitions with filtering, most recent first
	FindAll(ctx context.Context, filter TransitionFilter) ([]StatusTransition, error)

	// Count counts transitions matching the filter
	Count(ctx context.Context, filter TransitionFilter) (int64, error)
}

// DebtFilter defines filtering options for debt queries
type DebtFilter struct {
	shared.Filter
	ClientID *uuid.UUID // Filter by client
	Overdue  *bool      // Filter only debts past their due date
	DueFrom  *time.Time // Filter by due date range start
	DueTo    *time.Time // Filter by due date range end
}

// DebtRepository defines the interface for debt persistence
type DebtRepository interface {
	// FindByID finds a debt by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Debt, error)

	// FindByClient finds a client's debts
	FindByClient(ctx context.Context, clientID uuid.UUID, filter DebtFilter) ([]Debt, error)

	// FindAll finds debts with filtering
	FindAll(ctx context.Context, filter DebtFilter) ([]Debt, error)

	// Save creates or updates a debt
	Save(ctx context.Context, debt *Debt) error

	// Delete soft deletes a debt
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts debts matching the filter
	Count(ctx context.Context, filter DebtFilter) (int64, error)

	// SumPrincipalByClient totals the outstanding principal for a client
	SumPrincipalByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	ClientID *uuid.UUID     // Filter by client
	Status   *PaymentStatus // Filter by review status
	FromDate *time.Time     // Filter by payment date range start
	ToDate   *time.Time     // Filter by payment date range end
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByClient finds a client's payments
	FindByClient(ctx context.Context, clientID uuid.UUID, filter PaymentFilter) ([]Payment, error)

	// FindAll finds payments with filtering
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, payment *Payment) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// SumValidatedByClient totals a client's validated payments
	SumValidatedByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)
}

// AssignmentFilter defines filtering options for assignment queries
type AssignmentFilter struct {
	shared.Filter
	ClientID  *uuid.UUID // Filter by client
	AdvisorID *uuid.UUID // Filter by advisor
	Active    *bool      // Filter by active flag
}

// AssignmentRepository defines the interface for portfolio assignment persistence
type AssignmentRepository interface {
	// FindByID finds an assignment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Assignment, error)

	// FindActiveByClient finds the client's current active assignment
	FindActiveByClient(ctx context.Context, clientID uuid.UUID) (*Assignment, error)

	// FindByAdvisor finds an advisor's assignments
	FindByAdvisor(ctx context.Context, advisorID uuid.UUID, filter AssignmentFilter) ([]Assignment, error)

	// FindAll finds assignments with filtering
	FindAll(ctx context.Context, filter AssignmentFilter) ([]Assignment, error)

	// Save creates or updates an assignment
	Save(ctx context.Context, assignment *Assignment) error

	// RecordAssignment commits assignment rows and the client's advisor
	// pointer in a single transaction, with optimistic locking on the
	// client. A released row and its replacement go in together or not
	// at all.
	RecordAssignment(ctx context.Context, client *Client, assignments ...*Assignment) error

	// Count counts assignments matching the filter
	Count(ctx context.Context, filter AssignmentFilter) (int64, error)

	// CountActiveByAdvisor counts an advisor's active portfolio size
	CountActiveByAdvisor(ctx context.Context, advisorID uuid.UUID) (int64, error)
}

// CreditLineRepository defines the interface for credit line persistence
type CreditLineRepository interface {
	// FindByID finds a credit line by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CreditLine, error)

	// FindByClient finds the credit line assigned to a client
	FindByClient(ctx context.Context, clientID uuid.UUID) (*CreditLine, error)

	// Save creates or updates a credit line
	Save(ctx context.Context, line *CreditLine) error

	// Delete soft deletes a credit line
	Delete(ctx context.Context, id uuid.UUID) error
}

// EvaluationFilter defines filtering options for evaluation queries
type EvaluationFilter struct {
	shared.Filter
	ClientID *uuid.UUID        // Filter by client
	Status   *EvaluationStatus // Filter by review status
}

// EvaluationRepository defines the interface for client evaluation persistence
type EvaluationRepository interface {
	// FindByID finds an evaluation by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Evaluation, error)

	// FindByClient finds a client's evaluations
	FindByClient(ctx context.Context, clientID uuid.UUID, filter EvaluationFilter) ([]Evaluation, error)

	// FindAll finds evaluations with filtering
	FindAll(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error)

	// Save creates or updates an evaluation
	Save(ctx context.Context, evaluation *Evaluation) error

	// Count counts evaluations matching the filter
	Count(ctx context.Context, filter EvaluationFilter) (int64, error)
}
