package collection

import (
	"time"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Actor identifies the authenticated user performing an operation. Services
// receive it explicitly so authorization decisions never depend on ambient
// state.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role identity.Role
}

// IsAdvisor reports whether the actor works a client portfolio
func (a Actor) IsAdvisor() bool {
	return a.Role == identity.RoleAdvisor
}

// ChangeStatusRequest carries one delinquency status change
type ChangeStatusRequest struct {
	ClientID  uuid.UUID
	NewStatus collection.DelinquencyStatus
	Reason    string
	Notes     string
	Actor     Actor
	IPAddress string
	UserAgent string
}

// CreateClientRequest carries the fields to register a client
type CreateClientRequest struct {
	Document      string
	Name          string
	Email         string
	Phone         string
	MonthlyIncome decimal.Decimal
}

// UpdateClientRequest carries the mutable client fields
type UpdateClientRequest struct {
	Name          *string
	Email         *string
	Phone         *string
	MonthlyIncome *decimal.Decimal
}

// RegisterDebtRequest carries the fields to register a debt
type RegisterDebtRequest struct {
	ClientID  uuid.UUID
	Principal decimal.Decimal
	DueDate   time.Time
}

// RegisterPaymentRequest carries the fields to report a payment
type RegisterPaymentRequest struct {
	ClientID uuid.UUID
	Amount   decimal.Decimal
	PaidAt   time.Time
	Actor    Actor
}

// ReviewPaymentRequest carries a supervisor's payment review
type ReviewPaymentRequest struct {
	PaymentID   uuid.UUID
	Observation string
	Actor       Actor
}

// AssignAdvisorRequest carries a portfolio assignment
type AssignAdvisorRequest struct {
	ClientID  uuid.UUID
	AdvisorID uuid.UUID
	Actor     Actor
}

// AssignCreditLineRequest carries a credit line approval
type AssignCreditLineRequest struct {
	ClientID uuid.UUID
	Amount   decimal.Decimal
	Actor    Actor
}

// AdjustCreditLineRequest carries a credit line amount change
type AdjustCreditLineRequest struct {
	ClientID uuid.UUID
	Amount   decimal.Decimal
	Actor    Actor
}

// OpenEvaluationRequest opens a risk evaluation for a client
type OpenEvaluationRequest struct {
	ClientID uuid.UUID
	Actor    Actor
}

// ReviewEvaluationRequest carries a supervisor's evaluation decision
type ReviewEvaluationRequest struct {
	EvaluationID uuid.UUID
	Comment      string
	Actor        Actor
}

// DebtStatementLine is one debt with its penalty assessed at a point in time
type DebtStatementLine struct {
	Debt       collection.Debt              `json:"debt"`
	Assessment collection.PenaltyAssessment `json:"assessment"`
}

// DebtStatement is a client's full position assessed at a point in time.
// Penalties are always computed at read time from principal, due date and
// the fixed rate, never served from a stored snapshot.
type DebtStatement struct {
	Client         *collection.Client  `json:"client"`
	AsOf           time.Time           `json:"as_of"`
	Lines          []DebtStatementLine `json:"lines"`
	TotalPrincipal decimal.Decimal     `json:"total_principal"`
	TotalPenalty   decimal.Decimal     `json:"total_penalty"`
	TotalPayable   decimal.Decimal     `json:"total_payable"`
}

// DelinquencyReport aggregates client counts and owed totals across the
// severity scale
type DelinquencyReport struct {
	GeneratedAt       time.Time                                        `json:"generated_at"`
	TotalClients      int64                                            `json:"total_clients"`
	CountByStatus     map[collection.DelinquencyStatus]int64           `json:"count_by_status"`
	TotalOwedByStatus map[collection.DelinquencyStatus]decimal.Decimal `json:"total_owed_by_status"`
	TotalOwed         decimal.Decimal                                  `json:"total_owed"`
	DelinquentRate    float64                                          `json:"delinquent_rate"`
}

// AdvisorReportLine summarizes one advisor's portfolio
type AdvisorReportLine struct {
	AdvisorID     uuid.UUID `json:"advisor_id"`
	AdvisorName   string    `json:"advisor_name"`
	PortfolioSize int64     `json:"portfolio_size"`
}
