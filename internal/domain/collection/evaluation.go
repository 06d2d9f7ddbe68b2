package collection

import (
	"strings"
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EvaluationStatus represents the outcome of a client risk evaluation
type EvaluationStatus string

const (
	EvaluationStatusPending  EvaluationStatus = "PENDING"
	EvaluationStatusFlagged  EvaluationStatus = "FLAGGED"  // Marked as a collection risk
	EvaluationStatusRejected EvaluationStatus = "REJECTED" // Evaluation dismissed
)

// IsValid checks if the evaluation status is valid
func (s EvaluationStatus) IsValid() bool {
	switch s {
	case EvaluationStatusPending, EvaluationStatusFlagged, EvaluationStatusRejected:
		return true
	}
	return false
}

// Evaluation records a supervisor's review of a client's payment behaviour
type Evaluation struct {
	shared.BaseAggregateRoot
	ClientID    uuid.UUID
	Status      EvaluationStatus
	Comment     string
	Responsible uuid.UUID
	EvaluatedAt time.Time
}

// NewEvaluation opens a pending evaluation for a client
func NewEvaluation(clientID, responsible uuid.UUID) (*Evaluation, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if responsible == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Responsible user is required")
	}

	return &Evaluation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		Status:            EvaluationStatusPending,
		Responsible:       responsible,
		EvaluatedAt:       time.Now().UTC(),
	}, nil
}

// Flag marks the client as a collection risk
func (e *Evaluation) Flag(comment string) error {
	return e.close(EvaluationStatusFlagged, comment)
}

// Dismiss closes the evaluation without flagging the client. Rejections
// must carry a comment explaining the decision.
func (e *Evaluation) Dismiss(comment string) error {
	if strings.TrimSpace(comment) == "" {
		return shared.NewDomainError("MISSING_COMMENT", "A comment is required when dismissing an evaluation")
	}
	return e.close(EvaluationStatusRejected, comment)
}

func (e *Evaluation) close(status EvaluationStatus, comment string) error {
	if e.Status != EvaluationStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Evaluation has already been closed")
	}

	e.Status = status
	e.Comment = strings.TrimSpace(comment)
	e.EvaluatedAt = time.Now().UTC()
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}
