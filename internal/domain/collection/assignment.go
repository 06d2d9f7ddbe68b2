package collection

import (
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Assignment links a client to a collection advisor's portfolio. One client
// has at most one active assignment; reassigning deactivates the previous
// record instead of overwriting it so the history remains visible.
type Assignment struct {
	shared.BaseAggregateRoot
	ClientID    uuid.UUID
	AdvisorID   uuid.UUID
	AdvisorName string
	AssignedBy  uuid.UUID
	AssignedAt  time.Time
	Active      bool
	ReleasedAt  *time.Time
}

// NewAssignment creates an active portfolio assignment
func NewAssignment(clientID, advisorID uuid.UUID, advisorName string, assignedBy uuid.UUID) (*Assignment, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if advisorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADVISOR", "Advisor ID cannot be empty")
	}
	if assignedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Assigning user is required")
	}

	a := &Assignment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		AdvisorID:         advisorID,
		AdvisorName:       advisorName,
		AssignedBy:        assignedBy,
		AssignedAt:        time.Now().UTC(),
		Active:            true,
	}

	return a, nil
}

// Release deactivates the assignment when the client is reassigned or
// removed from collection.
func (a *Assignment) Release() error {
	if !a.Active {
		return shared.NewDomainError("INVALID_STATE", "Assignment is already released")
	}

	now := time.Now().UTC()
	a.Active = false
	a.ReleasedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()

	return nil
}
