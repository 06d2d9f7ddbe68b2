package collection

import (
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DelinquencyStatus classifies how far behind a client is on payments.
// The scale is ordered by severity but transitions are not forced to be
// monotonic: a payment can move a client from CRITICAL back to CURRENT.
type DelinquencyStatus string

const (
	DelinquencyCurrent  DelinquencyStatus = "CURRENT"  // Up to date
	DelinquencyEarly    DelinquencyStatus = "EARLY"    // Early-stage arrears
	DelinquencyModerate DelinquencyStatus = "MODERATE" // Moderate arrears
	DelinquencySevere   DelinquencyStatus = "SEVERE"   // Severe arrears
	DelinquencyCritical DelinquencyStatus = "CRITICAL" // Write-off candidate
)

// AllDelinquencyStatuses lists the fixed severity scale in ascending order
var AllDelinquencyStatuses = []DelinquencyStatus{
	DelinquencyCurrent,
	DelinquencyEarly,
	DelinquencyModerate,
	DelinquencySevere,
	DelinquencyCritical,
}

// IsValid checks if the status belongs to the fixed severity scale
func (s DelinquencyStatus) IsValid() bool {
	switch s {
	case DelinquencyCurrent, DelinquencyEarly, DelinquencyModerate,
		DelinquencySevere, DelinquencyCritical:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s DelinquencyStatus) String() string {
	return string(s)
}

// Severity returns the position of the status on the scale (0 = current).
// Returns -1 for values outside the scale.
func (s DelinquencyStatus) Severity() int {
	for i, status := range AllDelinquencyStatuses {
		if s == status {
			return i
		}
	}
	return -1
}

// IsWorseThan reports whether this status is more severe than the other
func (s DelinquencyStatus) IsWorseThan(other DelinquencyStatus) bool {
	return s.Severity() > other.Severity()
}

// Delinquency transition errors. All of them are recoverable and should be
// surfaced to the caller as form-level validation feedback.
var (
	ErrInvalidStatus  = shared.NewDomainError("INVALID_STATE", "Delinquency status is not part of the severity scale")
	ErrNoOpTransition = shared.NewDomainError("NO_OP_TRANSITION", "New status must differ from the current status")
	ErrMissingReason  = shared.NewDomainError("MISSING_REASON", "A reason is required for every status change")
	ErrNotInPortfolio = shared.NewDomainError("UNAUTHORIZED", "Client is not in the acting user's portfolio")
)

// AuditMetadata captures request-level information stored with each
// transition record for traceability.
type AuditMetadata struct {
	IPAddress string
	UserAgent string
}

// StatusTransition is an immutable audit record of one delinquency status
// change. Records are append-only: no operation updates or deletes them.
type StatusTransition struct {
	shared.BaseEntity
	ClientID       uuid.UUID
	PreviousStatus DelinquencyStatus
	NewStatus      DelinquencyStatus
	ChangedBy      uuid.UUID
	ChangedByName  string
	Reason         string
	Notes          string
	IPAddress      string
	UserAgent      string
	ChangedAt      time.Time
}

// newStatusTransition builds the audit record for a validated status change.
// Validation happens in Client.ChangeDelinquencyStatus; this constructor
// only assembles the record.
func newStatusTransition(
	clientID uuid.UUID,
	previous, next DelinquencyStatus,
	changedBy uuid.UUID,
	changedByName string,
	reason, notes string,
	audit AuditMetadata,
) *StatusTransition {
	return &StatusTransition{
		BaseEntity:     shared.NewBaseEntity(),
		ClientID:       clientID,
		PreviousStatus: previous,
		NewStatus:      next,
		ChangedBy:      changedBy,
		ChangedByName:  changedByName,
		Reason:         reason,
		Notes:          notes,
		IPAddress:      audit.IPAddress,
		UserAgent:      audit.UserAgent,
		ChangedAt:      time.Now().UTC(),
	}
}

// Describe returns a human-readable summary of the transition
func (t *StatusTransition) Describe() string {
	return "Status changed from " + string(t.PreviousStatus) + " to " + string(t.NewStatus) + " by " + t.ChangedByName
}
