// Package notification holds in-app notifications delivered to users.
// Notifications are best-effort: producers fire them after the fact and
// never depend on delivery succeeding.
package notification

import (
	"context"
	"strings"
	"time"

	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type classifies what triggered a notification
type Type string

const (
	TypeStatusChanged     Type = "STATUS_CHANGED"     // Delinquency status transition
	TypeNewAssignment     Type = "NEW_ASSIGNMENT"     // Client added to a portfolio
	TypePaymentRegistered Type = "PAYMENT_REGISTERED" // Payment awaiting review
	TypePaymentReviewed   Type = "PAYMENT_REVIEWED"   // Payment validated or rejected
)

// IsValid checks if the notification type is known
func (t Type) IsValid() bool {
	switch t {
	case TypeStatusChanged, TypeNewAssignment, TypePaymentRegistered, TypePaymentReviewed:
		return true
	}
	return false
}

// Notification is an in-app message addressed to one user
type Notification struct {
	shared.BaseEntity
	RecipientID uuid.UUID
	Type        Type
	Title       string
	Body        string
	ClientID    *uuid.UUID // Optional link to the client the message is about
	Important   bool
	Read        bool
	ReadAt      *time.Time
}

// New creates a notification for the given recipient
func New(recipientID uuid.UUID, notifType Type, title, body string) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient ID cannot be empty")
	}
	if !notifType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Unknown notification type")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		RecipientID: recipientID,
		Type:        notifType,
		Title:       strings.TrimSpace(title),
		Body:        strings.TrimSpace(body),
	}, nil
}

// AboutClient links the notification to a client record
func (n *Notification) AboutClient(clientID uuid.UUID) *Notification {
	n.ClientID = &clientID
	return n
}

// MarkImportant flags the notification for prominent display
func (n *Notification) MarkImportant() *Notification {
	n.Important = true
	return n
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.Touch()
}

// Filter defines filtering options for notification queries
type Filter struct {
	shared.Filter
	RecipientID *uuid.UUID // Filter by addressee
	Type        *Type      // Filter by trigger
	Unread      *bool      // Filter by read flag
}

// Repository defines the interface for notification persistence
type Repository interface {
	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByRecipient returns a user's notifications, most recent first
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter Filter) ([]Notification, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error

	// MarkAllRead marks all of a user's notifications as read
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error

	// CountUnread counts a user's unread notifications
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)
}
