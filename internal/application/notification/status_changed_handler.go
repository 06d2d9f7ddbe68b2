// Package notification turns domain events into in-app notifications.
// Dispatch is decoupled from the operations that trigger it: handlers run
// off the event bus and their failures are logged, never propagated back
// to the triggering request.
package notification

import (
	"context"
	"fmt"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/domain/notification"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusChangedHandler notifies supervisors and the assigned advisor when a
// client's delinquency status changes.
type StatusChangedHandler struct {
	notificationRepo notification.Repository
	clientRepo       collection.ClientRepository
	userRepo         identity.UserRepository
	logger           *zap.Logger
}

// NewStatusChangedHandler creates a new handler for delinquency status changes
func NewStatusChangedHandler(
	notificationRepo notification.Repository,
	clientRepo collection.ClientRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *StatusChangedHandler {
	return &StatusChangedHandler{
		notificationRepo: notificationRepo,
		clientRepo:       clientRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *StatusChangedHandler) EventTypes() []string {
	return []string{collection.EventDelinquencyStatusChanged}
}

// Handle creates one notification per recipient for a status change
func (h *StatusChangedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*collection.DelinquencyStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			collection.EventDelinquencyStatusChanged, event.EventType())
	}

	title := fmt.Sprintf("Delinquency status: %s", changed.ClientName)
	body := fmt.Sprintf("Status changed from %s to %s. Reason: %s",
		changed.PreviousStatus, changed.NewStatus, changed.Reason)
	important := changed.NewStatus.IsWorseThan(changed.PreviousStatus)

	recipients, err := h.recipients(ctx, changed)
	if err != nil {
		return err
	}

	for _, recipientID := range recipients {
		// The actor already knows what they did
		if recipientID == changed.ChangedBy {
			continue
		}

		n, err := notification.New(recipientID, notification.TypeStatusChanged, title, body)
		if err != nil {
			h.logger.Error("failed to build notification",
				zap.String("recipient_id", recipientID.String()), zap.Error(err))
			continue
		}
		n.AboutClient(changed.ClientID)
		if important {
			n.MarkImportant()
		}

		if err := h.notificationRepo.Save(ctx, n); err != nil {
			h.logger.Error("failed to save notification",
				zap.String("recipient_id", recipientID.String()), zap.Error(err))
		}
	}

	return nil
}

// recipients resolves who should hear about the change: every active
// supervisor plus the client's assigned advisor.
func (h *StatusChangedHandler) recipients(ctx context.Context, changed *collection.DelinquencyStatusChangedEvent) ([]uuid.UUID, error) {
	supervisors, err := h.userRepo.FindByRole(ctx, identity.RoleSupervisor)
	if err != nil {
		return nil, fmt.Errorf("failed to load supervisors: %w", err)
	}

	seen := make(map[uuid.UUID]bool, len(supervisors)+1)
	recipients := make([]uuid.UUID, 0, len(supervisors)+1)
	for i := range supervisors {
		if !supervisors[i].IsActive() {
			continue
		}
		if !seen[supervisors[i].ID] {
			seen[supervisors[i].ID] = true
			recipients = append(recipients, supervisors[i].ID)
		}
	}

	client, err := h.clientRepo.FindByID(ctx, changed.ClientID)
	if err != nil {
		h.logger.Warn("failed to load client for notification routing",
			zap.String("client_id", changed.ClientID.String()), zap.Error(err))
		return recipients, nil
	}
	if client != nil && client.AdvisorID != nil && !seen[*client.AdvisorID] {
		recipients = append(recipients, *client.AdvisorID)
	}

	return recipients, nil
}
