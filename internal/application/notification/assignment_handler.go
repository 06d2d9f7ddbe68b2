package notification

import (
	"context"
	"fmt"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/notification"
	"github.com/audicob/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AssignmentHandler notifies an advisor when a client joins their portfolio
type AssignmentHandler struct {
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewAssignmentHandler creates a new handler for portfolio assignments
func NewAssignmentHandler(notificationRepo notification.Repository, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *AssignmentHandler) EventTypes() []string {
	return []string{collection.EventClientAssigned}
}

// Handle notifies the advisor about the new portfolio entry
func (h *AssignmentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	assigned, ok := event.(*collection.ClientAssignedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			collection.EventClientAssigned, event.EventType())
	}

	n, err := notification.New(
		assigned.AdvisorID,
		notification.TypeNewAssignment,
		"New client in your portfolio",
		fmt.Sprintf("%s has been assigned to you.", assigned.ClientName),
	)
	if err != nil {
		return err
	}
	n.AboutClient(assigned.ClientID)

	if err := h.notificationRepo.Save(ctx, n); err != nil {
		h.logger.Error("failed to save assignment notification",
			zap.String("advisor_id", assigned.AdvisorID.String()), zap.Error(err))
		return err
	}

	return nil
}
