package collection

import (
	"context"
	"fmt"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DelinquencyService coordinates delinquency status changes and their audit
// trail. A status change either fully happens (history row plus client
// update in one transaction) or not at all.
type DelinquencyService struct {
	clientRepo     collection.ClientRepository
	transitionRepo collection.StatusTransitionRepository
	publisher      shared.EventPublisher
	logger         *zap.Logger
}

// NewDelinquencyService creates a new DelinquencyService
func NewDelinquencyService(
	clientRepo collection.ClientRepository,
	transitionRepo collection.StatusTransitionRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *DelinquencyService {
	return &DelinquencyService{
		clientRepo:     clientRepo,
		transitionRepo: transitionRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// ChangeStatus validates and applies a delinquency status change.
//
// Validation order is fixed: the new status must belong to the severity
// scale, must differ from the current one, the reason must be non-empty,
// and advisors may only touch clients in their own portfolio. The first
// failing check is the one reported.
func (s *DelinquencyService) ChangeStatus(ctx context.Context, req ChangeStatusRequest) (*collection.StatusTransition, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "delinquency", "change_status")
	defer span.End()

	telemetry.SetAttributes(span,
		"client_id", req.ClientID.String(),
		"new_status", string(req.NewStatus),
		"actor_id", req.Actor.ID.String(),
	)

	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		telemetry.RecordError(span, shared.ErrNotFound)
		return nil, shared.ErrNotFound
	}

	transition, err := client.ChangeDelinquencyStatus(
		req.NewStatus,
		req.Actor.ID,
		req.Actor.Name,
		req.Reason,
		req.Notes,
		collection.AuditMetadata{IPAddress: req.IPAddress, UserAgent: req.UserAgent},
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	// Portfolio authorization comes after the shape checks so a request
	// that is both malformed and unauthorized reports the malformation.
	if req.Actor.IsAdvisor() && !client.IsAssignedTo(req.Actor.ID) {
		telemetry.RecordError(span, collection.ErrNotInPortfolio)
		return nil, collection.ErrNotInPortfolio
	}

	if err := s.transitionRepo.RecordTransition(ctx, client, transition); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to record transition: %w", err)
	}

	s.publishEvents(ctx, client)

	s.logger.Info("Delinquency status changed",
		zap.String("client_id", client.ID.String()),
		zap.String("previous_status", string(transition.PreviousStatus)),
		zap.String("new_status", string(transition.NewStatus)),
		zap.String("changed_by", req.Actor.ID.String()),
	)

	return transition, nil
}

// GetHistory returns a client's status change history, most recent first
func (s *DelinquencyService) GetHistory(ctx context.Context, clientID uuid.UUID, filter collection.TransitionFilter) ([]collection.StatusTransition, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "delinquency", "get_history")
	defer span.End()

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, 0, shared.ErrNotFound
	}

	filter.ClientID = &clientID
	transitions, err := s.transitionRepo.FindByClient(ctx, clientID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to load history: %w", err)
	}

	total, err := s.transitionRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count history: %w", err)
	}

	return transitions, total, nil
}

// publishEvents flushes the aggregate's pending events to the bus.
// Delivery is best-effort: failures are logged and never surfaced to the
// caller, because the status change is already committed.
func (s *DelinquencyService) publishEvents(ctx context.Context, client *collection.Client) {
	events := client.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	client.ClearDomainEvents()

	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("client_id", client.ID.String()),
			zap.Error(err),
		)
	}
}
