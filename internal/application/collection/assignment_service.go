package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssignmentService manages which advisor works which client. A client has
// at most one active assignment; assigning to a new advisor releases the
// previous one.
type AssignmentService struct {
	assignmentRepo collection.AssignmentRepository
	clientRepo     collection.ClientRepository
	userRepo       identity.UserRepository
	publisher      shared.EventPublisher
	logger         *zap.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo collection.AssignmentRepository,
	clientRepo collection.ClientRepository,
	userRepo identity.UserRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		clientRepo:     clientRepo,
		userRepo:       userRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// AssignAdvisor puts a client into an advisor's portfolio
func (s *AssignmentService) AssignAdvisor(ctx context.Context, req AssignAdvisorRequest) (*collection.Assignment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "assignment", "assign")
	defer span.End()

	telemetry.SetAttributes(span,
		"client_id", req.ClientID.String(),
		"advisor_id", req.AdvisorID.String(),
	)

	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	advisor, err := s.userRepo.FindByID(ctx, req.AdvisorID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load advisor: %w", err)
	}
	if advisor == nil {
		return nil, shared.NewDomainError("ADVISOR_NOT_FOUND", "Advisor not found")
	}
	if advisor.Role != identity.RoleAdvisor {
		return nil, shared.NewDomainError("NOT_AN_ADVISOR", "Assignments can only target advisor accounts")
	}
	if !advisor.IsActive() {
		return nil, shared.NewDomainError("ADVISOR_INACTIVE", "Cannot assign to an inactive advisor")
	}

	// Release the previous assignment if one exists
	current, err := s.assignmentRepo.FindActiveByClient(ctx, req.ClientID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load current assignment: %w", err)
	}

	rows := make([]*collection.Assignment, 0, 2)
	if current != nil {
		if current.AdvisorID == req.AdvisorID {
			return nil, shared.NewDomainError("ALREADY_ASSIGNED", "Client is already in this advisor's portfolio")
		}
		if err := current.Release(); err != nil {
			return nil, err
		}
		rows = append(rows, current)
	}

	assignment, err := collection.NewAssignment(req.ClientID, req.AdvisorID, advisor.GetDisplayNameOrUsername(), req.Actor.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	rows = append(rows, assignment)

	if err := client.AssignAdvisor(req.AdvisorID); err != nil {
		return nil, err
	}

	// The released row, its replacement and the client's advisor pointer
	// commit together or not at all.
	if err := s.assignmentRepo.RecordAssignment(ctx, client, rows...); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to record assignment: %w", err)
	}

	events := client.GetDomainEvents()
	client.ClearDomainEvents()
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("client_id", client.ID.String()), zap.Error(err))
	}

	s.logger.Info("Client assigned",
		zap.String("client_id", req.ClientID.String()),
		zap.String("advisor_id", req.AdvisorID.String()),
		zap.String("assigned_by", req.Actor.ID.String()),
	)

	return assignment, nil
}

// ReleaseAssignment takes a client out of its advisor's portfolio
func (s *AssignmentService) ReleaseAssignment(ctx context.Context, clientID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "assignment", "release")
	defer span.End()

	current, err := s.assignmentRepo.FindActiveByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to load assignment: %w", err)
	}
	if current == nil {
		return shared.ErrNotFound
	}

	if err := current.Release(); err != nil {
		return err
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		// Orphaned assignment row; release it on its own.
		if err := s.assignmentRepo.Save(ctx, current); err != nil {
			telemetry.RecordError(span, err)
			return fmt.Errorf("failed to save assignment: %w", err)
		}
		return nil
	}

	client.UnassignAdvisor()
	if err := s.assignmentRepo.RecordAssignment(ctx, client, current); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to record release: %w", err)
	}

	return nil
}

// GetPortfolio returns the clients an advisor currently works
func (s *AssignmentService) GetPortfolio(ctx context.Context, advisorID uuid.UUID, filter collection.ClientFilter) ([]collection.Client, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "assignment", "portfolio")
	defer span.End()

	clients, err := s.clientRepo.FindByAdvisor(ctx, advisorID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to load portfolio: %w", err)
	}

	filter.AdvisorID = &advisorID
	total, err := s.clientRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count portfolio: %w", err)
	}

	return clients, total, nil
}

// ListAssignments returns assignment records matching the filter
func (s *AssignmentService) ListAssignments(ctx context.Context, filter collection.AssignmentFilter) ([]collection.Assignment, int64, error) {
	assignments, err := s.assignmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load assignments: %w", err)
	}

	total, err := s.assignmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	return assignments, total, nil
}
