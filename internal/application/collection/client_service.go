package collection

import (
	"context"
	"fmt"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/audicob/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientService manages client records
type ClientService struct {
	clientRepo collection.ClientRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewClientService creates a new ClientService
func NewClientService(
	clientRepo collection.ClientRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// CreateClient registers a new client
func (s *ClientService) CreateClient(ctx context.Context, req CreateClientRequest) (*collection.Client, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "client", "create")
	defer span.End()

	exists, err := s.clientRepo.ExistsByDocument(ctx, req.Document)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check document: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A client with this document already exists")
	}

	client, err := collection.NewClient(req.Document, req.Name)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := client.SetContact(req.Email, req.Phone); err != nil {
		return nil, err
	}
	if !req.MonthlyIncome.IsZero() {
		if err := client.SetMonthlyIncome(valueobject.NewMoneyPEN(req.MonthlyIncome)); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.flushEvents(ctx, client)

	s.logger.Info("Client created",
		zap.String("client_id", client.ID.String()),
		zap.String("document", client.Document),
	)

	return client, nil
}

// GetClient returns one client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*collection.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}
	return client, nil
}

// GetClientForUser returns the client linked to a portal login
func (s *ClientService) GetClientForUser(ctx context.Context, userID uuid.UUID) (*collection.Client, error) {
	client, err := s.clientRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}
	return client, nil
}

// ListClients returns clients matching the filter. Advisors only see their
// own portfolio regardless of the filter they send.
func (s *ClientService) ListClients(ctx context.Context, actor Actor, filter collection.ClientFilter) ([]collection.Client, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "client", "list")
	defer span.End()

	if actor.IsAdvisor() {
		advisorID := actor.ID
		filter.AdvisorID = &advisorID
	}

	clients, err := s.clientRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to load clients: %w", err)
	}

	total, err := s.clientRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	return clients, total, nil
}

// UpdateClient applies the provided field updates
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*collection.Client, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "client", "update")
	defer span.End()

	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	if req.Name != nil && *req.Name != "" {
		client.Name = *req.Name
		client.Touch()
	}

	email := client.Email
	phone := client.Phone
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if err := client.SetContact(email, phone); err != nil {
		return nil, err
	}

	if req.MonthlyIncome != nil {
		if err := client.SetMonthlyIncome(valueobject.NewMoneyPEN(*req.MonthlyIncome)); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.SaveWithLock(ctx, client); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	return client, nil
}

// SuspendClient removes a client from active collection
func (s *ClientService) SuspendClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return shared.ErrNotFound
	}

	if err := client.Suspend(); err != nil {
		return err
	}

	return s.clientRepo.Save(ctx, client)
}

// ReinstateClient returns a suspended client to active collection
func (s *ClientService) ReinstateClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return shared.ErrNotFound
	}

	if err := client.Reinstate(); err != nil {
		return err
	}

	return s.clientRepo.Save(ctx, client)
}

func (s *ClientService) flushEvents(ctx context.Context, client *collection.Client) {
	events := client.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	client.ClearDomainEvents()

	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("client_id", client.ID.String()), zap.Error(err))
	}
}
