package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/audicob/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DebtService manages debts and serves penalty assessments. Assessments are
// computed at read time; the stored snapshot only feeds dashboards.
type DebtService struct {
	debtRepo   collection.DebtRepository
	clientRepo collection.ClientRepository
	publisher  shared.EventPublisher
	logger     *zap.Logger
}

// NewDebtService creates a new DebtService
func NewDebtService(
	debtRepo collection.DebtRepository,
	clientRepo collection.ClientRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *DebtService {
	return &DebtService{
		debtRepo:   debtRepo,
		clientRepo: clientRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// RegisterDebt registers a debt for a client and refreshes the client's
// aggregate debt figure.
func (s *DebtService) RegisterDebt(ctx context.Context, req RegisterDebtRequest) (*collection.Debt, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "debt", "register")
	defer span.End()

	telemetry.SetAttributes(span,
		"client_id", req.ClientID.String(),
		"principal", req.Principal.String(),
	)

	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	debt, err := collection.NewDebt(req.ClientID, valueobject.NewMoneyPEN(req.Principal), req.DueDate)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.debtRepo.Save(ctx, debt); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save debt: %w", err)
	}

	total, err := s.debtRepo.SumPrincipalByClient(ctx, req.ClientID)
	if err != nil {
		s.logger.Warn("Failed to refresh client debt total",
			zap.String("client_id", req.ClientID.String()), zap.Error(err))
	} else {
		client.SetTotalDebt(total)
		if err := s.clientRepo.Save(ctx, client); err != nil {
			s.logger.Warn("Failed to save client debt total",
				zap.String("client_id", req.ClientID.String()), zap.Error(err))
		}
	}

	s.flushEvents(ctx, debt)

	s.logger.Info("Debt registered",
		zap.String("debt_id", debt.ID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.String("principal", req.Principal.String()),
	)

	return debt, nil
}

// GetDebt returns one debt with its penalty assessed as of now
func (s *DebtService) GetDebt(ctx context.Context, id uuid.UUID) (*DebtStatementLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "debt", "get")
	defer span.End()

	debt, err := s.debtRepo.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load debt: %w", err)
	}
	if debt == nil {
		return nil, shared.ErrNotFound
	}

	return &DebtStatementLine{
		Debt:       *debt,
		Assessment: debt.Assess(time.Now()),
	}, nil
}

// GetStatement assembles a client's full position with every debt assessed
// as of the given time.
func (s *DebtService) GetStatement(ctx context.Context, clientID uuid.UUID, asOf time.Time) (*DebtStatement, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "debt", "statement")
	defer span.End()

	telemetry.SetAttribute(span, "client_id", clientID.String())

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	filter := collection.DebtFilter{Filter: shared.DefaultFilter()}
	filter.PageSize = 500
	debts, err := s.debtRepo.FindByClient(ctx, clientID, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load debts: %w", err)
	}

	statement := &DebtStatement{
		Client:         client,
		AsOf:           asOf,
		Lines:          make([]DebtStatementLine, 0, len(debts)),
		TotalPrincipal: decimal.Zero,
		TotalPenalty:   decimal.Zero,
		TotalPayable:   decimal.Zero,
	}

	for i := range debts {
		assessment := debts[i].Assess(asOf)
		statement.Lines = append(statement.Lines, DebtStatementLine{
			Debt:       debts[i],
			Assessment: assessment,
		})
		statement.TotalPrincipal = statement.TotalPrincipal.Add(debts[i].Principal)
		statement.TotalPenalty = statement.TotalPenalty.Add(assessment.Penalty)
		statement.TotalPayable = statement.TotalPayable.Add(assessment.Total)
	}

	return statement, nil
}

// GetStatementForUser resolves the client linked to a portal user account
// and returns that client's statement.
func (s *DebtService) GetStatementForUser(ctx context.Context, userID uuid.UUID, asOf time.Time) (*DebtStatement, error) {
	client, err := s.clientRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client for user: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}
	return s.GetStatement(ctx, client.ID, asOf)
}

// ListOverdue returns overdue debts across all clients
func (s *DebtService) ListOverdue(ctx context.Context, filter collection.DebtFilter) ([]collection.Debt, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "debt", "list_overdue")
	defer span.End()

	overdue := true
	filter.Overdue = &overdue

	debts, err := s.debtRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to load debts: %w", err)
	}

	total, err := s.debtRepo.Count(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, fmt.Errorf("failed to count debts: %w", err)
	}

	return debts, total, nil
}

// RefreshSnapshots recomputes the stored penalty snapshot for every overdue
// debt. Intended for a periodic job; reads never depend on it.
func (s *DebtService) RefreshSnapshots(ctx context.Context, asOf time.Time) (int, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "debt", "refresh_snapshots")
	defer span.End()

	overdue := true
	filter := collection.DebtFilter{Filter: shared.DefaultFilter(), Overdue: &overdue}
	filter.PageSize = 1000

	debts, err := s.debtRepo.FindAll(ctx, filter)
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, fmt.Errorf("failed to load overdue debts: %w", err)
	}

	refreshed := 0
	for i := range debts {
		debts[i].RefreshAssessment(asOf)
		if err := s.debtRepo.Save(ctx, &debts[i]); err != nil {
			s.logger.Warn("Failed to refresh debt snapshot",
				zap.String("debt_id", debts[i].ID.String()), zap.Error(err))
			continue
		}
		refreshed++
	}

	telemetry.SetAttribute(span, "refreshed", refreshed)
	return refreshed, nil
}

func (s *DebtService) flushEvents(ctx context.Context, debt *collection.Debt) {
	events := debt.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	debt.ClearDomainEvents()

	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("debt_id", debt.ID.String()), zap.Error(err))
	}
}
