package collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/audicob/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreditLineService manages the credit amounts supervisors approve for
// clients. A client holds at most one line at a time.
type CreditLineService struct {
	creditLineRepo collection.CreditLineRepository
	clientRepo     collection.ClientRepository
	logger         *zap.Logger
}

// NewCreditLineService creates a new CreditLineService
func NewCreditLineService(
	creditLineRepo collection.CreditLineRepository,
	clientRepo collection.ClientRepository,
	logger *zap.Logger,
) *CreditLineService {
	return &CreditLineService{
		creditLineRepo: creditLineRepo,
		clientRepo:     clientRepo,
		logger:         logger,
	}
}

// AssignCreditLine approves a credit line for a client that does not
// already have one
func (s *CreditLineService) AssignCreditLine(ctx context.Context, req AssignCreditLineRequest) (*collection.CreditLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "credit_line", "assign")
	defer span.End()

	telemetry.SetAttributes(span,
		"client_id", req.ClientID.String(),
		"amount", req.Amount.String(),
	)

	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	existing, err := s.creditLineRepo.FindByClient(ctx, req.ClientID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check existing credit line: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError("CREDIT_LINE_EXISTS", "Client already has a credit line")
	}

	line, err := collection.NewCreditLine(req.ClientID, valueobject.NewMoneyPEN(req.Amount), req.Actor.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.creditLineRepo.Save(ctx, line); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save credit line: %w", err)
	}

	s.logger.Info("Credit line assigned",
		zap.String("credit_line_id", line.ID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.String("amount", req.Amount.String()),
	)

	return line, nil
}

// AdjustCreditLine replaces the approved amount of an existing line
func (s *CreditLineService) AdjustCreditLine(ctx context.Context, req AdjustCreditLineRequest) (*collection.CreditLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "credit_line", "adjust")
	defer span.End()

	telemetry.SetAttributes(span,
		"client_id", req.ClientID.String(),
		"amount", req.Amount.String(),
	)

	line, err := s.creditLineRepo.FindByClient(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load credit line: %w", err)
	}
	if line == nil {
		return nil, shared.ErrNotFound
	}

	if err := line.Adjust(valueobject.NewMoneyPEN(req.Amount), req.Actor.ID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.creditLineRepo.Save(ctx, line); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save credit line: %w", err)
	}

	s.logger.Info("Credit line adjusted",
		zap.String("credit_line_id", line.ID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.String("amount", req.Amount.String()),
	)

	return line, nil
}

// GetClientCreditLine returns the credit line assigned to a client
func (s *CreditLineService) GetClientCreditLine(ctx context.Context, clientID uuid.UUID) (*collection.CreditLine, error) {
	line, err := s.creditLineRepo.FindByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load credit line: %w", err)
	}
	if line == nil {
		return nil, shared.ErrNotFound
	}
	return line, nil
}
