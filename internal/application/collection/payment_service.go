package collection

import (
	"context"
	"fmt"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/audicob/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService manages reported payments and their supervisor review
type PaymentService struct {
	paymentRepo collection.PaymentRepository
	clientRepo  collection.ClientRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo collection.PaymentRepository,
	clientRepo collection.ClientRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// RegisterPayment reports a payment for review. Advisors may only report
// for clients in their portfolio; portal clients only for themselves.
func (s *PaymentService) RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (*collection.Payment, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", "register")
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

	switch req.Actor.Role {
	case identity.RoleAdvisor:
		if !client.IsAssignedTo(req.Actor.ID) {
			return nil, collection.ErrNotInPortfolio
		}
	case identity.RoleClient:
		if client.UserID == nil || *client.UserID != req.Actor.ID {
			return nil, shared.ErrForbidden
		}
	}

	payment, err := collection.NewPayment(req.ClientID, valueobject.NewMoneyPEN(req.Amount), req.PaidAt, req.Actor.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.flushEvents(ctx, payment)

	s.logger.Info("Payment registered",
		zap.String("payment_id", payment.ID.String()),
		zap.String("client_id", req.ClientID.String()),
		zap.String("amount", req.Amount.String()),
	)

	return payment, nil
}

// ValidatePayment confirms a pending payment
func (s *PaymentService) ValidatePayment(ctx context.Context, req ReviewPaymentRequest) (*collection.Payment, error) {
	return s.review(ctx, req, true)
}

// RejectPayment rejects a pending payment. The observation is mandatory.
func (s *PaymentService) RejectPayment(ctx context.Context, req ReviewPaymentRequest) (*collection.Payment, error) {
	return s.review(ctx, req, false)
}

func (s *PaymentService) review(ctx context.Context, req ReviewPaymentRequest, approve bool) (*collection.Payment, error) {
	method := "reject"
	if approve {
		method = "validate"
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "payment", method)
	defer span.End()

	telemetry.SetAttribute(span, "payment_id", req.PaymentID.String())

	payment, err := s.paymentRepo.FindByID(ctx, req.PaymentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}

	if approve {
		err = payment.Validate(req.Actor.ID, req.Observation)
	} else {
		err = payment.Reject(req.Actor.ID, req.Observation)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.paymentRepo.SaveWithLock(ctx, payment); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	s.flushEvents(ctx, payment)

	s.logger.Info("Payment reviewed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(payment.Status)),
		zap.String("reviewed_by", req.Actor.ID.String()),
	)

	return payment, nil
}

// GetPayment returns one payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*collection.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return nil, shared.ErrNotFound
	}
	return payment, nil
}

// ListPayments returns payments matching the filter
func (s *PaymentService) ListPayments(ctx context.Context, filter collection.PaymentFilter) ([]collection.Payment, int64, error) {
	payments, err := s.paymentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load payments: %w", err)
	}

	total, err := s.paymentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	return payments, total, nil
}

// ListClientPayments returns one client's payments
func (s *PaymentService) ListClientPayments(ctx context.Context, clientID uuid.UUID, filter collection.PaymentFilter) ([]collection.Payment, error) {
	payments, err := s.paymentRepo.FindByClient(ctx, clientID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) flushEvents(ctx context.Context, payment *collection.Payment) {
	events := payment.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	payment.ClearDomainEvents()

	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events",
			zap.String("payment_id", payment.ID.String()), zap.Error(err))
	}
}
