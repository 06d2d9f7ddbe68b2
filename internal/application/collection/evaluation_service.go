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

// EvaluationService manages supervisor reviews of client payment
// behaviour. A client has at most one evaluation open at a time.
type EvaluationService struct {
	evaluationRepo collection.EvaluationRepository
	clientRepo     collection.ClientRepository
	logger         *zap.Logger
}

// NewEvaluationService creates a new EvaluationService
func NewEvaluationService(
	evaluationRepo collection.EvaluationRepository,
	clientRepo collection.ClientRepository,
	logger *zap.Logger,
) *EvaluationService {
	return &EvaluationService{
		evaluationRepo: evaluationRepo,
		clientRepo:     clientRepo,
		logger:         logger,
	}
}

// OpenEvaluation opens a pending evaluation for a client
func (s *EvaluationService) OpenEvaluation(ctx context.Context, req OpenEvaluationRequest) (*collection.Evaluation, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "evaluation", "open")
	defer span.End()

	telemetry.SetAttribute(span, "client_id", req.ClientID.String())

	client, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	pending := collection.EvaluationStatusPending
	open, err := s.evaluationRepo.Count(ctx, collection.EvaluationFilter{
		ClientID: &req.ClientID,
		Status:   &pending,
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to check open evaluations: %w", err)
	}
	if open > 0 {
		return nil, shared.NewDomainError("EVALUATION_ALREADY_PENDING", "Client already has an evaluation pending review")
	}

	evaluation, err := collection.NewEvaluation(req.ClientID, req.Actor.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.evaluationRepo.Save(ctx, evaluation); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	s.logger.Info("Evaluation opened",
		zap.String("evaluation_id", evaluation.ID.String()),
		zap.String("client_id", req.ClientID.String()),
	)

	return evaluation, nil
}

// FlagEvaluation closes a pending evaluation marking the client as a
// collection risk
func (s *EvaluationService) FlagEvaluation(ctx context.Context, req ReviewEvaluationRequest) (*collection.Evaluation, error) {
	return s.review(ctx, req, true)
}

// DismissEvaluation closes a pending evaluation without flagging the
// client. The comment is mandatory.
func (s *EvaluationService) DismissEvaluation(ctx context.Context, req ReviewEvaluationRequest) (*collection.Evaluation, error) {
	return s.review(ctx, req, false)
}

func (s *EvaluationService) review(ctx context.Context, req ReviewEvaluationRequest, flag bool) (*collection.Evaluation, error) {
	method := "dismiss"
	if flag {
		method = "flag"
	}
	ctx, span := telemetry.StartServiceSpan(ctx, "evaluation", method)
	defer span.End()

	telemetry.SetAttribute(span, "evaluation_id", req.EvaluationID.String())

	evaluation, err := s.evaluationRepo.FindByID(ctx, req.EvaluationID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load evaluation: %w", err)
	}
	if evaluation == nil {
		return nil, shared.ErrNotFound
	}

	if flag {
		err = evaluation.Flag(req.Comment)
	} else {
		err = evaluation.Dismiss(req.Comment)
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.evaluationRepo.Save(ctx, evaluation); err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	s.logger.Info("Evaluation reviewed",
		zap.String("evaluation_id", evaluation.ID.String()),
		zap.String("status", string(evaluation.Status)),
		zap.String("reviewed_by", req.Actor.ID.String()),
	)

	return evaluation, nil
}

// GetEvaluation returns one evaluation by ID
func (s *EvaluationService) GetEvaluation(ctx context.Context, id uuid.UUID) (*collection.Evaluation, error) {
	evaluation, err := s.evaluationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluation: %w", err)
	}
	if evaluation == nil {
		return nil, shared.ErrNotFound
	}
	return evaluation, nil
}

// ListEvaluations returns evaluations matching the filter
func (s *EvaluationService) ListEvaluations(ctx context.Context, filter collection.EvaluationFilter) ([]collection.Evaluation, int64, error) {
	evaluations, err := s.evaluationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load evaluations: %w", err)
	}

	total, err := s.evaluationRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	return evaluations, total, nil
}

// ListClientEvaluations returns one client's evaluations
func (s *EvaluationService) ListClientEvaluations(ctx context.Context, clientID uuid.UUID, filter collection.EvaluationFilter) ([]collection.Evaluation, error) {
	evaluations, err := s.evaluationRepo.FindByClient(ctx, clientID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load evaluations: %w", err)
	}
	return evaluations, nil
}
