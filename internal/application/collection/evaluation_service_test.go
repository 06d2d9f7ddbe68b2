package collection

import (
	"context"
	"testing"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEvaluationFixture(t *testing.T) (*EvaluationService, *MockEvaluationRepository, *MockClientRepository) {
	evaluationRepo := new(MockEvaluationRepository)
	clientRepo := new(MockClientRepository)
	svc := NewEvaluationService(evaluationRepo, clientRepo, zap.NewNop())
	return svc, evaluationRepo, clientRepo
}

func newPendingEvaluation(t *testing.T, clientID uuid.UUID) *collection.Evaluation {
	evaluation, err := collection.NewEvaluation(clientID, uuid.New())
	require.NoError(t, err)
	return evaluation
}

func TestEvaluationService_OpenEvaluation(t *testing.T) {
	svc, evaluationRepo, clientRepo := newEvaluationFixture(t)
	client := newManagedClient(t, uuid.Nil)
	actor := supervisorActor()

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	evaluationRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	evaluationRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	evaluation, err := svc.OpenEvaluation(context.Background(), OpenEvaluationRequest{
		ClientID: client.ID,
		Actor:    actor,
	})

	require.NoError(t, err)
	assert.Equal(t, client.ID, evaluation.ClientID)
	assert.Equal(t, actor.ID, evaluation.Responsible)
	assert.Equal(t, collection.EvaluationStatusPending, evaluation.Status)
	evaluationRepo.AssertCalled(t, "Save", mock.Anything, evaluation)
}

func TestEvaluationService_OpenEvaluation_OnePendingPerClient(t *testing.T) {
	svc, evaluationRepo, clientRepo := newEvaluationFixture(t)
	client := newManagedClient(t, uuid.Nil)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	evaluationRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	_, err := svc.OpenEvaluation(context.Background(), OpenEvaluationRequest{
		ClientID: client.ID,
		Actor:    supervisorActor(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EVALUATION_ALREADY_PENDING", domainErr.Code)
	evaluationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEvaluationService_OpenEvaluation_ClientNotFound(t *testing.T) {
	svc, evaluationRepo, clientRepo := newEvaluationFixture(t)
	clientRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.OpenEvaluation(context.Background(), OpenEvaluationRequest{
		ClientID: uuid.New(),
		Actor:    supervisorActor(),
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	evaluationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEvaluationService_FlagEvaluation(t *testing.T) {
	svc, evaluationRepo, _ := newEvaluationFixture(t)
	evaluation := newPendingEvaluation(t, uuid.New())
	actor := supervisorActor()

	evaluationRepo.On("FindByID", mock.Anything, evaluation.ID).Return(evaluation, nil)
	evaluationRepo.On("Save", mock.Anything, evaluation).Return(nil)

	reviewed, err := svc.FlagEvaluation(context.Background(), ReviewEvaluationRequest{
		EvaluationID: evaluation.ID,
		Comment:      "Three PDPs broken in a row",
		Actor:        actor,
	})

	require.NoError(t, err)
	assert.Equal(t, collection.EvaluationStatusFlagged, reviewed.Status)
	assert.Equal(t, "Three PDPs broken in a row", reviewed.Comment)
}

func TestEvaluationService_DismissEvaluation_RequiresComment(t *testing.T) {
	svc, evaluationRepo, _ := newEvaluationFixture(t)
	evaluation := newPendingEvaluation(t, uuid.New())

	evaluationRepo.On("FindByID", mock.Anything, evaluation.ID).Return(evaluation, nil)

	_, err := svc.DismissEvaluation(context.Background(), ReviewEvaluationRequest{
		EvaluationID: evaluation.ID,
		Comment:      "  ",
		Actor:        supervisorActor(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_COMMENT", domainErr.Code)
	assert.Equal(t, collection.EvaluationStatusPending, evaluation.Status)
	evaluationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEvaluationService_DismissEvaluation(t *testing.T) {
	svc, evaluationRepo, _ := newEvaluationFixture(t)
	evaluation := newPendingEvaluation(t, uuid.New())

	evaluationRepo.On("FindByID", mock.Anything, evaluation.ID).Return(evaluation, nil)
	evaluationRepo.On("Save", mock.Anything, evaluation).Return(nil)

	reviewed, err := svc.DismissEvaluation(context.Background(), ReviewEvaluationRequest{
		EvaluationID: evaluation.ID,
		Comment:      "Account brought current on review",
		Actor:        supervisorActor(),
	})

	require.NoError(t, err)
	assert.Equal(t, collection.EvaluationStatusRejected, reviewed.Status)
}

func TestEvaluationService_ReviewClosedEvaluation(t *testing.T) {
	svc, evaluationRepo, _ := newEvaluationFixture(t)
	evaluation := newPendingEvaluation(t, uuid.New())
	require.NoError(t, evaluation.Flag("risk confirmed"))

	evaluationRepo.On("FindByID", mock.Anything, evaluation.ID).Return(evaluation, nil)

	_, err := svc.FlagEvaluation(context.Background(), ReviewEvaluationRequest{
		EvaluationID: evaluation.ID,
		Comment:      "again",
		Actor:        supervisorActor(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	evaluationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEvaluationService_ListEvaluations(t *testing.T) {
	svc, evaluationRepo, _ := newEvaluationFixture(t)
	evaluation := newPendingEvaluation(t, uuid.New())

	evaluationRepo.On("FindAll", mock.Anything, mock.Anything).Return([]collection.Evaluation{*evaluation}, nil)
	evaluationRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	evaluations, total, err := svc.ListEvaluations(context.Background(), collection.EvaluationFilter{})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, evaluations, 1)
	assert.Equal(t, evaluation.ID, evaluations[0].ID)
}
