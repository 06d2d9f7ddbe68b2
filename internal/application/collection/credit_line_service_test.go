package collection

import (
	"context"
	"testing"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/audicob/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCreditLineFixture(t *testing.T) (*CreditLineService, *MockCreditLineRepository, *MockClientRepository) {
	creditLineRepo := new(MockCreditLineRepository)
	clientRepo := new(MockClientRepository)
	svc := NewCreditLineService(creditLineRepo, clientRepo, zap.NewNop())
	return svc, creditLineRepo, clientRepo
}

func TestCreditLineService_AssignCreditLine(t *testing.T) {
	svc, creditLineRepo, clientRepo := newCreditLineFixture(t)
	client := newManagedClient(t, uuid.Nil)
	actor := supervisorActor()

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	creditLineRepo.On("FindByClient", mock.Anything, client.ID).Return(nil, shared.ErrNotFound)
	creditLineRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	line, err := svc.AssignCreditLine(context.Background(), AssignCreditLineRequest{
		ClientID: client.ID,
		Amount:   decimal.NewFromInt(500),
		Actor:    actor,
	})

	require.NoError(t, err)
	assert.Equal(t, client.ID, line.ClientID)
	assert.Equal(t, actor.ID, line.AssignedBy)
	assert.True(t, line.Amount.Equal(decimal.NewFromInt(500)))
	creditLineRepo.AssertCalled(t, "Save", mock.Anything, line)
}

func TestCreditLineService_AssignCreditLine_ClientNotFound(t *testing.T) {
	svc, creditLineRepo, clientRepo := newCreditLineFixture(t)
	clientRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.AssignCreditLine(context.Background(), AssignCreditLineRequest{
		ClientID: uuid.New(),
		Amount:   decimal.NewFromInt(500),
		Actor:    supervisorActor(),
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	creditLineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreditLineService_AssignCreditLine_AlreadyExists(t *testing.T) {
	svc, creditLineRepo, clientRepo := newCreditLineFixture(t)
	client := newManagedClient(t, uuid.Nil)
	actor := supervisorActor()

	existing, err := collection.NewCreditLine(client.ID, valueobject.NewMoneyPENFromFloat(300.00), actor.ID)
	require.NoError(t, err)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	creditLineRepo.On("FindByClient", mock.Anything, client.ID).Return(existing, nil)

	_, err = svc.AssignCreditLine(context.Background(), AssignCreditLineRequest{
		ClientID: client.ID,
		Amount:   decimal.NewFromInt(500),
		Actor:    actor,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CREDIT_LINE_EXISTS", domainErr.Code)
	creditLineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreditLineService_AssignCreditLine_BelowMinimum(t *testing.T) {
	svc, creditLineRepo, clientRepo := newCreditLineFixture(t)
	client := newManagedClient(t, uuid.Nil)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	creditLineRepo.On("FindByClient", mock.Anything, client.ID).Return(nil, shared.ErrNotFound)

	_, err := svc.AssignCreditLine(context.Background(), AssignCreditLineRequest{
		ClientID: client.ID,
		Amount:   decimal.NewFromInt(150),
		Actor:    supervisorActor(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AMOUNT_BELOW_MINIMUM", domainErr.Code)
	creditLineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreditLineService_AdjustCreditLine(t *testing.T) {
	svc, creditLineRepo, _ := newCreditLineFixture(t)
	clientID := uuid.New()
	actor := supervisorActor()

	existing, err := collection.NewCreditLine(clientID, valueobject.NewMoneyPENFromFloat(300.00), uuid.New())
	require.NoError(t, err)

	creditLineRepo.On("FindByClient", mock.Anything, clientID).Return(existing, nil)
	creditLineRepo.On("Save", mock.Anything, existing).Return(nil)

	line, err := svc.AdjustCreditLine(context.Background(), AdjustCreditLineRequest{
		ClientID: clientID,
		Amount:   decimal.NewFromInt(900),
		Actor:    actor,
	})

	require.NoError(t, err)
	assert.True(t, line.Amount.Equal(decimal.NewFromInt(900)))
	assert.Equal(t, actor.ID, line.AssignedBy)
	creditLineRepo.AssertCalled(t, "Save", mock.Anything, existing)
}

func TestCreditLineService_AdjustCreditLine_NotFound(t *testing.T) {
	svc, creditLineRepo, _ := newCreditLineFixture(t)
	creditLineRepo.On("FindByClient", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	_, err := svc.AdjustCreditLine(context.Background(), AdjustCreditLineRequest{
		ClientID: uuid.New(),
		Amount:   decimal.NewFromInt(900),
		Actor:    supervisorActor(),
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreditLineService_GetClientCreditLine(t *testing.T) {
	svc, creditLineRepo, _ := newCreditLineFixture(t)
	clientID := uuid.New()

	existing, err := collection.NewCreditLine(clientID, valueobject.NewMoneyPENFromFloat(400.00), uuid.New())
	require.NoError(t, err)

	creditLineRepo.On("FindByClient", mock.Anything, clientID).Return(existing, nil)

	line, err := svc.GetClientCreditLine(context.Background(), clientID)

	require.NoError(t, err)
	assert.Equal(t, existing, line)
}
