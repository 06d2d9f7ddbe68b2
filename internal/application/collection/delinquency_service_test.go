package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDelinquencyFixture(t *testing.T) (*DelinquencyService, *MockClientRepository, *MockTransitionRepository, *MockEventPublisher) {
	clientRepo := new(MockClientRepository)
	transitionRepo := new(MockTransitionRepository)
	publisher := new(MockEventPublisher)
	svc := NewDelinquencyService(clientRepo, transitionRepo, publisher, zap.NewNop())
	return svc, clientRepo, transitionRepo, publisher
}

func newManagedClient(t *testing.T, advisorID uuid.UUID) *collection.Client {
	client, err := collection.NewClient("12345678", "Maria Quispe")
	require.NoError(t, err)
	if advisorID != uuid.Nil {
		require.NoError(t, client.AssignAdvisor(advisorID))
	}
	client.ClearDomainEvents()
	return client
}

func supervisorActor() Actor {
	return Actor{ID: uuid.New(), Name: "Ana Torres", Role: identity.RoleSupervisor}
}

func TestDelinquencyService_ChangeStatus(t *testing.T) {
	svc, clientRepo, transitionRepo, publisher := newDelinquencyFixture(t)
	client := newManagedClient(t, uuid.Nil)
	actor := supervisorActor()

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	transitionRepo.On("RecordTransition", mock.Anything, client, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	transition, err := svc.ChangeStatus(context.Background(), ChangeStatusRequest{
		ClientID:  client.ID,
		NewStatus: collection.DelinquencySevere,
		Reason:    "90 days without payment",
		Actor:     actor,
		IPAddress: "10.0.0.1",
	})

	require.NoError(t, err)
	assert.Equal(t, collection.DelinquencyCurrent, transition.PreviousStatus)
	assert.Equal(t, collection.DelinquencySevere, transition.NewStatus)
	assert.Equal(t, actor.ID, transition.ChangedBy)
	assert.Equal(t, collection.DelinquencySevere, client.DelinquencyStatus)

	transitionRepo.AssertCalled(t, "RecordTransition", mock.Anything, client, transition)

	require.Len(t, publisher.Published, 1)
	assert.Equal(t, collection.EventDelinquencyStatusChanged, publisher.Published[0].EventType())
}

func TestDelinquencyService_ChangeStatus_ClientNotFound(t *testing.T) {
	svc, clientRepo, _, _ := newDelinquencyFixture(t)
	clientRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := svc.ChangeStatus(context.Background(), ChangeStatusRequest{
		ClientID:  uuid.New(),
		NewStatus: collection.DelinquencySevere,
		Reason:    "late",
		Actor:     supervisorActor(),
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDelinquencyService_ChangeStatus_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		newStatus collection.DelinquencyStatus
		reason    string
		wantErr   error
	}{
		{"unknown status", collection.DelinquencyStatus("BANKRUPT"), "reason", collection.ErrInvalidStatus},
		{"same status", collection.DelinquencyCurrent, "reason", collection.ErrNoOpTransition},
		{"blank reason", collection.DelinquencySevere, "   ", collection.ErrMissingReason},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, clientRepo, transitionRepo, _ := newDelinquencyFixture(t)
			client := newManagedClient(t, uuid.Nil)
			clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)

			_, err := svc.ChangeStatus(context.Background(), ChangeStatusRequest{
				ClientID:  client.ID,
				NewStatus: tt.newStatus,
				Reason:    tt.reason,
				Actor:     supervisorActor(),
			})

			assert.ErrorIs(t, err, tt.wantErr)
			transitionRepo.AssertNotCalled(t, "RecordTransition", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDelinquencyService_ChangeStatus_AdvisorOutsidePortfolio(t *testing.T) {
	svc, clientRepo, transitionRepo, _ := newDelinquencyFixture(t)
	client := newManagedClient(t, uuid.New())
	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)

	outsider := Actor{ID: uuid.New(), Name: "Luis Paredes", Role: identity.RoleAdvisor}

	_, err := svc.ChangeStatus(context.Background(), ChangeStatusRequest{
		ClientID:  client.ID,
		NewStatus: collection.DelinquencySevere,
		Reason:    "90 days without payment",
		Actor:     outsider,
	})

	assert.ErrorIs(t, err, collection.ErrNotInPortfolio)
	transitionRepo.AssertNotCalled(t, "RecordTransition", mock.Anything, mock.Anything, mock.Anything)
}

// Shape errors outrank the portfolio check, so an outsider sending a blank
// reason hears about the reason, not about authorization.
func TestDelinquencyService_ChangeStatus_ShapeBeforeAuthorization(t *testing.T) {
	svc, clientRepo, _, _ := newDelinquencyFixture(t)
	client := newManagedClient(t, uuid.New())
	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)

	outsider := Actor{ID: uuid.New(), Name: "Luis Paredes", Role: identity.RoleAdvisor}

	_, err := svc.ChangeStatus(context.Background(), ChangeStatusRequest{
		ClientID:  client.ID,
		NewStatus: collection.DelinquencySevere,
		Reason:    "",
		Actor:     outsider,
	})

	assert.ErrorIs(t, err, collection.ErrMissingReason)
}

func TestDelinquencyService_ChangeStatus_AdvisorInPortfolio(t *testing.T) {
	svc, clientRepo, transitionRepo, publisher := newDelinquencyFixture(t)
	advisor := Actor{ID: uuid.New(), Name: "Luis Paredes", Role: identity.RoleAdvisor}
	client := newManagedClient(t, advisor.ID)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	transitionRepo.On("RecordTransition", mock.Anything, client, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.ChangeStatus(context.Background(), ChangeStatusRequest{
		ClientID:  client.ID,
		NewStatus: collection.DelinquencyEarly,
		Reason:    "first missed installment",
		Actor:     advisor,
	})

	require.NoError(t, err)
}

func TestDelinquencyService_ChangeStatus_PersistFailure(t *testing.T) {
	svc, clientRepo, transitionRepo, publisher := newDelinquencyFixture(t)
	client := newManagedClient(t, uuid.Nil)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	transitionRepo.On("RecordTransition", mock.Anything, client, mock.Anything).
		Return(errors.New("deadlock detected"))

	_, err := svc.ChangeStatus(context.Background(), ChangeStatusRequest{
		ClientID:  client.ID,
		NewStatus: collection.DelinquencySevere,
		Reason:    "90 days without payment",
		Actor:     supervisorActor(),
	})

	assert.Error(t, err)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

// A failed notification dispatch never fails the status change itself.
func TestDelinquencyService_ChangeStatus_PublishFailureIsSwallowed(t *testing.T) {
	svc, clientRepo, transitionRepo, publisher := newDelinquencyFixture(t)
	client := newManagedClient(t, uuid.Nil)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	transitionRepo.On("RecordTransition", mock.Anything, client, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus unavailable"))

	transition, err := svc.ChangeStatus(context.Background(), ChangeStatusRequest{
		ClientID:  client.ID,
		NewStatus: collection.DelinquencySevere,
		Reason:    "90 days without payment",
		Actor:     supervisorActor(),
	})

	require.NoError(t, err)
	assert.NotNil(t, transition)
}

func TestDelinquencyService_GetHistory(t *testing.T) {
	svc, clientRepo, transitionRepo, _ := newDelinquencyFixture(t)
	client := newManagedClient(t, uuid.Nil)

	history := []collection.StatusTransition{
		{PreviousStatus: collection.DelinquencyEarly, NewStatus: collection.DelinquencySevere},
		{PreviousStatus: collection.DelinquencyCurrent, NewStatus: collection.DelinquencyEarly},
	}

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	transitionRepo.On("FindByClient", mock.Anything, client.ID, mock.Anything).Return(history, nil)
	transitionRepo.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)

	transitions, total, err := svc.GetHistory(context.Background(), client.ID, collection.TransitionFilter{Filter: shared.DefaultFilter()})

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, transitions, 2)
	assert.Equal(t, collection.DelinquencySevere, transitions[0].NewStatus, "most recent first")
}

func TestDelinquencyService_GetHistory_ClientNotFound(t *testing.T) {
	svc, clientRepo, _, _ := newDelinquencyFixture(t)
	clientRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	_, _, err := svc.GetHistory(context.Background(), uuid.New(), collection.TransitionFilter{})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
