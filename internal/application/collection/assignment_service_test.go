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

func newAssignmentFixture(t *testing.T) (*AssignmentService, *MockAssignmentRepository, *MockClientRepository, *MockUserRepository, *MockEventPublisher) {
	assignmentRepo := new(MockAssignmentRepository)
	clientRepo := new(MockClientRepository)
	userRepo := new(MockUserRepository)
	publisher := new(MockEventPublisher)
	svc := NewAssignmentService(assignmentRepo, clientRepo, userRepo, publisher, zap.NewNop())
	return svc, assignmentRepo, clientRepo, userRepo, publisher
}

func newAdvisorUser(t *testing.T) *identity.User {
	advisor, err := identity.NewUser("lparedes", "Cobranza2024", identity.RoleAdvisor)
	require.NoError(t, err)
	return advisor
}

func TestAssignmentService_AssignAdvisor(t *testing.T) {
	svc, assignmentRepo, clientRepo, userRepo, publisher := newAssignmentFixture(t)
	client := newManagedClient(t, uuid.Nil)
	advisor := newAdvisorUser(t)
	actor := supervisorActor()

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	userRepo.On("FindByID", mock.Anything, advisor.ID).Return(advisor, nil)
	assignmentRepo.On("FindActiveByClient", mock.Anything, client.ID).Return(nil, shared.ErrNotFound)
	assignmentRepo.On("RecordAssignment", mock.Anything, client, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	assignment, err := svc.AssignAdvisor(context.Background(), AssignAdvisorRequest{
		ClientID:  client.ID,
		AdvisorID: advisor.ID,
		Actor:     actor,
	})

	require.NoError(t, err)
	assert.Equal(t, advisor.ID, assignment.AdvisorID)
	assert.True(t, assignment.Active)
	require.NotNil(t, client.AdvisorID)
	assert.Equal(t, advisor.ID, *client.AdvisorID)

	// Assignment rows and the client's advisor pointer go through the
	// transactional write, never through separate saves.
	assignmentRepo.AssertCalled(t, "RecordAssignment", mock.Anything, client, []*collection.Assignment{assignment})
	assignmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssignmentService_AssignAdvisor_ReleasesPreviousInSameTransaction(t *testing.T) {
	svc, assignmentRepo, clientRepo, userRepo, publisher := newAssignmentFixture(t)
	previousAdvisor := uuid.New()
	client := newManagedClient(t, previousAdvisor)
	advisor := newAdvisorUser(t)
	actor := supervisorActor()

	current, err := collection.NewAssignment(client.ID, previousAdvisor, "Rosa Medina", actor.ID)
	require.NoError(t, err)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	userRepo.On("FindByID", mock.Anything, advisor.ID).Return(advisor, nil)
	assignmentRepo.On("FindActiveByClient", mock.Anything, client.ID).Return(current, nil)
	assignmentRepo.On("RecordAssignment", mock.Anything, client, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	assignment, err := svc.AssignAdvisor(context.Background(), AssignAdvisorRequest{
		ClientID:  client.ID,
		AdvisorID: advisor.ID,
		Actor:     actor,
	})

	require.NoError(t, err)
	assert.False(t, current.Active, "previous assignment released")
	assignmentRepo.AssertCalled(t, "RecordAssignment", mock.Anything, client, []*collection.Assignment{current, assignment})
	assignmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssignmentService_AssignAdvisor_AlreadyAssigned(t *testing.T) {
	svc, assignmentRepo, clientRepo, userRepo, _ := newAssignmentFixture(t)
	advisor := newAdvisorUser(t)
	client := newManagedClient(t, advisor.ID)
	actor := supervisorActor()

	current, err := collection.NewAssignment(client.ID, advisor.ID, "Luis Paredes", actor.ID)
	require.NoError(t, err)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	userRepo.On("FindByID", mock.Anything, advisor.ID).Return(advisor, nil)
	assignmentRepo.On("FindActiveByClient", mock.Anything, client.ID).Return(current, nil)

	_, err = svc.AssignAdvisor(context.Background(), AssignAdvisorRequest{
		ClientID:  client.ID,
		AdvisorID: advisor.ID,
		Actor:     actor,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_ASSIGNED", domainErr.Code)
	assignmentRepo.AssertNotCalled(t, "RecordAssignment", mock.Anything, mock.Anything, mock.Anything)
}

// A failed transactional write leaves nothing half-saved to report.
func TestAssignmentService_AssignAdvisor_RecordFailure(t *testing.T) {
	svc, assignmentRepo, clientRepo, userRepo, publisher := newAssignmentFixture(t)
	client := newManagedClient(t, uuid.Nil)
	advisor := newAdvisorUser(t)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	userRepo.On("FindByID", mock.Anything, advisor.ID).Return(advisor, nil)
	assignmentRepo.On("FindActiveByClient", mock.Anything, client.ID).Return(nil, shared.ErrNotFound)
	assignmentRepo.On("RecordAssignment", mock.Anything, client, mock.Anything).
		Return(errors.New("deadlock detected"))

	_, err := svc.AssignAdvisor(context.Background(), AssignAdvisorRequest{
		ClientID:  client.ID,
		AdvisorID: advisor.ID,
		Actor:     supervisorActor(),
	})

	assert.Error(t, err)
	clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAssignmentService_AssignAdvisor_NotAnAdvisor(t *testing.T) {
	svc, assignmentRepo, clientRepo, userRepo, _ := newAssignmentFixture(t)
	client := newManagedClient(t, uuid.Nil)
	supervisor, err := identity.NewUser("atorres", "Cobranza2024", identity.RoleSupervisor)
	require.NoError(t, err)

	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	userRepo.On("FindByID", mock.Anything, supervisor.ID).Return(supervisor, nil)

	_, err = svc.AssignAdvisor(context.Background(), AssignAdvisorRequest{
		ClientID:  client.ID,
		AdvisorID: supervisor.ID,
		Actor:     supervisorActor(),
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_AN_ADVISOR", domainErr.Code)
	assignmentRepo.AssertNotCalled(t, "RecordAssignment", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignmentService_ReleaseAssignment(t *testing.T) {
	svc, assignmentRepo, clientRepo, _, _ := newAssignmentFixture(t)
	advisorID := uuid.New()
	client := newManagedClient(t, advisorID)

	current, err := collection.NewAssignment(client.ID, advisorID, "Luis Paredes", uuid.New())
	require.NoError(t, err)

	assignmentRepo.On("FindActiveByClient", mock.Anything, client.ID).Return(current, nil)
	clientRepo.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	assignmentRepo.On("RecordAssignment", mock.Anything, client, mock.Anything).Return(nil)

	err = svc.ReleaseAssignment(context.Background(), client.ID)

	require.NoError(t, err)
	assert.False(t, current.Active)
	assert.Nil(t, client.AdvisorID)
	assignmentRepo.AssertCalled(t, "RecordAssignment", mock.Anything, client, []*collection.Assignment{current})
	clientRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAssignmentService_ReleaseAssignment_NoneActive(t *testing.T) {
	svc, assignmentRepo, _, _, _ := newAssignmentFixture(t)
	assignmentRepo.On("FindActiveByClient", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	err := svc.ReleaseAssignment(context.Background(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
