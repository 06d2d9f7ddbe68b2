package handler

import (
	"context"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Client), args.Error(1)
}

func (m *MockClientRepository) FindByDocument(ctx context.Context, document string) (*collection.Client, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Client), args.Error(1)
}

func (m *MockClientRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*collection.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter collection.ClientFilter) ([]collection.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.Client), args.Error(1)
}

func (m *MockClientRepository) FindByAdvisor(ctx context.Context, advisorID uuid.UUID, filter collection.ClientFilter) ([]collection.Client, error) {
	args := m.Called(ctx, advisorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *collection.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) SaveWithLock(ctx context.Context, client *collection.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter collection.ClientFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) CountByDelinquencyStatus(ctx context.Context) (map[collection.DelinquencyStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[collection.DelinquencyStatus]int64), args.Error(1)
}

func (m *MockClientRepository) SumDebtByDelinquencyStatus(ctx context.Context) (map[collection.DelinquencyStatus]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[collection.DelinquencyStatus]decimal.Decimal), args.Error(1)
}

func (m *MockClientRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	args := m.Called(ctx, document)
	return args.Bool(0), args.Error(1)
}

type MockTransitionRepository struct {
	mock.Mock
}

func (m *MockTransitionRepository) RecordTransition(ctx context.Context, client *collection.Client, transition *collection.StatusTransition) error {
	return m.Called(ctx, client, transition).Error(0)
}

func (m *MockTransitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.StatusTransition, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.StatusTransition), args.Error(1)
}

func (m *MockTransitionRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter collection.TransitionFilter) ([]collection.StatusTransition, error) {
	args := m.Called(ctx, clientID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.StatusTransition), args.Error(1)
}

func (m *MockTransitionRepository) FindAll(ctx context.Context, filter collection.TransitionFilter) ([]collection.StatusTransition, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]collection.StatusTransition), args.Error(1)
}

func (m *MockTransitionRepository) Count(ctx context.Context, filter collection.TransitionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}
