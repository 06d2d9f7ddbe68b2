package collection

import (
	"context"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockClientRepository is a mock implementation of collection.ClientRepository
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
	return args.Get(0).([]collection.Client), args.Error(1)
}

func (m *MockClientRepository) FindByAdvisor(ctx context.Context, advisorID uuid.UUID, filter collection.ClientFilter) ([]collection.Client, error) {
	args := m.Called(ctx, advisorID, filter)
	return args.Get(0).([]collection.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *collection.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) SaveWithLock(ctx context.Context, client *collection.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context, filter collection.ClientFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) CountByDelinquencyStatus(ctx context.Context) (map[collection.DelinquencyStatus]int64, error) {
	args := m.Called(ctx)
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

// MockTransitionRepository is a mock implementation of collection.StatusTransitionRepository
type MockTransitionRepository struct {
	mock.Mock
}

func (m *MockTransitionRepository) RecordTransition(ctx context.Context, client *collection.Client, transition *collection.StatusTransition) error {
	args := m.Called(ctx, client, transition)
	return args.Error(0)
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
	return args.Get(0).([]collection.StatusTransition), args.Error(1)
}

func (m *MockTransitionRepository) FindAll(ctx context.Context, filter collection.TransitionFilter) ([]collection.StatusTransition, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]collection.StatusTransition), args.Error(1)
}

func (m *MockTransitionRepository) Count(ctx context.Context, filter collection.TransitionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockDebtRepository is a mock implementation of collection.DebtRepository
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Debt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter collection.DebtFilter) ([]collection.Debt, error) {
	args := m.Called(ctx, clientID, filter)
	return args.Get(0).([]collection.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindAll(ctx context.Context, filter collection.DebtFilter) ([]collection.Debt, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]collection.Debt), args.Error(1)
}

func (m *MockDebtRepository) Save(ctx context.Context, debt *collection.Debt) error {
	args := m.Called(ctx, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDebtRepository) Count(ctx context.Context, filter collection.DebtFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDebtRepository) SumPrincipalByClient(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockAssignmentRepository is a mock implementation of collection.AssignmentRepository
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindActiveByClient(ctx context.Context, clientID uuid.UUID) (*collection.Assignment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindByAdvisor(ctx context.Context, advisorID uuid.UUID, filter collection.AssignmentFilter) ([]collection.Assignment, error) {
	args := m.Called(ctx, advisorID, filter)
	return args.Get(0).([]collection.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAll(ctx context.Context, filter collection.AssignmentFilter) ([]collection.Assignment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]collection.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, assignment *collection.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockAssignmentRepository) RecordAssignment(ctx context.Context, client *collection.Client, assignments ...*collection.Assignment) error {
	args := m.Called(ctx, client, assignments)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Count(ctx context.Context, filter collection.AssignmentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssignmentRepository) CountActiveByAdvisor(ctx context.Context, advisorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, advisorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
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
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter identity.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// MockCreditLineRepository is a mock implementation of collection.CreditLineRepository
type MockCreditLineRepository struct {
	mock.Mock
}

func (m *MockCreditLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.CreditLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.CreditLine), args.Error(1)
}

func (m *MockCreditLineRepository) FindByClient(ctx context.Context, clientID uuid.UUID) (*collection.CreditLine, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.CreditLine), args.Error(1)
}

func (m *MockCreditLineRepository) Save(ctx context.Context, line *collection.CreditLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCreditLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEvaluationRepository is a mock implementation of collection.EvaluationRepository
type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) FindByID(ctx context.Context, id uuid.UUID) (*collection.Evaluation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter collection.EvaluationFilter) ([]collection.Evaluation, error) {
	args := m.Called(ctx, clientID, filter)
	return args.Get(0).([]collection.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) FindAll(ctx context.Context, filter collection.EvaluationFilter) ([]collection.Evaluation, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]collection.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) Save(ctx context.Context, evaluation *collection.Evaluation) error {
	args := m.Called(ctx, evaluation)
	return args.Error(0)
}

func (m *MockEvaluationRepository) Count(ctx context.Context, filter collection.EvaluationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
	Published []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	m.Published = append(m.Published, events...)
	return args.Error(0)
}
