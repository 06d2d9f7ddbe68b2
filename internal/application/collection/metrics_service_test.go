package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMetricsFixture(t *testing.T) (*MetricsService, *MockClientRepository, *MockAssignmentRepository, *MockUserRepository) {
	clientRepo := new(MockClientRepository)
	assignmentRepo := new(MockAssignmentRepository)
	userRepo := new(MockUserRepository)
	svc := NewMetricsService(clientRepo, assignmentRepo, userRepo, zap.NewNop())
	return svc, clientRepo, assignmentRepo, userRepo
}

func TestMetricsService_DelinquencyReport(t *testing.T) {
	svc, clientRepo, _, _ := newMetricsFixture(t)

	clientRepo.On("CountByDelinquencyStatus", mock.Anything).Return(map[collection.DelinquencyStatus]int64{
		collection.DelinquencyCurrent:  60,
		collection.DelinquencyEarly:    25,
		collection.DelinquencyModerate: 10,
		collection.DelinquencySevere:   5,
	}, nil)
	clientRepo.On("SumDebtByDelinquencyStatus", mock.Anything).Return(map[collection.DelinquencyStatus]decimal.Decimal{
		collection.DelinquencyCurrent:  decimal.NewFromInt(1200),
		collection.DelinquencyEarly:    decimal.NewFromFloat(3400.50),
		collection.DelinquencyModerate: decimal.NewFromInt(8900),
		collection.DelinquencySevere:   decimal.NewFromInt(15000),
	}, nil)

	report, err := svc.DelinquencyReport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(100), report.TotalClients)
	assert.Equal(t, int64(60), report.CountByStatus[collection.DelinquencyCurrent])
	assert.InDelta(t, 0.40, report.DelinquentRate, 0.001)

	assert.True(t, report.TotalOwedByStatus[collection.DelinquencySevere].Equal(decimal.NewFromInt(15000)))
	assert.True(t, report.TotalOwedByStatus[collection.DelinquencyEarly].Equal(decimal.NewFromFloat(3400.50)))
	assert.True(t, report.TotalOwed.Equal(decimal.NewFromFloat(28500.50)))
}

// Severity levels with no clients still appear in the report, zeroed.
func TestMetricsService_DelinquencyReport_FillsMissingStatuses(t *testing.T) {
	svc, clientRepo, _, _ := newMetricsFixture(t)

	clientRepo.On("CountByDelinquencyStatus", mock.Anything).Return(map[collection.DelinquencyStatus]int64{
		collection.DelinquencyCurrent: 3,
	}, nil)
	clientRepo.On("SumDebtByDelinquencyStatus", mock.Anything).Return(map[collection.DelinquencyStatus]decimal.Decimal{
		collection.DelinquencyCurrent: decimal.NewFromInt(500),
	}, nil)

	report, err := svc.DelinquencyReport(context.Background())

	require.NoError(t, err)
	require.Len(t, report.CountByStatus, len(collection.AllDelinquencyStatuses))
	require.Len(t, report.TotalOwedByStatus, len(collection.AllDelinquencyStatuses))
	for _, status := range collection.AllDelinquencyStatuses {
		if status == collection.DelinquencyCurrent {
			continue
		}
		assert.Zero(t, report.CountByStatus[status])
		assert.True(t, report.TotalOwedByStatus[status].IsZero(), "status %s", status)
	}
	assert.True(t, report.TotalOwed.Equal(decimal.NewFromInt(500)))
	assert.Zero(t, report.DelinquentRate)
}

func TestMetricsService_DelinquencyReport_SumFailure(t *testing.T) {
	svc, clientRepo, _, _ := newMetricsFixture(t)

	clientRepo.On("CountByDelinquencyStatus", mock.Anything).Return(map[collection.DelinquencyStatus]int64{}, nil)
	clientRepo.On("SumDebtByDelinquencyStatus", mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := svc.DelinquencyReport(context.Background())

	assert.Error(t, err)
}
