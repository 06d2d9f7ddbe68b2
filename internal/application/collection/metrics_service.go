package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/domain/identity"
	"github.com/audicob/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MetricsService assembles management reports over the client base
type MetricsService struct {
	clientRepo     collection.ClientRepository
	assignmentRepo collection.AssignmentRepository
	userRepo       identity.UserRepository
	logger         *zap.Logger
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(
	clientRepo collection.ClientRepository,
	assignmentRepo collection.AssignmentRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *MetricsService {
	return &MetricsService{
		clientRepo:     clientRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// DelinquencyReport counts clients and totals their debt per severity
// level, and derives the share of the base that is behind on payments.
func (s *MetricsService) DelinquencyReport(ctx context.Context) (*DelinquencyReport, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "metrics", "delinquency_report")
	defer span.End()

	counts, err := s.clientRepo.CountByDelinquencyStatus(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	owed, err := s.clientRepo.SumDebtByDelinquencyStatus(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to sum debt by status: %w", err)
	}

	report := &DelinquencyReport{
		GeneratedAt:       time.Now(),
		CountByStatus:     make(map[collection.DelinquencyStatus]int64, len(collection.AllDelinquencyStatuses)),
		TotalOwedByStatus: make(map[collection.DelinquencyStatus]decimal.Decimal, len(collection.AllDelinquencyStatuses)),
		TotalOwed:         decimal.Zero,
	}

	var delinquent int64
	for _, status := range collection.AllDelinquencyStatuses {
		count := counts[status]
		report.CountByStatus[status] = count
		report.TotalClients += count
		if status != collection.DelinquencyCurrent {
			delinquent += count
		}

		total, ok := owed[status]
		if !ok {
			total = decimal.Zero
		}
		report.TotalOwedByStatus[status] = total
		report.TotalOwed = report.TotalOwed.Add(total)
	}

	if report.TotalClients > 0 {
		report.DelinquentRate = float64(delinquent) / float64(report.TotalClients)
	}

	return report, nil
}

// AdvisorReport summarizes portfolio sizes for every active advisor
func (s *MetricsService) AdvisorReport(ctx context.Context) ([]AdvisorReportLine, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "metrics", "advisor_report")
	defer span.End()

	advisors, err := s.userRepo.FindByRole(ctx, identity.RoleAdvisor)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to load advisors: %w", err)
	}

	lines := make([]AdvisorReportLine, 0, len(advisors))
	for i := range advisors {
		size, err := s.assignmentRepo.CountActiveByAdvisor(ctx, advisors[i].ID)
		if err != nil {
			s.logger.Warn("Failed to count advisor portfolio",
				zap.String("advisor_id", advisors[i].ID.String()), zap.Error(err))
			continue
		}
		lines = append(lines, AdvisorReportLine{
			AdvisorID:     advisors[i].ID,
			AdvisorName:   advisors[i].GetDisplayNameOrUsername(),
			PortfolioSize: size,
		})
	}

	return lines, nil
}
