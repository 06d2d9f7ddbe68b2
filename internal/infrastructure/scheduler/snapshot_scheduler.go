package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SnapshotRefresher recomputes stored penalty snapshots for overdue debts.
type SnapshotRefresher interface {
	RefreshSnapshots(ctx context.Context, asOf time.Time) (int, error)
}

// SnapshotSchedulerConfig holds configuration for the nightly snapshot run.
type SnapshotSchedulerConfig struct {
	// RunHour and RunMinute set the daily run time in 24h local time.
	RunHour   int
	RunMinute int

	// CheckInterval is how often to check whether it is time to run.
	CheckInterval time.Duration
}

// DefaultSnapshotSchedulerConfig returns the default schedule.
func DefaultSnapshotSchedulerConfig() SnapshotSchedulerConfig {
	return SnapshotSchedulerConfig{
		RunHour:       3, // 3am, after the banking day closes
		RunMinute:     0,
		CheckInterval: time.Minute,
	}
}

// SnapshotScheduler runs the penalty snapshot refresh once per day so that
// dashboard totals stay close to the authoritative computed values.
type SnapshotScheduler struct {
	config    SnapshotSchedulerConfig
	refresher SnapshotRefresher
	logger    *zap.Logger

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewSnapshotScheduler creates a scheduler around the given refresher.
func NewSnapshotScheduler(config SnapshotSchedulerConfig, refresher SnapshotRefresher, logger *zap.Logger) *SnapshotScheduler {
	return &SnapshotScheduler{
		config:    config,
		refresher: refresher,
		logger:    logger,
	}
}

// Start begins the daily check loop. Calling Start on a running scheduler
// is a no-op.
func (s *SnapshotScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Snapshot scheduler started",
		zap.Int("run_hour", s.config.RunHour),
		zap.Int("run_minute", s.config.RunMinute),
		zap.Duration("check_interval", s.config.CheckInterval),
	)

	return nil
}

// Stop halts the loop and waits for an in-flight refresh to finish.
func (s *SnapshotScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Snapshot scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SnapshotScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRun(ctx)
		}
	}
}

func (s *SnapshotScheduler) checkAndRun(ctx context.Context) {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	s.mu.Lock()
	alreadyRan := s.lastRunDate == currentDate
	s.mu.Unlock()

	if alreadyRan {
		return
	}

	if now.Hour() < s.config.RunHour ||
		(now.Hour() == s.config.RunHour && now.Minute() < s.config.RunMinute) {
		return
	}

	s.mu.Lock()
	s.lastRunDate = currentDate
	s.mu.Unlock()

	s.logger.Info("Running scheduled snapshot refresh", zap.String("date", currentDate))

	updated, err := s.refresher.RefreshSnapshots(ctx, now)
	if err != nil {
		s.logger.Error("Scheduled snapshot refresh failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled snapshot refresh completed",
		zap.String("date", currentDate),
		zap.Int("debts_updated", updated),
	)
}

// RunNow refreshes snapshots immediately, outside the daily schedule.
func (s *SnapshotScheduler) RunNow(ctx context.Context) (int, error) {
	return s.refresher.RefreshSnapshots(ctx, time.Now())
}
