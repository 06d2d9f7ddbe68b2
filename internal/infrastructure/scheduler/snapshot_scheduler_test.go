package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingRefresher struct {
	calls int32
	err   error
}

func (r *countingRefresher) RefreshSnapshots(ctx context.Context, asOf time.Time) (int, error) {
	atomic.AddInt32(&r.calls, 1)
	if r.err != nil {
		return 0, r.err
	}
	return 7, nil
}

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestSnapshotScheduler_StartStop(t *testing.T) {
	refresher := &countingRefresher{}
	cfg := DefaultSnapshotSchedulerConfig()
	cfg.CheckInterval = 10 * time.Millisecond
	s := NewSnapshotScheduler(cfg, refresher, newTestLogger())

	require.NoError(t, s.Start(context.Background()))
	// Second start is a no-op
	require.NoError(t, s.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}

func TestSnapshotScheduler_RunsOncePastScheduledTime(t *testing.T) {
	refresher := &countingRefresher{}
	cfg := SnapshotSchedulerConfig{
		RunHour:       0,
		RunMinute:     0,
		CheckInterval: 10 * time.Millisecond,
	}
	s := NewSnapshotScheduler(cfg, refresher, newTestLogger())

	require.NoError(t, s.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	}()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&refresher.calls) == 1
	}, time.Second, 10*time.Millisecond)

	// The same date never triggers twice
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refresher.calls))
}

func TestSnapshotScheduler_DoesNotRunBeforeScheduledTime(t *testing.T) {
	refresher := &countingRefresher{}
	cfg := SnapshotSchedulerConfig{
		RunHour:       23,
		RunMinute:     59,
		CheckInterval: 10 * time.Millisecond,
	}
	s := NewSnapshotScheduler(cfg, refresher, newTestLogger())

	require.NoError(t, s.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Stop(ctx)
	}()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&refresher.calls))
}

func TestSnapshotScheduler_RunNow(t *testing.T) {
	refresher := &countingRefresher{}
	s := NewSnapshotScheduler(DefaultSnapshotSchedulerConfig(), refresher, newTestLogger())

	updated, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, updated)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refresher.calls))
}

func TestSnapshotScheduler_RunNowPropagatesError(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("db unavailable")}
	s := NewSnapshotScheduler(DefaultSnapshotSchedulerConfig(), refresher, newTestLogger())

	_, err := s.RunNow(context.Background())
	assert.Error(t, err)
}
