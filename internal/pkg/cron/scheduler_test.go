package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/leave-backend-go/internal/domain/calendarsync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSync struct {
	calls  atomic.Int32
	result calendarsync.SyncResult
	err    error
}

func (s *stubSync) Status(context.Context) (calendarsync.StatusResponse, error) {
	return calendarsync.StatusResponse{}, nil
}

func (s *stubSync) SyncAll(context.Context) (calendarsync.SyncResult, error) {
	s.calls.Add(1)
	return s.result, s.err
}

func TestAddJobIgnoresNonPositiveInterval(t *testing.T) {
	s := NewScheduler()
	s.AddJob("off", 0, func(context.Context) error { return nil })
	s.AddJob("on", time.Minute, func(context.Context) error { return nil })
	assert.Equal(t, 1, s.Len())
}

func TestRunOnceRunsEveryJob(t *testing.T) {
	s := NewScheduler()
	var ran []string
	record := func(name string, err error) func(context.Context) error {
		return func(context.Context) error {
			ran = append(ran, name)
			return err
		}
	}
	s.AddJob("a", time.Hour, record("a", nil))
	s.AddJob("b", time.Hour, record("b", errors.New("boom")))
	s.AddJob("c", time.Hour, record("c", nil))

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"a", "b", "c"}, ran)
}

func TestStartTicksUntilStopped(t *testing.T) {
	s := NewScheduler()
	var n atomic.Int32
	s.AddJob("tick", 5*time.Millisecond, func(context.Context) error {
		n.Add(1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return n.Load() >= 2 }, time.Second, time.Millisecond)
	s.Stop()

	after := n.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, n.Load())
}

func TestStopWithoutStart(t *testing.T) {
	assert.NotPanics(t, func() { NewScheduler().Stop() })
}

func TestCalendarSyncJob(t *testing.T) {
	svc := &stubSync{result: calendarsync.SyncResult{Synced: 3}}
	s := NewScheduler()
	RegisterCalendarSync(s, svc, time.Hour)
	require.Equal(t, 1, s.Len())

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), svc.calls.Load())
}

func TestCalendarSyncJobReportsFailures(t *testing.T) {
	s := NewScheduler()
	RegisterCalendarSync(s, &stubSync{result: calendarsync.SyncResult{Synced: 1, Failed: 2}}, time.Hour)
	captured := s.jobs[0].Fn(context.Background())
	require.Error(t, captured)
	assert.Contains(t, captured.Error(), "2 of 3")

	s = NewScheduler()
	RegisterCalendarSync(s, &stubSync{err: calendarsync.ErrSyncDisabled}, time.Hour)
	assert.ErrorIs(t, s.jobs[0].Fn(context.Background()), calendarsync.ErrSyncDisabled)
}
