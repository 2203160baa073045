package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestScheduler_RunsJobPeriodically(t *testing.T) {
	var runs atomic.Int32
	s := New("test", 10*time.Millisecond, func() { runs.Add(1) }, zaptest.NewLogger(t))

	s.Start()
	assert.True(t, s.IsRunning())

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	s.Stop()
	assert.False(t, s.IsRunning())

	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load(), "job must not run after Stop")
}

func TestScheduler_FirstRunIsImmediate(t *testing.T) {
	var runs atomic.Int32
	s := New("test", time.Hour, func() { runs.Add(1) }, zaptest.NewLogger(t))

	s.Start()
	defer s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StartTwiceIsNoop(t *testing.T) {
	var runs atomic.Int32
	s := New("test", time.Hour, func() { runs.Add(1) }, zaptest.NewLogger(t))

	s.Start()
	s.Start()
	assert.True(t, s.IsRunning())

	s.Stop()
	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_PanickingJobKeepsRunning(t *testing.T) {
	var runs atomic.Int32
	s := New("test", 10*time.Millisecond, func() {
		runs.Add(1)
		panic("boom")
	}, zaptest.NewLogger(t))

	assert.NotPanics(t, s.Start)
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_RestartAfterStop(t *testing.T) {
	var runs atomic.Int32
	s := New("test", time.Hour, func() { runs.Add(1) }, zaptest.NewLogger(t))

	s.Start()
	s.Stop()
	s.Start()
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Equal(t, int32(2), runs.Load())
}
