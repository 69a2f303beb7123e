package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorker_EnqueueRunsJobs(t *testing.T) {
	w := NewWorker(2)

	var wg sync.WaitGroup
	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		w.Enqueue("count", func(ctx context.Context) error {
			defer wg.Done()
			ran.Add(1)
			return nil
		})
	}
	wg.Wait()
	w.Shutdown()

	assert.Equal(t, int32(10), ran.Load())
	assert.Equal(t, int64(10), w.GetStats().CompletedJobs)
}

func TestWorker_EnqueueAsyncTracksFailuresAndPanics(t *testing.T) {
	w := NewWorker(1)

	w.EnqueueAsync("fails", func(ctx context.Context) error { return errors.New("boom") })
	w.EnqueueAsync("panics", func(ctx context.Context) error { panic("bad") })
	w.EnqueueAsync("ok", func(ctx context.Context) error { return nil })
	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int64(3), stats.CompletedJobs)
	assert.Equal(t, int64(2), stats.FailedJobs)
	assert.Equal(t, 0, stats.ActiveJobs)
}

func TestWorker_ScheduleEveryImmediateRunsAtStart(t *testing.T) {
	w := NewWorker(1)
	done := make(chan struct{}, 1)

	w.ScheduleEveryImmediate("tick", time.Hour, func(ctx context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job did not run at start")
	}
	w.Shutdown()
}

func TestWorker_DropsJobsAfterShutdown(t *testing.T) {
	w := NewWorker(1)
	w.Shutdown()

	called := false
	w.Enqueue("late", func(ctx context.Context) error { called = true; return nil })
	w.EnqueueAsync("late", func(ctx context.Context) error { called = true; return nil })
	w.Shutdown()

	assert.False(t, called)
}
