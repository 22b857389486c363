package executor

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPool_SubmitTask_RunsOnChosenWorker(t *testing.T) {
	t.Parallel()

	pool := NewPool(2)
	sem := NewSemaphore(4)

	var ran atomic.Bool
	done := make(chan struct{})

	ok := pool.SubmitTask(context.Background(), sem, 0, func(ctx context.Context) {
		ran.Store(true)
		close(done)
	})
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}
	require.True(t, ran.Load())
}

func TestPool_SubmitTask_FanOutSharesOnePermit(t *testing.T) {
	t.Parallel()

	pool := NewPool(4)
	sem := NewSemaphore(1)

	var wg sync.WaitGroup
	wg.Add(1)

	pool.SubmitTask(context.Background(), sem, 0, func(ctx context.Context) {
		defer wg.Done()

		var inner sync.WaitGroup
		for i := 0; i < 8; i++ {
			inner.Add(1)
			idx := i
			// Worker 0 is busy running this outer task, so the fanned-out
			// units go to workers 1..3 to avoid queueing behind it.
			ok := pool.SubmitTask(ctx, sem, 1+idx%3, func(ctx context.Context) {
				defer inner.Done()
			})
			require.True(t, ok)
		}
		inner.Wait()
	})

	wg.Wait()

	// The one top-level task (plus its 8 fanned-out units) must release
	// back to a fully-available semaphore; a leak would block Acquire.
	acquired := make(chan struct{})
	go func() {
		sem.Acquire()
		close(acquired)
	}()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("permit never released after fan-out completed")
	}
}

func TestPool_SubmitTask_PanicIsSwallowed(t *testing.T) {
	t.Parallel()

	pool := NewPool(1)
	sem := NewSemaphore(1)
	done := make(chan struct{})

	ok := pool.SubmitTask(context.Background(), sem, 0, func(ctx context.Context) {
		defer close(done)
		panic("boom")
	})
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panicking task blocked the worker")
	}

	// The worker must still accept further work after swallowing a panic.
	next := make(chan struct{})
	ok = pool.SubmitTask(context.Background(), sem, 0, func(ctx context.Context) {
		close(next)
	})
	require.True(t, ok)
	select {
	case <-next:
	case <-time.After(time.Second):
		t.Fatal("worker did not recover after a panicking task")
	}
}

func TestPool_SubmitTask_FullQueueReleasesPermitImmediately(t *testing.T) {
	t.Parallel()

	pool := NewPool(1)
	sem := NewSemaphore(1)

	// Block the worker on a task it has definitely already picked up, then
	// fill the remaining buffer deterministically before submitting once
	// more so that final submit is guaranteed to fail.
	started := make(chan struct{})
	block := make(chan struct{})
	pool.workers[0].submit(func() {
		close(started)
		<-block
	})
	<-started

	for i := 0; i < defaultQueueSize; i++ {
		require.True(t, pool.workers[0].submit(func() { <-block }))
	}

	ok := pool.SubmitTask(context.Background(), sem, 0, func(ctx context.Context) {})
	require.False(t, ok)

	acquired := make(chan struct{})
	go func() {
		sem.Acquire()
		close(acquired)
	}()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("permit was not released after a failed submission")
	}
	close(block)
}
