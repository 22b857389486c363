package executor

import "context"

// Semaphore is a counting permit set governing concurrent logical tasks,
// not threads. It may be shared across every buffered aggregator belonging
// to the same compiled pipeline.
type Semaphore struct {
	ch      chan struct{}
	permits int
}

// NewSemaphore creates a semaphore with the given number of permits.
func NewSemaphore(permits int) *Semaphore {
	if permits <= 0 {
		permits = 1
	}
	s := &Semaphore{ch: make(chan struct{}, permits), permits: permits}
	for i := 0; i < permits; i++ {
		s.ch <- struct{}{}
	}
	return s
}

// Acquire blocks until one permit is available.
func (s *Semaphore) Acquire() { <-s.ch }

// Release returns one permit.
func (s *Semaphore) Release() { s.ch <- struct{}{} }

func (s *Semaphore) acquireAll() {
	for i := 0; i < s.permits; i++ {
		<-s.ch
	}
}

func (s *Semaphore) releaseAll() {
	for i := 0; i < s.permits; i++ {
		s.ch <- struct{}{}
	}
}

type barrierKey struct{}

// InBarrier reports whether ctx is executing inside an already-held
// exclusive lock. The buffered aggregator uses this to choose a synchronous
// flush over an asynchronous submission.
func InBarrier(ctx context.Context) bool {
	v, _ := ctx.Value(barrierKey{}).(bool)
	return v
}

func withBarrier(ctx context.Context) context.Context {
	return context.WithValue(ctx, barrierKey{}, true)
}

// RunExclusive acquires every permit in the semaphore and runs fn, unless
// ctx already signals that the exclusive lock is held on this logical
// path — in which case fn runs immediately, reentrantly, without
// re-acquiring. This lets a flush that itself calls flushable
// sub-operators avoid self-deadlock.
func (s *Semaphore) RunExclusive(ctx context.Context, fn func(ctx context.Context)) {
	if InBarrier(ctx) {
		fn(ctx)
		return
	}
	s.acquireAll()
	defer s.releaseAll()
	fn(withBarrier(ctx))
}
