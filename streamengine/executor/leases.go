package executor

import (
	"context"
	"sync"
	"sync/atomic"
)

// taskID identifies one logical task: a producer task that may fan out
// into multiple submitted work units, all sharing a single semaphore
// permit.
type taskID uint64

var taskSeq uint64

type taskIDKey struct{}

func taskFromContext(ctx context.Context) (taskID, bool) {
	id, ok := ctx.Value(taskIDKey{}).(taskID)
	return id, ok
}

// leaseTable maps task identity to its outstanding submitted-work-unit
// count. It is a concurrent map guarded by a single mutex; increments and
// decrements are the only operations, so contention is not a concern at the
// scale this engine targets.
type leaseTable struct {
	mu     sync.Mutex
	counts map[taskID]int
}

func newLeaseTable() *leaseTable {
	return &leaseTable{counts: make(map[taskID]int)}
}

// enter implements the submission-time lease bookkeeping from spec §4.6.
// It returns a context with the (possibly new) task id bound, and a
// release func to call exactly once when the submitted work unit
// completes (or fails to submit at all).
func (t *leaseTable) enter(ctx context.Context, sem *Semaphore) (context.Context, func()) {
	if id, ok := taskFromContext(ctx); ok {
		t.increment(id)
		return ctx, func() { t.complete(id, sem) }
	}

	sem.Acquire()
	id := taskID(atomic.AddUint64(&taskSeq, 1))
	t.mu.Lock()
	t.counts[id] = 1
	t.mu.Unlock()

	return context.WithValue(ctx, taskIDKey{}, id), func() { t.complete(id, sem) }
}

func (t *leaseTable) increment(id taskID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[id]++
}

// complete decrements the lease for id; when it reaches zero the entry is
// removed and one permit is released. If the entry does not exist at all —
// the submission that would have created it never succeeded — a permit is
// released directly, as a fallback that keeps the semaphore's accounting
// correct even on that race.
func (t *leaseTable) complete(id taskID, sem *Semaphore) {
	t.mu.Lock()
	count, ok := t.counts[id]
	if !ok {
		t.mu.Unlock()
		sem.Release()
		return
	}
	count--
	if count <= 0 {
		delete(t.counts, id)
		t.mu.Unlock()
		sem.Release()
		return
	}
	t.counts[id] = count
	t.mu.Unlock()
}
