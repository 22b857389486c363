// Package buffered implements the buffered aggregator (C8): it adapts a
// downstream aggregator so that Process(msg) is cheap and off-thread,
// batching messages into a fixed-capacity accumulator and dispatching full
// batches to the shared executor pool.
package buffered

import (
	"context"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/project/streamline/pkg/logger"
	"github.com/project/streamline/streamengine"
	"github.com/project/streamline/streamengine/executor"
)

const DefaultCapacity = 1024

// accumulator is a fixed-capacity, single-writer-at-a-time append buffer.
// Readers (drain) always observe a frozen buffer because drain is only
// ever called after the accumulator has been swapped out of active use.
type accumulator struct {
	mu       sync.Mutex
	msgs     []streamengine.Message
	capacity int
}

func newAccumulator(capacity int) *accumulator {
	return &accumulator{msgs: make([]streamengine.Message, 0, capacity), capacity: capacity}
}

func (a *accumulator) append(msg streamengine.Message) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.msgs) >= a.capacity {
		return false
	}
	a.msgs = append(a.msgs, msg)
	return true
}

func (a *accumulator) drain() []streamengine.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.msgs
	a.msgs = nil
	return out
}

// Buffered adapts downstream into a BufferedAggregator. It presents itself
// as an aggregator to enclosing compilation: Deref and Reset simply
// forward, after the caller has flushed for a consistent view.
type Buffered struct {
	downstream streamengine.StreamOperator
	pool       *executor.Pool
	sem        *executor.Semaphore
	capacity   int
	hash       *int
	logger     *zap.Logger

	current atomicAccumulator
}

// New builds a Buffered aggregator. hash is the execution-affinity routing
// hint (nil selects a random worker per flush); sem may be shared across
// every Buffered instance belonging to the same compiled pipeline.
func New(downstream streamengine.StreamOperator, pool *executor.Pool, sem *executor.Semaphore, capacity int, hash *int, log *zap.Logger) *Buffered {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	b := &Buffered{downstream: downstream, pool: pool, sem: sem, capacity: capacity, hash: hash, logger: log}
	b.current.store(newAccumulator(capacity))
	return b
}

// Process appends msg to the active accumulator. On overflow it swaps in a
// fresh accumulator via compare-and-swap and flushes the old one —
// asynchronously unless ctx is already inside an exclusive lock, in which
// case the flush runs synchronously to avoid deadlocking the barrier.
func (b *Buffered) Process(ctx context.Context, msg streamengine.Message) {
	for {
		cur := b.current.load()
		if cur.append(msg) {
			return
		}

		fresh := newAccumulator(b.capacity)
		if b.current.compareAndSwap(cur, fresh) {
			b.flushAccumulator(ctx, cur)
			continue
		}
		// Lost the race: another goroutine already installed a fresh
		// accumulator. Retry against whatever is current now.
	}
}

func (b *Buffered) flushAccumulator(ctx context.Context, a *accumulator) {
	doFlush := func(ctx context.Context) {
		msgs := a.drain()
		if len(msgs) == 0 {
			return
		}
		b.downstream.ProcessAll(ctx, msgs)
	}

	if executor.InBarrier(ctx) {
		doFlush(ctx)
		return
	}

	ok := b.pool.SubmitTask(ctx, b.sem, b.pickWorker(), doFlush)
	if !ok {
		// The worker queue rejected the batch: flush synchronously rather
		// than silently drop it, since a CapacityStall is not an error —
		// it is retried, per spec §7.
		logger.MakeWarn(b.logger, "buffered aggregator: worker queue full, flushing synchronously")
		doFlush(ctx)
	}
}

func (b *Buffered) pickWorker() int {
	n := b.pool.NumWorkers()
	if b.hash != nil {
		h := *b.hash % n
		if h < 0 {
			h += n
		}
		return h
	}
	return rand.Intn(n)
}

// ProcessAll feeds a batch through Process one message at a time.
func (b *Buffered) ProcessAll(ctx context.Context, msgs []streamengine.Message) {
	for _, m := range msgs {
		b.Process(ctx, m)
	}
}

// Flush acquires the exclusive lock (a no-op if already held on this
// path), synchronously flushes the current accumulator, then flushes the
// downstream operator so that a subsequent Deref observes all buffered
// state.
func (b *Buffered) Flush(ctx context.Context) {
	b.sem.RunExclusive(ctx, func(ctx context.Context) {
		cur := b.current.swap(newAccumulator(b.capacity))
		msgs := cur.drain()
		if len(msgs) > 0 {
			b.downstream.ProcessAll(ctx, msgs)
		}
		if flushable, ok := b.downstream.(streamengine.BufferedAggregator); ok {
			flushable.Flush(ctx)
		}
	})
}

// Reset forwards to the downstream operator.
func (b *Buffered) Reset(ctx context.Context) {
	b.current.store(newAccumulator(b.capacity))
	b.downstream.Reset(ctx)
}

// Deref forwards to the downstream operator. Callers should Flush first
// for a consistent view.
func (b *Buffered) Deref(ctx context.Context) any {
	if ag, ok := b.downstream.(streamengine.Aggregator); ok {
		return ag.Deref(ctx)
	}
	return nil
}
