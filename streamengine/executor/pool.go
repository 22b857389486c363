// Package executor implements the concurrent execution substrate (C7): a
// bounded worker pool with exactly one single-threaded worker per CPU core,
// a counting semaphore tracking logical task lifetimes across fanned-out
// work units, and a barrier primitive for flush/reset escalation.
package executor

import (
	"context"
	"runtime"
)

// worker is a single-threaded FIFO task queue. Workers are daemon-like:
// nothing about them keeps the process alive beyond the queue channel
// itself, so their presence never blocks shutdown.
type worker struct {
	tasks chan func()
}

func newWorker(queueSize int) *worker {
	w := &worker{tasks: make(chan func(), queueSize)}
	go w.loop()
	return w
}

func (w *worker) loop() {
	for fn := range w.tasks {
		w.runSafely(fn)
	}
}

// runSafely swallows any panic raised by a submitted task. A failed shard
// continues on with whatever state it already had — a documented
// limitation (ShardFailure in the spec's error taxonomy), not a bug.
func (w *worker) runSafely(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// submit enqueues fn for this worker, reporting false if the queue is full.
func (w *worker) submit(fn func()) bool {
	select {
	case w.tasks <- fn:
		return true
	default:
		return false
	}
}

// Pool is a fixed set of single-threaded workers, one per CPU core by
// default, dispatched to by explicit worker index. No implicit
// thread-per-task is ever created.
type Pool struct {
	workers []*worker
	leases  *leaseTable
}

const defaultQueueSize = 4096

// NewPool creates numWorkers single-threaded workers, eagerly. numWorkers
// defaults to runtime.NumCPU() when <= 0.
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	p := &Pool{
		workers: make([]*worker, numWorkers),
		leases:  newLeaseTable(),
	}
	for i := range p.workers {
		p.workers[i] = newWorker(defaultQueueSize)
	}
	return p
}

// NumWorkers reports the number of workers in the pool (runtime.NumCPU()
// when NewPool was given a count <= 0).
func (p *Pool) NumWorkers() int { return len(p.workers) }

// SubmitTask dispatches fn to the worker at workerIdx under the task lease
// discipline described in spec §4.6: if ctx already runs inside a logical
// task, fn's submission joins that task's lease count without touching
// sem; otherwise sem gates a freshly allocated logical task. fn observes a
// ctx with the (possibly new) task id bound, so nested submissions made
// from within fn correctly join the same lease.
//
// If the worker's queue is full, the lease taken out above is unwound
// immediately, matching "if submit fails, the task lease is decremented
// immediately".
func (p *Pool) SubmitTask(ctx context.Context, sem *Semaphore, workerIdx int, fn func(ctx context.Context)) bool {
	taskCtx, release := p.leases.enter(ctx, sem)
	ok := p.workers[workerIdx%len(p.workers)].submit(func() {
		defer release()
		fn(taskCtx)
	})
	if !ok {
		release()
	}
	return ok
}
