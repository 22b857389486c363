// Package window is a minimal supplemental client of the core's recur_to
// hook (spec §3, §9): a tumbling-count window built entirely from public
// streamengine primitives, exercising the hook end-to-end without adding
// any new surface to the root package. Time-windowing policy proper is an
// external collaborator; this is just enough wiring to prove recur_to
// composes.
package window

import (
	"context"
	"sync"

	"github.com/project/streamline/streamengine"
)

// CountWindow builds a generator that tumbles inner's state every n
// processed messages: on the n-th message of a window, inner is dereffed
// and reset, and Deref reports that snapshot until the next message
// arrives. After that, Deref reports inner's partial state.
func CountWindow(n int, inner streamengine.OperatorGenerator) streamengine.OperatorGenerator {
	if n <= 0 {
		n = 1
	}

	var gen streamengine.OperatorGenerator
	create := func(ctx context.Context, opts streamengine.Options) (streamengine.StreamOperator, error) {
		innerOp, err := inner.Create(ctx, opts)
		if err != nil {
			return nil, err
		}
		innerAgg, ok := innerOp.(streamengine.Aggregator)
		if !ok {
			return nil, &streamengine.UsageError{Component: "count_window", Reason: "inner generator must produce an Aggregator"}
		}
		return &windowOperator{inner: innerAgg, n: n}, nil
	}

	gen = streamengine.NewGenerator(
		create,
		streamengine.WithAggregator(true),
		streamengine.WithConcurrent(false),
		streamengine.WithDescriptor(inner.Descriptor()),
	)
	inner.RecurTo(gen)
	return gen
}

// windowOperator tracks a message count against inner, snapshotting and
// resetting inner every n messages.
type windowOperator struct {
	mu       sync.Mutex
	inner    streamengine.Aggregator
	n        int
	count    int
	last     any
	haveLast bool
}

func (w *windowOperator) ProcessAll(ctx context.Context, msgs []streamengine.Message) {
	for _, m := range msgs {
		w.inner.ProcessAll(ctx, []streamengine.Message{m})

		w.mu.Lock()
		w.count++
		if w.count == w.n {
			w.last = w.inner.Deref(ctx)
			w.haveLast = true
			w.inner.Reset(ctx)
			w.count = 0
		} else {
			w.haveLast = false
		}
		w.mu.Unlock()
	}
}

func (w *windowOperator) Deref(ctx context.Context) any {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.haveLast {
		return w.last
	}
	return w.inner.Deref(ctx)
}

func (w *windowOperator) Reset(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.count = 0
	w.haveLast = false
	w.inner.Reset(ctx)
}
