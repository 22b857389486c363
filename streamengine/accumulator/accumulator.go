// Package accumulator implements the terminal collector (C4): a concurrent
// aggregator whose snapshot is the ordered concatenation of all messages
// seen since the last reset. The compiler auto-appends one when a
// descriptor supplies no aggregator.
package accumulator

import (
	"context"
	"sync"

	"github.com/project/streamline/streamengine"
)

type state struct {
	mu   sync.Mutex
	msgs []streamengine.Message
}

func (s *state) append(msgs []streamengine.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msgs...)
}

// snapshot returns a stable, size-bounded copy so that concurrent writers
// observed after this call cannot mutate what the caller already read.
func (s *state) snapshot() []streamengine.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]streamengine.Message, len(s.msgs))
	copy(out, s.msgs)
	return out
}

// Combine concatenates two accumulator snapshots in the order given; it is
// exposed as the generator-level Combiner.
func Combine(a, b any) any {
	as, _ := a.([]streamengine.Message)
	bs, _ := b.([]streamengine.Message)
	out := make([]streamengine.Message, 0, len(as)+len(bs))
	out = append(out, as...)
	out = append(out, bs...)
	return out
}

// Generator builds the accumulator's OperatorGenerator.
func Generator() streamengine.OperatorGenerator {
	create := func(ctx context.Context, _ streamengine.Options) (streamengine.StreamOperator, error) {
		s := &state{}

		process := func(ctx context.Context, msgs []streamengine.Message) { s.append(msgs) }
		deref := func(ctx context.Context) any { return s.snapshot() }
		reset := func(ctx context.Context) { s.mu.Lock(); s.msgs = nil; s.mu.Unlock() }

		return streamengine.NewStreamAggregator(process, deref, reset, nil)
	}

	return streamengine.NewGenerator(
		create,
		streamengine.WithAggregator(true),
		streamengine.WithConcurrent(true),
		streamengine.WithCombiner(Combine),
		streamengine.WithDescriptor("accumulator"),
	)
}
