package streamengine

import "context"

// processorOperator is the runtime object produced by NewStreamProcessor: a
// stateless (or self-contained) stage described entirely by a Reducer. It
// has no independent ProcessAll semantics of its own — it participates in a
// pipeline by being composed into the pre-aggregation reducer chain. Used
// standalone, ProcessAll simply realizes the reducer over the batch and
// discards the result, which is only useful for reducers kept for their
// side effects.
type processorOperator struct {
	reducer Reducer
	reset   func(ctx context.Context)
}

// NewStreamProcessor builds a StreamOperator out of a single Reducer. Its
// Reset is a no-op; NewStreamProcessorWithReset attaches a reset callback.
func NewStreamProcessor(reducer Reducer) (ReducerOperator, error) {
	if reducer == nil {
		return nil, &UsageError{Component: "stream_processor", Reason: "reducer is required"}
	}
	return &processorOperator{reducer: reducer}, nil
}

// NewStreamProcessorWithReset is NewStreamProcessor with an explicit reset
// callback.
func NewStreamProcessorWithReset(reducer Reducer, reset func(ctx context.Context)) (ReducerOperator, error) {
	op, err := NewStreamProcessor(reducer)
	if err != nil {
		return nil, err
	}
	op.(*processorOperator).reset = reset
	return op, nil
}

func (p *processorOperator) ProcessAll(ctx context.Context, msgs []Message) {
	realized := p.reducer(sliceSeq(msgs))
	for range realized {
		// Realized purely for side effects; the operator has no state of
		// its own to fold the result into.
	}
}

func (p *processorOperator) Reset(ctx context.Context) {
	if p.reset != nil {
		p.reset(ctx)
	}
}

func (p *processorOperator) ReducerFn() Reducer { return p.reducer }

// aggregatorOperator is the runtime object produced by NewStreamAggregator:
// a stateful sink described by process/deref/reset/flush callbacks.
type aggregatorOperator struct {
	process func(ctx context.Context, msgs []Message)
	deref   func(ctx context.Context) any
	reset   func(ctx context.Context)
	flush   func(ctx context.Context)
}

// NewStreamAggregator builds an Aggregator (and BufferedAggregator) out of
// process/deref callbacks. process is authoritative; Process(msg) is
// defined as ProcessAll([]Message{msg}). reset and flush may be nil.
func NewStreamAggregator(
	process func(ctx context.Context, msgs []Message),
	deref func(ctx context.Context) any,
	reset func(ctx context.Context),
	flush func(ctx context.Context),
) (*aggregatorOperator, error) {
	if process == nil {
		return nil, &UsageError{Component: "stream_aggregator", Reason: "process is required"}
	}
	if deref == nil {
		return nil, &UsageError{Component: "stream_aggregator", Reason: "deref is required"}
	}
	return &aggregatorOperator{process: process, deref: deref, reset: reset, flush: flush}, nil
}

func (a *aggregatorOperator) ProcessAll(ctx context.Context, msgs []Message) { a.process(ctx, msgs) }

func (a *aggregatorOperator) Process(ctx context.Context, msg Message) {
	a.process(ctx, []Message{msg})
}

func (a *aggregatorOperator) Deref(ctx context.Context) any { return a.deref(ctx) }

func (a *aggregatorOperator) Reset(ctx context.Context) {
	if a.reset != nil {
		a.reset(ctx)
	}
}

// Flush invokes the operator's flush callback, which must be called before
// a Deref that needs to observe all buffered state. A nil flush callback
// means the aggregator never buffers, so Flush is a no-op.
func (a *aggregatorOperator) Flush(ctx context.Context) {
	if a.flush != nil {
		a.flush(ctx)
	}
}

func sliceSeq(msgs []Message) Seq {
	return func(yield func(Message) bool) {
		for _, m := range msgs {
			if !yield(m) {
				return
			}
		}
	}
}

// ReducerGenerator builds the canonical concurrent, non-aggregator
// generator described in spec as reducer_op: a stream_processor_generator
// whose Create always yields a fresh stream_processor wrapping f.
func ReducerGenerator(f Reducer) OperatorGenerator {
	return NewGenerator(
		func(ctx context.Context, opts Options) (StreamOperator, error) {
			return NewStreamProcessor(f)
		},
		WithConcurrent(true),
		WithDescriptor(f),
	)
}

// MapGenerator lifts a pointwise Message transform into a Reducer-based
// generator (map_op in spec).
func MapGenerator(f func(Message) Message) OperatorGenerator {
	return ReducerGenerator(func(in Seq) Seq {
		return func(yield func(Message) bool) {
			for m := range in {
				if !yield(f(m)) {
					return
				}
			}
		}
	})
}

// MapcatGenerator lifts a one-to-many Message transform into a
// Reducer-based generator (mapcat_op in spec).
func MapcatGenerator(f func(Message) []Message) OperatorGenerator {
	return ReducerGenerator(func(in Seq) Seq {
		return func(yield func(Message) bool) {
			for m := range in {
				for _, out := range f(m) {
					if !yield(out) {
						return
					}
				}
			}
		}
	})
}

// FilterGenerator is a convenience built from MapcatGenerator, mirroring
// the "filter-via-mapcat" idiom from the spec's split test scenario.
func FilterGenerator(pred func(Message) bool) OperatorGenerator {
	return MapcatGenerator(func(m Message) []Message {
		if pred(m) {
			return []Message{m}
		}
		return nil
	})
}
