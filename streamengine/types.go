// Package streamengine defines the operator algebra at the core of the
// stream analysis engine: the abstract contracts for stream processors,
// stream aggregators, and the generators that instantiate them.
//
// Messages are represented as the dynamic value domain (any). The engine
// never inspects a message except through caller-supplied reducer, combine,
// and emit callbacks; a pipeline instance is free to fix its own message
// type and erase through this package's interfaces at the boundary.
package streamengine

import (
	"context"
	"errors"
	"iter"
)

// Message is the host value domain. The engine is deliberately untyped
// here; callers parameterize a pipeline by closing over a concrete type in
// their reducer/combine/process callbacks.
type Message = any

// Seq is a lazy sequence of messages, matching Go's standard iterator shape.
type Seq = iter.Seq[Message]

// Reducer is a composable transformation over a lazy sequence of messages.
// It is the unit of composition for pre-aggregation pipeline stages.
type Reducer func(Seq) Seq

// Combiner merges two dereferenced snapshots from independent shards. It
// must be associative and commutative up to observable semantics, since
// shard merge order is not guaranteed.
type Combiner func(a, b any) any

// Emitter is a pure, idempotent post-processing transform applied to a
// snapshot at dereference time.
type Emitter func(any) any

// Serializer exports a snapshot to its wire shape.
type Serializer func(any) ([]byte, error)

// Deserializer is the inverse of Serializer.
type Deserializer func([]byte) (any, error)

// identity implementations used as defaults.
func identityEmitter(v any) any { return v }

func identitySerializer(v any) ([]byte, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, errors.New("streamengine: default serializer requires a []byte snapshot")
	}
	return b, nil
}

func identityDeserializer(b []byte) (any, error) { return b, nil }

// StreamOperator is the runtime object that processes messages.
type StreamOperator interface {
	// ProcessAll folds a batch of messages into internal state.
	ProcessAll(ctx context.Context, msgs []Message)
	// Reset returns the operator to its post-construction state.
	Reset(ctx context.Context)
}

// ReducerOperator is a StreamOperator whose participation in a pipeline is
// entirely described by a Reducer; it has no independent ProcessAll
// semantics of its own, only composition into the pre-aggregation chain.
type ReducerOperator interface {
	StreamOperator
	ReducerFn() Reducer
}

// BufferedAggregator refines StreamOperator with a cheap, single-message
// entry point and a flush barrier that forces buffered state downstream.
type BufferedAggregator interface {
	StreamOperator
	Process(ctx context.Context, msg Message)
	Flush(ctx context.Context)
}

// Aggregator is a StreamOperator whose state can be dereferenced as a
// snapshot view of all messages observed since the last reset.
type Aggregator interface {
	StreamOperator
	Deref(ctx context.Context) any
}

// UsageError reports a missing required callback when constructing a
// stream processor or aggregator.
type UsageError struct {
	Component string
	Reason    string
}

func (e *UsageError) Error() string {
	return "streamengine: " + e.Component + ": " + e.Reason
}

var (
	// ErrUsage is a sentinel for errors.Is checks against any UsageError.
	ErrUsage = errors.New("streamengine: usage error")
)

func (e *UsageError) Unwrap() error { return ErrUsage }
