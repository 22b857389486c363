// Package monoid implements the generic monoid aggregator (C3): a shard
// holds a single mutable cell seeded by initial() and folded by combine(),
// with combine doubling as the generator-level shard-merge Combiner.
package monoid

import (
	"context"

	"github.com/project/streamline/streamengine"
)

// Initial produces the neutral element of the monoid.
type Initial func() any

// Combine folds two values into one. It must be associative; when the
// generator is used concurrently it must also be commutative, since
// dereferenced shard snapshots are combined in no particular order.
type Combine func(a, b any) any

// PreProcess maps a raw message into the monoid's value domain before
// folding. Defaults to identity.
type PreProcess func(msg streamengine.Message) any

// Option configures a monoid generator.
type Option func(*config)

type config struct {
	preProcess  PreProcess
	emit        streamengine.Emitter
	clearOnReset bool
}

func WithPreProcess(p PreProcess) Option { return func(c *config) { c.preProcess = p } }
func WithEmit(e streamengine.Emitter) Option { return func(c *config) { c.emit = e } }
func WithClearOnReset(clear bool) Option {
	return func(c *config) { c.clearOnReset = clear }
}

// Generator builds the monoid aggregator's OperatorGenerator. The monoid
// aggregator runs single-threaded per instance and reports itself
// non-concurrent; combine doubles as the generator's Combiner for merging
// snapshots of separate instances. Compile creates one instance per
// pipeline and does not shard it.
func Generator(initial Initial, combine Combine, opts ...Option) streamengine.OperatorGenerator {
	cfg := &config{clearOnReset: true}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.preProcess == nil {
		cfg.preProcess = func(msg streamengine.Message) any { return msg }
	}

	create := func(ctx context.Context, _ streamengine.Options) (streamengine.StreamOperator, error) {
		cell := initial()

		process := func(ctx context.Context, msgs []streamengine.Message) {
			folded := initial()
			for _, m := range msgs {
				folded = combine(folded, cfg.preProcess(m))
			}
			cell = combine(cell, folded)
		}
		deref := func(ctx context.Context) any { return cell }
		reset := func(ctx context.Context) {
			if cfg.clearOnReset {
				cell = initial()
			}
		}

		return streamengine.NewStreamAggregator(process, deref, reset, nil)
	}

	genOpts := []streamengine.GeneratorOption{
		streamengine.WithAggregator(true),
		streamengine.WithConcurrent(false),
		streamengine.WithCombiner(streamengine.Combiner(combine)),
	}
	if cfg.emit != nil {
		genOpts = append(genOpts, streamengine.WithEmitter(cfg.emit))
	}

	return streamengine.NewGenerator(create, genOpts...)
}

// Sum is a convenience monoid generator for numeric-additive pipelines,
// grounded on the spec's "map+sum" scenario.
func Sum() streamengine.OperatorGenerator {
	return Generator(
		func() any { return 0 },
		func(a, b any) any { return a.(int) + b.(int) },
	)
}
