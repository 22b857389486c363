// Package split implements the built-in fan-out composite operator (C5):
// given a keyed mapping of sub-descriptors, each key is compiled
// independently and every inbound batch is fanned to all of them.
package split

import (
	"context"
	"math/rand"
	"sync"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc"

	"github.com/project/streamline/streamengine"
)

// Compiler compiles a single sub-descriptor into a generator. It exists so
// this package does not need to import the compile package (which itself
// depends on split), avoiding an import cycle; callers pass
// compile.Compile.
type Compiler func(descriptor any) (streamengine.OperatorGenerator, error)

// Generator builds the split's OperatorGenerator from a keyed mapping of
// sub-descriptors and the Compiler used to compile each of them
// independently.
func Generator(descriptors map[string]any, compiler Compiler) (streamengine.OperatorGenerator, error) {
	subGenerators := make(map[string]streamengine.OperatorGenerator, len(descriptors))
	for key, d := range descriptors {
		g, err := compiler(d)
		if err != nil {
			return nil, err
		}
		subGenerators[key] = g
	}

	allConcurrent := lo.EveryBy(lo.Values(subGenerators), func(g streamengine.OperatorGenerator) bool {
		return g.IsConcurrent()
	})

	combiner, hasCombiner := pointwiseCombiner(subGenerators)

	create := func(ctx context.Context, opts streamengine.Options) (streamengine.StreamOperator, error) {
		ops := make(map[string]streamengine.StreamOperator, len(subGenerators))
		for key, g := range subGenerators {
			subOpts := opts
			if !g.IsConcurrent() {
				affinity := rand.Int()
				subOpts.ExecutionAffinity = &affinity
			}
			op, err := g.Create(ctx, subOpts)
			if err != nil {
				return nil, err
			}
			ops[key] = op
		}
		return &operator{ops: ops}, nil
	}

	genOpts := []streamengine.GeneratorOption{
		streamengine.WithAggregator(true),
		streamengine.WithConcurrent(allConcurrent),
		streamengine.WithEmitter(pointwiseEmitter(subGenerators)),
		streamengine.WithDescriptor(descriptors),
	}
	if hasCombiner {
		genOpts = append(genOpts, streamengine.WithCombiner(combiner))
	}

	return streamengine.NewGenerator(create, genOpts...), nil
}

// pointwiseCombiner exposes a merge Combiner only if every sub-generator
// has one; per spec §4.4 a missing key is sentinel-filtered (dropped) from
// the merge rather than failing the whole split.
func pointwiseCombiner(gens map[string]streamengine.OperatorGenerator) (streamengine.Combiner, bool) {
	allHaveCombiner := true
	combiners := lo.MapValues(gens, func(g streamengine.OperatorGenerator, _ string) streamengine.Combiner {
		c, ok := g.Combiner()
		if !ok {
			allHaveCombiner = false
		}
		return c
	})
	if !allHaveCombiner {
		return nil, false
	}

	return func(a, b any) any {
		am, _ := a.(map[string]any)
		bm, _ := b.(map[string]any)
		out := make(map[string]any, len(combiners))
		for key, combine := range combiners {
			av, aok := am[key]
			bv, bok := bm[key]
			switch {
			case aok && bok:
				out[key] = combine(av, bv)
			case aok:
				out[key] = av
			case bok:
				out[key] = bv
			}
		}
		return out
	}, true
}

func pointwiseEmitter(gens map[string]streamengine.OperatorGenerator) streamengine.Emitter {
	return func(v any) any {
		m, _ := v.(map[string]any)
		out := make(map[string]any, len(m))
		for key, val := range m {
			if g, ok := gens[key]; ok {
				out[key] = g.Emitter()(val)
				continue
			}
			out[key] = val
		}
		return out
	}
}

// operator is the split's runtime object: a keyed map of sub-operators,
// each fed the same batch.
type operator struct {
	mu  sync.RWMutex
	ops map[string]streamengine.StreamOperator
}

func (o *operator) ProcessAll(ctx context.Context, msgs []streamengine.Message) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var wg conc.WaitGroup
	for _, op := range o.ops {
		op := op
		wg.Go(func() { op.ProcessAll(ctx, msgs) })
	}
	wg.Wait()
}

func (o *operator) Reset(ctx context.Context) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, op := range o.ops {
		op.Reset(ctx)
	}
}

func (o *operator) Flush(ctx context.Context) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, op := range o.ops {
		if f, ok := op.(streamengine.BufferedAggregator); ok {
			f.Flush(ctx)
		}
	}
}

func (o *operator) Deref(ctx context.Context) any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[string]any, len(o.ops))
	for key, op := range o.ops {
		if ag, ok := op.(streamengine.Aggregator); ok {
			out[key] = ag.Deref(ctx)
		}
	}
	return out
}
