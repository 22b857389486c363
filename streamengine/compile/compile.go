// Package compile implements the compilation pipeline (C6): it normalizes
// a user descriptor, partitions it at its aggregation frontier, fuses the
// pre-aggregation stages into a single reducer chain, wires a
// post-aggregation emitter chain, and decides concurrency eligibility —
// producing one compiled OperatorGenerator.
package compile

import (
	"context"
	"fmt"
	"sync"

	"github.com/project/streamline/streamengine"
	"github.com/project/streamline/streamengine/accumulator"
	"github.com/project/streamline/streamengine/buffered"
	"github.com/project/streamline/streamengine/executor"
	"github.com/project/streamline/streamengine/split"
)

// Instantiate compiles descriptor and immediately creates a runtime
// operator from it, matching the external instantiate(descriptor,
// options) operation.
func Instantiate(ctx context.Context, descriptor any, opts streamengine.Options) (streamengine.StreamOperator, error) {
	gen, err := Compile(descriptor)
	if err != nil {
		return nil, err
	}
	return gen.Create(ctx, opts)
}

// CompilationError reports a descriptor element of unrecognized shape,
// raised synchronously from Compile.
type CompilationError struct {
	Reason string
}

func (e *CompilationError) Error() string { return "streamengine: compilation error: " + e.Reason }

// compiledGenerator marks a generator as the idempotent result of Compile,
// so a second Compile call on an already-compiled generator is a no-op.
type compiledGenerator struct {
	streamengine.OperatorGenerator
}

func isCompiled(g streamengine.OperatorGenerator) (*compiledGenerator, bool) {
	cg, ok := g.(*compiledGenerator)
	return cg, ok
}

// Compile normalizes descriptor into a single fused OperatorGenerator. It
// is idempotent: compiling an already-compiled generator returns it
// unchanged.
func Compile(descriptor any) (streamengine.OperatorGenerator, error) {
	if g, ok := descriptor.(streamengine.OperatorGenerator); ok {
		if cg, already := isCompiled(g); already {
			return cg, nil
		}
	}

	elements, err := asSequence(descriptor)
	if err != nil {
		return nil, err
	}

	gens := make([]streamengine.OperatorGenerator, 0, len(elements))
	for _, el := range elements {
		g, err := coerce(el)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}

	pre, aggr, post := partition(gens)
	if aggr == nil {
		gens = append(gens, accumulator.Generator())
		pre, aggr, post = partition(gens)
	}

	allPreConcurrent := true
	for _, g := range pre {
		if !g.IsConcurrent() {
			allPreConcurrent = false
			break
		}
	}

	_, aggrHasCombiner := aggr.Combiner()
	concurrent := allPreConcurrent && aggr.IsConcurrent() && aggrHasCombiner

	var combiner streamengine.Combiner
	hasCombiner := false
	if allPreConcurrent {
		combiner, hasCombiner = aggr.Combiner()
	}

	fused := &fusedGenerator{
		pre:        pre,
		aggr:       aggr,
		post:       post,
		concurrent: concurrent,
		descriptor: descriptor,
	}

	genOpts := []streamengine.GeneratorOption{
		streamengine.WithAggregator(true),
		streamengine.WithConcurrent(concurrent),
		streamengine.WithEmitter(fused.emit),
		streamengine.WithSerializer(aggr.Serializer(), aggr.Deserializer()),
		streamengine.WithDescriptor(descriptor),
	}
	if hasCombiner {
		genOpts = append(genOpts, streamengine.WithCombiner(combiner))
	}

	gen := streamengine.NewGenerator(fused.create, genOpts...)
	return &compiledGenerator{OperatorGenerator: gen}, nil
}

// asSequence normalizes descriptor into an ordered slice of elements,
// wrapping a non-sequential descriptor as a single-element sequence.
func asSequence(descriptor any) ([]any, error) {
	switch d := descriptor.(type) {
	case []any:
		return d, nil
	case nil:
		return nil, &CompilationError{Reason: "descriptor is nil"}
	default:
		return []any{d}, nil
	}
}

// coerce turns one descriptor element into an OperatorGenerator: identity
// for generators, invocation for marker-tagged factories, split for
// mappings, map_op for plain unary functions; any other shape is a
// compile-time error.
func coerce(el any) (streamengine.OperatorGenerator, error) {
	switch v := el.(type) {
	case streamengine.OperatorGenerator:
		return v, nil
	case streamengine.GeneratorFactory:
		return v(), nil
	case func() streamengine.OperatorGenerator:
		return v(), nil
	case map[string]any:
		return split.Generator(v, Compile)
	case func(streamengine.Message) streamengine.Message:
		return streamengine.MapGenerator(v), nil
	case []any:
		return nil, &CompilationError{Reason: "nested sequence is not an admissible descriptor element"}
	default:
		return nil, &CompilationError{Reason: fmt.Sprintf("unrecognized descriptor element of type %T", el)}
	}
}

// partition scans left-to-right: pre is the prefix of non-aggregator
// generators, aggr is the first aggregator encountered (nil if none),
// post is everything after it.
func partition(gens []streamengine.OperatorGenerator) (pre []streamengine.OperatorGenerator, aggr streamengine.OperatorGenerator, post []streamengine.OperatorGenerator) {
	for i, g := range gens {
		if g.IsAggregator() {
			aggr = g
			post = gens[i+1:]
			return pre, aggr, post
		}
		pre = append(pre, g)
	}
	return pre, nil, nil
}

// fusedGenerator holds the partitioned stages a compiled generator's Create
// instantiates.
type fusedGenerator struct {
	pre        []streamengine.OperatorGenerator
	aggr       streamengine.OperatorGenerator
	post       []streamengine.OperatorGenerator
	concurrent bool
	descriptor any
}

// emit applies the aggregator's emitter and then, if any post-stages
// exist, realizes a one-element sequence through each post-stage's reducer
// in declared order (the leftmost post-stage acts first on the snapshot).
func (f *fusedGenerator) emit(snapshot any) any {
	emitted := f.aggr.Emitter()(snapshot)
	if len(f.post) == 0 {
		return emitted
	}

	ctx := context.Background()
	seq := singletonSeq(emitted)
	for _, g := range f.post {
		op, err := g.Create(ctx, streamengine.Options{})
		if err != nil {
			continue
		}
		ro, ok := op.(streamengine.ReducerOperator)
		if !ok {
			continue
		}
		seq = ro.ReducerFn()(seq)
	}

	var out any
	for v := range seq {
		out = v
		break
	}
	return out
}

func (f *fusedGenerator) create(ctx context.Context, opts streamengine.Options) (streamengine.StreamOperator, error) {
	aggGen := f.aggr
	if opts.AggregatorGeneratorWrapper != nil {
		aggGen = opts.AggregatorGeneratorWrapper(aggGen)
	}

	aggOp, err := aggGen.Create(ctx, opts)
	if err != nil {
		return nil, err
	}

	var finalAgg streamengine.StreamOperator = aggOp
	if opts.Pool != nil {
		sem := opts.Semaphore
		if sem == nil {
			sem = executor.NewSemaphore(2 * opts.Pool.NumWorkers())
		}
		finalAgg = buffered.New(aggOp, opts.Pool, sem, opts.BufferCapacity, opts.ExecutionAffinity, nil)
	}

	var preReducer streamengine.Reducer
	if len(f.pre) > 0 {
		reducers := make([]streamengine.Reducer, 0, len(f.pre))
		for _, g := range f.pre {
			op, err := g.Create(ctx, opts)
			if err != nil {
				return nil, err
			}
			ro, ok := op.(streamengine.ReducerOperator)
			if !ok {
				return nil, &CompilationError{Reason: "pre-aggregation stage does not expose a reducer"}
			}
			reducers = append(reducers, ro.ReducerFn())
		}
		preReducer = chainReducers(reducers)
	}

	flushSet := collectFlushable(finalAgg)

	process := func(ctx context.Context, msgs []streamengine.Message) {
		transformed := msgs
		if preReducer != nil {
			if f.concurrent && opts.Pool != nil {
				transformed = parallelFoldRealize(ctx, opts.Pool, opts.Semaphore, preReducer, msgs)
			} else {
				transformed = sequentialRealize(preReducer, msgs)
			}
		}
		finalAgg.ProcessAll(ctx, transformed)
	}
	deref := func(ctx context.Context) any {
		ag, ok := finalAgg.(streamengine.Aggregator)
		if !ok {
			return nil
		}
		return f.emit(ag.Deref(ctx))
	}
	reset := func(ctx context.Context) { finalAgg.Reset(ctx) }
	flush := func(ctx context.Context) {
		for _, fl := range flushSet {
			fl.Flush(ctx)
		}
	}

	op, err := streamengine.NewStreamAggregator(process, deref, reset, flush)
	if err != nil {
		return nil, err
	}

	var result streamengine.StreamOperator = op
	if opts.CompiledOperatorWrapper != nil {
		result = opts.CompiledOperatorWrapper(result, opts)
	}
	return result, nil
}

func collectFlushable(op streamengine.StreamOperator) []streamengine.BufferedAggregator {
	if f, ok := op.(streamengine.BufferedAggregator); ok {
		return []streamengine.BufferedAggregator{f}
	}
	return nil
}

func chainReducers(rs []streamengine.Reducer) streamengine.Reducer {
	return func(seq streamengine.Seq) streamengine.Seq {
		for _, r := range rs {
			seq = r(seq)
		}
		return seq
	}
}

func sequentialRealize(r streamengine.Reducer, msgs []streamengine.Message) []streamengine.Message {
	seq := r(sliceSeq(msgs))
	out := make([]streamengine.Message, 0, len(msgs))
	for v := range seq {
		out = append(out, v)
	}
	return out
}

// parallelFoldRealize splits msgs into up to pool.NumWorkers() shards and
// realizes the reducer chain for each shard as a fanned-out logical task
// on the executor pool, preserving per-shard order while making no
// ordering guarantee across shards.
func parallelFoldRealize(ctx context.Context, pool *executor.Pool, sem *executor.Semaphore, r streamengine.Reducer, msgs []streamengine.Message) []streamengine.Message {
	n := pool.NumWorkers()
	if n <= 1 || len(msgs) <= 1 {
		return sequentialRealize(r, msgs)
	}
	if sem == nil {
		sem = executor.NewSemaphore(2 * n)
	}

	chunks := splitIntoChunks(msgs, n)
	results := make([][]streamengine.Message, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		i, chunk := i, chunk
		ok := pool.SubmitTask(ctx, sem, i, func(ctx context.Context) {
			defer wg.Done()
			results[i] = sequentialRealize(r, chunk)
		})
		if !ok {
			results[i] = sequentialRealize(r, chunk)
			wg.Done()
		}
	}
	wg.Wait()

	out := make([]streamengine.Message, 0, len(msgs))
	for _, res := range results {
		out = append(out, res...)
	}
	return out
}

func splitIntoChunks(msgs []streamengine.Message, n int) [][]streamengine.Message {
	if n > len(msgs) {
		n = len(msgs)
	}
	if n == 0 {
		return nil
	}
	chunks := make([][]streamengine.Message, n)
	base := len(msgs) / n
	rem := len(msgs) % n
	idx := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		chunks[i] = msgs[idx : idx+size]
		idx += size
	}
	return chunks
}

func sliceSeq(msgs []streamengine.Message) streamengine.Seq {
	return func(yield func(streamengine.Message) bool) {
		for _, m := range msgs {
			if !yield(m) {
				return
			}
		}
	}
}

func singletonSeq(v any) streamengine.Seq {
	return func(yield func(streamengine.Message) bool) {
		yield(v)
	}
}
