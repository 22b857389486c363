package compile

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/project/streamline/streamengine"
	"github.com/project/streamline/streamengine/executor"
	"github.com/project/streamline/streamengine/monoid"
)

func TestCompile_BareAggregatorRoundTrips(t *testing.T) {
	t.Parallel()

	gen, err := Compile(monoid.Sum())
	require.NoError(t, err)
	require.True(t, gen.IsAggregator())

	op, err := gen.Create(context.Background(), streamengine.Options{})
	require.NoError(t, err)

	op.ProcessAll(context.Background(), []streamengine.Message{1, 2, 3})
	ag := op.(streamengine.Aggregator)
	require.Equal(t, 6, ag.Deref(context.Background()))
}

func TestCompile_NoAggregatorAutoAppendsAccumulator(t *testing.T) {
	t.Parallel()

	double := func(m streamengine.Message) streamengine.Message { return m.(int) * 2 }
	gen, err := Compile(double)
	require.NoError(t, err)

	op, err := gen.Create(context.Background(), streamengine.Options{})
	require.NoError(t, err)

	op.ProcessAll(context.Background(), []streamengine.Message{1, 2, 3})
	ag := op.(streamengine.Aggregator)
	got := ag.Deref(context.Background()).([]streamengine.Message)

	ints := make([]int, len(got))
	for i, v := range got {
		ints[i] = v.(int)
	}
	sort.Ints(ints)
	require.Equal(t, []int{2, 4, 6}, ints)
}

func TestCompile_PreChainFusesBeforeAggregator(t *testing.T) {
	t.Parallel()

	inc := func(m streamengine.Message) streamengine.Message { return m.(int) + 1 }
	gen, err := Compile([]any{inc, monoid.Sum()})
	require.NoError(t, err)

	op, err := gen.Create(context.Background(), streamengine.Options{})
	require.NoError(t, err)

	op.ProcessAll(context.Background(), []streamengine.Message{1, 2, 3})
	ag := op.(streamengine.Aggregator)
	require.Equal(t, 9, ag.Deref(context.Background()))
}

func TestCompile_PostChainAppliesToEmittedSnapshot(t *testing.T) {
	t.Parallel()

	double := func(m streamengine.Message) streamengine.Message { return m.(int) * 2 }
	gen, err := Compile([]any{monoid.Sum(), double})
	require.NoError(t, err)

	op, err := gen.Create(context.Background(), streamengine.Options{})
	require.NoError(t, err)

	op.ProcessAll(context.Background(), []streamengine.Message{1, 2, 3})
	ag := op.(streamengine.Aggregator)
	require.Equal(t, 12, ag.Deref(context.Background()))
}

func TestCompile_IsIdempotent(t *testing.T) {
	t.Parallel()

	gen, err := Compile(monoid.Sum())
	require.NoError(t, err)

	again, err := Compile(gen)
	require.NoError(t, err)
	require.Same(t, gen, again)
}

func TestCompile_RejectsUnrecognizedElement(t *testing.T) {
	t.Parallel()

	_, err := Compile(42)
	require.Error(t, err)
	var compErr *CompilationError
	require.ErrorAs(t, err, &compErr)
}

func TestCompile_ConcurrentPreChainStillExposesCombiner(t *testing.T) {
	t.Parallel()

	// monoid aggregators run single-threaded per shard, so the fused
	// pipeline as a whole is not eligible for concurrent scheduling, but
	// its combiner remains available for merging independent instances
	// (e.g. one per split sub-pipeline or one per shard upstream).
	inc := func(m streamengine.Message) streamengine.Message { return m.(int) + 1 }
	gen, err := Compile([]any{inc, monoid.Sum()})
	require.NoError(t, err)
	require.False(t, gen.IsConcurrent())

	_, hasCombiner := gen.Combiner()
	require.True(t, hasCombiner)
}

func TestCompile_SplitDescriptorCompilesDirectly(t *testing.T) {
	t.Parallel()

	descriptor := map[string]any{
		"total": monoid.Sum(),
		"count": monoid.Generator(
			func() any { return 0 },
			func(a, b any) any { return a.(int) + b.(int) },
			monoid.WithPreProcess(func(m streamengine.Message) any { return 1 }),
		),
	}

	gen, err := Compile(descriptor)
	require.NoError(t, err)

	op, err := gen.Create(context.Background(), streamengine.Options{})
	require.NoError(t, err)

	op.ProcessAll(context.Background(), []streamengine.Message{1, 2, 3})
	ag := op.(streamengine.Aggregator)
	got := ag.Deref(context.Background()).(map[string]any)
	require.Equal(t, 6, got["total"])
	require.Equal(t, 3, got["count"])
}

func TestInstantiate_CompilesAndCreatesInOneCall(t *testing.T) {
	t.Parallel()

	op, err := Instantiate(context.Background(), monoid.Sum(), streamengine.Options{})
	require.NoError(t, err)

	op.ProcessAll(context.Background(), []streamengine.Message{1, 2, 3})
	ag := op.(streamengine.Aggregator)
	require.Equal(t, 6, ag.Deref(context.Background()))
}

func TestCompile_WithPoolWrapsBufferedAggregator(t *testing.T) {
	t.Parallel()

	gen, err := Compile(monoid.Sum())
	require.NoError(t, err)

	pool := executor.NewPool(2)
	op, err := gen.Create(context.Background(), streamengine.Options{Pool: pool, BufferCapacity: 4})
	require.NoError(t, err)

	buffered, ok := op.(streamengine.BufferedAggregator)
	require.True(t, ok)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		buffered.Process(ctx, i)
	}
	buffered.Flush(ctx)

	ag := op.(streamengine.Aggregator)
	require.Equal(t, 45, ag.Deref(ctx))
}
