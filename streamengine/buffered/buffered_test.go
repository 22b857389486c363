package buffered

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/project/streamline/streamengine"
	"github.com/project/streamline/streamengine/accumulator"
	"github.com/project/streamline/streamengine/executor"
)

func newDownstreamAccumulator(t *testing.T) streamengine.StreamOperator {
	t.Helper()
	gen := accumulator.Generator()
	op, err := gen.Create(context.Background(), streamengine.Options{})
	require.NoError(t, err)
	return op
}

func TestBuffered_FlushBarrierSeesAllMessages(t *testing.T) {
	t.Parallel()

	downstream := newDownstreamAccumulator(t)
	pool := executor.NewPool(2)
	sem := executor.NewSemaphore(4)

	b := New(downstream, pool, sem, 2, nil, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		b.Process(ctx, i)
	}
	b.Flush(ctx)

	got := b.Deref(ctx).([]streamengine.Message)
	ints := make([]int, len(got))
	for i, v := range got {
		ints[i] = v.(int)
	}
	sort.Ints(ints)
	require.Equal(t, []int{0, 1, 2, 3, 4}, ints)
}

func TestBuffered_ExecutionAffinityRoutesDeterministically(t *testing.T) {
	t.Parallel()

	downstream := newDownstreamAccumulator(t)
	pool := executor.NewPool(4)
	sem := executor.NewSemaphore(8)
	affinity := 2

	b := New(downstream, pool, sem, 1, &affinity, nil)
	require.Equal(t, 2, b.pickWorker())
}

func TestBuffered_ResetForwardsToDownstream(t *testing.T) {
	t.Parallel()

	downstream := newDownstreamAccumulator(t)
	pool := executor.NewPool(1)
	sem := executor.NewSemaphore(2)

	b := New(downstream, pool, sem, 4, nil, nil)
	ctx := context.Background()

	b.Process(ctx, "a")
	b.Flush(ctx)
	require.Len(t, b.Deref(ctx).([]streamengine.Message), 1)

	b.Reset(ctx)
	require.Empty(t, b.Deref(ctx).([]streamengine.Message))
}

func TestBuffered_ConcurrentProducersDoNotLoseMessages(t *testing.T) {
	t.Parallel()

	downstream := newDownstreamAccumulator(t)
	pool := executor.NewPool(4)
	sem := executor.NewSemaphore(8)

	b := New(downstream, pool, sem, 8, nil, nil)
	ctx := context.Background()

	const producers = 16
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				b.Process(ctx, base*perProducer+i)
			}
		}(p)
	}
	wg.Wait()

	// Flush may race a concurrent overflow-triggered flush; retry until
	// the barrier observes a stable total, bounded by a short timeout.
	deadline := time.Now().Add(2 * time.Second)
	var got []streamengine.Message
	for time.Now().Before(deadline) {
		b.Flush(ctx)
		got = b.Deref(ctx).([]streamengine.Message)
		if len(got) == producers*perProducer {
			break
		}
	}
	require.Len(t, got, producers*perProducer)
}
