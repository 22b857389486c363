package window

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/project/streamline/streamengine"
	"github.com/project/streamline/streamengine/monoid"
)

func TestCountWindow_TumblesEveryNMessages(t *testing.T) {
	t.Parallel()

	gen := CountWindow(2, monoid.Sum())
	op, err := gen.Create(context.Background(), streamengine.Options{})
	require.NoError(t, err)
	ag := op.(streamengine.Aggregator)
	ctx := context.Background()

	op.ProcessAll(ctx, []streamengine.Message{1, 2})
	require.Equal(t, 3, ag.Deref(ctx))

	op.ProcessAll(ctx, []streamengine.Message{3, 4})
	require.Equal(t, 7, ag.Deref(ctx))

	op.ProcessAll(ctx, []streamengine.Message{5})
	require.Equal(t, 5, ag.Deref(ctx))
}

func TestCountWindow_ResetClearsPartialAndCompletedState(t *testing.T) {
	t.Parallel()

	gen := CountWindow(2, monoid.Sum())
	op, err := gen.Create(context.Background(), streamengine.Options{})
	require.NoError(t, err)
	ag := op.(streamengine.Aggregator)
	ctx := context.Background()

	op.ProcessAll(ctx, []streamengine.Message{1, 2})
	require.Equal(t, 3, ag.Deref(ctx))

	op.Reset(ctx)
	require.Equal(t, 0, ag.Deref(ctx))
}

func TestCountWindow_InstallsRecurToBackReference(t *testing.T) {
	t.Parallel()

	inner := monoid.Sum()
	outer := CountWindow(3, inner)

	target, ok := inner.RecurTarget()
	require.True(t, ok)
	require.Same(t, outer, target)
}
