package streamengine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGenerator_DefaultsAreIdentity(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(func(ctx context.Context, opts Options) (StreamOperator, error) {
		return nil, nil
	})

	require.False(t, gen.IsAggregator())
	require.False(t, gen.IsConcurrent())
	_, hasCombiner := gen.Combiner()
	require.False(t, hasCombiner)
	require.Equal(t, "x", gen.Emitter()("x"))

	b, err := gen.Serializer()([]byte("y"))
	require.NoError(t, err)
	require.Equal(t, []byte("y"), b)

	v, err := gen.Deserializer()([]byte("z"))
	require.NoError(t, err)
	require.Equal(t, []byte("z"), v)
}

func TestNewGenerator_OptionsOverrideDefaults(t *testing.T) {
	t.Parallel()

	combine := func(a, b any) any { return a.(int) + b.(int) }
	gen := NewGenerator(
		func(ctx context.Context, opts Options) (StreamOperator, error) { return nil, nil },
		WithAggregator(true),
		WithConcurrent(true),
		WithCombiner(combine),
		WithEmitter(func(v any) any { return v.(int) * 2 }),
		WithDescriptor("custom"),
	)

	require.True(t, gen.IsAggregator())
	require.True(t, gen.IsConcurrent())
	require.Equal(t, "custom", gen.Descriptor())
	require.Equal(t, 10, gen.Emitter()(5))

	c, ok := gen.Combiner()
	require.True(t, ok)
	require.Equal(t, 7, c(3, 4))
}

func TestGenerator_RecurToInstallsBackReference(t *testing.T) {
	t.Parallel()

	inner := NewGenerator(func(ctx context.Context, opts Options) (StreamOperator, error) { return nil, nil })
	outer := NewGenerator(func(ctx context.Context, opts Options) (StreamOperator, error) { return nil, nil })

	_, ok := inner.RecurTarget()
	require.False(t, ok)

	inner.RecurTo(outer)
	target, ok := inner.RecurTarget()
	require.True(t, ok)
	require.Same(t, outer, target)
}

func TestNewGenerator_DescriptorDefaultsToSelf(t *testing.T) {
	t.Parallel()

	gen := NewGenerator(func(ctx context.Context, opts Options) (StreamOperator, error) { return nil, nil })
	require.Same(t, gen, gen.Descriptor())
}
