package streamengine

import (
	"context"

	"github.com/project/streamline/streamengine/executor"
)

// Options are recognized by an OperatorGenerator's Create method.
type Options struct {
	// AggregatorGeneratorWrapper transforms an aggregator generator just
	// before its Create is invoked; used to decorate windowing combinators
	// layered on top of the core. Identity by default.
	AggregatorGeneratorWrapper func(OperatorGenerator) OperatorGenerator

	// CompiledOperatorWrapper transforms the final compiled operator, with
	// access to the options it was built from. Identity by default.
	CompiledOperatorWrapper func(StreamOperator, Options) StreamOperator

	// ExecutionAffinity is an integer hint injected by split when wrapping
	// a non-concurrent sub-pipeline; it flows into a buffered aggregator's
	// routing hash so that a given sub-pipeline always lands on the same
	// worker.
	ExecutionAffinity *int

	// Serialize/Deserialize are passed through to aggregators' Create
	// functions; they do not change core semantics.
	Serialize   bool
	Deserialize bool

	// Pool and Semaphore opt a compiled pipeline into the concurrent
	// execution substrate: when Pool is non-nil, the compiled generator's
	// Create wraps its aggregator in a buffered aggregator that batches
	// Process(msg) calls off-thread onto Pool, gated by Semaphore.
	// Semaphore defaults to a fresh 2*Pool.NumWorkers() permit set when
	// nil but Pool is set.
	Pool      *executor.Pool
	Semaphore *executor.Semaphore

	// BufferCapacity overrides the buffered aggregator's accumulator
	// capacity (DefaultCapacity when zero).
	BufferCapacity int
}

// OperatorGenerator is a factory describing how to instantiate an operator,
// plus the static, queriable metadata the compiler needs to fuse a
// descriptor into a single operator.
type OperatorGenerator interface {
	// IsAggregator reports whether Create produces an Aggregator.
	IsAggregator() bool

	// IsConcurrent reports whether instances of this generator may run on
	// worker threads ahead of the aggregation frontier.
	IsConcurrent() bool

	// Combiner returns the binary merge over dereferenced snapshots, and
	// whether one is defined. Its absence downgrades the enclosing
	// pipeline to non-concurrent.
	Combiner() (Combiner, bool)

	// Emitter returns the post-processing transform applied when
	// dereferencing. Identity by default.
	Emitter() Emitter

	// Serializer/Deserializer define the wire shape of a snapshot. Identity
	// by default.
	Serializer() Serializer
	Deserializer() Deserializer

	// RecurTo installs a back-reference to an outer (windowing) generator.
	RecurTo(outer OperatorGenerator)
	// RecurTarget returns the generator installed by RecurTo, if any.
	RecurTarget() (OperatorGenerator, bool)

	// Descriptor returns the user-facing description for introspection.
	Descriptor() any

	// Create instantiates a runtime operator.
	Create(ctx context.Context, opts Options) (StreamOperator, error)
}

// baseGenerator is the concrete OperatorGenerator shared by every
// constructor in this package; callers assemble one via functional options
// rather than implementing the interface directly.
type baseGenerator struct {
	isAggregator bool
	isConcurrent bool
	combiner     Combiner
	hasCombiner  bool
	emitter      Emitter
	serializer   Serializer
	deserializer Deserializer
	recurTarget  OperatorGenerator
	descriptor   any
	create       func(ctx context.Context, opts Options) (StreamOperator, error)
}

func (g *baseGenerator) IsAggregator() bool { return g.isAggregator }
func (g *baseGenerator) IsConcurrent() bool { return g.isConcurrent }

func (g *baseGenerator) Combiner() (Combiner, bool) {
	if !g.hasCombiner {
		return nil, false
	}
	return g.combiner, true
}

func (g *baseGenerator) Emitter() Emitter {
	if g.emitter != nil {
		return g.emitter
	}
	return identityEmitter
}

func (g *baseGenerator) Serializer() Serializer {
	if g.serializer != nil {
		return g.serializer
	}
	return identitySerializer
}

func (g *baseGenerator) Deserializer() Deserializer {
	if g.deserializer != nil {
		return g.deserializer
	}
	return identityDeserializer
}

func (g *baseGenerator) RecurTo(outer OperatorGenerator) { g.recurTarget = outer }

func (g *baseGenerator) RecurTarget() (OperatorGenerator, bool) {
	return g.recurTarget, g.recurTarget != nil
}

func (g *baseGenerator) Descriptor() any { return g.descriptor }

func (g *baseGenerator) Create(ctx context.Context, opts Options) (StreamOperator, error) {
	return g.create(ctx, opts)
}

// GeneratorOption configures a baseGenerator built by NewGenerator.
type GeneratorOption func(*baseGenerator)

func WithAggregator(isAggregator bool) GeneratorOption {
	return func(g *baseGenerator) { g.isAggregator = isAggregator }
}

func WithConcurrent(isConcurrent bool) GeneratorOption {
	return func(g *baseGenerator) { g.isConcurrent = isConcurrent }
}

func WithCombiner(c Combiner) GeneratorOption {
	return func(g *baseGenerator) {
		g.combiner = c
		g.hasCombiner = c != nil
	}
}

func WithEmitter(e Emitter) GeneratorOption {
	return func(g *baseGenerator) { g.emitter = e }
}

func WithSerializer(s Serializer, d Deserializer) GeneratorOption {
	return func(g *baseGenerator) {
		g.serializer = s
		g.deserializer = d
	}
}

func WithDescriptor(d any) GeneratorOption {
	return func(g *baseGenerator) { g.descriptor = d }
}

// NewGenerator builds an OperatorGenerator from a Create closure and a set
// of functional options describing its static metadata.
func NewGenerator(create func(ctx context.Context, opts Options) (StreamOperator, error), opts ...GeneratorOption) OperatorGenerator {
	g := &baseGenerator{create: create}
	for _, opt := range opts {
		opt(g)
	}
	if g.descriptor == nil {
		g.descriptor = g
	}
	return g
}

// GeneratorFactory is a marker-tagged factory function: the compiler
// invokes it (rather than treating it as a plain map_op function) because
// its type alone distinguishes it from a unary Message transform.
type GeneratorFactory func() OperatorGenerator
