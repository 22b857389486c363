// Package telemetry defines prometheus counters for the execution
// substrate's observable events — processed messages, shard failures,
// buffered-aggregator overflow flushes, exclusive-lock acquisitions — and
// traces flush/barrier operations with OpenTelemetry when a Jaeger
// collector is configured. The executor and buffered packages do not
// update these counters themselves; a caller increments them (in this
// module, cmd/streamline increments MessagesProcessed and, through
// StartBarrierSpan, ExclusiveLockTakes).
package telemetry

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/project/streamline/config"
)

// Telemetry bundles the counters and tracer the rest of the engine reaches
// for. The Telemetry New returns when no Jaeger URL is configured is safe
// to use: its tracer is the global otel tracer, a no-op unless a provider
// has been installed. A nil *Telemetry is also accepted by
// StartBarrierSpan and Shutdown.
type Telemetry struct {
	MessagesProcessed  prometheus.Counter
	ShardFailures      prometheus.Counter
	OverflowFlushes    prometheus.Counter
	ExclusiveLockTakes prometheus.Counter

	tracer     trace.Tracer
	shutdownFn func(context.Context) error
}

// New builds a Telemetry from cfg. When cfg.Telemetry.JaegerURL is empty,
// the returned Telemetry still registers prometheus counters but uses a
// no-op tracer, so callers never need to branch on whether tracing is
// configured.
func New(cfg *config.Config) (*Telemetry, error) {
	t := &Telemetry{
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streamline_messages_processed_total",
			Help: "Total messages folded into any aggregator.",
		}),
		ShardFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streamline_shard_failures_total",
			Help: "Total worker task panics recovered by the executor pool.",
		}),
		OverflowFlushes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streamline_buffered_overflow_flushes_total",
			Help: "Total buffered-aggregator flushes triggered by accumulator overflow.",
		}),
		ExclusiveLockTakes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "streamline_exclusive_lock_acquisitions_total",
			Help: "Total times the semaphore's exclusive barrier was acquired (not reentered).",
		}),
		tracer: otel.Tracer("streamline/streamengine"),
	}

	if cfg == nil || cfg.Telemetry.JaegerURL == "" {
		return t, nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.Telemetry.JaegerURL)))
	if err != nil {
		return nil, err
	}

	res := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName("streamline"))
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	t.tracer = tp.Tracer("streamline/streamengine")
	t.shutdownFn = tp.Shutdown
	return t, nil
}

// StartBarrierSpan opens a span around an exclusive-lock ("barrier")
// operation. Callers defer the returned function.
func (t *Telemetry) StartBarrierSpan(ctx context.Context, name string) (context.Context, func()) {
	if t == nil {
		return ctx, func() {}
	}
	ctx, span := t.tracer.Start(ctx, name)
	t.ExclusiveLockTakes.Inc()
	return ctx, func() { span.End() }
}

// Shutdown flushes the trace exporter, if one was configured.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.shutdownFn == nil {
		return nil
	}
	return t.shutdownFn(ctx)
}
