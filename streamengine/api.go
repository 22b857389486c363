package streamengine

import "context"

// Process feeds a batch to op. Thin wrapper over ProcessAll matching the
// external operation table.
func Process(ctx context.Context, op StreamOperator, msgs []Message) {
	op.ProcessAll(ctx, msgs)
}

// Flush forces all buffered state downstream, a no-op if op does not
// buffer.
func Flush(ctx context.Context, op StreamOperator) {
	if f, ok := op.(BufferedAggregator); ok {
		f.Flush(ctx)
	}
}

// Reset returns op to its post-construction state.
func Reset(ctx context.Context, op StreamOperator) {
	op.Reset(ctx)
}

// Snapshot returns op's Deref result, or nil if op is not an Aggregator.
// Operators created by a compiled generator apply the pipeline's emitter
// inside Deref; Snapshot applies no emitter of its own.
func Snapshot(ctx context.Context, op StreamOperator) any {
	if ag, ok := op.(Aggregator); ok {
		return ag.Deref(ctx)
	}
	return nil
}
