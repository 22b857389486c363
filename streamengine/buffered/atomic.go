package buffered

import "sync/atomic"

// atomicAccumulator is a thin typed wrapper over atomic.Pointer so the
// compare-and-swap semantics in spec §4.7 ("atomically swap acc for a
// fresh accumulator; if the CAS succeeds, flush the old one") read
// directly off Buffered.Process.
type atomicAccumulator struct {
	ptr atomic.Pointer[accumulator]
}

func (a *atomicAccumulator) load() *accumulator { return a.ptr.Load() }

func (a *atomicAccumulator) store(v *accumulator) { a.ptr.Store(v) }

func (a *atomicAccumulator) compareAndSwap(old, new *accumulator) bool {
	return a.ptr.CompareAndSwap(old, new)
}

func (a *atomicAccumulator) swap(v *accumulator) *accumulator { return a.ptr.Swap(v) }
