// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

import (
	"runtime"
	"strconv"
	"sync/atomic"
)

// refDead is the sticky sentinel a refcount transitions to on release and
// never leaves — refcounts only ever move forward toward death, never back.
const refDead = -1 << 30

// currentGoroutineID returns a best-effort identifier for the calling
// goroutine, parsed from the runtime's own stack trace header ("goroutine
// N [running]:"). It exists solely to back the cross-goroutine misuse
// check on Resumption/Fragment: a resumption may only be invoked on the
// goroutine that captured it. It is called once per Scoped/General capture
// (newResumption) and once per Resumption.Call, never on the Tail/TailNoop
// path, and is not used for any correctness-critical decision beyond that
// diagnostic.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := string(buf[:n])
	const prefix = "goroutine "
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return 0
	}
	s = s[len(prefix):]
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	id, err := strconv.ParseUint(s[:i], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Resumption is a refcounted, kind-tagged, first-class delimited
// continuation, realized as the CPS closure produced when an effectSuspension
// created by PerformOp is claimed by HandleNested for a Scoped or General
// operation. Calling Call drives the rest of the suspended computation
// to its next suspension point or completion.
type Resumption struct {
	kind      OperationKind // Scoped or General
	refcount  atomic.Int32
	reentries atomic.Int32
	origin    uint64
	driver    func(v any) any
}

// newResumption allocates through defaultAllocator rather than the
// installing Engine's own Allocator: Scoped/General capture happens inside
// HandleNested/runNested, which is reachable from PerformOp without any
// Engine in scope at all. A Resumption is never returned to the allocator
// once built — its sticky-dead refcount sentinel exists precisely so a
// stale reference is safe to observe after release, which recycling the
// same pointer into a fresh Resumption would undermine.
func newResumption(kind OperationKind, driver func(v any) any) *Resumption {
	r := defaultAllocator.Get(classResumption).(*Resumption)
	r.kind = kind
	r.driver = driver
	r.origin = currentGoroutineID()
	r.refcount.Store(1)
	r.reentries.Store(0)
	return r
}

// Call invokes the resumption with value v, driving the suspended
// computation forward. Scoped and General resumptions may both be called
// this way; General resumptions may be called more than once, each call
// adding its result to the action's control-flow graph rather than
// replacing a prior one. Call on a released resumption is fatal.
func (r *Resumption) Call(v any) any {
	if r.refcount.Load() <= 0 {
		raiseFatal(ErrMisuseOfTailResume, "Resumption.Call on a released resumption")
		return nil
	}
	if r.origin != 0 && r.origin != currentGoroutineID() {
		raiseFatal(ErrStackDirectionViolation, "Resumption.Call from a different goroutine than captured on")
		return nil
	}
	r.reentries.Add(1)
	return r.driver(v)
}

// TailCall is Call restricted to the case the caller knows is the last
// invocation it will make; behaviorally identical to Call — the
// distinction exists for call-site documentation (the synchronous fast
// path's distinct inline tail-resume is OpContext.TailResume).
func (r *Resumption) TailCall(v any) any {
	return r.Call(v)
}

// Reentries returns the number of times Call has been invoked so far.
func (r *Resumption) Reentries() int32 {
	return r.reentries.Load()
}

// Release drops the caller's reference. Once the refcount reaches zero it
// transitions to the sticky-dead sentinel; a Scoped resumption is released
// automatically when its operation function returns (see cps.go), so user
// code typically only calls Release on a General resumption it decided to
// abandon.
func (r *Resumption) Release() {
	if r.refcount.Add(-1) <= 0 {
		r.refcount.Store(refDead)
	}
}

func (r *Resumption) acquire() {
	r.refcount.Add(1)
}

func (r *Resumption) released() bool {
	return r.refcount.Load() <= 0
}
