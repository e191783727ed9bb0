// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// OpContext is passed to every operation function. It carries the resume
// handle for Scoped/General operations (nil for NoResume*/Tail*, where
// resuming happens by return value instead) and the frame's local slot.
type OpContext struct {
	frame *frame

	// Resume is non-nil only for Scoped/General operations; call it to
	// invoke the captured resumption. For Tail/TailNoop, call TailResume
	// instead. For NoResume/NoResumeX, returning a value from the
	// operation function resumes nothing; it is the final result.
	Resume *Resumption

	tailResumed bool
	tailValue   any
}

// Local returns the frame's implicit-parameter slot, seeded by
// HandlerDef.WithLocal and updated by SetLocal.
func (c *OpContext) Local() any {
	return c.frame.local
}

// SetLocal updates the frame's implicit-parameter slot. The new value is
// visible to the next operation or resume dispatched against this frame.
func (c *OpContext) SetLocal(v any) {
	c.frame.local = v
}

// TailResume resumes a Tail/TailNoop operation inline with value v. It must
// be called at most once, and only from within the operation function; a
// second call is reported via the fatal path. The kind is not checked: a
// call from an operation registered under any other OperationKind is not
// detected, and the value passed is not used.
func (c *OpContext) TailResume(v any) {
	if c.tailResumed {
		raiseFatal(ErrMisuseOfTailResume, "TailResume called twice")
		return
	}
	c.tailResumed = true
	c.tailValue = v
}

// OpFunc is a handler's implementation of one operation. arg is the value
// passed to Yield/PerformOp; the return value's meaning depends on kind:
// for NoResume/NoResumeX it is the final result delivered to Handle's
// caller; for Tail/TailNoop it is ignored unless ctx.TailResume was never
// called, in which case it is used as the unwind result; for Scoped/
// General it is likewise the no-tail-resume fallback — most
// Scoped/General operations instead invoke ctx.Resume directly.
type OpFunc func(ctx *OpContext, arg any) any

// opEntry pairs an operation's dispatch kind with its implementation.
type opEntry struct {
	kind OperationKind
	fn   OpFunc
}

// HandlerDef is an immutable descriptor naming an effect and providing, per
// opcode, an operation kind and an operation function. Build one with
// NewHandlerDef and On, then install it with Engine.Handle, HandleNested,
// or LinearHandlerInit.
type HandlerDef struct {
	effect  *EffectTag
	ops     map[int]opEntry
	result  func(any) any
	localFn func() any
	stats   *Stats
}

// NewHandlerDef creates an empty handler definition for the given effect.
func NewHandlerDef(effect *EffectTag) *HandlerDef {
	return &HandlerDef{effect: effect, ops: make(map[int]opEntry)}
}

// On registers the operation function for opcode under kind. Returns the
// receiver so registrations can be chained.
func (h *HandlerDef) On(opcode int, kind OperationKind, fn OpFunc) *HandlerDef {
	h.ops[opcode] = opEntry{kind: kind, fn: fn}
	return h
}

// WithResult registers a function applied to the action's normal return
// value, the handler's "result" closure.
func (h *HandlerDef) WithResult(f func(any) any) *HandlerDef {
	h.result = f
	return h
}

// WithLocal seeds the handler's implicit-parameter slot. init is called
// once per Handle/HandleNested installation.
func (h *HandlerDef) WithLocal(init func() any) *HandlerDef {
	h.localFn = init
	return h
}

// WithStats attaches a Stats collector so Scoped/General resumptions
// captured via HandleNested/PerformOp are counted in stats.Captures().
// Engine.Handle/Engine.Yield count independently through the Engine's own
// Stats (see WithStats on EngineOption); this is the HandleNested
// counterpart, since that path runs with no Engine in scope at all.
func (h *HandlerDef) WithStats(s *Stats) *HandlerDef {
	h.stats = s
	return h
}

// Effect returns the effect tag this definition handles.
func (h *HandlerDef) Effect() *EffectTag { return h.effect }

func (h *HandlerDef) lookup(opcode int) (opEntry, bool) {
	e, ok := h.ops[opcode]
	return e, ok
}
