// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// yieldUnwind is the panic payload used to jump from Yield back to the
// specific Handle call that installed the matched frame. This is the one
// place this package uses panic/recover as a control-flow primitive
// rather than for programmer error: it stands in for the
// setjmp/longjmp-style entry jump, used only for the NoResumeX/NoResume/
// unresolved-Tail case, which by construction is never revisited once
// unwound.
type yieldUnwind struct {
	frameID uint64
	value   any
}

// errScopedViaFastPath is raised when Yield is asked to dispatch a
// Scoped/General opcode; those kinds need a repeatable resumption and
// must go through PerformOp/HandleNested instead.
var errScopedViaFastPath = ErrMisuseOfTailResume

// Handle installs hdef and runs action in its dynamic extent. action
// yields via Engine.Yield. On normal return, hdef's
// result function (if any) is applied to action's return value. On a
// NoResume/NoResumeX yield, or a Tail/TailNoop yield that never called
// ctx.TailResume, the operation function's return value becomes Handle's
// result instead, short-circuiting action.
func (e *Engine) Handle(hdef *HandlerDef, action func() any) (out any) {
	fr := e.pushEffect(hdef)
	defer func() {
		if r := recover(); r != nil {
			e.popTo(fr.id)
			yu, ok := r.(*yieldUnwind)
			if !ok || yu.frameID != fr.id {
				panic(r)
			}
			out = yu.value
		}
	}()
	result := action()
	e.popTo(fr.id)
	if hdef.result != nil {
		return hdef.result(result)
	}
	return result
}

// Yield yields opcode of the effect named by tag with argument arg to the
// nearest installed handler. Panics via the fatal path if no handler is
// installed, or if the matched opcode was
// registered under Scoped or General — those kinds are not resumable from
// this synchronous entry point; use PerformOp instead.
func (e *Engine) Yield(tag *EffectTag, opcode int, arg any) any {
	fr := e.findFrame(tag)
	if fr == nil {
		raiseFatal(ErrNoHandler, "Yield: no handler for effect "+tag.Name())
		return nil
	}
	entry, ok := fr.hdef.lookup(opcode)
	if !ok {
		raiseFatal(ErrNoHandler, "Yield: effect "+tag.Name()+" has no entry for opcode")
		return nil
	}
	if e.stats != nil {
		e.stats.yields.Inc()
	}

	switch entry.kind {
	case NoResumeX, NoResume:
		ctx := &OpContext{frame: fr}
		v := entry.fn(ctx, arg)
		panic(&yieldUnwind{frameID: fr.id, value: v})

	case Tail, TailNoop:
		var skipFr *frame
		if entry.kind == Tail {
			skipFr = e.pushSkip(tag, fr.id)
		}
		ctx := &OpContext{frame: fr}
		v := entry.fn(ctx, arg)
		if skipFr != nil {
			e.popTo(skipFr.id)
		}
		if ctx.tailResumed {
			if e.stats != nil {
				e.stats.resumes.Inc()
			}
			return ctx.tailValue
		}
		panic(&yieldUnwind{frameID: fr.id, value: v})

	case Scoped, General:
		raiseFatal(errScopedViaFastPath, "Yield: effect "+tag.Name()+" opcode is Scoped/General; use PerformOp")
		return nil

	default:
		raiseFatal(ErrNoHandler, "Yield: unknown operation kind")
		return nil
	}
}

// YieldArgs yields with multiple stack-passed arguments, packed into a
// slice. A native-stack-capture runtime needs a variadic yield so a
// handler can relocate pointers living in a resumption's captured stack;
// since there is no native stack here for those pointers to alias, no
// relocation step is needed — YieldArgs is kept as a variadic convenience
// over Yield rather than silently dropped.
func (e *Engine) YieldArgs(tag *EffectTag, opcode int, args ...any) any {
	return e.Yield(tag, opcode, args)
}
