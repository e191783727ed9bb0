// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// PerformOp performs an effect operation destined for a Scoped or General
// handler entry. Unlike Perform, whose pooled genericMarker is consumed by
// its first Resume, op suspends via an unpooled effectMarker, so the
// suspension can be resumed more than once (a General resumption called
// repeatedly). It is the companion to Yield in the external-interfaces
// naming, and op must also implement TaggedOp so HandleNested can route it
// without a type switch.
func PerformOp[O Op[O, A], A any](op O) Cont[Resumed, A] {
	return func(k func(A) Resumed) Resumed {
		return effectMarker[A]{op: op, k: k}
	}
}

// HandleNested installs hdef around computation m and drives it to
// completion or to the first suspension HandleNested does not own.
// Unlike Handle[H,R] (which panics unhandledEffect on a tag mismatch),
// HandleNested returns an unresolved suspension as its own Resumed value,
// so an enclosing Bind or HandleNested call can claim it — unwinding to
// the nearest handler of a given tag without touching the real Go call
// stack. This also makes HandleNested usable to compose several nested
// handlers by installing one per effect and letting each claim only its
// own tag.
func HandleNested[A any](hdef *HandlerDef, m Cont[Resumed, A]) Cont[Resumed, A] {
	return func(k func(A) Resumed) Resumed {
		var local any
		if hdef.localFn != nil {
			local = hdef.localFn()
		}
		// Allocated, never returned to the allocator: a General resumption
		// may call back into this same fr long after HandleNested returns
		// (see runNested's Scoped/General case), so there is no point at
		// which recycling it would be safe.
		fr := defaultAllocator.Get(classFrame).(*frame)
		fr.effect = hdef.effect
		fr.hdef = hdef
		fr.local = local
		result := m(toResumed[A])
		return runNested(hdef, fr, result, k)
	}
}

// runNested is the trampoline shared by HandleNested and Resumption.Call:
// invoking a Scoped/General resumption re-enters this same loop with the
// resumed value, so further operations of the same effect are dispatched
// the same way the first one was. fr carries the handler's local slot
// across every operation and resume belonging to one HandleNested
// installation, mirroring the Engine frame the synchronous fast path uses
// for the same purpose.
func runNested[A any](hdef *HandlerDef, fr *frame, result Resumed, k func(A) Resumed) Resumed {
	for {
		s, ok := result.(effectSuspension)
		if !ok {
			v := any(result)
			if result == nil {
				var zero A
				v = zero
			}
			if hdef.result != nil {
				v = hdef.result(v)
			}
			return k(v.(A))
		}

		top, ok := s.Op().(TaggedOp)
		if !ok || top.Tag() != hdef.effect {
			// not ours: bubble up to an enclosing HandleNested/Bind, wrapped
			// so that resuming it re-enters this loop and this handler
			fwd := acquireMarker()
			fwd.op = s.Op()
			fwd.resume = func(m *genericMarker, v Resumed) Resumed {
				releaseMarker(m)
				return runNested[A](hdef, fr, s.Resume(v), k)
			}
			return fwd
		}
		entry, ok := hdef.lookup(top.Opcode())
		if !ok {
			raiseFatal(ErrNoHandler, "HandleNested: effect "+hdef.effect.Name()+" has no entry for opcode")
			return nil
		}

		switch entry.kind {
		case Tail, TailNoop:
			ctx := &OpContext{frame: fr}
			v := entry.fn(ctx, s.Op())
			if ctx.tailResumed {
				result = s.Resume(ctx.tailValue)
				continue
			}
			return k(v.(A))

		case Scoped, General:
			var res *Resumption
			res = newResumption(entry.kind, func(v any) any {
				return runNested[A](hdef, fr, s.Resume(v), k)
			})
			if hdef.stats != nil {
				hdef.stats.captures.Inc()
			}
			ctx := &OpContext{frame: fr, Resume: res}
			v := entry.fn(ctx, s.Op())
			if entry.kind == Scoped {
				res.Release()
			}
			return k(v.(A))

		default: // NoResumeX, NoResume
			ctx := &OpContext{frame: fr}
			v := entry.fn(ctx, s.Op())
			return k(v.(A))
		}
	}
}
