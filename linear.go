// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// LinearHandlerInit installs hdef on e without a bracketing Handle call,
// for callers structuring a long-lived handler scope (e.g. one installed
// at the top of a request and dismissed at its end) rather than a single
// nested action. hdef must register only NoResumeX, NoResume, TailNoop, or
// Tail opcodes; a Scoped or General opcode needs the CPS path's captured
// resumption, which has no home on Engine's synchronous frame stack, so
// registering one here is a fatal install-time error instead of a
// surprise at first yield.
//
// Returns a token to pass to LinearHandlerDone. Callers must dismiss
// frames in strict LIFO order; LinearHandlerDone enforces this.
func LinearHandlerInit(e *Engine, hdef *HandlerDef) uint64 {
	for opcode, entry := range hdef.ops {
		if entry.kind == Scoped || entry.kind == General {
			raiseFatal(ErrMisuseOfTailResume, "LinearHandlerInit: effect "+hdef.effect.Name()+" opcode has Scoped/General kind, not usable without bracketing Handle")
			_ = opcode
			return 0
		}
	}
	fr := e.pushEffect(hdef)
	return fr.id
}

// LinearHandlerDone dismisses the frame installed by LinearHandlerInit.
// token must be the most recently installed, not-yet-dismissed frame's id;
// dismissing out of order is a fatal error, since it would silently pop
// frames the caller still believes are live.
func LinearHandlerDone(e *Engine, token uint64) {
	if len(e.frames) == 0 || e.frames[len(e.frames)-1].id != token {
		raiseFatal(ErrMisuseOfTailResume, "LinearHandlerDone: token is not the top frame")
		return
	}
	e.popTo(token)
}
