// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// Reader effect operations.
// Reader[E] provides read-only access to an environment.

// TagReader identifies the Reader effect for the Engine/HandlerDef path.
var TagReader = NewEffectTag("reader")

const opAsk int = 0

// Ask is the effect operation for reading the environment.
// Perform(Ask[E]{}) returns the current environment of type E.
type Ask[E any] struct{}

func (Ask[E]) OpResult() E     { panic("phantom") }
func (Ask[E]) Tag() *EffectTag { return TagReader }
func (Ask[E]) Opcode() int     { return opAsk }

// DispatchReader handles Ask in Reader handler dispatch.
func (Ask[E]) DispatchReader(env *E) (Resumed, bool) {
	return *env, true
}

// NewReaderHandlerDef builds the Engine/HandlerDef-path equivalent of
// ReaderHandler. Ask is TailNoop: it resumes immediately and never
// performs a further operation while doing so. Dispatches against the
// concrete Ask[E]{} struct passed as arg by both Engine.Yield and
// Perform/PerformOp, via the same DispatchReader structural assertion
// readerHandler.Dispatch already uses.
func NewReaderHandlerDef[E any](env E) *HandlerDef {
	e := env
	return readerHandlerDefFor(&e)
}

// readerHandlerDefFor is NewReaderHandlerDef's plumbing, parameterized over
// an externally owned environment cell. Used directly by compose.go.
func readerHandlerDefFor[E any](env *E) *HandlerDef {
	hdef := NewHandlerDef(TagReader)
	hdef.WithLocal(func() any { return env })
	hdef.On(opAsk, TailNoop, func(ctx *OpContext, arg any) any {
		rop := arg.(interface{ DispatchReader(env *E) (Resumed, bool) })
		v, _ := rop.DispatchReader(ctx.Local().(*E))
		ctx.TailResume(v)
		return nil
	})
	return hdef
}

// AskEngine yields the Ask operation against e's installed reader handler.
func AskEngine[E any](e *Engine) E {
	return e.Yield(TagReader, opAsk, Ask[E]{}).(E)
}

// AskReader fuses Ask + Bind: performs Ask, passes environment to f.
func AskReader[E, B any](f func(E) Cont[Resumed, B]) Cont[Resumed, B] {
	return func(k func(B) Resumed) Resumed {
		return bindMarker[E, B]{op: Ask[E]{}, f: f, k: k}
	}
}

// MapReader fuses Ask + Map: performs Ask, applies projection f.
func MapReader[E, A any](f func(E) A) Cont[Resumed, A] {
	return func(k func(A) Resumed) Resumed {
		return mapMarker[E, A]{op: Ask[E]{}, f: f, k: k}
	}
}

// readerHandler implements Handler for zero-allocation reader handling.
type readerHandler[E, R any] struct {
	env *E
}

// Dispatch implements Handler for zero-allocation handling.
func (h *readerHandler[E, R]) Dispatch(op Operation) (Resumed, bool) {
	if rop, ok := op.(interface{ DispatchReader(env *E) (Resumed, bool) }); ok {
		return rop.DispatchReader(h.env)
	}
	unhandledEffect("ReaderHandler")
	return nil, false
}

// ReaderHandler creates a handler for Reader effects with the given environment.
// Returns a concrete handler.
func ReaderHandler[E, R any](env E) *readerHandler[E, R] {
	e := env
	return &readerHandler[E, R]{env: &e}
}

// RunReaderExpr runs an Expr computation with the given environment.
func RunReaderExpr[E, A any](env E, m Expr[A]) A {
	h := ReaderHandler[E, A](env)
	return HandleExpr(m, h)
}

// RunReader runs a computation with the given environment.
func RunReader[E, A any](env E, m Cont[Resumed, A]) A {
	h := ReaderHandler[E, A](env)
	return Handle(m, h)
}
