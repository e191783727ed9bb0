// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// deferOp is the sole operation of the built-in defer effect, a scoped
// cleanup primitive. It carries no payload: the
// protected body and its cleanup are both closed over by the HandlerDef's
// operation function, so performing deferOp is only ever used to enter
// that function under TagDefer/Scoped.
type deferOp[E, A any] struct {
	Phantom[Either[E, A]]
}

func (deferOp[E, A]) Tag() *EffectTag { return TagDefer }
func (deferOp[E, A]) Opcode() int     { return 0 }

// runScoped installs a one-shot TagDefer handler around a single deferOp
// performance and returns whatever the operation function computes. This
// is the shared plumbing behind Bracket and OnError (resource.go): both
// need a cleanup step that runs exactly once no matter how the protected
// body resolves, which is exactly what a Scoped operation function
// guarantees on return (its resumption is released automatically; see
// cps.go's runNested).
func runScoped[E, A any](fn func() Either[E, A]) Cont[Resumed, Either[E, A]] {
	hdef := NewHandlerDef(TagDefer)
	hdef.On(0, Scoped, func(_ *OpContext, _ any) any {
		return fn()
	})
	return HandleNested[Either[E, A]](hdef, PerformOp[deferOp[E, A], Either[E, A]](deferOp[E, A]{}))
}
