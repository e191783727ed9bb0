// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// Resource safety primitives for exception-safe resource management,
// built on the reserved defer effect (defer_effect.go). Both primitives
// need a cleanup step guaranteed to run exactly once regardless of how
// the protected body resolves; that guarantee comes from a Scoped
// operation function's return, not from CatchError's own bind chain.

// Bracket provides exception-safe resource acquisition and release.
// This follows the bracket pattern: acquire → use → release, where release
// is guaranteed to run exactly once even if use raises an error.
//
// Returns Either containing the result or the error.
func Bracket[E, R, A any](
	acquire Cont[Resumed, R],
	release func(R) Cont[Resumed, struct{}],
	use func(R) Cont[Resumed, A],
) Cont[Resumed, Either[E, A]] {
	return Bind(acquire, func(resource R) Cont[Resumed, Either[E, A]] {
		return runScoped(func() Either[E, A] {
			result := RunError[E, A](use(resource))
			RunError[E, struct{}](release(resource))
			return result
		})
	})
}

// OnError runs cleanup exactly once if body throws an error of type E,
// then rethrows; cleanup never runs on a normal result.
func OnError[E, A any](
	body Cont[Resumed, A],
	cleanup func(E) Cont[Resumed, struct{}],
) Cont[Resumed, A] {
	handled := runScoped(func() Either[E, A] {
		result := RunError[E, A](body)
		if e, ok := result.GetLeft(); ok {
			RunError[E, struct{}](cleanup(e))
		}
		return result
	})
	return Bind(handled, func(e Either[E, A]) Cont[Resumed, A] {
		if left, ok := e.GetLeft(); ok {
			return ThrowError[E, A](left)
		}
		right, _ := e.GetRight()
		return Return[Resumed](right)
	})
}
