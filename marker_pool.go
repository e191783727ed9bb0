// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

import "sync"

var genericMarkerPool = sync.Pool{
	New: func() any { return new(genericMarker) },
}

type genericMarker struct {
	op     Operation
	resume func(*genericMarker, Resumed) Resumed
	f      any
	k      any
}

func (m *genericMarker) Op() Operation            { return m.op }
func (m *genericMarker) Resume(v Resumed) Resumed { return m.resume(m, v) }
func (m *genericMarker) release()                 { releaseMarker(m) }

func acquireMarker() *genericMarker {
	return genericMarkerPool.Get().(*genericMarker)
}

func releaseMarker(m *genericMarker) {
	m.op = nil
	m.resume = nil
	m.f = nil
	m.k = nil
	genericMarkerPool.Put(m)
}

// effectMarker is the unpooled counterpart to genericMarker's effect-resume
// strategy, used at call sites where the operation type is already known
// at the type-parameter level and pooling would add ceremony without
// removing an allocation (the marker itself still escapes via k).
type effectMarker[A any] struct {
	op Operation
	k  func(A) Resumed
}

func (m effectMarker[A]) Op() Operation            { return m.op }
func (m effectMarker[A]) Resume(v Resumed) Resumed { return m.k(v.(A)) }
func (m effectMarker[A]) release()                 {}

// bindMarker is the unpooled counterpart to bindMarkerResume, fusing an
// effect operation with a following Bind.
type bindMarker[A, B any] struct {
	op Operation
	f  func(A) Cont[Resumed, B]
	k  func(B) Resumed
}

func (m bindMarker[A, B]) Op() Operation { return m.op }
func (m bindMarker[A, B]) Resume(v Resumed) Resumed {
	return m.f(v.(A))(m.k)
}
func (m bindMarker[A, B]) release() {}

// mapMarker is the unpooled counterpart to mapMarkerResume, fusing an
// effect operation with a following Map.
type mapMarker[A, B any] struct {
	op Operation
	f  func(A) B
	k  func(B) Resumed
}

func (m mapMarker[A, B]) Op() Operation { return m.op }
func (m mapMarker[A, B]) Resume(v Resumed) Resumed {
	return m.k(m.f(v.(A)))
}
func (m mapMarker[A, B]) release() {}
