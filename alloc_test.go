// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt_test

import (
	"testing"

	"code.hybscloud.com/efkt"
)

func TestPoolAllocatorReusesPutValues(t *testing.T) {
	a := efkt.NewPoolAllocator()

	v := a.Get(16)
	buf, ok := v.([]byte)
	if !ok || len(buf) != 16 {
		t.Fatalf("Get(16) = %#v, want a 16-byte slice", v)
	}
	buf[0] = 0xAB
	a.Put(16, buf)

	got := a.Get(16).([]byte)
	if len(got) != 16 {
		t.Fatalf("got slice of length %d, want 16", len(got))
	}
}

func TestPoolAllocatorSeparatesSizeClasses(t *testing.T) {
	a := efkt.NewPoolAllocator()
	small := a.Get(8).([]byte)
	large := a.Get(64).([]byte)
	if len(small) != 8 {
		t.Fatalf("Get(8) length = %d, want 8", len(small))
	}
	if len(large) != 64 {
		t.Fatalf("Get(64) length = %d, want 64", len(large))
	}
}

func TestPoolAllocatorNonPositiveSizeIsFatal(t *testing.T) {
	var code error
	efkt.SetFatal(func(c error, msg string) { code = c })
	defer efkt.SetFatal(nil)

	a := efkt.NewPoolAllocator()
	a.Get(0)
	if code != efkt.ErrInvalidSize {
		t.Fatalf("got %v, want ErrInvalidSize", code)
	}
}

func TestPoolAllocatorPutIgnoresNonPositiveSize(t *testing.T) {
	a := efkt.NewPoolAllocator()
	// Put on a non-positive class is a silent no-op, not a fatal error.
	a.Put(-1, []byte{1, 2, 3})
}

func TestEngineWithCustomAllocator(t *testing.T) {
	a := efkt.NewPoolAllocator()
	e := efkt.NewEngine(efkt.WithAllocator(a))

	hdef := efkt.NewHandlerDef(tagCounter)
	hdef.On(0, efkt.Tail, func(ctx *efkt.OpContext, arg any) any {
		ctx.TailResume(arg)
		return nil
	})
	got := e.Handle(hdef, func() any {
		return e.Yield(tagCounter, 0, 3)
	})
	if got != 3 {
		t.Fatalf("got %v, want 3", got)
	}
}

// spyAllocator wraps an Allocator and counts calls, so tests can observe
// that Engine actually routes frame allocation through the installed
// Allocator instead of constructing frames directly.
type spyAllocator struct {
	inner efkt.Allocator
	gets  int
	puts  int
}

func (s *spyAllocator) Get(class int) any {
	s.gets++
	return s.inner.Get(class)
}

func (s *spyAllocator) Put(class int, v any) {
	s.puts++
	s.inner.Put(class, v)
}

func TestEngineRoutesFrameAllocationThroughAllocator(t *testing.T) {
	spy := &spyAllocator{inner: efkt.NewPoolAllocator()}
	e := efkt.NewEngine(efkt.WithAllocator(spy))

	hdef := efkt.NewHandlerDef(tagCounter)
	hdef.On(0, efkt.Tail, func(ctx *efkt.OpContext, arg any) any {
		ctx.TailResume(arg)
		return nil
	})
	got := e.Handle(hdef, func() any {
		return e.Yield(tagCounter, 0, 3)
	})
	if got != 3 {
		t.Fatalf("got %v, want 3", got)
	}
	if spy.gets == 0 {
		t.Fatal("Handle/Yield never called Allocator.Get for frame construction")
	}
	if spy.puts == 0 {
		t.Fatal("Handle/Yield never called Allocator.Put when popping frames")
	}
}
