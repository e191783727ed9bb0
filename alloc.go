// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

import "sync"

// Allocator is the pluggable allocate/recycle hook standing in for a
// native runtime's allocator quadruple (malloc/calloc/realloc/free). Go's
// own allocator
// already guarantees address-stability for heap objects — the part of
// that contract that still varies by policy is *recycling*: whether a
// Resumption, Fragment, or frame value is returned to a pool for reuse or
// left for the garbage collector. Allocator expresses exactly that part.
type Allocator interface {
	// Get returns a value for the given class (an opaque int the caller
	// chooses consistently for a given pool; this Allocator never inspects
	// it beyond using it as the pool key, except for the small set of
	// classFrame/classResumption/classFragment values this package reserves
	// for its own typed object recycling). size must be positive, or one of
	// those reserved classes; anything else is reported via ErrInvalidSize
	// on the fatal path.
	Get(class int) any
	// Put returns a value obtained from Get back to the allocator, for
	// possible reuse. Implementations may ignore it.
	Put(class int, v any)
}

// Reserved classes for this package's own pooled object kinds, which have
// no natural byte size. Chosen well clear of the small positive integers
// callers use as byte-size classes, and of zero/-1 which callers may
// legitimately pass to Put as a no-op (see poolAllocator.Put).
const (
	classFrame = -(1 << 30) + iota
	classResumption
	classFragment
)

func isReservedClass(class int) bool {
	switch class {
	case classFrame, classResumption, classFragment:
		return true
	default:
		return false
	}
}

// poolAllocator is the default Allocator, backed by sync.Pool — the same
// mechanism pool.go/marker_pool.go already use for frame and marker
// recycling, generalized here into a named, swappable interface instead
// of three ad hoc package-level pools.
type poolAllocator struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

// NewPoolAllocator creates an Allocator that lazily creates one sync.Pool
// per class. Positive classes pool zero-value []byte slices of that size;
// the package's reserved classes pool the corresponding typed object.
func NewPoolAllocator() Allocator {
	return &poolAllocator{pools: make(map[int]*sync.Pool)}
}

func (a *poolAllocator) poolFor(class int) *sync.Pool {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.pools[class]
	if !ok {
		p = &sync.Pool{New: newForClass(class)}
		a.pools[class] = p
	}
	return p
}

func newForClass(class int) func() any {
	switch class {
	case classFrame:
		return func() any { return new(frame) }
	case classResumption:
		return func() any { return new(Resumption) }
	case classFragment:
		return func() any { return new(Fragment) }
	default:
		size := class
		return func() any { return make([]byte, size) }
	}
}

func (a *poolAllocator) Get(class int) any {
	if class <= 0 && !isReservedClass(class) {
		raiseFatal(ErrInvalidSize, "Allocator.Get: non-positive size class")
		return nil
	}
	return a.poolFor(class).Get()
}

func (a *poolAllocator) Put(class int, v any) {
	if class <= 0 && !isReservedClass(class) {
		return
	}
	a.poolFor(class).Put(v)
}

var defaultAllocator = NewPoolAllocator()
