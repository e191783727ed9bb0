// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// frameKind distinguishes the small closed set of handler-frame variants.
// Realized here as one Go struct shape carrying only the fields its kind
// uses — the idiomatic substitute for a tagged, variable-size byte record
// once the byte layout itself is no longer load-bearing.
type frameKind byte

const (
	frameEffect frameKind = iota
	frameSkip
)

// frame is one entry of an Engine's handler stack. id is a monotonic
// counter (Engine.nextID) rather than a slice index, so a frame can still
// be identified correctly after append reallocates the backing array.
type frame struct {
	kind frameKind
	id   uint64

	// effect frame fields
	effect *EffectTag
	hdef   *HandlerDef
	local  any

	// skip frame fields: searches for effect below this frame skip past
	// the frame whose id is skipPast, installed for Tail handling so
	// further operations search below the handler currently dispatching.
	skipPast uint64
}

// Engine is the per-goroutine handler stack for the synchronous
// NoResumeX/NoResume/TailNoop/Tail fast path. Construct one per goroutine;
// it is not safe for concurrent use by multiple goroutines.
type Engine struct {
	frames []*frame
	nextID uint64
	alloc  Allocator
	stats  *Stats
}

// NewEngine creates an Engine with the default Allocator and no statistics
// collection. Use EngineOption to customize either.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{alloc: defaultAllocator}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EngineOption configures an Engine at construction time.
type EngineOption func(*Engine)

// WithAllocator installs a custom Allocator.
func WithAllocator(a Allocator) EngineOption {
	return func(e *Engine) { e.alloc = a }
}

// WithStats installs a Stats collector.
func WithStats(s *Stats) EngineOption {
	return func(e *Engine) { e.stats = s }
}

func (e *Engine) pushEffect(hdef *HandlerDef) *frame {
	var local any
	if hdef.localFn != nil {
		local = hdef.localFn()
	}
	e.nextID++
	f := e.alloc.Get(classFrame).(*frame)
	f.kind = frameEffect
	f.id = e.nextID
	f.effect = hdef.effect
	f.hdef = hdef
	f.local = local
	f.skipPast = 0
	e.frames = append(e.frames, f)
	if e.stats != nil {
		e.stats.handles.Inc()
	}
	return f
}

func (e *Engine) pushSkip(effect *EffectTag, skipPast uint64) *frame {
	e.nextID++
	f := e.alloc.Get(classFrame).(*frame)
	f.kind = frameSkip
	f.id = e.nextID
	f.effect = effect
	f.hdef = nil
	f.local = nil
	f.skipPast = skipPast
	e.frames = append(e.frames, f)
	return f
}

// popTo pops frames from the top down to and including the frame with the
// given id, returning each one to the allocator as it is popped. In the
// synchronous fast path this is always the top frame or one just above it
// (a skip frame), so this is O(1) in practice despite the loop.
func (e *Engine) popTo(id uint64) {
	for len(e.frames) > 0 {
		top := e.frames[len(e.frames)-1]
		e.frames = e.frames[:len(e.frames)-1]
		done := top.id == id
		top.hdef = nil
		top.effect = nil
		top.local = nil
		e.alloc.Put(classFrame, top)
		if done {
			return
		}
	}
}

// findFrame walks the handler stack top to bottom looking for an effect
// frame matching tag, honoring skip frames along the way: each skip frame
// jumps the search back past the frame it was installed under.
func (e *Engine) findFrame(tag *EffectTag) *frame {
	i := len(e.frames) - 1
	for i >= 0 {
		f := e.frames[i]
		switch f.kind {
		case frameSkip:
			if f.effect == tag {
				j := e.indexOfID(f.skipPast)
				if j < 0 {
					i--
					continue
				}
				i = j - 1
				continue
			}
		case frameEffect:
			if f.effect == tag {
				return f
			}
		}
		i--
	}
	return nil
}

func (e *Engine) indexOfID(id uint64) int {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if e.frames[i].id == id {
			return i
		}
	}
	return -1
}
