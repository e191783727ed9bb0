// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

import "sync/atomic"

// Fragment is the refcounted handle created when a Resumption is invoked
// from a call site outside the dynamic extent of its capturing handler.
// In a native-stack-capture runtime this would wrap a saved stack region;
// under the CPS realization it wraps the ordinary Go call stack of
// CallResume's caller instead — once the resumed computation's chain of
// Resume calls returns, control comes back up through Go's own call
// frames with no separate restore step. Fragment still carries its own
// refcount so the two-reference lifetime (the pushed frame + the caller)
// and the release-on-return discipline are genuinely observable, not
// elided.
type Fragment struct {
	refcount atomic.Int32
	res      *Resumption
}

// CallResume invokes res with value v from outside its capturing handler's
// dynamic extent, via a transient Fragment. It delegates to Resumption.Call
// but gives callers a place to observe fragment lifetime (e.g. in tests)
// and matches external-interfaces naming. f never escapes this call, so it
// is returned to defaultAllocator once both references have dropped.
func CallResume(res *Resumption, v any) any {
	f := defaultAllocator.Get(classFragment).(*Fragment)
	f.res = res
	f.refcount.Store(2) // the conceptual pushed frame + this caller
	f.refcount.Add(-1)  // the pushed frame's reference is released as soon as res starts running
	result := res.Call(v)
	f.refcount.Add(-1) // caller's reference released on return
	defaultAllocator.Put(classFragment, f)
	return result
}

// Released reports whether both of the fragment's references have been
// dropped. Exercised by tests asserting no fragment leaks.
func (f *Fragment) Released() bool {
	return f.refcount.Load() <= 0
}
