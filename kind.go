// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// OperationKind orders the dispatch shortcuts available to a yielded
// operation. The order itself is meaningful: NoResumeX and NoResume never
// resume past the yield; TailNoop and Tail resume exactly once, inline,
// before the operation function returns; Scoped and General reify a
// real resumption that may be invoked later, possibly more than once.
type OperationKind int

const (
	// NoResumeX is the exceptional no-resume case: the operation function
	// computes a final result and the action never runs again. Used for
	// effects like Throw where yielding is itself the abort.
	NoResumeX OperationKind = iota
	// NoResume computes a final result without ever resuming, but by
	// ordinary (non-exceptional) control flow.
	NoResume
	// TailNoop must tail-resume and calls no further operations while
	// doing so; no skip frame is needed below it.
	TailNoop
	// Tail must tail-resume but may call further operations before doing
	// so; a skip frame is installed so those operations search below it.
	Tail
	// Scoped reifies a resumption that is released automatically when the
	// operation function returns.
	Scoped
	// General reifies a first-class, escapable resumption with no implicit
	// release point; the caller owns it until it releases or invokes it.
	General
)

// String returns the kind's name, for diagnostics.
func (k OperationKind) String() string {
	switch k {
	case NoResumeX:
		return "NoResumeX"
	case NoResume:
		return "NoResume"
	case TailNoop:
		return "TailNoop"
	case Tail:
		return "Tail"
	case Scoped:
		return "Scoped"
	case General:
		return "General"
	default:
		return "OperationKind(?)"
	}
}

// neverResumesPastYield reports whether a kind is realized as a synchronous
// call plus panic/recover (true) or as a CPS capture (false). See engine.go
// and cps.go.
func (k OperationKind) neverResumesPastYield() bool {
	return k == NoResumeX || k == NoResume
}

// isTail reports whether a kind tail-resumes inline.
func (k OperationKind) isTail() bool {
	return k == Tail || k == TailNoop
}
