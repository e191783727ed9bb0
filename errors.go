// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds. All fatal errors route through the pluggable Fatal callback
// (see SetFatal) and, absent one, the default prints and panics. There is
// no defined unwinding behavior past a fatal error.
var (
	// ErrNoHandler is returned when Yield/PerformOp finds no installed
	// handler for the effect tag being yielded.
	ErrNoHandler = errors.New("efkt: no handler for effect")
	// ErrOutOfMemory is raised by a pluggable Allocator on allocation failure.
	ErrOutOfMemory = errors.New("efkt: out of memory")
	// ErrInvalidSize is raised by a pluggable Allocator on a non-positive
	// allocation request.
	ErrInvalidSize = errors.New("efkt: invalid allocation size")
	// ErrStackDirectionViolation is returned when a Resumption or Fragment
	// is invoked from a goroutine other than the one that captured it.
	ErrStackDirectionViolation = errors.New("efkt: resumption used from wrong goroutine")
	// ErrMisuseOfTailResume is returned when a resumption already released
	// (a Scoped resumption after its operation function returned, or a
	// tail-only resumption invoked as first-class) is invoked again.
	ErrMisuseOfTailResume = errors.New("efkt: resumption invoked after release")
	// ErrMisuseOfPointerInValue documents the taxonomy entry for passing a
	// native-stack pointer through the value channel; this implementation
	// has no native stack to alias, so this error exists for API
	// completeness and is never raised by this package itself.
	ErrMisuseOfPointerInValue = errors.New("efkt: pointer value crosses resumption boundary")
)

// FatalFunc receives a fatal error code and message. Install a custom one
// with SetFatal to integrate with an application's own logging/alerting
// instead of the default panic.
type FatalFunc func(code error, msg string)

var fatal FatalFunc = defaultFatal

// SetFatal installs a custom fatal-error callback. Passing nil restores the
// default. Not safe to call concurrently with engine use; call once during
// program initialization and treat it as read-only thereafter.
func SetFatal(f FatalFunc) {
	if f == nil {
		fatal = defaultFatal
		return
	}
	fatal = f
}

// defaultFatal is the package's built-in fatal handler: it panics with
// "msg: code", the same abort-on-fatal convention the rest of this package
// already uses for programmer errors.
func defaultFatal(code error, msg string) {
	panic(fmt.Sprintf("%s: %s", msg, code))
}

// raiseFatal invokes the installed FatalFunc with the error kind code
// itself (one of the Err* values above, comparable with ==) and msg.
func raiseFatal(code error, msg string) {
	fatal(code, msg)
}
