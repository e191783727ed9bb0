// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package efkt

// EffectTag is an opaque effect identity, compared by pointer equality.
// Two tags are the same effect iff they are the same *EffectTag value;
// name collisions between distinct tags are not possible.
type EffectTag struct {
	name string
}

// NewEffectTag allocates a fresh effect tag with the given diagnostic name.
// Call once per effect, typically in a package var, and share the pointer.
func NewEffectTag(name string) *EffectTag {
	return &EffectTag{name: name}
}

// Name returns the tag's diagnostic name.
func (t *EffectTag) Name() string {
	if t == nil {
		return "<nil>"
	}
	return t.name
}

// Reserved internal tags. These never appear in user-installed HandlerDefs.
// No frame carries them: the handler stack holds only effect and skip
// frames (see hstack.go), and has no fragment or scoped frames.
var (
	tagFragment = NewEffectTag("__fragment")
	tagScoped   = NewEffectTag("__scoped")
	tagSkip     = NewEffectTag("__skip")
)

// TagDefer is the reserved built-in effect for scoped cleanup (Bracket, OnError).
// It is Scoped-kind: a defer handler's resumption is released automatically
// when the cleanup operation function returns.
var TagDefer = NewEffectTag("defer")

// TaggedOp is implemented by effect operations usable with the Engine-based
// handler API (Engine.Handle, Engine.Yield, PerformOp, HandleNested). It adds
// effect identity and an opcode to the existing Op constraint so a HandlerDef
// can route an operation to the right entry without a type switch per effect.
type TaggedOp interface {
	Tag() *EffectTag
	Opcode() int
}
