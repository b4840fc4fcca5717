package fold

import (
	"github.com/nvc-hdl/nvccore/internal/ident"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// env is the evaluator's stacked binding environment (spec §3): a stack of
// frames, each mapping identifiers to already-folded literal subtrees.
// Lookups walk the stack top-to-bottom; a bind in the current frame either
// replaces an existing entry in that frame or appends, giving lexical
// shadowing across frames and in-frame rebinding (for variable
// assignment) for free.
//
// The teacher's evaluator (internal/interp/evaluator/callstack.go) uses a
// similar frame stack for call frames; this one is simplified to the
// single concern spec §3 describes — no closures, no captured frames.
// Each folded user-defined function call pushes one frame for its formals
// and locals, so nested calls stack one frame per active call, and a
// lookup that misses the top frame continues into the callers' frames.
type env struct {
	frames []map[ident.ID]*frameSlot
}

type frameSlot struct {
	value *tree.Node
}

// newEnv creates an empty environment with no frames pushed.
func newEnv() *env {
	return &env{}
}

// push opens a new, empty frame.
func (e *env) push() {
	e.frames = append(e.frames, make(map[ident.ID]*frameSlot))
}

// pop discards the top frame. Every push is matched by a pop on every
// exit path from the function call that created it (spec §3 invariant) —
// callers use `defer st.env.pop()` immediately after push to guarantee
// this regardless of which return path fires.
func (e *env) pop() {
	e.frames = e.frames[:len(e.frames)-1]
}

// bind rebinds name in the current (topmost) frame, replacing an existing
// entry in that frame or appending one — lexical shadowing only happens
// across frames; within a frame, bind is a plain rebind (used by variable
// assignment and loop-variable advancement).
func (e *env) bind(name ident.ID, value *tree.Node) {
	top := e.frames[len(e.frames)-1]
	if slot, ok := top[name]; ok {
		slot.value = value
		return
	}
	top[name] = &frameSlot{value: value}
}

// lookup walks the stack from top to bottom and returns the first binding
// found for name.
func (e *env) lookup(name ident.ID) (*tree.Node, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if slot, ok := e.frames[i][name]; ok {
			return slot.value, true
		}
	}
	return nil, false
}
