package bounds

import (
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// checkCallArguments validates each positional actual/formal pair (spec
// §4.3 "Call arguments"). It applies uniformly to function calls and
// procedure-call statements, which share the same Params/Ref shape.
func (c *Checker) checkCallArguments(call *tree.Node) {
	decl := call.Ref
	if decl == nil {
		return
	}
	for i, actual := range call.Params {
		if i >= len(decl.Params) {
			break
		}
		formal := decl.Params[i]
		if formal.Type == nil {
			continue
		}
		if formal.Type.IsArray() {
			c.checkArrayArgument(call, actual, formal)
			continue
		}
		if formal.Type.Resolve().Kind == tree.TypeInteger {
			c.checkIntegerArgument(call, actual, formal)
		}
	}
}

// checkArrayArgument compares folded dimension lengths when both the
// actual and the formal are constrained arrays; an unconstrained formal
// accepts any actual, so it is not checked here.
func (c *Checker) checkArrayArgument(call, actual, formal *tree.Node) {
	actualType := nodeType(actual)
	if actualType == nil || !actualType.IsArray() {
		return
	}
	if actualType.Resolve().Kind != tree.TypeArrayConstrained || formal.Type.Resolve().Kind != tree.TypeArrayConstrained {
		return
	}
	nd := formal.Type.NDims()
	if actualType.NDims() < nd {
		nd = actualType.NDims()
	}
	for d := 1; d <= nd; d++ {
		fLen, ok1 := fold.FoldedLength(formal.Type.DimRange(d))
		aLen, ok2 := fold.FoldedLength(actualType.DimRange(d))
		if !ok1 || !ok2 {
			continue
		}
		if fLen != aLen {
			c.ctx.Errorf(call.Loc, "argument to %s dimension %d length %d does not match formal %s length %d",
				call.Ident.String(), d, aLen, formal.Ident.String(), fLen)
		}
	}
}

func (c *Checker) checkIntegerArgument(call, actual, formal *tree.Node) {
	v, ok := fold.FoldedInt(actual)
	if !ok {
		return
	}
	r := formal.Type.EffectiveRange()
	if r == nil {
		return
	}
	low, high, ok := fold.FoldedBounds(r)
	if !ok {
		return
	}
	if v < low || v > high {
		c.ctx.Errorf(actual.Loc, "argument %d to %s out of bounds %d to %d", v, call.Ident.String(), low, high)
	}
}
