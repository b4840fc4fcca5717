package bounds

import (
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// checkTypeConversion verifies a conversion's folded result against the
// target subtype's range (spec §4.3 "Type conversion"). Truncation
// toward zero on a real operand is the evaluator's rule (spec §4.2);
// this check only validates the range once a result value is available.
func (c *Checker) checkTypeConversion(n *tree.Node) {
	if n.Type == nil || n.Type.Resolve().Kind != tree.TypeInteger {
		return
	}
	var v int64
	var ok bool
	if real, isReal := fold.FoldedReal(n.Value); isReal {
		v, ok = int64(real), true
	} else {
		v, ok = fold.FoldedInt(n.Value)
	}
	if !ok {
		return
	}
	r := n.Type.EffectiveRange()
	if r == nil {
		return
	}
	low, high, ok := fold.FoldedBounds(r)
	if !ok {
		return
	}
	if v < low || v > high {
		c.ctx.Errorf(n.Loc, "type conversion result %d out of bounds %d to %d", v, low, high)
	}
}
