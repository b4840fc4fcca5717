package bounds

import (
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// checkAssignment validates a variable or signal assignment's target
// against its value (spec §4.3 "Assignment"): matching array dimension
// lengths, or a scalar constraint check for integer/enum-position
// values.
func (c *Checker) checkAssignment(n *tree.Node) {
	c.foldAndCheckExpr(&n.Target)
	c.foldAndCheckExpr(&n.Value)

	targetType := nodeType(n.Target)
	if targetType == nil || n.Value == nil {
		return
	}
	c.checkStringLiteralLength(n.Value, targetType)

	if targetType.IsArray() {
		c.checkAssignmentArrayLengths(n, targetType)
		return
	}
	c.checkAssignmentScalarRange(n, targetType)
}

func (c *Checker) checkAssignmentArrayLengths(n *tree.Node, targetType *tree.Type) {
	valueType := nodeType(n.Value)
	if valueType == nil || !valueType.IsArray() {
		return
	}
	nd := targetType.NDims()
	if valueType.NDims() < nd {
		nd = valueType.NDims()
	}
	for d := 1; d <= nd; d++ {
		tLen, ok1 := fold.FoldedLength(targetType.DimRange(d))
		vLen, ok2 := fold.FoldedLength(valueType.DimRange(d))
		if ok1 && ok2 && tLen != vLen {
			c.ctx.Errorf(n.Loc, "assignment dimension %d length %d does not match target length %d", d, vLen, tLen)
		}
	}
}

func (c *Checker) checkAssignmentScalarRange(n *tree.Node, targetType *tree.Type) {
	r := targetType.EffectiveRange()
	if r == nil {
		return
	}
	low, high, ok := fold.FoldedBounds(r)
	if !ok {
		return
	}
	var v int64
	if iv, ok := fold.FoldedInt(n.Value); ok {
		v = iv
	} else if pos, _, ok := fold.FoldedEnum(n.Value); ok {
		v = pos
	} else {
		return
	}
	if v < low || v > high {
		c.ctx.Errorf(n.Loc, "assigned value %d out of bounds %d to %d", v, low, high)
	}
}
