package bounds

import (
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// checkDecl validates an array declaration's dimension ranges against
// their index subtype's own range (spec §4.3 "Declaration"), and a
// string-literal initial value's length (spec §4.3 "String literal
// length").
func (c *Checker) checkDecl(n *tree.Node) {
	if n.Type != nil && n.Type.IsArray() {
		c.checkArrayDimsAgainstIndexTypes(n)
	}
	if n.Value != nil {
		c.checkStringLiteralLength(n.Value, n.Type)
	}
}

// checkArrayDimsAgainstIndexTypes applies only to declarations whose
// array type is a subtype of an unconstrained base: a directly
// constrained array's Dims are the declaration itself, so there is no
// separate index subtype to check them against.
func (c *Checker) checkArrayDimsAgainstIndexTypes(n *tree.Node) {
	t := n.Type
	base := t.Resolve()
	if base.Kind != tree.TypeArrayUnconstrained {
		return
	}
	for d := 1; d <= t.NDims(); d++ {
		dimRange := t.DimRange(d)
		if dimRange == nil {
			continue
		}
		low, high, ok := fold.FoldedBounds(dimRange)
		if !ok {
			continue
		}
		if low > high {
			continue // null range (direction reversal): no check
		}
		if d > len(base.IndexTypes) {
			continue
		}
		idxRange := base.IndexTypes[d-1].EffectiveRange()
		ilow, ihigh, ok := fold.FoldedBounds(idxRange)
		if !ok {
			continue
		}
		if low < ilow || high > ihigh {
			c.ctx.Errorf(n.Loc, "array %s dimension %d range %d to %d is outside index range %d to %d",
				n.Ident.String(), d, low, high, ilow, ihigh)
		}
	}
}

// checkStringLiteralLength verifies a string literal's character count
// against a constrained character-array subtype's folded length (spec
// §4.3 "String literal length").
func (c *Checker) checkStringLiteralLength(n *tree.Node, t *tree.Type) {
	s, ok := fold.FoldedString(n)
	if !ok || t == nil {
		return
	}
	rt := t.Resolve()
	if rt.Kind != tree.TypeArrayConstrained || len(rt.Dims) != 1 {
		return
	}
	length, ok := fold.FoldedLength(rt.Dims[0])
	if !ok {
		return
	}
	if int64(len(s)) != length {
		c.ctx.Errorf(n.Loc, "string literal length %d does not match expected length %d", len(s), length)
	}
}
