package bounds

import (
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// checkAggregate validates an aggregate literal against its target array
// type (spec §4.3 "Aggregate"). Aggregate associations reuse the same
// Value/Rng "choice" convention case-statement associations use (see
// checks_case.go): Value holds a named index choice, Rng a range choice,
// both nil for a positional association; the association's Target slot
// holds the element's value expression.
func (c *Checker) checkAggregate(n *tree.Node) {
	for _, a := range n.Assocs {
		c.foldAndCheckExpr(&a.Target)
		switch a.Sub {
		case tree.SubAssocNamed:
			c.foldAndCheckExpr(&a.Value)
		case tree.SubAssocRange:
			c.foldRange(a.Rng)
		}
	}

	if n.Type == nil || !n.Type.IsArray() {
		return
	}
	low, high, haveBounds := int64(0), int64(0), false
	if dim := n.Type.DimRange(1); dim != nil {
		if l, h, ok := fold.FoldedBounds(dim); ok {
			low, high, haveBounds = l, h, true
		}
	}

	positional, named, ranged := 0, 0, int64(0)
	hasOthers := false
	for _, a := range n.Assocs {
		switch a.Sub {
		case tree.SubAssocPositional:
			positional++
		case tree.SubAssocOthers:
			hasOthers = true
		case tree.SubAssocNamed:
			named++
			if haveBounds {
				if v, ok := fold.FoldedInt(a.Value); ok && (v < low || v > high) {
					c.ctx.Errorf(a.Loc, "aggregate choice %d out of bounds %d to %d", v, low, high)
				}
			}
		case tree.SubAssocRange:
			if rl, rh, ok := fold.FoldedBounds(a.Rng); ok {
				ranged += rh - rl + 1
				if haveBounds && (rl < low || rh > high) {
					c.ctx.Errorf(a.Loc, "aggregate range choice %d to %d out of bounds %d to %d", rl, rh, low, high)
				}
			}
		}
	}

	if !hasOthers && haveBounds {
		total := int64(positional+named) + ranged
		expected := high - low + 1
		if total != expected {
			c.ctx.Errorf(n.Loc, "aggregate has %d elements, expected %d", total, expected)
		}
	}

	c.checkSubAggregateLengths(n)
}

// checkSubAggregateLengths verifies that, for an aggregate of any
// multi-dimensional array type (constrained or not), every association
// whose element is itself an aggregate has the same number of
// associations as the first such sub-aggregate (spec §4.3: "sub-aggregate
// lengths must all be equal"). Ranged choices inside a sub-aggregate count
// as one association each.
func (c *Checker) checkSubAggregateLengths(n *tree.Node) {
	if n.Type == nil || n.Type.NDims() < 2 {
		return
	}
	length := int64(-1)
	for _, a := range n.Assocs {
		sub := a.Target
		if sub == nil || sub.Kind != tree.KindAggregate {
			continue
		}
		l := int64(len(sub.Assocs))
		if length == -1 {
			length = l
			continue
		}
		if l != length {
			c.ctx.Errorf(sub.Loc, "sub-aggregate length %d does not match preceding length %d", l, length)
		}
	}
}
