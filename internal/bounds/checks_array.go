package bounds

import (
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// checkArrayRef validates each folded index against the target's
// matching dimension range (spec §4.3 "Array reference"). When every
// index is static and in-bounds, the node is marked elide_bounds so the
// backend may skip the runtime check.
func (c *Checker) checkArrayRef(n *tree.Node) {
	t := nodeType(n.Target)
	if t == nil || len(n.Params) == 0 {
		return
	}
	allStaticInBounds := true
	for d, idx := range n.Params {
		dim := d + 1
		v, ok := fold.FoldedInt(idx)
		if !ok {
			allStaticInBounds = false
			continue
		}
		r := t.DimRange(dim)
		if r == nil {
			allStaticInBounds = false
			continue
		}
		low, high, ok := fold.FoldedBounds(r)
		if !ok {
			allStaticInBounds = false
			continue
		}
		if v < low || v > high {
			allStaticInBounds = false
			c.ctx.Errorf(idx.Loc, "array %s index %d out of bounds %d to %d", targetName(n.Target), v, low, high)
		}
	}
	if allStaticInBounds {
		n.MarkElideBounds()
	}
}

// checkArraySlice validates a slice range's endpoints against the
// target's first dimension (spec §4.3 "Array slice"). A null slice (a
// range whose left endpoint lies past its right for the slice range's own
// direction) is not an error.
func (c *Checker) checkArraySlice(n *tree.Node) {
	t := nodeType(n.Target)
	if t == nil || n.Rng == nil {
		return
	}
	dim := t.DimRange(1)
	if dim == nil {
		return
	}
	dlow, dhigh, ok := fold.FoldedBounds(dim)
	if !ok {
		return
	}
	low, high, ok := fold.FoldedBounds(n.Rng)
	if !ok {
		return
	}
	if low > high {
		return // null slice
	}
	if low < dlow || high > dhigh {
		c.ctx.Errorf(n.Loc, "array %s slice %d to %d out of bounds %d to %d", targetName(n.Target), low, high, dlow, dhigh)
	}
}

func targetName(n *tree.Node) string {
	if n == nil || n.Ident.IsNil() {
		return "<anonymous>"
	}
	return n.Ident.String()
}
