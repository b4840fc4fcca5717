package bounds

import (
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// checkAttrRef validates an explicit dimension argument on a length/low/
// high/left/right attribute reference against the target's number of
// dimensions (spec §4.3 "Attribute reference"). An attribute reference
// without a dimension argument defaults to dimension 1 and needs no
// check.
func (c *Checker) checkAttrRef(n *tree.Node) {
	if len(n.Params) == 0 {
		return
	}
	t := nodeType(n.Target)
	if t == nil {
		return
	}
	d, ok := fold.FoldedInt(n.Params[0])
	if !ok {
		return
	}
	ndims := int64(t.NDims())
	if d < 1 || d > ndims {
		c.ctx.Errorf(n.Loc, "attribute %s dimension %d out of range 1 to %d", n.Ident.String(), d, ndims)
	}
}
