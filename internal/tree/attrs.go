package tree

import "github.com/nvc-hdl/nvccore/internal/ident"

// AttrValue is the small attribute-value union spec §3 calls for: "a small
// mapping from attribute name... to an attribute value (integer or
// string)".
type AttrValue struct {
	HasInt bool
	Int    int64
	Str    string
}

// Well-known attribute keys, interned once. Spec §3 names four uses:
// the built-in operator tag, the position of enum literals, the simple-name
// back-link, and the "elide bounds check" marker.
var (
	AttrBuiltin      = ident.Intern("$builtin")
	AttrEnumPosition = ident.Intern("$enum_pos")
	AttrSimpleName   = ident.Intern("$simple_name")
	AttrElideBounds  = ident.Intern("$elide_bounds")
)

// SetAttrStr sets a string-valued attribute.
func (n *Node) SetAttrStr(key ident.ID, v string) {
	if n.Attrs == nil {
		n.Attrs = make(map[ident.ID]AttrValue)
	}
	n.Attrs[key] = AttrValue{Str: v}
}

// SetAttrInt sets an integer-valued attribute.
func (n *Node) SetAttrInt(key ident.ID, v int64) {
	if n.Attrs == nil {
		n.Attrs = make(map[ident.ID]AttrValue)
	}
	n.Attrs[key] = AttrValue{HasInt: true, Int: v}
}

// AttrStr returns the string-valued attribute and whether it was present.
func (n *Node) AttrStr(key ident.ID) (string, bool) {
	if n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	if !ok || v.HasInt {
		return "", false
	}
	return v.Str, true
}

// AttrInt returns the integer-valued attribute and whether it was present.
func (n *Node) AttrInt(key ident.ID) (int64, bool) {
	if n.Attrs == nil {
		return 0, false
	}
	v, ok := n.Attrs[key]
	if !ok || !v.HasInt {
		return 0, false
	}
	return v.Int, true
}

// HasAttr reports whether key is set at all, regardless of payload kind.
func (n *Node) HasAttr(key ident.ID) bool {
	if n.Attrs == nil {
		return false
	}
	_, ok := n.Attrs[key]
	return ok
}

// Builtin returns the builtin operator tag set on a function declaration,
// if any.
func (n *Node) Builtin() (string, bool) {
	return n.AttrStr(AttrBuiltin)
}

// EnumPosition returns the ordinal position recorded on an enum-literal
// declaration.
func (n *Node) EnumPosition() (int64, bool) {
	return n.AttrInt(AttrEnumPosition)
}

// MarkElideBounds sets the "elide bounds check" marker the bounds checker
// writes on fully-static, in-range array references (spec §3 invariants,
// §4.3 array-reference check).
func (n *Node) MarkElideBounds() {
	n.SetAttrInt(AttrElideBounds, 1)
}

// ElideBounds reports whether the marker is set.
func (n *Node) ElideBounds() bool {
	v, ok := n.AttrInt(AttrElideBounds)
	return ok && v == 1
}
