// Package fold implements the folding predicates and the constant
// evaluator (spec §4.1, §4.2): a best-effort partial interpreter that
// reduces elaboration-time expressions to literals, never panicking on
// unfoldable input.
package fold

import "github.com/nvc-hdl/nvccore/internal/tree"

// deref follows a reference through at most one named-constant or
// enum-literal indirection, as spec §4.1 requires ("after following
// trivial references"). It does not chase chains of aliases: a constant
// whose value is itself a reference is returned as that reference, and
// no caller follows it further, so such a chain does not fold.
func deref(n *tree.Node) *tree.Node {
	if n == nil {
		return nil
	}
	if n.Kind != tree.KindReference {
		return n
	}
	target := n.Ref
	if target == nil {
		return n
	}
	switch target.Kind {
	case tree.KindEnumLiteralDecl:
		pos, _ := target.EnumPosition()
		return tree.NewEnumLiteral(target.Ident, pos, target, n.Loc)
	case tree.KindConstantDecl:
		if target.Value != nil {
			return target.Value
		}
	}
	return n
}

// FoldedInt reports whether n is (or trivially refers to) a folded integer
// literal, and its value. Physical literals fold to the integer count of
// their base unit, since the data model has no separate physical-literal
// predicate (spec §4.1 lists int/real/bool/enum/length/bounds only).
func FoldedInt(n *tree.Node) (int64, bool) {
	n = deref(n)
	if n == nil || n.Kind != tree.KindLiteral {
		return 0, false
	}
	switch n.Sub {
	case tree.SubLitInteger, tree.SubLitPhysical:
		return n.Lit.Int, true
	default:
		return 0, false
	}
}

// FoldedReal reports whether n is a folded real literal, and its value.
func FoldedReal(n *tree.Node) (float64, bool) {
	n = deref(n)
	if n == nil || n.Kind != tree.KindLiteral || n.Sub != tree.SubLitReal {
		return 0, false
	}
	return n.Lit.Real, true
}

// FoldedString reports whether n is a folded string literal, and its
// value. Not one of spec §4.1's named predicates, but required by the
// array-equality built-ins (spec §4.2 table) and the bounds checker's
// string-literal-length check (spec §4.3) — both operate on the same
// "is this already a literal" query the named predicates provide for
// other kinds.
func FoldedString(n *tree.Node) (string, bool) {
	n = deref(n)
	if n == nil || n.Kind != tree.KindLiteral || n.Sub != tree.SubLitString {
		return "", false
	}
	return n.Lit.Str, true
}

// FoldedBool reports whether n is a folded boolean literal, and its value.
// Booleans are represented as the enumeration literals FALSE/TRUE (see
// tree.NewBoolLiteral), so this delegates to the enum predicate and maps
// position 0/1 to false/true.
func FoldedBool(n *tree.Node) (bool, bool) {
	pos, _, ok := FoldedEnum(n)
	if !ok {
		return false, false
	}
	switch pos {
	case 0:
		return false, true
	case 1:
		return true, true
	default:
		return false, false
	}
}

// FoldedEnum reports whether n is a folded enumeration literal, returning
// its interned name and ordinal position.
func FoldedEnum(n *tree.Node) (int64, string, bool) {
	n = deref(n)
	if n == nil || n.Kind != tree.KindLiteral || n.Sub != tree.SubLitEnum {
		return 0, "", false
	}
	return n.Lit.Int, n.Ident.String(), true
}

// FoldedLength computes a range's length: right-left+1 for `to`,
// left-right+1 for `downto`, 0 for a null range, and reports false for
// non-numeric or unfoldable endpoints (spec §4.1).
func FoldedLength(r *tree.Range) (int64, bool) {
	low, high, ok := FoldedBounds(r)
	if !ok {
		return 0, false
	}
	if low > high {
		return 0, true
	}
	return high - low + 1, true
}

// FoldedBounds normalizes a range's direction, returning (low, high) with
// low <= high whenever the range is non-null, or reports false if either
// endpoint does not fold to an integer (spec §4.1).
func FoldedBounds(r *tree.Range) (low, high int64, ok bool) {
	if r == nil || r.Dir == tree.DirNone {
		return 0, 0, false
	}
	left, lok := FoldedInt(r.Left)
	right, rok := FoldedInt(r.Right)
	if !lok || !rok {
		return 0, 0, false
	}
	if r.Dir == tree.DirTo {
		return left, right, true
	}
	return right, left, true
}
