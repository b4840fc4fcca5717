package tree

import "github.com/nvc-hdl/nvccore/internal/ident"

// TypeKind discriminates Type the same way Kind discriminates Node.
type TypeKind uint8

const (
	TypeInvalid TypeKind = iota
	TypeInteger
	TypeReal
	TypeEnum
	TypePhysical
	TypeAccess
	TypeFile
	TypeRecord
	TypeArrayConstrained
	TypeArrayUnconstrained
	TypeSubtype
)

func (k TypeKind) String() string {
	switch k {
	case TypeInteger:
		return "integer"
	case TypeReal:
		return "real"
	case TypeEnum:
		return "enum"
	case TypePhysical:
		return "physical"
	case TypeAccess:
		return "access"
	case TypeFile:
		return "file"
	case TypeRecord:
		return "record"
	case TypeArrayConstrained:
		return "array_constrained"
	case TypeArrayUnconstrained:
		return "array_unconstrained"
	case TypeSubtype:
		return "subtype"
	default:
		return "invalid"
	}
}

// Direction is a range's iteration direction.
type Direction uint8

const (
	// DirNone is the "non-numeric sentinel" direction spec §3 calls out for
	// ranges whose endpoints are not numeric (e.g. enumeration ranges
	// expressed without `to`/`downto`, resolved structurally instead).
	DirNone Direction = iota
	DirTo
	DirDownto
)

func (d Direction) String() string {
	switch d {
	case DirTo:
		return "to"
	case DirDownto:
		return "downto"
	default:
		return "none"
	}
}

// Range is (left, right, direction). Endpoints are expression subtrees —
// they may or may not be folded yet; callers use fold.FoldedBounds to get at
// numeric values.
type Range struct {
	Left, Right *Node
	Dir         Direction
}

// Type is the shared type record of the data model (spec §3). Only the
// fields relevant to a given Kind are populated; this mirrors the tree
// Node's own "only relevant fields populated for this Kind" discipline.
type Type struct {
	Kind TypeKind
	Name ident.ID

	// Integer / real / physical
	Scalar *Range

	// Enumeration: ordered enum-literal declarations, each a
	// KindEnumLiteralDecl node carrying its position in the attrs map.
	EnumLiterals []*Node

	// Constrained array: one Range per dimension, plus the element type.
	Dims []*Range
	Elem *Type

	// Unconstrained array: one index-constraint type per dimension, plus
	// the element type (Elem, shared with the constrained case).
	IndexTypes []*Type

	// Subtype: base type plus one or more dimension/scalar constraints.
	Base        *Type
	Constraints []*Range
}

// NDims returns the number of dimensions of an array type (constrained or
// unconstrained), or 0 for non-array types. Used by the attribute-reference
// bounds check (spec §4.3, "1 ≤ d ≤ ndims").
func (t *Type) NDims() int {
	if t == nil {
		return 0
	}
	switch t.Kind {
	case TypeArrayConstrained:
		return len(t.Dims)
	case TypeArrayUnconstrained:
		return len(t.IndexTypes)
	case TypeSubtype:
		if n := len(t.Constraints); n > 0 {
			return n
		}
		return t.Base.NDims()
	default:
		return 0
	}
}

// IsArray reports whether t is (possibly via subtyping) an array type.
func (t *Type) IsArray() bool {
	return t.Resolve().Kind == TypeArrayConstrained || t.Resolve().Kind == TypeArrayUnconstrained
}

// Resolve follows subtype chains down to the underlying base type and
// returns that base type (t itself when t is not a subtype), so the
// subtype's own Constraints are not visible on the result — callers
// needing dimension constraints should prefer the subtype's own
// Constraints before falling back to Base.
func (t *Type) Resolve() *Type {
	if t == nil {
		return t
	}
	seen := t
	for seen.Kind == TypeSubtype && seen.Base != nil {
		seen = seen.Base
	}
	return seen
}

// DimRange returns the effective range for 1-based dimension d (1..NDims).
// For a subtype it prefers its own Constraints, falling back to the base
// array type's Dims/IndexTypes.
func (t *Type) DimRange(d int) *Range {
	if t == nil || d < 1 {
		return nil
	}
	switch t.Kind {
	case TypeArrayConstrained:
		if d > len(t.Dims) {
			return nil
		}
		return t.Dims[d-1]
	case TypeArrayUnconstrained:
		if d > len(t.IndexTypes) {
			return nil
		}
		return t.IndexTypes[d-1].EffectiveRange()
	case TypeSubtype:
		if d <= len(t.Constraints) {
			return t.Constraints[d-1]
		}
		return t.Base.DimRange(d)
	default:
		return nil
	}
}

// EffectiveRange returns the scalar range that bounds values of t: the
// integer/real/physical range directly, the subtype's own constraint if
// scalar, or nil for composite types.
func (t *Type) EffectiveRange() *Range {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case TypeInteger, TypeReal, TypePhysical:
		return t.Scalar
	case TypeSubtype:
		if len(t.Constraints) == 1 {
			return t.Constraints[0]
		}
		return t.Base.EffectiveRange()
	default:
		return nil
	}
}
