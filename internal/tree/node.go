// Package tree implements the shared tree & type data model (spec §3):
// a single discriminated Node type addressed by Kind/Sub and a set of
// named, ordered child slots, plus the Type/Range records attached to
// typed nodes. Nothing in this package mutates a tree in place during
// folding or bounds checking — the evaluator returns replacement subtrees;
// the checker writes the elide-bounds attribute and stores those
// replacement subtrees into the slots that held the folded calls.
package tree

import "github.com/nvc-hdl/nvccore/internal/ident"
import "github.com/nvc-hdl/nvccore/internal/srcpos"

// Position re-exports srcpos.Position so callers only need to import
// package tree for the common case.
type Position = srcpos.Position

// Literal is the typed payload for KindLiteral nodes. Only the field(s)
// matching Sub are meaningful.
type Literal struct {
	Int  int64   // integer literals; enum-literal position cache; physical literals (base-unit count)
	Real float64 // real literals
	Str  string  // string literals
}

// Node is the single discriminated tree node described by spec §3. Only
// the fields relevant to Kind (and, for expressions/literals, Sub) are
// populated; this is documented per constructor below rather than per
// field, since the same field (e.g. Value) means different things for
// different Kinds — exactly as the data model intends by using named
// accessors instead of one struct per node kind.
type Node struct {
	Kind Kind
	Sub  Sub
	Loc  Position

	Ident  ident.ID
	Ident2 ident.ID

	Type *Type
	Lit  Literal

	Attrs map[ident.ID]AttrValue

	// Named child slots (spec §3). Single-node slots:
	Value  *Node  // RHS of assignment/return/default value; case scrutinee; named choice of a case/aggregate association; type-conversion operand
	Target *Node  // object being indexed/sliced/assigned to; aggregate association's element value
	Ref    *Node  // resolved declaration this reference/call targets
	Rng    *Range // slice range; for-loop range; range choice of a case/aggregate association

	// Ordered child slots:
	Params    []*Node // formal parameter decls (function decl) or actual arguments (call, array ref index list)
	Ports     []*Node // entity port decls
	Decls     []*Node // local declarations (function body, block)
	Stmts     []*Node // statement sequence (function body, if-then, while/for body, block, case branch)
	ElseStmts []*Node // if-statement else branch
	Assocs    []*Node // aggregate elements / case choices, each a KindAssoc node
	Chars     []*Node // string literal decomposed into character literals, when needed
	Waveforms []*Node // signal assignment waveform elements
}

// --- Literal constructors -------------------------------------------------

// NewIntLiteral builds a folded integer literal node.
func NewIntLiteral(v int64, loc Position) *Node {
	return &Node{Kind: KindLiteral, Sub: SubLitInteger, Loc: loc, Lit: Literal{Int: v}}
}

// NewRealLiteral builds a folded real literal node.
func NewRealLiteral(v float64, loc Position) *Node {
	return &Node{Kind: KindLiteral, Sub: SubLitReal, Loc: loc, Lit: Literal{Real: v}}
}

// NewStringLiteral builds a folded string literal node.
func NewStringLiteral(v string, loc Position) *Node {
	return &Node{Kind: KindLiteral, Sub: SubLitString, Loc: loc, Lit: Literal{Str: v}}
}

// NewEnumLiteral builds a folded reference to an enumeration literal at a
// known ordinal position. name is recorded for display; decl, if non-nil,
// links back to the declaring KindEnumLiteralDecl.
func NewEnumLiteral(name ident.ID, position int64, decl *Node, loc Position) *Node {
	n := &Node{Kind: KindLiteral, Sub: SubLitEnum, Ident: name, Loc: loc, Lit: Literal{Int: position}, Ref: decl}
	return n
}

var (
	identFalse = ident.Intern("false")
	identTrue  = ident.Intern("true")
)

// NewBoolLiteral builds a folded boolean literal, modeled as the
// enumeration literal FALSE (position 0) or TRUE (position 1) per the VHDL
// predefined BOOLEAN type — spec §4.1 treats folded_bool as its own
// predicate, but there is no separate boolean node kind in the data model.
func NewBoolLiteral(v bool, loc Position) *Node {
	if v {
		return NewEnumLiteral(identTrue, 1, nil, loc)
	}
	return NewEnumLiteral(identFalse, 0, nil, loc)
}

// IsLiteral reports whether n is a literal node (or nil).
func (n *Node) IsLiteral() bool {
	return n != nil && n.Kind == KindLiteral
}

// Walk calls visit for n and, recursively, every child node reachable
// through the named slots, depth-first. visit returning false stops
// descent into that node's children (but siblings are still visited).
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	// n.Ref is a points-to edge to a declaration owned elsewhere in the
	// tree (often shared by many references) — it is deliberately not
	// descended into here, or every use of a symbol would re-walk its
	// declaration.
	walkRange(n.Rng, visit)
	Walk(n.Value, visit)
	Walk(n.Target, visit)
	for _, c := range n.Params {
		Walk(c, visit)
	}
	for _, c := range n.Ports {
		Walk(c, visit)
	}
	for _, c := range n.Decls {
		Walk(c, visit)
	}
	for _, c := range n.Stmts {
		Walk(c, visit)
	}
	for _, c := range n.ElseStmts {
		Walk(c, visit)
	}
	for _, c := range n.Assocs {
		Walk(c, visit)
	}
	for _, c := range n.Chars {
		Walk(c, visit)
	}
	for _, c := range n.Waveforms {
		Walk(c, visit)
	}
}

func walkRange(r *Range, visit func(*Node) bool) {
	if r == nil {
		return
	}
	Walk(r.Left, visit)
	Walk(r.Right, visit)
}
