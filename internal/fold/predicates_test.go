package fold_test

import (
	"testing"

	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

func TestFoldedLengthTo(t *testing.T) {
	r := &tree.Range{Left: tree.NewIntLiteral(0, loc), Right: tree.NewIntLiteral(7, loc), Dir: tree.DirTo}
	n, ok := fold.FoldedLength(r)
	if !ok || n != 8 {
		t.Fatalf("expected length 8, got %d (ok=%v)", n, ok)
	}
}

func TestFoldedLengthDownto(t *testing.T) {
	r := &tree.Range{Left: tree.NewIntLiteral(7, loc), Right: tree.NewIntLiteral(0, loc), Dir: tree.DirDownto}
	n, ok := fold.FoldedLength(r)
	if !ok || n != 8 {
		t.Fatalf("expected length 8, got %d (ok=%v)", n, ok)
	}
}

func TestFoldedLengthNullRange(t *testing.T) {
	r := &tree.Range{Left: tree.NewIntLiteral(7, loc), Right: tree.NewIntLiteral(0, loc), Dir: tree.DirTo}
	n, ok := fold.FoldedLength(r)
	if !ok || n != 0 {
		t.Fatalf("expected null range length 0, got %d (ok=%v)", n, ok)
	}
}

func TestFoldedBoundsNormalizesDirection(t *testing.T) {
	r := &tree.Range{Left: tree.NewIntLiteral(7, loc), Right: tree.NewIntLiteral(0, loc), Dir: tree.DirDownto}
	low, high, ok := fold.FoldedBounds(r)
	if !ok || low != 0 || high != 7 {
		t.Fatalf("expected (0, 7), got (%d, %d) ok=%v", low, high, ok)
	}
}

func TestFoldedBoundsNonNumericSentinel(t *testing.T) {
	r := &tree.Range{Left: tree.NewIntLiteral(0, loc), Right: tree.NewIntLiteral(1, loc), Dir: tree.DirNone}
	_, _, ok := fold.FoldedBounds(r)
	if ok {
		t.Fatalf("expected DirNone range to not fold")
	}
}

func TestFoldedEnumFollowsDecl(t *testing.T) {
	decl := &tree.Node{Kind: tree.KindEnumLiteralDecl}
	decl.SetAttrInt(tree.AttrEnumPosition, 2)
	r := &tree.Node{Kind: tree.KindReference, Ref: decl}
	pos, _, ok := fold.FoldedEnum(r)
	if !ok || pos != 2 {
		t.Fatalf("expected position 2, got %d (ok=%v)", pos, ok)
	}
}

func TestFoldedBoolTrueFalse(t *testing.T) {
	tLit := tree.NewBoolLiteral(true, loc)
	fLit := tree.NewBoolLiteral(false, loc)
	if v, ok := fold.FoldedBool(tLit); !ok || !v {
		t.Fatalf("expected true literal to fold to true")
	}
	if v, ok := fold.FoldedBool(fLit); !ok || v {
		t.Fatalf("expected false literal to fold to false")
	}
}

func TestFoldedIntThroughConstantReference(t *testing.T) {
	constDecl := &tree.Node{Kind: tree.KindConstantDecl, Value: tree.NewIntLiteral(42, loc)}
	r := &tree.Node{Kind: tree.KindReference, Ref: constDecl}
	v, ok := fold.FoldedInt(r)
	if !ok || v != 42 {
		t.Fatalf("expected 42 via constant reference, got %d (ok=%v)", v, ok)
	}
}
