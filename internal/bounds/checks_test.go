package bounds_test

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/nvc-hdl/nvccore/internal/bounds"
	"github.com/nvc-hdl/nvccore/internal/diag"
	"github.com/nvc-hdl/nvccore/internal/ident"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

var loc = tree.Position{Line: 1, Column: 1}

type recorder struct {
	messages []string
}

func (r *recorder) Report(sev diag.Severity, loc tree.Position, message string) {
	r.messages = append(r.messages, sev.String()+": "+message)
}

func bitVectorRange(low, high int64) *tree.Type {
	return &tree.Type{
		Kind: tree.TypeArrayConstrained,
		Dims: []*tree.Range{{Left: tree.NewIntLiteral(low, loc), Right: tree.NewIntLiteral(high, loc), Dir: tree.DirTo}},
		Elem: &tree.Type{Kind: tree.TypeInteger, Scalar: &tree.Range{Left: tree.NewIntLiteral(0, loc), Right: tree.NewIntLiteral(1, loc), Dir: tree.DirTo}},
	}
}

func arrayRefNode(name string, indexType *tree.Type, index int64) *tree.Node {
	target := &tree.Node{Kind: tree.KindReference, Ident: ident.Intern(name), Type: indexType, Loc: loc}
	return &tree.Node{
		Kind:   tree.KindArrayRef,
		Target: target,
		Params: []*tree.Node{tree.NewIntLiteral(index, loc)},
		Loc:    loc,
	}
}

func TestArrayRefInBoundsSetsElideBounds(t *testing.T) {
	n := arrayRefNode("a", bitVectorRange(0, 7), 5)
	ctx := diag.NewContext(nil, false)
	bounds.Check(ctx, n)

	if ctx.Errors() != 0 {
		t.Fatalf("expected no errors, got %d", ctx.Errors())
	}
	if !n.ElideBounds() {
		t.Fatalf("expected elide_bounds to be set for a fully static in-bounds reference")
	}
}

func TestArrayRefOutOfBoundsReportsOneError(t *testing.T) {
	rec := &recorder{}
	n := arrayRefNode("a", bitVectorRange(0, 7), 9)
	ctx := diag.NewContext(rec, false)
	bounds.Check(ctx, n)

	if ctx.Errors() != 1 {
		t.Fatalf("expected exactly 1 error, got %d", ctx.Errors())
	}
	if n.ElideBounds() {
		t.Fatalf("expected elide_bounds to stay unset for an out-of-bounds reference")
	}
	if len(rec.messages) != 1 || !strings.Contains(rec.messages[0], "array a index 9 out of bounds 0 to 7") {
		t.Fatalf("unexpected message: %v", rec.messages)
	}
}

func integerSubtype(low, high int64) *tree.Type {
	return &tree.Type{Kind: tree.TypeInteger, Scalar: &tree.Range{Left: tree.NewIntLiteral(low, loc), Right: tree.NewIntLiteral(high, loc), Dir: tree.DirTo}}
}

func caseAssocInt(value int64, isOthers bool) *tree.Node {
	if isOthers {
		return &tree.Node{Kind: tree.KindAssoc, Sub: tree.SubAssocOthers, Loc: loc}
	}
	return &tree.Node{Kind: tree.KindAssoc, Sub: tree.SubAssocNamed, Value: tree.NewIntLiteral(value, loc), Loc: loc}
}

func caseAssocRange(low, high int64) *tree.Node {
	return &tree.Node{
		Kind: tree.KindAssoc,
		Sub:  tree.SubAssocRange,
		Rng:  &tree.Range{Left: tree.NewIntLiteral(low, loc), Right: tree.NewIntLiteral(high, loc), Dir: tree.DirTo},
		Loc:  loc,
	}
}

func TestIntegerCaseMissingIntervalsReported(t *testing.T) {
	rec := &recorder{}
	scrutinee := &tree.Node{Kind: tree.KindReference, Ident: ident.Intern("i"), Type: integerSubtype(0, 7), Loc: loc}
	caseStmt := &tree.Node{
		Kind:  tree.KindCaseStmt,
		Value: scrutinee,
		Assocs: []*tree.Node{
			caseAssocInt(0, false),
			caseAssocRange(2, 5),
		},
		Loc: loc,
	}

	ctx := diag.NewContext(rec, false)
	bounds.Check(ctx, caseStmt)

	if ctx.Errors() != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", ctx.Errors(), rec.messages)
	}
	msg := rec.messages[0]
	if !strings.Contains(msg, "1") || !strings.Contains(msg, "6 to 7") {
		t.Fatalf("expected missing choices 1 and 6 to 7, got %q", msg)
	}
}

func TestIntegerCaseOverlapReportsDuplicate(t *testing.T) {
	rec := &recorder{}
	scrutinee := &tree.Node{Kind: tree.KindReference, Ident: ident.Intern("i"), Type: integerSubtype(0, 7), Loc: loc}
	caseStmt := &tree.Node{
		Kind:  tree.KindCaseStmt,
		Value: scrutinee,
		Assocs: []*tree.Node{
			caseAssocRange(0, 3),
			caseAssocInt(2, false),
			caseAssocRange(4, 7),
		},
		Loc: loc,
	}

	ctx := diag.NewContext(rec, false)
	bounds.Check(ctx, caseStmt)

	if ctx.Errors() != 1 {
		t.Fatalf("expected exactly 1 overlap error, got %d: %v", ctx.Errors(), rec.messages)
	}
	if !strings.Contains(rec.messages[0], "overlaps already-covered") {
		t.Fatalf("unexpected message: %v", rec.messages)
	}
}

func TestIntegerCaseWithOthersReportsNothing(t *testing.T) {
	scrutinee := &tree.Node{Kind: tree.KindReference, Ident: ident.Intern("i"), Type: integerSubtype(0, 7), Loc: loc}
	caseStmt := &tree.Node{
		Kind:  tree.KindCaseStmt,
		Value: scrutinee,
		Assocs: []*tree.Node{
			caseAssocInt(0, false),
			caseAssocInt(1, false),
			caseAssocInt(2, true),
		},
		Loc: loc,
	}
	ctx := diag.NewContext(nil, false)
	bounds.Check(ctx, caseStmt)
	if ctx.Errors() != 0 {
		t.Fatalf("expected no errors when others covers the remainder, got %d", ctx.Errors())
	}
}

func TestAssignmentScalarOutOfRangeReportsError(t *testing.T) {
	rec := &recorder{}
	target := &tree.Node{Kind: tree.KindReference, Ident: ident.Intern("v"), Type: integerSubtype(0, 7), Loc: loc}
	assign := &tree.Node{
		Kind:   tree.KindVarAssignStmt,
		Target: target,
		Value:  tree.NewIntLiteral(9, loc),
		Loc:    loc,
	}
	ctx := diag.NewContext(rec, false)
	bounds.Check(ctx, assign)
	if ctx.Errors() != 1 {
		t.Fatalf("expected exactly 1 error, got %d", ctx.Errors())
	}
	if !strings.Contains(rec.messages[0], "assigned value 9 out of bounds 0 to 7") {
		t.Fatalf("unexpected message: %v", rec.messages)
	}
}

func TestSaturatingPowOpenQuestionDecision(t *testing.T) {
	scrutinee := &tree.Node{
		Kind: tree.KindReference,
		Type: &tree.Type{
			Kind: tree.TypeArrayConstrained,
			Dims: []*tree.Range{{Left: tree.NewIntLiteral(0, loc), Right: tree.NewIntLiteral(99, loc), Dir: tree.DirTo}},
			Elem: &tree.Type{Kind: tree.TypeInteger, Scalar: &tree.Range{Left: tree.NewIntLiteral(0, loc), Right: tree.NewIntLiteral(1, loc), Dir: tree.DirTo}},
		},
		Loc: loc,
	}
	caseStmt := &tree.Node{
		Kind:   tree.KindCaseStmt,
		Value:  scrutinee,
		Assocs: []*tree.Node{caseAssocInt(0, false)},
		Loc:    loc,
	}
	rec := &recorder{}
	ctx := diag.NewContext(rec, false)
	bounds.Check(ctx, caseStmt)
	if ctx.Errors() != 1 {
		t.Fatalf("expected exactly 1 error, got %d", ctx.Errors())
	}
	if !strings.Contains(rec.messages[0], "of 2147483647 possible values") {
		t.Fatalf("expected saturation at the 32-bit sentinel, got %q", rec.messages[0])
	}
}

func TestDiagnosticReportSnapshot(t *testing.T) {
	rec := &recorder{}
	ctx := diag.NewContext(rec, false)

	bounds.Check(ctx, arrayRefNode("a", bitVectorRange(0, 7), 9))
	bounds.Check(ctx, &tree.Node{
		Kind:   tree.KindVarAssignStmt,
		Target: &tree.Node{Kind: tree.KindReference, Ident: ident.Intern("v"), Type: integerSubtype(0, 7), Loc: loc},
		Value:  tree.NewIntLiteral(42, loc),
		Loc:    loc,
	})

	snaps.MatchSnapshot(t, "bounds_checker_diagnostics", rec.messages)
}
