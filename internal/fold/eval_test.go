package fold_test

import (
	"testing"

	"github.com/nvc-hdl/nvccore/internal/diag"
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/ident"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

var loc = tree.Position{Line: 1, Column: 1}

func integerType() *tree.Type { return &tree.Type{Kind: tree.TypeInteger} }

func builtinDecl(op, builtin string) *tree.Node {
	d := &tree.Node{Kind: tree.KindFunctionDecl, Ident: ident.Intern(op), Type: integerType()}
	d.SetAttrStr(tree.AttrBuiltin, builtin)
	return d
}

func ref(name string) *tree.Node {
	return &tree.Node{Kind: tree.KindReference, Ident: ident.Intern(name), Loc: loc}
}

func call(decl *tree.Node, name string, args ...*tree.Node) *tree.Node {
	return &tree.Node{Kind: tree.KindFunctionCall, Ident: ident.Intern(name), Ref: decl, Params: args, Loc: loc}
}

func newContext() *diag.Context { return diag.NewContext(nil, false) }

func TestFoldSimpleFunctionCall(t *testing.T) {
	addOp := builtinDecl("\"+\"", "add")

	// function add1(x: integer) return integer is begin return x + 1; end;
	paramX := &tree.Node{Kind: tree.KindParamDecl, Ident: ident.Intern("x"), Type: integerType()}
	body := call(addOp, "\"+\"", ref("x"), tree.NewIntLiteral(1, loc))
	add1 := &tree.Node{
		Kind:   tree.KindFunctionDecl,
		Ident:  ident.Intern("add1"),
		Type:   integerType(),
		Params: []*tree.Node{paramX},
		Stmts:  []*tree.Node{{Kind: tree.KindReturnStmt, Value: body, Loc: loc}},
	}

	topCall := call(add1, "add1", tree.NewIntLiteral(5, loc))
	result := fold.Eval(newContext(), topCall)

	v, ok := fold.FoldedInt(result)
	if !ok || v != 6 {
		t.Fatalf("expected folded 6, got %v (ok=%v)", result, ok)
	}
}

func TestFoldIterativeLog2(t *testing.T) {
	addOp := builtinDecl("\"+\"", "add")
	mulOp := builtinDecl("\"*\"", "mul")
	ltOp := builtinDecl("\"<\"", "lt")
	leqOp := builtinDecl("\"<=\"", "leq")

	paramX := &tree.Node{Kind: tree.KindParamDecl, Ident: ident.Intern("x"), Type: integerType()}
	varR := &tree.Node{Kind: tree.KindVariableDecl, Ident: ident.Intern("r"), Type: integerType(), Value: tree.NewIntLiteral(0, loc)}
	varC := &tree.Node{Kind: tree.KindVariableDecl, Ident: ident.Intern("c"), Type: integerType(), Value: tree.NewIntLiteral(1, loc)}

	assignR1 := &tree.Node{Kind: tree.KindVarAssignStmt, Target: ref("r"), Value: tree.NewIntLiteral(1, loc), Loc: loc}

	whileLoop := &tree.Node{
		Kind:  tree.KindWhileStmt,
		Value: call(ltOp, "\"<\"", ref("c"), ref("x")),
		Stmts: []*tree.Node{
			{Kind: tree.KindVarAssignStmt, Target: ref("r"), Value: call(addOp, "\"+\"", ref("r"), tree.NewIntLiteral(1, loc)), Loc: loc},
			{Kind: tree.KindVarAssignStmt, Target: ref("c"), Value: call(mulOp, "\"*\"", ref("c"), tree.NewIntLiteral(2, loc)), Loc: loc},
		},
		Loc: loc,
	}

	ifStmt := &tree.Node{
		Kind:      tree.KindIfStmt,
		Value:     call(leqOp, "\"<=\"", ref("x"), tree.NewIntLiteral(1, loc)),
		Stmts:     []*tree.Node{assignR1},
		ElseStmts: []*tree.Node{whileLoop},
		Loc:       loc,
	}

	returnR := &tree.Node{Kind: tree.KindReturnStmt, Value: ref("r"), Loc: loc}

	log2 := &tree.Node{
		Kind:   tree.KindFunctionDecl,
		Ident:  ident.Intern("log2"),
		Type:   integerType(),
		Params: []*tree.Node{paramX},
		Decls:  []*tree.Node{varR, varC},
		Stmts:  []*tree.Node{ifStmt, returnR},
	}

	topCall := call(log2, "log2", tree.NewIntLiteral(11, loc))
	result := fold.Eval(newContext(), topCall)

	v, ok := fold.FoldedInt(result)
	if !ok || v != 4 {
		t.Fatalf("expected folded 4, got %v (ok=%v)", result, ok)
	}
}

func TestFoldCaseStatement(t *testing.T) {
	paramX := &tree.Node{Kind: tree.KindParamDecl, Ident: ident.Intern("x"), Type: integerType()}

	caseStmt := &tree.Node{
		Kind:  tree.KindCaseStmt,
		Value: ref("x"),
		Assocs: []*tree.Node{
			{Sub: tree.SubAssocNamed, Value: tree.NewIntLiteral(1, loc), Stmts: []*tree.Node{{Kind: tree.KindReturnStmt, Value: tree.NewIntLiteral(2, loc)}}},
			{Sub: tree.SubAssocNamed, Value: tree.NewIntLiteral(2, loc), Stmts: []*tree.Node{{Kind: tree.KindReturnStmt, Value: tree.NewIntLiteral(3, loc)}}},
			{Sub: tree.SubAssocOthers, Stmts: []*tree.Node{{Kind: tree.KindReturnStmt, Value: tree.NewIntLiteral(5, loc)}}},
		},
	}

	fn := &tree.Node{
		Kind:   tree.KindFunctionDecl,
		Ident:  ident.Intern("casefn"),
		Type:   integerType(),
		Params: []*tree.Node{paramX},
		Stmts:  []*tree.Node{caseStmt},
	}

	topCall := call(fn, "casefn", tree.NewIntLiteral(7, loc))
	result := fold.Eval(newContext(), topCall)

	v, ok := fold.FoldedInt(result)
	if !ok || v != 5 {
		t.Fatalf("expected folded 5, got %v (ok=%v)", result, ok)
	}
}

func TestFoldDefaultArgument(t *testing.T) {
	addOp := builtinDecl("\"+\"", "add")

	paramX := &tree.Node{Kind: tree.KindParamDecl, Ident: ident.Intern("x"), Type: integerType(), Value: tree.NewIntLiteral(5, loc)}
	paramY := &tree.Node{Kind: tree.KindParamDecl, Ident: ident.Intern("y"), Type: integerType(), Value: tree.NewIntLiteral(5, loc)}

	fn := &tree.Node{
		Kind:   tree.KindFunctionDecl,
		Ident:  ident.Intern("adddef"),
		Type:   integerType(),
		Params: []*tree.Node{paramX, paramY},
		Stmts:  []*tree.Node{{Kind: tree.KindReturnStmt, Value: call(addOp, "\"+\"", ref("x"), ref("y"))}},
	}

	topCall := call(fn, "adddef") // no actuals supplied
	result := fold.Eval(newContext(), topCall)

	v, ok := fold.FoldedInt(result)
	if !ok || v != 10 {
		t.Fatalf("expected folded 10, got %v (ok=%v)", result, ok)
	}
}

func TestFoldRefusedReturnsOriginal(t *testing.T) {
	// A call to a function whose body references an unbound signal (no
	// Ref, no env binding) must return the original node untouched.
	fn := &tree.Node{
		Kind:   tree.KindFunctionDecl,
		Ident:  ident.Intern("f"),
		Type:   integerType(),
		Params: nil,
		Stmts:  []*tree.Node{{Kind: tree.KindReturnStmt, Value: ref("some_signal")}},
	}
	topCall := call(fn, "f")
	result := fold.Eval(newContext(), topCall)
	if result != topCall {
		t.Fatalf("expected original call node back unchanged, got %v", result)
	}
}

func TestWhileIterationBoundFails(t *testing.T) {
	// while true loop end loop; -- must fail rather than loop forever.
	trueLit := tree.NewBoolLiteral(true, loc)
	infiniteWhile := &tree.Node{Kind: tree.KindWhileStmt, Value: trueLit, Stmts: nil}

	fn := &tree.Node{
		Kind:  tree.KindFunctionDecl,
		Ident: ident.Intern("spin"),
		Type:  integerType(),
		Stmts: []*tree.Node{infiniteWhile, {Kind: tree.KindReturnStmt, Value: tree.NewIntLiteral(0, loc)}},
	}
	topCall := call(fn, "spin")
	result := fold.Eval(newContext(), topCall)
	if result != topCall {
		t.Fatalf("expected unfolded original call after exceeding the iteration bound")
	}
}

func TestExpRejectsNegativeExponent(t *testing.T) {
	expOp := builtinDecl("exp_fn", "exp")
	c := call(expOp, "exp_fn", tree.NewIntLiteral(2, loc), tree.NewIntLiteral(-1, loc))
	result := fold.Eval(newContext(), c)
	if result != c {
		t.Fatalf("expected negative exponent to refuse folding, got %v", result)
	}
}

func TestExpRepeatedSquaring(t *testing.T) {
	expOp := builtinDecl("exp_fn", "exp")
	c := call(expOp, "exp_fn", tree.NewIntLiteral(2, loc), tree.NewIntLiteral(10, loc))
	result := fold.Eval(newContext(), c)
	v, ok := fold.FoldedInt(result)
	if !ok || v != 1024 {
		t.Fatalf("expected 1024, got %v (ok=%v)", v, ok)
	}
}
