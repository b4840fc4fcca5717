package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvc-hdl/nvccore/internal/diag"
	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/ident"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

var foldCmd = &cobra.Command{
	Use:   "fold",
	Short: "Fold the log2(11) fixture (spec §8 scenario 2) and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := diag.NewContext(newReporter(), debug)
		call := log2Fixture()
		result := fold.Eval(ctx, call)
		if v, ok := fold.FoldedInt(result); ok {
			fmt.Printf("log2(11) folded to %d\n", v)
			return nil
		}
		fmt.Println("log2(11) did not fold")
		return nil
	},
}

func integerType() *tree.Type { return &tree.Type{Kind: tree.TypeInteger} }

func loc(line int) tree.Position { return tree.Position{Line: line, Column: 1} }

func ref(name string) *tree.Node {
	return &tree.Node{Kind: tree.KindReference, Ident: ident.Intern(name)}
}

func builtinDecl(name, builtin string) *tree.Node {
	d := &tree.Node{Kind: tree.KindFunctionDecl, Ident: ident.Intern(name), Type: integerType()}
	d.SetAttrStr(tree.AttrBuiltin, builtin)
	return d
}

// log2Fixture builds the tree from spec §8 scenario 2 by hand, standing
// in for what a parser would otherwise produce:
//
//	function log2(x: integer) return integer is
//	  variable r: integer := 0;
//	  variable c: integer := 1;
//	begin
//	  if x <= 1 then
//	    r := 1;
//	  else
//	    while c < x loop
//	      r := r + 1;
//	      c := c * 2;
//	    end loop;
//	  end if;
//	  return r;
//	end;
func log2Fixture() *tree.Node {
	addOp := builtinDecl("\"+\"", "add")
	mulOp := builtinDecl("\"*\"", "mul")
	ltOp := builtinDecl("\"<\"", "lt")
	leqOp := builtinDecl("\"<=\"", "leq")

	paramX := &tree.Node{Kind: tree.KindParamDecl, Ident: ident.Intern("x"), Type: integerType()}
	varR := &tree.Node{Kind: tree.KindVariableDecl, Ident: ident.Intern("r"), Type: integerType(), Value: tree.NewIntLiteral(0, loc(1))}
	varC := &tree.Node{Kind: tree.KindVariableDecl, Ident: ident.Intern("c"), Type: integerType(), Value: tree.NewIntLiteral(1, loc(1))}

	whileLoop := &tree.Node{
		Kind:  tree.KindWhileStmt,
		Value: &tree.Node{Kind: tree.KindFunctionCall, Ident: ident.Intern("\"<\""), Ref: ltOp, Params: []*tree.Node{ref("c"), ref("x")}},
		Stmts: []*tree.Node{
			{Kind: tree.KindVarAssignStmt, Target: ref("r"), Value: &tree.Node{Kind: tree.KindFunctionCall, Ident: ident.Intern("\"+\""), Ref: addOp, Params: []*tree.Node{ref("r"), tree.NewIntLiteral(1, loc(1))}}},
			{Kind: tree.KindVarAssignStmt, Target: ref("c"), Value: &tree.Node{Kind: tree.KindFunctionCall, Ident: ident.Intern("\"*\""), Ref: mulOp, Params: []*tree.Node{ref("c"), tree.NewIntLiteral(2, loc(1))}}},
		},
	}

	ifStmt := &tree.Node{
		Kind:      tree.KindIfStmt,
		Value:     &tree.Node{Kind: tree.KindFunctionCall, Ident: ident.Intern("\"<=\""), Ref: leqOp, Params: []*tree.Node{ref("x"), tree.NewIntLiteral(1, loc(1))}},
		Stmts:     []*tree.Node{{Kind: tree.KindVarAssignStmt, Target: ref("r"), Value: tree.NewIntLiteral(1, loc(1))}},
		ElseStmts: []*tree.Node{whileLoop},
	}

	log2 := &tree.Node{
		Kind:   tree.KindFunctionDecl,
		Ident:  ident.Intern("log2"),
		Type:   integerType(),
		Params: []*tree.Node{paramX},
		Decls:  []*tree.Node{varR, varC},
		Stmts:  []*tree.Node{ifStmt, {Kind: tree.KindReturnStmt, Value: ref("r")}},
	}

	return &tree.Node{Kind: tree.KindFunctionCall, Ident: ident.Intern("log2"), Ref: log2, Params: []*tree.Node{tree.NewIntLiteral(11, loc(1))}}
}
