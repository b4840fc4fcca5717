package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvc-hdl/nvccore/internal/bounds"
	"github.com/nvc-hdl/nvccore/internal/diag"
	"github.com/nvc-hdl/nvccore/internal/ident"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Bounds-check the bit_vector(0 to 7) index-9 fixture (spec §8 scenario 5)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := diag.NewContext(newReporter(), debug)
		ref := arrayRefFixture()

		bounds.Check(ctx, ref)

		fmt.Printf("%d error(s)\n", ctx.Errors())
		if reportElided && ref.ElideBounds() {
			fmt.Println("array reference marked elide_bounds")
		}
		return nil
	},
}

// arrayRefFixture builds the tree from spec §8 scenario 5: a reference
// a(9) against signal a: bit_vector(0 to 7).
func arrayRefFixture() *tree.Node {
	bitVector := &tree.Type{
		Kind: tree.TypeArrayConstrained,
		Dims: []*tree.Range{{Left: tree.NewIntLiteral(0, loc(1)), Right: tree.NewIntLiteral(7, loc(1)), Dir: tree.DirTo}},
		Elem: &tree.Type{Kind: tree.TypeEnum},
	}
	target := &tree.Node{Kind: tree.KindReference, Ident: ident.Intern("a"), Type: bitVector, Loc: loc(1)}
	return &tree.Node{
		Kind:   tree.KindArrayRef,
		Target: target,
		Params: []*tree.Node{tree.NewIntLiteral(9, loc(1))},
		Loc:    loc(1),
	}
}
