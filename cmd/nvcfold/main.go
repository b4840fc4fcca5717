// Command nvcfold is a small demonstration driver over the fold and
// bounds packages. It is not the production compiler driver (that is
// explicitly out of scope — see SPEC_FULL.md's "CLI glue" section):
// there is no lexer or parser here, so both subcommands exercise a
// hard-coded fixture tree instead of reading VHDL source.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvc-hdl/nvccore/internal/diag"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

var (
	debug        bool
	reportElided bool
)

var rootCmd = &cobra.Command{
	Use:   "nvcfold",
	Short: "Demonstrates the VHDL middle end's constant folder and bounds checker",
	Long: `nvcfold exercises the constant evaluator and the bounds/choice
checker against hard-coded fixture trees, standing in for the lexer and
parser this module does not implement.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "emit debug-gated fold-refusal warnings")
	rootCmd.PersistentFlags().BoolVar(&reportElided, "report-elided", false, "report array references marked elide_bounds")
	rootCmd.AddCommand(foldCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReporter() diag.Reporter {
	return diag.ReporterFunc(func(sev diag.Severity, loc tree.Position, message string) {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", loc.String(), sev.String(), message)
	})
}
