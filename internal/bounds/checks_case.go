package bounds

import (
	"fmt"
	"strings"

	"github.com/nvc-hdl/nvccore/internal/fold"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// caseCoverageSentinel saturates the array-case cardinality computation
// alphabet^length (spec §9's Open Question); see DESIGN.md for the
// reasoning behind choosing math.MaxInt32's value here rather than
// importing the math package for one constant.
const caseCoverageSentinel int64 = 1<<31 - 1

// checkCaseStmt folds the scrutinee and each choice, then dispatches to
// one of three disjoint coverage analyses by scrutinee type (spec §4.3
// "Case statement"). Case associations reuse Value for a named choice
// and Rng for a range choice — the same convention the evaluator's
// execCase already relies on (internal/fold/eval.go).
func (c *Checker) checkCaseStmt(n *tree.Node) {
	c.foldAndCheckExpr(&n.Value)
	for _, a := range n.Assocs {
		switch a.Sub {
		case tree.SubAssocNamed:
			c.foldAndCheckExpr(&a.Value)
		case tree.SubAssocRange:
			c.foldRange(a.Rng)
		}
		c.visitAll(a.Stmts)
	}

	t := nodeType(n.Value)
	if t == nil {
		return
	}
	switch t.Resolve().Kind {
	case tree.TypeEnum:
		c.checkEnumCaseCoverage(n, t)
	case tree.TypeArrayConstrained, tree.TypeArrayUnconstrained:
		c.checkArrayCaseCoverage(n, t)
	case tree.TypeInteger:
		c.checkIntegerCaseCoverage(n, t)
	}
}

// checkEnumCaseCoverage builds a presence bitmap over the scrutinee
// type's literal positions, flags duplicate choices as it scans, and
// reports every uncovered position when no others choice is present.
func (c *Checker) checkEnumCaseCoverage(n *tree.Node, t *tree.Type) {
	lits := t.Resolve().EnumLiterals
	low, high := int64(0), int64(len(lits)-1)
	if r := t.EffectiveRange(); r != nil {
		if l, h, ok := fold.FoldedBounds(r); ok {
			low, high = l, h
		}
	}
	if high < low || len(lits) == 0 {
		return
	}

	present := make([]int, high-low+1)
	hasOthers := false
	for _, a := range n.Assocs {
		switch a.Sub {
		case tree.SubAssocOthers:
			hasOthers = true
		case tree.SubAssocNamed:
			pos, _, ok := fold.FoldedEnum(a.Value)
			if !ok || pos < low || pos > high {
				continue
			}
			idx := pos - low
			present[idx]++
			if present[idx] > 1 {
				c.ctx.Errorf(a.Loc, "choice %s appears multiple times", enumLiteralName(lits, pos))
			}
		}
	}
	if hasOthers {
		return
	}

	var missing []string
	for i, count := range present {
		if count == 0 {
			missing = append(missing, enumLiteralName(lits, low+int64(i)))
		}
	}
	if len(missing) > 0 {
		c.ctx.Errorf(n.Loc, "case statement does not cover: %s", strings.Join(missing, ", "))
	}
}

func enumLiteralName(lits []*tree.Node, pos int64) string {
	for _, l := range lits {
		if p, ok := l.EnumPosition(); ok && p == pos {
			return l.Ident.String()
		}
	}
	return fmt.Sprintf("%d", pos)
}

// checkIntegerCaseCoverage maintains the covered-interval list, reports
// overlapping/duplicate choices as they are inserted, and — absent an
// others choice — emits one error listing every missing interval.
func (c *Checker) checkIntegerCaseCoverage(n *tree.Node, t *tree.Type) {
	r := t.EffectiveRange()
	if r == nil {
		return
	}
	tlow, thigh, ok := fold.FoldedBounds(r)
	if !ok {
		return
	}

	var covered intervalList
	hasOthers := false
	for _, a := range n.Assocs {
		switch a.Sub {
		case tree.SubAssocOthers:
			hasOthers = true
		case tree.SubAssocNamed:
			v, ok := fold.FoldedInt(a.Value)
			if !ok {
				continue
			}
			if ov, overlapped := covered.insert(v, v); overlapped {
				c.ctx.Errorf(a.Loc, "choice %d overlaps already-covered %s", v, ov.String())
			}
		case tree.SubAssocRange:
			lo, hi, ok := fold.FoldedBounds(a.Rng)
			if !ok {
				continue
			}
			if ov, overlapped := covered.insert(lo, hi); overlapped {
				c.ctx.Errorf(a.Loc, "choice %d to %d overlaps already-covered %s", lo, hi, ov.String())
			}
		}
	}
	if hasOthers {
		return
	}

	missing := covered.missing(tlow, thigh)
	if len(missing) == 0 {
		return
	}
	lines := make([]string, len(missing))
	for i, m := range missing {
		lines[i] = "  " + m.String()
	}
	c.ctx.Errorf(n.Loc, "case statement does not cover:\n%s", strings.Join(lines, "\n"))
}

// checkArrayCaseCoverage computes the required choice count as
// alphabet^length (saturating at caseCoverageSentinel) and compares it
// against the number of named/ranged choices; an others choice always
// satisfies the remainder.
func (c *Checker) checkArrayCaseCoverage(n *tree.Node, t *tree.Type) {
	alphabet, ok := alphabetSize(t.Elem)
	if !ok {
		return
	}
	dim := t.DimRange(1)
	if dim == nil {
		return
	}
	length, ok := fold.FoldedLength(dim)
	if !ok {
		return
	}
	required := saturatingPow(alphabet, length)

	count := int64(0)
	hasOthers := false
	for _, a := range n.Assocs {
		switch a.Sub {
		case tree.SubAssocOthers:
			hasOthers = true
		case tree.SubAssocNamed, tree.SubAssocRange:
			count++
		}
	}
	if hasOthers {
		return
	}
	if count < required {
		c.ctx.Errorf(n.Loc, "choices cover only %d of %d possible values", count, required)
	}
}

func alphabetSize(elem *tree.Type) (int64, bool) {
	if elem == nil {
		return 0, false
	}
	switch elem.Resolve().Kind {
	case tree.TypeEnum:
		return int64(len(elem.Resolve().EnumLiterals)), true
	case tree.TypeInteger:
		if r := elem.EffectiveRange(); r != nil {
			if n, ok := fold.FoldedLength(r); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// saturatingPow computes alphabet^length, saturating to
// caseCoverageSentinel on overflow. length <= 0 yields 1 regardless of
// alphabet (alphabet^0 == 1, with no special case needed); alphabet <= 0
// with a positive length yields 0.
func saturatingPow(alphabet, length int64) int64 {
	if length <= 0 {
		return 1
	}
	if alphabet <= 0 {
		return 0
	}
	result := int64(1)
	for i := int64(0); i < length; i++ {
		if result > caseCoverageSentinel/alphabet {
			return caseCoverageSentinel
		}
		result *= alphabet
		if result > caseCoverageSentinel {
			return caseCoverageSentinel
		}
	}
	return result
}
