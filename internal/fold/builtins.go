package fold

import (
	"math"

	"github.com/nvc-hdl/nvccore/internal/tree"
)

// reducer folds a built-in call given its already-evaluated argument
// nodes. It returns (result, true) on success, or (nil, false) if the
// operand kinds don't match what this reducer expects — the caller then
// tries the next category in dispatch order (spec §4.2: "select the
// reducer by trying int, logical, real, enum, string in that order").
type reducer func(args []*tree.Node, loc tree.Position) (*tree.Node, bool)

// The reducer tables below map the builtin attribute's string value (spec
// §4.2's table) to its reducer, one table per category. Categories overlap on some names (e.g. "eq" exists for
// integer/enum, real, and logical) — dispatch tries the node's arguments
// against each category table in the fixed order the spec prescribes,
// not by the builtin name alone, so the same attribute value resolves
// differently depending on what actually folded.
var intOrEnumReducers = map[string]reducer{
	"add":      intBinary(func(a, b int64) int64 { return a + b }),
	"sub":      intBinary(func(a, b int64) int64 { return a - b }),
	"mul":      intBinary(func(a, b int64) int64 { return a * b }),
	"div":      intDiv,
	"mod":      intMod,
	"rem":      intRem,
	"neg":      intUnary(func(a int64) int64 { return -a }),
	"identity": intUnary(func(a int64) int64 { return a }),
	"exp":      intExp,
	"min":      intBinary(func(a, b int64) int64 { return min64(a, b) }),
	"max":      intBinary(func(a, b int64) int64 { return max64(a, b) }),
	"eq":       intCompare(func(a, b int64) bool { return a == b }),
	"neq":      intCompare(func(a, b int64) bool { return a != b }),
	"lt":       intCompare(func(a, b int64) bool { return a < b }),
	"leq":      intCompare(func(a, b int64) bool { return a <= b }),
	"gt":       intCompare(func(a, b int64) bool { return a > b }),
	"geq":      intCompare(func(a, b int64) bool { return a >= b }),
}

var realReducers = map[string]reducer{
	"add":      realBinary(func(a, b float64) float64 { return a + b }),
	"sub":      realBinary(func(a, b float64) float64 { return a - b }),
	"mul":      realBinary(func(a, b float64) float64 { return a * b }),
	"div":      realDiv,
	"neg":      realUnary(func(a float64) float64 { return -a }),
	"identity": realUnary(func(a float64) float64 { return a }),
	"eq":       realCompare(func(a, b float64) bool { return a == b }),
	"neq":      realCompare(func(a, b float64) bool { return a != b }),
	"lt":       realCompare(func(a, b float64) bool { return a < b }),
	"gt":       realCompare(func(a, b float64) bool { return a > b }),
}

var logicalReducers = map[string]reducer{
	"not":  boolUnary(func(a bool) bool { return !a }),
	"and":  boolBinary(func(a, b bool) bool { return a && b }),
	"nand": boolBinary(func(a, b bool) bool { return !(a && b) }),
	"or":   boolBinary(func(a, b bool) bool { return a || b }),
	"nor":  boolBinary(func(a, b bool) bool { return !(a || b) }),
	"xor":  boolBinary(func(a, b bool) bool { return a != b }),
	"xnor": boolBinary(func(a, b bool) bool { return a == b }),
	"eq":   boolBinary(func(a, b bool) bool { return a == b }),
	"neq":  boolBinary(func(a, b bool) bool { return a != b }),
}

var mixedUniversalReducers = map[string]reducer{
	"mulri": mulRealInt,
	"mulir": mulIntReal,
	"divri": divRealInt,
}

var stringReducers = map[string]reducer{
	"aeq":  stringCompare(func(a, b string) bool { return a == b }),
	"aneq": stringCompare(func(a, b string) bool { return a != b }),
}

// dispatchBuiltin tries each category in spec §4.2's fixed order and
// returns the first successful fold. name is the builtin attribute value;
// args are the already-folded argument literal nodes.
func dispatchBuiltin(name string, args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if r, ok := mixedUniversalReducers[name]; ok {
		if res, ok := r(args, loc); ok {
			return res, true
		}
	}
	if r, ok := intOrEnumReducers[name]; ok {
		if res, ok := r(args, loc); ok {
			return res, true
		}
	}
	if r, ok := logicalReducers[name]; ok {
		if res, ok := r(args, loc); ok {
			return res, true
		}
	}
	if r, ok := realReducers[name]; ok {
		if res, ok := r(args, loc); ok {
			return res, true
		}
	}
	if r, ok := stringReducers[name]; ok {
		if res, ok := r(args, loc); ok {
			return res, true
		}
	}
	return nil, false
}

// --- integer reducers ------------------------------------------------------

func intBinary(f func(a, b int64) int64) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 2 {
			return nil, false
		}
		a, aok := FoldedInt(args[0])
		b, bok := FoldedInt(args[1])
		if !aok || !bok {
			return nil, false
		}
		return tree.NewIntLiteral(f(a, b), loc), true
	}
}

func intUnary(f func(a int64) int64) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 1 {
			return nil, false
		}
		a, ok := FoldedInt(args[0])
		if !ok {
			return nil, false
		}
		return tree.NewIntLiteral(f(a), loc), true
	}
}

func intCompare(f func(a, b int64) bool) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 2 {
			return nil, false
		}
		// Integer/enum comparison (spec §4.2 table): also accept two
		// folded enum positions so enumeration `=`/`<` etc. fold via the
		// same reducer table as integers.
		a, aok := foldedOrdinal(args[0])
		b, bok := foldedOrdinal(args[1])
		if !aok || !bok {
			return nil, false
		}
		return tree.NewBoolLiteral(f(a, b), loc), true
	}
}

func foldedOrdinal(n *tree.Node) (int64, bool) {
	if v, ok := FoldedInt(n); ok {
		return v, true
	}
	if v, _, ok := FoldedEnum(n); ok {
		return v, true
	}
	return 0, false
}

func intDiv(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if len(args) != 2 {
		return nil, false
	}
	a, aok := FoldedInt(args[0])
	b, bok := FoldedInt(args[1])
	if !aok || !bok || b == 0 {
		return nil, false
	}
	return tree.NewIntLiteral(a/b, loc), true
}

// intMod implements VHDL "mod": defined here as |a| mod |b| (spec §4.2).
func intMod(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if len(args) != 2 {
		return nil, false
	}
	a, aok := FoldedInt(args[0])
	b, bok := FoldedInt(args[1])
	if !aok || !bok || b == 0 {
		return nil, false
	}
	ua, ub := absInt64(a), absInt64(b)
	return tree.NewIntLiteral(ua%ub, loc), true
}

// intRem implements VHDL "rem": the truncated remainder (Go's % already
// truncates toward zero for int64, matching spec §4.2).
func intRem(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if len(args) != 2 {
		return nil, false
	}
	a, aok := FoldedInt(args[0])
	b, bok := FoldedInt(args[1])
	if !aok || !bok || b == 0 {
		return nil, false
	}
	return tree.NewIntLiteral(a%b, loc), true
}

// intExp folds integer exponentiation by repeated squaring; a negative
// exponent is refused by returning the original call unchanged (spec
// §4.2: "rejects negative exponents by returning the original call").
func intExp(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if len(args) != 2 {
		return nil, false
	}
	base, bok := FoldedInt(args[0])
	exp, eok := FoldedInt(args[1])
	if !bok || !eok || exp < 0 {
		return nil, false
	}
	result := int64(1)
	b := base
	e := exp
	for e > 0 {
		if e&1 == 1 {
			result *= b
		}
		b *= b
		e >>= 1
	}
	return tree.NewIntLiteral(result, loc), true
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// --- real reducers ----------------------------------------------------------

func realBinary(f func(a, b float64) float64) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 2 {
			return nil, false
		}
		a, aok := FoldedReal(args[0])
		b, bok := FoldedReal(args[1])
		if !aok || !bok {
			return nil, false
		}
		return tree.NewRealLiteral(f(a, b), loc), true
	}
}

func realUnary(f func(a float64) float64) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 1 {
			return nil, false
		}
		a, ok := FoldedReal(args[0])
		if !ok {
			return nil, false
		}
		return tree.NewRealLiteral(f(a), loc), true
	}
}

func realCompare(f func(a, b float64) bool) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 2 {
			return nil, false
		}
		a, aok := FoldedReal(args[0])
		b, bok := FoldedReal(args[1])
		if !aok || !bok {
			return nil, false
		}
		return tree.NewBoolLiteral(f(a, b), loc), true
	}
}

func realDiv(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if len(args) != 2 {
		return nil, false
	}
	a, aok := FoldedReal(args[0])
	b, bok := FoldedReal(args[1])
	if !aok || !bok || b == 0 {
		return nil, false
	}
	return tree.NewRealLiteral(a/b, loc), true
}

// --- logical reducers --------------------------------------------------------

func boolUnary(f func(a bool) bool) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 1 {
			return nil, false
		}
		a, ok := FoldedBool(args[0])
		if !ok {
			return nil, false
		}
		return tree.NewBoolLiteral(f(a), loc), true
	}
}

func boolBinary(f func(a, b bool) bool) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 2 {
			return nil, false
		}
		a, aok := FoldedBool(args[0])
		b, bok := FoldedBool(args[1])
		if !aok || !bok {
			return nil, false
		}
		return tree.NewBoolLiteral(f(a, b), loc), true
	}
}

// --- mixed universal reducers -------------------------------------------------

// mulRealInt folds "real * integer" by casting the integer operand to
// float (spec §4.2).
func mulRealInt(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if len(args) != 2 {
		return nil, false
	}
	r, rok := FoldedReal(args[0])
	i, iok := FoldedInt(args[1])
	if !rok || !iok {
		return nil, false
	}
	return tree.NewRealLiteral(r*float64(i), loc), true
}

func mulIntReal(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if len(args) != 2 {
		return nil, false
	}
	i, iok := FoldedInt(args[0])
	r, rok := FoldedReal(args[1])
	if !iok || !rok {
		return nil, false
	}
	return tree.NewRealLiteral(float64(i)*r, loc), true
}

func divRealInt(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
	if len(args) != 2 {
		return nil, false
	}
	r, rok := FoldedReal(args[0])
	i, iok := FoldedInt(args[1])
	if !rok || !iok || i == 0 {
		return nil, false
	}
	return tree.NewRealLiteral(r/float64(i), loc), true
}

// --- string/array reducers ----------------------------------------------------

// stringCompare implements element-wise array equality over string
// literals (spec §4.2's "array equality" category — the only array
// operator the evaluator folds, since array-returning functions are out
// of scope per spec §1's non-goals).
func stringCompare(f func(a, b string) bool) reducer {
	return func(args []*tree.Node, loc tree.Position) (*tree.Node, bool) {
		if len(args) != 2 {
			return nil, false
		}
		a, aok := FoldedString(args[0])
		b, bok := FoldedString(args[1])
		if !aok || !bok {
			return nil, false
		}
		return tree.NewBoolLiteral(f(a, b), loc), true
	}
}

// foldTypeConversion implements spec §4.2's "type-conversion folding":
// integer->real and real->integer conversions fold when the operand
// folds, with real->integer truncating toward zero.
func foldTypeConversion(targetIsInteger bool, operand *tree.Node, loc tree.Position) (*tree.Node, bool) {
	if targetIsInteger {
		if r, ok := FoldedReal(operand); ok {
			return tree.NewIntLiteral(int64(math.Trunc(r)), loc), true
		}
		if i, ok := FoldedInt(operand); ok {
			return tree.NewIntLiteral(i, loc), true
		}
		return nil, false
	}
	if i, ok := FoldedInt(operand); ok {
		return tree.NewRealLiteral(float64(i), loc), true
	}
	if r, ok := FoldedReal(operand); ok {
		return tree.NewRealLiteral(r, loc), true
	}
	return nil, false
}
