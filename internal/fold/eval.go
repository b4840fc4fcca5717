package fold

import (
	"github.com/nvc-hdl/nvccore/internal/diag"
	"github.com/nvc-hdl/nvccore/internal/ident"
	"github.com/nvc-hdl/nvccore/internal/tree"
)

// maxWhileIterations bounds `while` folding against non-terminating
// constant expressions (spec §4.2, §8). It is a per-loop limit: execWhile
// counts body executions afresh each time a while statement runs, not in a
// process-global counter — see SPEC_FULL.md's "iteration-bound failure
// path" supplement.
const maxWhileIterations = 1000

// evalState is the evaluator's per-top-level-call working state (spec §3's
// "Evaluation state"). A fresh evalState is created for each call to Eval;
// nothing here is shared across calls.
type evalState struct {
	ctx *diag.Context
	env *env

	failed    bool
	exitSet   bool
	exitLabel ident.ID // Nil means "the innermost enclosing loop"
	resultSet bool
	result    *tree.Node
}

// fail marks the current top-level evaluation as permanently unfoldable
// and, if debug is enabled, emits a best-effort warning pinpointing the
// blocking construct (spec §4.2). Once set, failed is sticky for the rest
// of this evaluation attempt (spec §3 invariant).
func (st *evalState) fail(loc tree.Position, format string, args ...any) {
	if st.failed {
		return
	}
	st.failed = true
	st.ctx.Warnf(loc, format, args...)
}

// Eval is the constant evaluator's entry point (spec §6): it takes a
// function-call node and returns a literal if folding succeeded, or the
// original call unchanged otherwise. It never panics on ill-formed input.
func Eval(ctx *diag.Context, call *tree.Node) *tree.Node {
	if call == nil || call.Kind != tree.KindFunctionCall {
		return call
	}
	st := &evalState{ctx: ctx, env: newEnv()}
	st.env.push() // base frame; each user-defined call pushes its own on top (see env.go)
	defer st.env.pop()

	result, ok := st.evalCall(call)
	if !ok {
		return call
	}
	return result
}

// evalExpr reduces an arbitrary expression subtree using the current
// environment. On failure it sets st.failed and returns the input node
// unchanged, matching the evaluator's "never throws" contract.
func (st *evalState) evalExpr(n *tree.Node) *tree.Node {
	if n == nil || st.failed {
		return n
	}
	switch n.Kind {
	case tree.KindLiteral:
		return n
	case tree.KindReference:
		if v, ok := st.env.lookup(n.Ident); ok {
			return v
		}
		resolved := deref(n)
		if resolved == n {
			// Not a local binding and not a trivial constant/enum
			// reference: leave it for the caller to decide whether this
			// blocks folding (referencing it as a value always does).
			return n
		}
		return resolved
	case tree.KindFunctionCall:
		res, ok := st.evalCall(n)
		if !ok {
			st.fail(n.Loc, "call to %s did not fold", n.Ident.String())
			return n
		}
		return res
	case tree.KindTypeConv:
		operand := st.evalExpr(n.Value)
		if st.failed {
			return n
		}
		targetIsInt := n.Type != nil && n.Type.Resolve().Kind == tree.TypeInteger
		res, ok := foldTypeConversion(targetIsInt, operand, n.Loc)
		if !ok {
			st.fail(n.Loc, "type conversion at %s did not fold", n.Loc)
			return n
		}
		return res
	default:
		st.fail(n.Loc, "expression kind %s is outside the folding subset", n.Kind)
		return n
	}
}

func (st *evalState) evalBool(n *tree.Node) (bool, bool) {
	v := st.evalExpr(n)
	if st.failed {
		return false, false
	}
	b, ok := FoldedBool(v)
	if !ok {
		st.fail(n.Loc, "expression did not fold to boolean")
		return false, false
	}
	return b, true
}

func (st *evalState) evalInt(n *tree.Node) (int64, bool) {
	v := st.evalExpr(n)
	if st.failed {
		return 0, false
	}
	i, ok := FoldedInt(v)
	if !ok {
		st.fail(n.Loc, "expression did not fold to integer")
		return 0, false
	}
	return i, true
}

// evalCall evaluates a call's arguments and dispatches to either a
// built-in reducer or a user-defined function body (spec §4.2).
func (st *evalState) evalCall(call *tree.Node) (*tree.Node, bool) {
	args := make([]*tree.Node, 0, len(call.Params))
	for _, p := range call.Params {
		v := st.evalExpr(p)
		if st.failed {
			return nil, false
		}
		args = append(args, v)
	}

	decl := call.Ref
	if decl == nil {
		st.fail(call.Loc, "call to %s has no resolved declaration", call.Ident.String())
		return nil, false
	}

	if name, ok := decl.Builtin(); ok {
		if res, ok := dispatchBuiltin(name, args, call.Loc); ok {
			return res, true
		}
		st.fail(call.Loc, "built-in %s could not fold its operands", name)
		return nil, false
	}

	return st.evalUserFunction(decl, call, args)
}

// evalUserFunction executes a function body with a scalar return type
// (spec §4.2, steps 1-5). Array- and record-returning functions are out
// of scope (spec §1 non-goals).
func (st *evalState) evalUserFunction(decl, call *tree.Node, args []*tree.Node) (*tree.Node, bool) {
	if decl.Type == nil || decl.Type.IsArray() || decl.Type.Kind == tree.TypeRecord {
		st.fail(call.Loc, "function %s does not return a scalar type", decl.Ident.String())
		return nil, false
	}

	st.env.push()
	defer st.env.pop()

	for i, param := range decl.Params {
		var argVal *tree.Node
		switch {
		case i < len(args):
			argVal = args[i]
		case param.Value != nil:
			// Default-argument fold (SPEC_FULL.md supplement): a formal
			// with no corresponding actual binds to its own folded
			// default-value expression.
			argVal = st.evalExpr(param.Value)
			if st.failed {
				return nil, false
			}
		default:
			st.fail(call.Loc, "missing actual for formal %s", param.Ident.String())
			return nil, false
		}
		st.env.bind(param.Ident, argVal)
	}

	for _, d := range decl.Decls {
		if d.Kind != tree.KindVariableDecl && d.Kind != tree.KindConstantDecl {
			continue
		}
		if d.Value == nil {
			continue // uninitialized local: left unbound until assigned
		}
		v := st.evalExpr(d.Value)
		if st.failed {
			return nil, false
		}
		st.env.bind(d.Ident, v)
	}

	st.execStmts(decl.Stmts)
	if st.failed {
		return nil, false
	}
	if !st.resultSet {
		st.fail(call.Loc, "function %s completed without a return value", decl.Ident.String())
		return nil, false
	}
	result := st.result
	st.resultSet = false
	st.result = nil
	if !result.IsLiteral() {
		return nil, false
	}
	return result, true
}

// execStmts runs a statement sequence, halting on failed/result/exit per
// spec §4.2's fail-fast ordering.
func (st *evalState) execStmts(stmts []*tree.Node) {
	for _, s := range stmts {
		st.execStmt(s)
		if st.failed || st.resultSet || st.exitSet {
			return
		}
	}
}

func (st *evalState) execStmt(s *tree.Node) {
	switch s.Kind {
	case tree.KindReturnStmt:
		v := st.evalExpr(s.Value)
		if st.failed {
			return
		}
		st.result = v
		st.resultSet = true
	case tree.KindIfStmt:
		st.execIf(s)
	case tree.KindCaseStmt:
		st.execCase(s)
	case tree.KindWhileStmt:
		st.execWhile(s)
	case tree.KindForStmt:
		st.execFor(s)
	case tree.KindExitStmt:
		st.execExit(s)
	case tree.KindVarAssignStmt:
		st.execAssign(s)
	case tree.KindBlockStmt:
		st.execStmts(s.Stmts)
	default:
		st.fail(s.Loc, "statement kind %s is outside the folding subset", s.Kind)
	}
}

func (st *evalState) execIf(s *tree.Node) {
	cond, ok := st.evalBool(s.Value)
	if !ok {
		return
	}
	if cond {
		st.execStmts(s.Stmts)
	} else {
		st.execStmts(s.ElseStmts)
	}
}

// execCase implements spec §4.2's case semantics: the scrutinee must fold
// to an integer (array case is unsupported and fails); the first matching
// association executes.
func (st *evalState) execCase(s *tree.Node) {
	scrutinee, ok := st.evalInt(s.Value)
	if !ok {
		return
	}

	var others *tree.Node
	for _, assoc := range s.Assocs {
		switch assoc.Sub {
		case tree.SubAssocOthers:
			others = assoc
		case tree.SubAssocNamed:
			choice, ok := st.evalInt(assoc.Value)
			if !ok {
				return
			}
			if choice == scrutinee {
				st.execStmts(assoc.Stmts)
				return
			}
		case tree.SubAssocRange:
			low, high, ok := FoldedBounds(assoc.Rng)
			if !ok {
				st.fail(assoc.Loc, "case choice range did not fold")
				return
			}
			if scrutinee >= low && scrutinee <= high {
				st.execStmts(assoc.Stmts)
				return
			}
		default:
			st.fail(assoc.Loc, "unsupported case choice kind")
			return
		}
	}
	if others != nil {
		st.execStmts(others.Stmts)
	}
}

func (st *evalState) execWhile(s *tree.Node) {
	for iterations := 0; ; iterations++ {
		if s.Value != nil {
			cond, ok := st.evalBool(s.Value)
			if !ok {
				return
			}
			if !cond {
				return
			}
		}
		if iterations >= maxWhileIterations {
			st.fail(s.Loc, "while loop exceeded %d iterations without terminating", maxWhileIterations)
			return
		}
		st.execStmts(s.Stmts)
		if st.failed || st.resultSet {
			return
		}
		if st.exitSet {
			st.clearExitIfMine(s.Ident2)
			return
		}
	}
}

// execFor implements spec §4.2's for-loop semantics. The loop identifier
// is bound in the call's single frame (spec §4.2's "rebind in the top
// frame" for assignment only makes sense if loop bodies do not introduce
// their own frames — see env.go).
func (st *evalState) execFor(s *tree.Node) {
	if s.Rng == nil || (s.Rng.Dir != tree.DirTo && s.Rng.Dir != tree.DirDownto) {
		st.fail(s.Loc, "for loop range must have a to/downto direction")
		return
	}
	low, high, ok := FoldedBounds(s.Rng)
	if !ok {
		st.fail(s.Loc, "for loop range did not fold")
		return
	}

	step := func(i int64) bool {
		st.env.bind(s.Ident, tree.NewIntLiteral(i, s.Loc))
		st.execStmts(s.Stmts)
		if st.failed || st.resultSet {
			return false
		}
		if st.exitSet {
			st.clearExitIfMine(s.Ident2)
			return false
		}
		return true
	}

	if s.Rng.Dir == tree.DirTo {
		for i := low; i <= high; i++ {
			if !step(i) {
				return
			}
		}
	} else {
		for i := high; i >= low; i-- {
			if !step(i) {
				return
			}
		}
	}
}

// clearExitIfMine consumes a pending exit if it targets this loop: either
// unlabeled (Nil, meaning the innermost enclosing loop) or explicitly
// naming this loop's own label.
func (st *evalState) clearExitIfMine(loopLabel ident.ID) {
	if st.exitLabel == ident.Nil || st.exitLabel == loopLabel {
		st.exitSet = false
		st.exitLabel = ident.Nil
	}
}

func (st *evalState) execExit(s *tree.Node) {
	if s.Value != nil {
		cond, ok := st.evalBool(s.Value)
		if !ok {
			return
		}
		if !cond {
			return
		}
	}
	st.exitSet = true
	st.exitLabel = s.Ident
}

// execAssign implements spec §4.2's variable-assignment semantics: the
// target must be a simple reference, the value must fold, and the name is
// rebound in the call's frame.
func (st *evalState) execAssign(s *tree.Node) {
	if s.Target == nil || s.Target.Kind != tree.KindReference {
		st.fail(s.Loc, "assignment target is not a simple reference")
		return
	}
	v := st.evalExpr(s.Value)
	if st.failed {
		return
	}
	if !v.IsLiteral() {
		st.fail(s.Loc, "assigned value did not fold")
		return
	}
	st.env.bind(s.Target.Ident, v)
}
