// Package checker is the static checker / type elaborator: it walks the raw
// AST the parser produced, resolves identifiers against the scope tree
// (internal/scope), assigns a type to every expression node, and rewrites
// the tree in place so every implicit conversion becomes an explicit
// Dereference/NarrowSubrange/WidenSubrange node. Dispatch is by type switch,
// not by a visitor/accept pair.
package checker

import (
	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/cwbudde/pascore/internal/types"
)

// Checker holds the state threaded through one elaboration pass: the
// diagnostic sink, the disjoint operator namespace, and the scope currently
// in effect (saved/restored around procedure and `for`-loop entry).
type Checker struct {
	sink      errsink.Sink
	operators map[string]types.Type
	current   *scope.Scope
}

// New builds a Checker reporting through sink, using BuiltinOperators() as
// its operator namespace unless operators is non-nil.
func New(sink errsink.Sink, operators map[string]types.Type) *Checker {
	if operators == nil {
		operators = BuiltinOperators()
	}
	return &Checker{sink: sink, operators: operators}
}

// CheckProgram elaborates the whole compilation unit: the program body is
// treated as a procedure at level 1 with no caller.
func (c *Checker) CheckProgram(prog *ast.Program) {
	c.sink.DebugMessage("checking program")
	c.sink.IncDebug()
	defer c.sink.DecDebug()
	c.checkBlockIn(prog.Entry.LocalScope, prog.Block)
}

// checkProcedure makes the procedure's local scope current, checks its
// block, then restores the caller's scope — on every exit path, including a
// panic from Fatal.
func (c *Checker) checkProcedure(proc *ast.Procedure) {
	c.sink.DebugMessage("checking procedure " + proc.Name)
	c.sink.IncDebug()
	defer c.sink.DecDebug()
	c.checkBlockIn(proc.Entry.LocalScope, proc.Block)
}

func (c *Checker) checkBlockIn(s *scope.Scope, block *ast.Block) {
	saved := c.current
	c.current = s
	defer func() { c.current = saved }()

	if err := s.ResolveScope(); err != nil {
		c.sink.Report(token.Position{}, errsink.KindInternal, "%s", err)
	}

	c.checkStmt(block.Body)

	for _, child := range block.ChildProcedure {
		c.checkProcedure(child)
	}
}

func (c *Checker) errorf(pos token.Position, kind errsink.Kind, format string, args ...any) {
	c.sink.Report(pos, kind, format, args...)
}

// CoerceToType is the non-reporting half of coercion: building the wrapped
// ast.Expr from types.CoerceToType's plan, or returning the incompatibility
// error unreported.
func CoerceToType(target types.Type, expr ast.Expr) (ast.Expr, error) {
	plan, err := types.CoerceToType(target, expr.Type())
	if err != nil {
		return nil, err
	}
	return applyPlan(plan, expr), nil
}

func applyPlan(plan *types.CoercePlan, expr ast.Expr) ast.Expr {
	for _, step := range plan.Steps {
		switch step.Kind {
		case types.CoerceDereference:
			expr = ast.NewDereference(expr)
		case types.CoerceNarrowSubrange:
			expr = ast.NewNarrowSubrange(expr, step.Narrow)
		case types.CoerceWidenSubrange:
			expr = ast.NewWidenSubrange(expr, step.WidenTo)
		}
	}
	return expr
}

// CoerceExp runs the same search as CoerceToType but, on failure, reports a
// type-mismatch diagnostic and returns an Error-typed node instead of
// propagating the failure to the caller.
func (c *Checker) CoerceExp(target types.Type, expr ast.Expr) ast.Expr {
	if types.IsError(expr.Type()) {
		return expr
	}
	wrapped, err := CoerceToType(target, expr)
	if err != nil {
		c.errorf(expr.Pos(), errsink.KindTypeMismatch, "cannot convert %s to %s", expr.Type(), target)
		return ast.NewErrorExpr(expr.Pos(), "type mismatch")
	}
	return wrapped
}

// checkCondition elaborates cond and coerces it to boolean — the shared rule
// behind If and While.
func (c *Checker) checkCondition(cond ast.Expr) ast.Expr {
	cond = c.checkExpr(cond)
	return c.CoerceExp(types.Boolean, cond)
}
