package checker

import (
	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/types"
)

// checkStmt elaborates one statement in place. A nil Stmt (an empty
// else-branch) is a no-op.
func (c *Checker) checkStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	switch st := s.(type) {
	case *ast.List:
		for _, inner := range st.Stmts {
			c.checkStmt(inner)
		}
	case *ast.Assignment:
		c.checkAssignment(st)
	case *ast.Read:
		c.checkRead(st)
	case *ast.Write:
		c.checkWrite(st)
	case *ast.Call:
		c.checkCall(st)
	case *ast.If:
		st.Cond = c.checkCondition(st.Cond)
		c.checkStmt(st.Then)
		c.checkStmt(st.Else)
	case *ast.While:
		st.Cond = c.checkCondition(st.Cond)
		c.checkStmt(st.Body)
	case *ast.For:
		c.checkFor(st)
	case *ast.ErrorStmt:
		// Already a terminal failure marker; nothing further to elaborate.
	default:
		c.sink.Fatal(s.Pos(), "checker: unhandled statement kind %T", s)
	}
}

// checkAssignment elaborates both sides, requires the l-value to be a
// Reference, rejects a write through a read-only variable (the `for` loop
// variable inside its own body), and coerces the r-value to its base.
func (c *Checker) checkAssignment(a *ast.Assignment) {
	lhs := c.checkExpr(a.LHS)
	rhs := c.checkExpr(a.RHS)
	a.LHS = lhs

	if v, ok := lhs.(*ast.Variable); ok && v.Entry.ReadOnly {
		c.errorf(lhs.Pos(), errsink.KindReadOnlyAssignment, "cannot assign to read-only variable %q", v.Entry.Name)
	}

	ref, ok := lhs.Type().(*types.ReferenceType)
	if !ok {
		if !types.IsError(lhs.Type()) {
			c.errorf(lhs.Pos(), errsink.KindVariableExpected, "variable expected on left of :=, got %s", lhs.Type())
		}
		a.RHS = rhs
		return
	}
	a.RHS = c.CoerceExp(ref.Base, rhs)
}

// checkRead requires the l-value to be Reference(integer).
func (c *Checker) checkRead(r *ast.Read) {
	lhs := c.checkExpr(r.LHS)
	if ref, ok := lhs.Type().(*types.ReferenceType); !ok || !types.Equals(ref.Base, types.Integer) {
		if !types.IsError(lhs.Type()) {
			c.errorf(lhs.Pos(), errsink.KindIntegerVariableExpected, "integer variable expected, got %s", lhs.Type())
		}
	}
	r.LHS = lhs
}

// checkWrite coerces the expression to integer.
func (c *Checker) checkWrite(w *ast.Write) {
	w.Expr = c.CoerceExp(types.Integer, c.checkExpr(w.Expr))
}

// checkCall resolves the name to a Procedure entry, or reports a
// diagnostic.
func (c *Checker) checkCall(call *ast.Call) {
	entry := c.current.Lookup(call.Name)
	if scope.IsUndefined(entry) {
		c.errorf(call.Pos(), errsink.KindUndeclaredIdentifier, "undeclared identifier %q", call.Name)
		return
	}
	proc, ok := entry.(*scope.ProcEntry)
	if !ok {
		c.errorf(call.Pos(), errsink.KindProcedureIdentifierRequired, "procedure identifier required, got %q", call.Name)
		return
	}
	call.Entry = proc
}

// checkFor is the most delicate rule in the checker: bounds are elaborated
// and snapshotted into two hidden frame slots before the loop variable and
// body are checked, the controlling scalar type is inferred by
// inferLoopScalar, and both bounds and the loop variable are retyped and
// coerced to it. The loop variable's symbol entry is marked read-only before
// the body is checked, so checkAssignment rejects writes to it inside the
// body.
func (c *Checker) checkFor(f *ast.For) {
	// Step 1: elaborate the bounds in the enclosing scope.
	low := c.checkExpr(f.Low)
	high := c.checkExpr(f.High)

	// Step 2: enter the loop's pre-allocated inner scope and allocate the
	// hidden bound slots.
	saved := c.current
	c.current = f.InnerScope
	defer func() { c.current = saved }()

	f.LowSlot = f.InnerScope.AllocVariableSpace(1)
	f.HighSlot = f.InnerScope.AllocVariableSpace(1)

	// Step 3: elaborate the loop variable and body in the inner scope,
	// marking the loop variable read-only (if it resolves to a Variable)
	// before the body is checked.
	loopVar := c.checkExpr(f.LoopVar)
	if v, ok := loopVar.(*ast.Variable); ok {
		v.Entry.ReadOnly = true
	}
	c.checkStmt(f.Body)

	// Step 4: determine the controlling scalar type.
	scalar := inferLoopScalar(low, high, loopVar)
	f.Scalar = scalar

	// Step 5: retype the loop variable and both bounds, then coerce the
	// bounds to scalar.
	f.LoopVar = retypeForScalar(loopVar, scalar)
	low = retypeForScalar(low, scalar)
	high = retypeForScalar(high, scalar)
	f.Low = c.CoerceExp(scalar, low)
	f.High = c.CoerceExp(scalar, high)

	// Step 6 (the read-only mark) was done in step 3; step 7: parent scope
	// restored by the deferred assignment above.
}

// inferLoopScalar picks the loop's controlling scalar type via a four-step
// fallback: the low bound's scalar type, then the high bound's, then a
// scalar synthesized from both bounds' literal values, then the loop
// variable's own type.
func inferLoopScalar(low, high, loopVar ast.Expr) types.Type {
	if s, ok := unwrapRef(low.Type()).(*types.ScalarType); ok {
		return s
	}
	if s, ok := unwrapRef(high.Type()).(*types.ScalarType); ok {
		return s
	}
	if lc, ok := low.(*ast.Const); ok {
		if hc, ok := high.(*ast.Const); ok {
			return types.NewScalar("ScalarTypeFor", 1, lc.Value, hc.Value)
		}
	}
	return unwrapRef(loopVar.Type())
}

func unwrapRef(t types.Type) types.Type {
	if ref, ok := t.(*types.ReferenceType); ok {
		return ref.Base
	}
	return t
}

// retypeForScalar rewrites e's type to the loop's controlling scalar: a
// plain variable reference becomes Reference(scalar); anything else becomes
// scalar directly.
func retypeForScalar(e ast.Expr, scalar types.Type) ast.Expr {
	if v, ok := e.(*ast.Variable); ok {
		v.SetType(types.NewReference(scalar))
		return v
	}
	e.SetType(scalar)
	return e
}
