package checker

import (
	"strings"

	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/types"
)

// checkExpr elaborates e and returns its replacement; callers must reassign
// the field they passed in (ast nodes do not mutate themselves into a
// different concrete type). Const, Variable, NarrowSubrange, WidenSubrange,
// and ErrorExpr are already typed and pass through unchanged.
func (c *Checker) checkExpr(e ast.Expr) ast.Expr {
	switch ex := e.(type) {
	case *ast.Const:
		return ex
	case *ast.Variable:
		return ex
	case *ast.NarrowSubrange, *ast.WidenSubrange, *ast.ErrorExpr:
		return e
	case *ast.Identifier:
		return c.checkIdentifier(ex)
	case *ast.Dereference:
		return c.checkDereference(ex)
	case *ast.Binary:
		return c.checkBinary(ex)
	case *ast.Unary:
		return c.checkUnary(ex)
	case *ast.ArrayIndexing:
		return c.checkArrayIndexing(ex)
	default:
		c.sink.Fatal(e.Pos(), "checker: unhandled expression kind %T", e)
		return nil // unreachable: Fatal panics
	}
}

// checkIdentifier resolves an Identifier and rewrites it to Const, Variable,
// or an Error marker. No Identifier node survives this call.
func (c *Checker) checkIdentifier(id *ast.Identifier) ast.Expr {
	entry := c.current.Lookup(id.Name)
	switch e := entry.(type) {
	case *scope.ConstEntry:
		return ast.NewConst(id.Pos(), e.Type, e.Value)
	case *scope.VarEntry:
		return ast.NewVariable(id.Pos(), e)
	default:
		c.errorf(id.Pos(), errsink.KindConstantOrVariableRequired, "constant or variable identifier required, got %q", id.Name)
		return ast.NewErrorExpr(id.Pos(), "constant or variable identifier required")
	}
}

// checkDereference elaborates the inner l-value and adopts its referenced
// type.
func (c *Checker) checkDereference(d *ast.Dereference) ast.Expr {
	inner := c.checkExpr(d.Inner)
	d.Inner = inner
	switch t := inner.Type().(type) {
	case *types.ReferenceType:
		d.SetType(t.Base)
		return d
	case *types.ErrorType:
		d.SetType(types.Error)
		return d
	default:
		c.errorf(d.Pos(), errsink.KindNotReferenceType, "cannot dereference non-reference type %s", inner.Type())
		return ast.NewErrorExpr(d.Pos(), "not a reference type")
	}
}

// checkBinary and checkUnary elaborate the operands, then resolve the
// operator's advertised type (always an Intersection in this namespace —
// see BuiltinOperators) against them, trying candidates in order.
func (c *Checker) checkBinary(b *ast.Binary) ast.Expr {
	b.Left = c.checkExpr(b.Left)
	b.Right = c.checkExpr(b.Right)

	advertised, ok := c.operators[strings.ToLower(b.Op)]
	if !ok {
		c.sink.Fatal(b.Pos(), "checker: unknown operator symbol %q", b.Op)
		return nil
	}

	left, right, result, symbol, ok := c.resolveOverload(advertised, b.Left, b.Right)
	if !ok {
		c.errorf(b.Pos(), errsink.KindOverloadMismatch, "no overload of %q matches operand types %s, %s", b.Op, b.Left.Type(), b.Right.Type())
		b.SetType(types.Error)
		return b
	}
	b.Left, b.Right, b.ResolvedSymbol = left, right, symbol
	b.SetType(result)
	return b
}

// unaryOperatorKey maps the operator token as written in the source to its
// registry key: unary "-" shares its token with binary subtraction, so it
// needs its own disjoint entry ("-unary") in the operator namespace; every
// other unary operator (not, pred, succ) has no binary counterpart and uses
// its token directly.
func unaryOperatorKey(op string) string {
	if op == "-" {
		return "-unary"
	}
	return strings.ToLower(op)
}

func (c *Checker) checkUnary(u *ast.Unary) ast.Expr {
	u.Operand = c.checkExpr(u.Operand)

	advertised, ok := c.operators[unaryOperatorKey(u.Op)]
	if !ok {
		c.sink.Fatal(u.Pos(), "checker: unknown operator symbol %q", u.Op)
		return nil
	}

	operand, _, result, symbol, ok := c.resolveOverload(advertised, u.Operand, nil)
	if !ok {
		c.errorf(u.Pos(), errsink.KindOverloadMismatch, "no overload of %q matches operand type %s", u.Op, u.Operand.Type())
		u.SetType(types.Error)
		return u
	}
	u.Operand, u.ResolvedSymbol = operand, symbol
	u.SetType(result)
	// Every Unary reserves its hidden frame word regardless of which
	// operator resolves; only pred/succ's code generator reads it.
	u.IdxOffset = c.current.AllocVariableSpace(1)
	return u
}

// resolveOverload handles the two candidate shapes an advertised operator
// type can take — a single OperatorType or an IntersectionType of several.
// right may be nil for a unary operator, in which case the candidate's Arg
// is matched directly against left rather than against a Product.
func (c *Checker) resolveOverload(advertised types.Type, left, right ast.Expr) (newLeft, newRight ast.Expr, result types.Type, symbol string, ok bool) {
	switch t := advertised.(type) {
	case *types.OperatorType:
		l, r, res, success := tryCandidate(t, left, right)
		if !success {
			return left, right, nil, "", false
		}
		l = c.CoerceExp(argTypeOf(t.Func, 0, right != nil), left)
		if right != nil {
			r = c.CoerceExp(argTypeOf(t.Func, 1, true), right)
		}
		return l, r, res, t.Symbol, true
	case *types.IntersectionType:
		for _, cand := range t.Candidates {
			if _, _, _, success := tryCandidate(cand, left, right); success {
				l := c.CoerceExp(argTypeOf(cand.Func, 0, right != nil), left)
				var r ast.Expr
				if right != nil {
					r = c.CoerceExp(argTypeOf(cand.Func, 1, true), right)
				}
				return l, r, cand.Func.Result, cand.Symbol, true
			}
		}
		return left, right, nil, "", false
	default:
		c.sink.Fatal(left.Pos(), "checker: invalid operator kind %T", advertised)
		return nil, nil, nil, "", false
	}
}

// tryCandidate reports, without mutating anything, whether both operands
// coerce to cand's parameter types — a pure predicate so overload
// resolution can "revert and try the next" candidate without unwinding a
// thrown coercion failure.
func tryCandidate(cand *types.OperatorType, left, right ast.Expr) (ast.Expr, ast.Expr, types.Type, bool) {
	if right == nil {
		if _, err := types.CoerceToType(cand.Func.Arg, left.Type()); err != nil {
			return nil, nil, nil, false
		}
		return left, nil, cand.Func.Result, true
	}
	product, ok := cand.Func.Arg.(*types.ProductType)
	if !ok || len(product.Types) != 2 {
		return nil, nil, nil, false
	}
	if _, err := types.CoerceToType(product.Types[0], left.Type()); err != nil {
		return nil, nil, nil, false
	}
	if _, err := types.CoerceToType(product.Types[1], right.Type()); err != nil {
		return nil, nil, nil, false
	}
	return left, right, cand.Func.Result, true
}

// argTypeOf returns the index-th parameter type of fn's argument, looking
// through a Product when the operator is binary.
func argTypeOf(fn *types.FunctionType, index int, binary bool) types.Type {
	if !binary {
		return fn.Arg
	}
	product := fn.Arg.(*types.ProductType)
	return product.Types[index]
}

// checkArrayIndexing elaborates an array-indexing expression. The
// array-type check on base must precede the field access that reads its
// element/index types: a failed type assertion must short-circuit before
// any further access.
func (c *Checker) checkArrayIndexing(ix *ast.ArrayIndexing) ast.Expr {
	ix.Base = c.checkExpr(ix.Base)
	ix.Index = c.checkExpr(ix.Index)

	baseRef, ok := ix.Base.Type().(*types.ReferenceType)
	if !ok {
		if !types.IsError(ix.Base.Type()) {
			c.errorf(ix.Pos(), errsink.KindNotReferenceType, "array base must be a reference, got %s", ix.Base.Type())
		}
		return ast.NewErrorExpr(ix.Pos(), "not a reference type")
	}

	arrayType, ok := baseRef.Base.(*types.ArrayType)
	if !ok {
		c.errorf(ix.Pos(), errsink.KindNotAnArrayType, "must be an array type, got %s", baseRef.Base)
		return ast.NewErrorExpr(ix.Pos(), "not an array type")
	}

	ix.Index = c.CoerceExp(arrayType.Index, ix.Index)
	ix.SetType(types.NewReference(arrayType.Element))
	return ix
}
