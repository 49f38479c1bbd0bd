package codegen

import (
	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/emitter"
	"github.com/cwbudde/pascore/internal/opcode"
	"github.com/cwbudde/pascore/internal/types"
)

// genExpr lowers one elaborated expression to its instruction fragment. An
// expression whose type is Reference(T) leaves an address on the stack; any
// other expression leaves a value.
func (g *Generator) genExpr(e ast.Expr) *emitter.Code {
	switch ex := e.(type) {
	case *ast.Const:
		return g.genConst(ex)
	case *ast.Variable:
		return g.genVariable(ex)
	case *ast.Binary:
		return g.genBinary(ex)
	case *ast.Unary:
		return g.genUnary(ex)
	case *ast.ArrayIndexing:
		return g.genArrayIndexing(ex)
	case *ast.Dereference:
		return g.genDereference(ex)
	case *ast.NarrowSubrange:
		return g.genNarrowSubrange(ex)
	case *ast.WidenSubrange:
		return g.genExpr(ex.Inner)
	case *ast.Identifier:
		g.fatal(e.Pos(), "codegen: reached an unresolved Identifier %q", ex.Name)
		return nil
	case *ast.ErrorExpr:
		g.fatal(e.Pos(), "codegen: reached an ErrorExpr %q", ex.Message)
		return nil
	default:
		g.fatal(e.Pos(), "codegen: unhandled expression kind %T", e)
		return nil
	}
}

func (g *Generator) genConst(c *ast.Const) *emitter.Code {
	code := emitter.New()
	code.GenLoadConstant(c.Value)
	return code
}

// genVariable emits MEM_REF(staticLevel - var.level, var.offset).
func (g *Generator) genVariable(v *ast.Variable) *emitter.Code {
	code := emitter.New()
	code.GenMemRef(g.staticLevel-v.Entry.Level, v.Entry.Offset)
	return code
}

// genDereference emits the inner address, then LOAD(type).
func (g *Generator) genDereference(d *ast.Dereference) *emitter.Code {
	code := g.genExpr(d.Inner)
	code.GenLoad(widthOf(d.Type()))
	return code
}

// genNarrowSubrange emits the inner expression, then
// BOUNDS_CHECK(lower, upper).
func (g *Generator) genNarrowSubrange(n *ast.NarrowSubrange) *emitter.Code {
	code := g.genExpr(n.Inner)
	code.GenBoundsCheck(n.Target.Lower, n.Target.Upper)
	return code
}

// genArrayIndexing emits the base address and index value, subtracts the
// array's lower bound, multiplies by element size, and adds to the base
// address. genArrayIndexing itself never emits BOUNDS_CHECK directly — the
// checker coerces ix.Index to the array's Subrange index type, which wraps
// an out-of-range-capable index in a NarrowSubrange node, and genExpr's
// generic NarrowSubrange case (the same one assignment narrowing uses)
// emits the BOUNDS_CHECK while lowering that index expression here.
func (g *Generator) genArrayIndexing(ix *ast.ArrayIndexing) *emitter.Code {
	baseRef := ix.Base.Type().(*types.ReferenceType)
	arrayType := baseRef.Base.(*types.ArrayType)
	lower, _ := arrayType.IndexBounds()
	elemSize := widthOf(arrayType.Element)

	code := g.genExpr(ix.Base)
	code.Append(g.genExpr(ix.Index))
	code.GenLoadConstant(-lower)
	code.GenerateOp(opcode.ADD)
	code.GenLoadConstant(elemSize)
	code.GenerateOp(opcode.MPY)
	code.GenerateOp(opcode.ADD)
	return code
}
