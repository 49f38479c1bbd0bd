package codegen

import (
	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/emitter"
	"github.com/cwbudde/pascore/internal/opcode"
	"github.com/cwbudde/pascore/internal/types"
)

// genBinary dispatches on the checker's resolved operator symbol: +, *, div,
// =, <, <= map straight onto their opcode; subtraction is NEGATE+ADD; <> is
// EQUAL+BOOL_NOT; > and >= swap operand order and reuse LESS/LESSEQ. mod,
// and, and or have no dedicated opcode in the 22-opcode contract, so they
// are lowered to arithmetic over the 0/1 integer representation booleans
// already use (see DESIGN.md for the grounding of this choice).
func (g *Generator) genBinary(b *ast.Binary) *emitter.Code {
	left := g.genExpr(b.Left)
	right := g.genExpr(b.Right)

	switch b.ResolvedSymbol {
	case "+":
		return seq(left, right, op(opcode.ADD))
	case "-":
		return seq(left, right, op(opcode.NEGATE), op(opcode.ADD))
	case "*":
		return seq(left, right, op(opcode.MPY))
	case "div":
		return seq(left, right, op(opcode.DIV))
	case "mod":
		return g.genMod(b)
	case "=":
		return seq(left, right, op(opcode.EQUAL))
	case "<>":
		return seq(left, right, op(opcode.EQUAL), op(opcode.BOOL_NOT))
	case "<":
		return seq(left, right, op(opcode.LESS))
	case "<=":
		return seq(left, right, op(opcode.LESSEQ))
	case ">":
		return seq(right, left, op(opcode.LESS))
	case ">=":
		return seq(right, left, op(opcode.LESSEQ))
	case "and":
		return seq(left, right, op(opcode.MPY))
	case "or":
		return seq(left, op(opcode.BOOL_NOT), right, op(opcode.BOOL_NOT), op(opcode.MPY), op(opcode.BOOL_NOT))
	default:
		g.fatal(b.Pos(), "codegen: unknown operator symbol %q at emission", b.ResolvedSymbol)
		return nil
	}
}

// genMod lowers a mod b to a - (a div b) * b: the expressions are
// side-effect-free reads, so re-evaluating them is safe and avoids needing
// a stack-duplicate opcode the external contract does not provide.
func (g *Generator) genMod(b *ast.Binary) *emitter.Code {
	code := g.genExpr(b.Left)
	quotientTimesRight := seq(g.genExpr(b.Left), g.genExpr(b.Right), op(opcode.DIV), g.genExpr(b.Right), op(opcode.MPY))
	code.Append(quotientTimesRight)
	code.GenerateOp(opcode.NEGATE)
	code.GenerateOp(opcode.ADD)
	return code
}

// genUnary dispatches NEG_OP to NEGATE and PRED_OP/SUCC_OP to the cyclic
// wrap rule: compute the stepped value, stash it in the hidden idxOffset
// slot, then wrap it into range by adding/subtracting the range width if it
// fell outside [lower, upper]. In practice pred/succ's operator contract
// coerces its operand to plain Integer, so scalarBounds always sees
// Integer's own huge range here — this wrap logic never fires for a real
// user-declared subrange; see DESIGN.md.
func (g *Generator) genUnary(u *ast.Unary) *emitter.Code {
	switch u.ResolvedSymbol {
	case "-unary":
		code := g.genExpr(u.Operand)
		code.GenerateOp(opcode.NEGATE)
		return code
	case "not":
		code := g.genExpr(u.Operand)
		code.GenerateOp(opcode.BOOL_NOT)
		return code
	case "pred":
		return g.genPredSucc(u, -1)
	case "succ":
		return g.genPredSucc(u, 1)
	default:
		g.fatal(u.Pos(), "codegen: unknown operator symbol %q at emission", u.ResolvedSymbol)
		return nil
	}
}

func (g *Generator) genPredSucc(u *ast.Unary, step int) *emitter.Code {
	lower, upper := scalarBounds(u.Operand.Type())
	rangeWidth := upper - lower + 1
	width := widthOf(u.Operand.Type())

	slot := func() *emitter.Code {
		c := emitter.New()
		c.GenMemRef(0, u.IdxOffset)
		return c
	}
	loadSlot := func() *emitter.Code {
		c := slot()
		c.GenLoad(width)
		return c
	}

	code := g.genExpr(u.Operand)
	code.GenLoadConstant(step)
	code.GenerateOp(opcode.ADD)
	code.Append(slot())
	code.GenStore(width)

	lowCheck := seq(loadSlot(), constCode(lower), op(opcode.LESS))
	wrapUp := seq(loadSlot(), constCode(rangeWidth), op(opcode.ADD), slot(), storeCode(width))
	code.Append(emitter.GenIfThenElse(lowCheck, wrapUp, nil))

	highCheck := seq(constCode(upper), loadSlot(), op(opcode.LESS))
	wrapDown := seq(loadSlot(), constCode(-rangeWidth), op(opcode.ADD), slot(), storeCode(width))
	code.Append(emitter.GenIfThenElse(highCheck, wrapDown, nil))

	code.Append(loadSlot())
	return code
}

// scalarBounds reads the [lower, upper] range of a scalar or subrange type.
func scalarBounds(t types.Type) (int, int) {
	switch tt := t.(type) {
	case *types.ScalarType:
		return tt.Lower, tt.Upper
	case *types.SubrangeType:
		return tt.Lower, tt.Upper
	default:
		panic("codegen: pred/succ operand is not a scalar or subrange type")
	}
}

// seq concatenates instruction fragments into one, left to right.
func seq(fragments ...*emitter.Code) *emitter.Code {
	out := emitter.New()
	for _, f := range fragments {
		out.Append(f)
	}
	return out
}

func op(o opcode.Code) *emitter.Code {
	c := emitter.New()
	c.GenerateOp(o)
	return c
}

func constCode(n int) *emitter.Code {
	c := emitter.New()
	c.GenLoadConstant(n)
	return c
}

func storeCode(width int) *emitter.Code {
	c := emitter.New()
	c.GenStore(width)
	return c
}
