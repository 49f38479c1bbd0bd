package codegen

import (
	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/emitter"
	"github.com/cwbudde/pascore/internal/opcode"
)

// genStmt lowers one statement to its instruction fragment.
func (g *Generator) genStmt(s ast.Stmt) *emitter.Code {
	switch st := s.(type) {
	case *ast.List:
		code := emitter.New()
		for _, inner := range st.Stmts {
			code.Append(g.genStmt(inner))
		}
		return code
	case *ast.Assignment:
		return g.genAssignment(st)
	case *ast.Read:
		return g.genRead(st)
	case *ast.Write:
		return g.genWrite(st)
	case *ast.Call:
		return g.genCall(st)
	case *ast.If:
		return emitter.GenIfThenElse(g.genExpr(st.Cond), g.genStmt(st.Then), genOptional(g, st.Else))
	case *ast.While:
		return g.genWhile(st)
	case *ast.For:
		return g.genFor(st)
	case *ast.ErrorStmt:
		g.fatal(s.Pos(), "codegen: reached an ErrorStmt %q", st.Message)
		return nil
	default:
		g.fatal(s.Pos(), "codegen: unhandled statement kind %T", s)
		return nil
	}
}

// genOptional returns nil (not an empty Code) for a nil else-branch, so
// emitter.GenIfThenElse can tell "no else" from "empty else".
func genOptional(g *Generator, s ast.Stmt) *emitter.Code {
	if s == nil {
		return nil
	}
	return g.genStmt(s)
}

// genAssignment emits the r-value, then the l-value address, then
// STORE(rhs.type).
func (g *Generator) genAssignment(a *ast.Assignment) *emitter.Code {
	code := g.genExpr(a.RHS)
	code.Append(g.genExpr(a.LHS))
	code.GenStore(widthOf(a.RHS.Type()))
	return code
}

// genRead emits READ, then the l-value address, then STORE(deref type).
func (g *Generator) genRead(r *ast.Read) *emitter.Code {
	code := emitter.New()
	code.GenerateOp(opcode.READ)
	code.Append(g.genExpr(r.LHS))
	code.GenStore(widthOf(derefType(r.LHS)))
	return code
}

// genWrite emits the expression, then WRITE.
func (g *Generator) genWrite(w *ast.Write) *emitter.Code {
	code := g.genExpr(w.Expr)
	code.GenerateOp(opcode.WRITE)
	return code
}

// genCall emits CALL(staticLevel − proc.level, proc).
func (g *Generator) genCall(c *ast.Call) *emitter.Code {
	code := emitter.New()
	code.GenCall(g.staticLevel-c.Entry.Level, c.Entry)
	return code
}

// genWhile emits a test-first loop with a backward jump computed once both
// the condition and body fragments are known.
func (g *Generator) genWhile(w *ast.While) *emitter.Code {
	cond := g.genExpr(w.Cond)
	body := g.genStmt(w.Body)

	out := emitter.New()
	out.Append(cond)
	out.GenJumpIfFalse(body.Size() + opcode.SizeJumpAlways)
	out.Append(body)
	out.GenJumpAlways(-(out.Size() + opcode.SizeJumpAlways))
	return out
}

// genFor generates a bounds-snapshotted, inclusive, ascending unit-step
// loop. The loop variable and the hidden lowSlot/highSlot are primed before
// the head, then a double-guarded, test-first loop body increments the
// loop variable each iteration.
func (g *Generator) genFor(f *ast.For) *emitter.Code {
	width := widthOf(f.Scalar)

	code := emitter.New()
	// Store initial lower bound into the loop variable.
	code.Append(g.genExpr(f.Low))
	code.Append(g.genExpr(f.LoopVar))
	code.GenStore(width)
	// Snapshot lower and upper into the hidden slots.
	code.Append(g.genExpr(f.Low))
	code.GenMemRef(0, f.LowSlot)
	code.GenStore(width)
	code.Append(g.genExpr(f.High))
	code.GenMemRef(0, f.HighSlot)
	code.GenStore(width)

	loadLow := emitter.New()
	loadLow.GenMemRef(0, f.LowSlot)
	loadLow.GenLoad(width)

	loadHigh := emitter.New()
	loadHigh.GenMemRef(0, f.HighSlot)
	loadHigh.GenLoad(width)

	loadVar := func() *emitter.Code {
		c := emitter.New()
		c.Append(g.genExpr(f.LoopVar))
		c.GenLoad(width)
		return c
	}

	guard1 := emitter.New() // lowSlot <= loopVar
	guard1.Append(loadLow)
	guard1.Append(loadVar())
	guard1.GenerateOp(opcode.LESSEQ)

	guard2 := emitter.New() // loopVar <= highSlot
	guard2.Append(loadVar())
	guard2.Append(loadHigh)
	guard2.GenerateOp(opcode.LESSEQ)

	body := g.genStmt(f.Body)
	increment := emitter.New()
	increment.Append(loadVar())
	increment.GenLoadConstant(1)
	increment.GenerateOp(opcode.ADD)
	increment.Append(g.genExpr(f.LoopVar))
	increment.GenStore(width)
	body.Append(increment)

	jif2Offset := body.Size() + opcode.SizeJumpAlways
	jif1Offset := guard2.Size() + opcode.SizeJumpAlways + jif2Offset

	code.Append(guard1)
	code.GenJumpIfFalse(jif1Offset)
	code.Append(guard2)
	code.GenJumpIfFalse(jif2Offset)
	code.Append(body)
	code.GenJumpAlways(-(guard1.Size() + opcode.SizeJumpAlways + guard2.Size() + opcode.SizeJumpAlways + body.Size() + opcode.SizeJumpAlways))
	return code
}
