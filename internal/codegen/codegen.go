// Package codegen is the code generator: it walks the elaborated AST the
// checker produced and emits per-procedure instruction blobs into
// internal/emitter's buffers, keyed by the owning *scope.ProcEntry — a
// mapping from procedure entry to its code blob, suitable for a
// linker/loader to consume.
package codegen

import (
	"fmt"

	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/emitter"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/opcode"
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/cwbudde/pascore/internal/types"
)

// Generator holds the state threaded through one code-generation pass: the
// diagnostic sink (used only for internal-error Fatal calls — user-facing
// errors never reach codegen, since a program with checker errors is never
// handed to it), the output map, and the current static nesting level.
type Generator struct {
	sink        errsink.Sink
	code        map[*scope.ProcEntry]*emitter.Code
	staticLevel int
}

// New builds a Generator reporting fatal internal errors through sink.
func New(sink errsink.Sink) *Generator {
	return &Generator{sink: sink, code: make(map[*scope.ProcEntry]*emitter.Code)}
}

// GenerateProgram lowers an elaborated program and everything nested inside
// it, returning the procedure-entry → code-blob mapping.
func (g *Generator) GenerateProgram(prog *ast.Program) map[*scope.ProcEntry]*emitter.Code {
	g.staticLevel = prog.Entry.Level
	g.genProcedureLike(prog.Entry, prog.Block)
	return g.code
}

// genProcedureLike emits ALLOC_STACK(localSize) then the body, appends
// RETURN, registers the result under entry, then generates each child
// procedure with staticLevel raised by one.
func (g *Generator) genProcedureLike(entry *scope.ProcEntry, block *ast.Block) {
	code := emitter.New()
	code.GenAllocStack(entry.LocalScope.LocalSize())
	code.Append(g.genStmt(block.Body))
	code.GenerateOp(opcode.RETURN)
	g.code[entry] = code

	g.staticLevel++
	for _, child := range block.ChildProcedure {
		g.genProcedureLike(child.Entry, child.Block)
	}
	g.staticLevel--
}

// fatal panics with an InternalError — codegen never has a meaningful
// position for most of these (the checker has already elaborated every
// node it walks), so pos is usually the zero token.Position; the message
// identifies the offending node kind instead.
func (g *Generator) fatal(pos token.Position, format string, args ...any) {
	panic(&errsink.InternalError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// widthOf is a small convenience wrapper so statement/expression files don't
// need to import types directly just to ask for a node's frame width.
func widthOf(t types.Type) int { return types.Width(t) }

// derefType returns the base type of an l-value expression's Reference
// type — the type of the value that sits at its address.
func derefType(e ast.Expr) types.Type {
	ref, ok := e.Type().(*types.ReferenceType)
	if !ok {
		panic("codegen: derefType called on a non-Reference-typed expression")
	}
	return ref.Base
}
