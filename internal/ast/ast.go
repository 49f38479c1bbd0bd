// Package ast defines the typed abstract syntax tree the parser produces and
// the static checker elaborates in place. Every expression-valued field on a
// statement or expression node is mutable: elaboration replaces an
// Identifier with a resolved Const/Variable, wraps an l-value read in a
// Dereference, wraps a narrowing target in a NarrowSubrange, and so on, all
// by reassigning the relevant field rather than building a parallel tree.
//
// Dispatch is by type switch, not by a visitor/accept pair: exhaustive
// tagged-union pattern matching over a closed node set, rather than
// accept/visit indirection the node set doesn't need.
package ast

import (
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/cwbudde/pascore/internal/types"
)

// Expr is implemented by every expression node kind: Const, Identifier,
// Variable, Binary, Unary, ArrayIndexing, Dereference, NarrowSubrange,
// WidenSubrange, ErrorExpr.
type Expr interface {
	Pos() token.Position
	Type() types.Type
	SetType(types.Type)
	exprNode()
}

// Stmt is implemented by every statement node kind: Assignment, Read, Write,
// Call, If, While, For, List, ErrorStmt.
type Stmt interface {
	Pos() token.Position
	stmtNode()
}

// exprBase carries the fields every expression node shares: its source
// location and its elaborated type (nil until the checker assigns one).
type exprBase struct {
	pos token.Position
	typ types.Type
}

func (b *exprBase) Pos() token.Position { return b.pos }
func (b *exprBase) Type() types.Type    { return b.typ }
func (b *exprBase) SetType(t types.Type) {
	b.typ = t
}

// stmtBase carries the fields every statement node shares.
type stmtBase struct {
	pos token.Position
}

func (b *stmtBase) Pos() token.Position { return b.pos }

// Block is a procedure or program body: local declarations have already
// been folded into the owning scope by the time the checker sees a Block,
// so a Block is just its executable statement list plus the child
// procedures declared in it (checked, and code-generated, after the body).
type Block struct {
	Body           Stmt // always a *List
	ChildProcedure []*Procedure
}

// Procedure is a (possibly nested) procedure declaration. Its Entry is
// pre-built by the parser with a local scope and static level already
// attached; NewProcedure sets Entry.Body to this node (and so to its Block),
// letting Call sites reach the body through the symbol table alone.
type Procedure struct {
	pos   token.Position
	Name  string
	Entry *scope.ProcEntry
	Block *Block
}

func (p *Procedure) Pos() token.Position { return p.pos }

// NewProcedure builds a procedure node and wires Entry.Body to it.
func NewProcedure(pos token.Position, name string, entry *scope.ProcEntry, block *Block) *Procedure {
	p := &Procedure{pos: pos, Name: name, Entry: entry, Block: block}
	entry.Body = p
	return p
}

// Program is the root of a compilation unit: the main block, treated by the
// checker and code generator as a procedure at level 1 with no parameters
// and no caller.
type Program struct {
	pos   token.Position
	Entry *scope.ProcEntry
	Block *Block
}

func (p *Program) Pos() token.Position { return p.pos }

// NewProgram builds the program root and wires Entry.Body to it.
func NewProgram(pos token.Position, entry *scope.ProcEntry, block *Block) *Program {
	prog := &Program{pos: pos, Entry: entry, Block: block}
	entry.Body = prog
	return prog
}
