package ast

import (
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/cwbudde/pascore/internal/types"
)

// Assignment is `LHS := RHS`. Both fields are reassigned in place by the
// checker: LHS gets its Identifier resolved to a Variable (or an
// ErrorExpr), RHS is replaced by its coercion to LHS's base type.
type Assignment struct {
	stmtBase
	LHS Expr
	RHS Expr
}

func (*Assignment) stmtNode() {}

// NewAssignment builds a raw (unelaborated) assignment statement.
func NewAssignment(pos token.Position, lhs, rhs Expr) *Assignment {
	return &Assignment{stmtBase: stmtBase{pos: pos}, LHS: lhs, RHS: rhs}
}

// Read is `read LHS`; LHS must elaborate to Reference(integer).
type Read struct {
	stmtBase
	LHS Expr
}

func (*Read) stmtNode() {}

// NewRead builds a raw read statement.
func NewRead(pos token.Position, lhs Expr) *Read {
	return &Read{stmtBase: stmtBase{pos: pos}, LHS: lhs}
}

// Write is `write Expr`; Expr is coerced to integer.
type Write struct {
	stmtBase
	Expr Expr
}

func (*Write) stmtNode() {}

// NewWrite builds a raw write statement.
func NewWrite(pos token.Position, expr Expr) *Write {
	return &Write{stmtBase: stmtBase{pos: pos}, Expr: expr}
}

// Call is `call Name`; Name is resolved to Entry by the checker, or left nil
// and reported as an undeclared identifier (no such name) or as "Procedure
// identifier required" (a name that is not a procedure).
type Call struct {
	stmtBase
	Name  string
	Entry *scope.ProcEntry
}

func (*Call) stmtNode() {}

// NewCall builds a raw call statement, naming the procedure to resolve.
func NewCall(pos token.Position, name string) *Call {
	return &Call{stmtBase: stmtBase{pos: pos}, Name: name}
}

// If is `if Cond then Then [else Else]`; Else is nil when there is no else
// branch.
type If struct {
	stmtBase
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*If) stmtNode() {}

// NewIf builds a raw if statement. else_ may be nil.
func NewIf(pos token.Position, cond Expr, then, else_ Stmt) *If {
	return &If{stmtBase: stmtBase{pos: pos}, Cond: cond, Then: then, Else: else_}
}

// While is `while Cond do Body`, tested before each iteration.
type While struct {
	stmtBase
	Cond Expr
	Body Stmt
}

func (*While) stmtNode() {}

// NewWhile builds a raw while statement.
func NewWhile(pos token.Position, cond Expr, body Stmt) *While {
	return &While{stmtBase: stmtBase{pos: pos}, Cond: cond, Body: body}
}

// For is `for LoopVar := Low to High do Body`. InnerScope is pre-built by
// the parser; LowSlot/HighSlot are the hidden frame offsets the checker
// allocates in it for the snapshotted bounds; Scalar is the controlling
// scalar type the checker derives from the bounds.
type For struct {
	stmtBase
	LoopVar    Expr
	Low        Expr
	High       Expr
	Body       Stmt
	InnerScope *scope.Scope
	LowSlot    int
	HighSlot   int
	Scalar     types.Type // the controlling scalar (or subrange) type; set by the checker
}

func (*For) stmtNode() {}

// NewFor builds a raw for statement over the given pre-built inner scope.
func NewFor(pos token.Position, loopVar, low, high Expr, body Stmt, inner *scope.Scope) *For {
	return &For{stmtBase: stmtBase{pos: pos}, LoopVar: loopVar, Low: low, High: high, Body: body, InnerScope: inner}
}

// List is a sequence of statements executed in order — a procedure or
// program body, or a `begin...end` block nested inside one.
type List struct {
	stmtBase
	Stmts []Stmt
}

func (*List) stmtNode() {}

// NewList builds a statement list.
func NewList(pos token.Position, stmts ...Stmt) *List {
	return &List{stmtBase: stmtBase{pos: pos}, Stmts: stmts}
}

// ErrorStmt marks a position where no executable statement could be
// produced; the parser builds one where it expected a statement and found
// none. Like ErrorExpr, it must never reach the code generator.
type ErrorStmt struct {
	stmtBase
	Message string
}

func (*ErrorStmt) stmtNode() {}

// NewErrorStmt builds an error marker statement.
func NewErrorStmt(pos token.Position, message string) *ErrorStmt {
	return &ErrorStmt{stmtBase: stmtBase{pos: pos}, Message: message}
}
