package ast

import (
	"github.com/cwbudde/pascore/internal/scope"
	"github.com/cwbudde/pascore/internal/token"
	"github.com/cwbudde/pascore/internal/types"
)

// Const is a compile-time-known value: a literal from the source, or an
// Identifier the checker resolved to a constant symbol. Its type is set at
// construction and never changes.
type Const struct {
	exprBase
	Value int
}

func (*Const) exprNode() {}

// NewConst builds a Const expression of type typ with the given value.
func NewConst(pos token.Position, typ types.Type, value int) *Const {
	return &Const{exprBase: exprBase{pos: pos, typ: typ}, Value: value}
}

// Identifier is a raw, unresolved name as the parser produced it. The
// checker's expression pass replaces every Identifier node with a Const or
// Variable (or an ErrorExpr, if the name resolves to neither) — no
// Identifier node survives elaboration.
type Identifier struct {
	exprBase
	Name string
}

func (*Identifier) exprNode() {}

// NewIdentifier builds an unresolved identifier reference.
func NewIdentifier(pos token.Position, name string) *Identifier {
	return &Identifier{exprBase: exprBase{pos: pos}, Name: name}
}

// Variable is a resolved reference to a storage location: its type is
// always Reference(Entry.Type) once the checker assigns it (a `for` loop's
// variable and bounds are the one place a Variable's type is subsequently
// overwritten to Reference(scalar) for the loop's controlling scalar).
type Variable struct {
	exprBase
	Entry *scope.VarEntry
}

func (*Variable) exprNode() {}

// NewVariable builds a resolved variable reference of type Reference(entry.Type).
func NewVariable(pos token.Position, entry *scope.VarEntry) *Variable {
	return &Variable{exprBase: exprBase{pos: pos, typ: types.NewReference(entry.Type)}, Entry: entry}
}

// Binary is a binary operator application. Op is the operator symbol as
// written in the source ("+", "=", ...); Left and Right are settable so the
// checker can splice in coercions around the operands. ResolvedSymbol
// records which overload candidate matched, which may differ from Op only
// in that it disambiguates which advertised candidate won — the code
// generator dispatches on ResolvedSymbol.
type Binary struct {
	exprBase
	Op             string
	Left           Expr
	Right          Expr
	ResolvedSymbol string
}

func (*Binary) exprNode() {}

// NewBinary builds an unelaborated binary expression; Type is Error until
// the checker assigns it.
func NewBinary(pos token.Position, op string, left, right Expr) *Binary {
	return &Binary{exprBase: exprBase{pos: pos, typ: types.Error}, Op: op, Left: left, Right: right}
}

// Unary is a unary operator application (`-`, `pred`, `succ`). It reserves
// one hidden frame word, IdxOffset, allocated by the checker when it
// elaborates this node for pred/succ's code generator to stash an
// intermediate value in — the negation operator's code generator never
// reads it, but every Unary node gets the slot regardless of which operator
// resolves.
type Unary struct {
	exprBase
	Op             string
	Operand        Expr
	ResolvedSymbol string
	IdxOffset      int
}

func (*Unary) exprNode() {}

// NewUnary builds an unelaborated unary expression.
func NewUnary(pos token.Position, op string, operand Expr) *Unary {
	return &Unary{exprBase: exprBase{pos: pos, typ: types.Error}, Op: op, Operand: operand}
}

// ArrayIndexing indexes Base (a Reference(Array(...))) by Index. Its type
// becomes Reference(elementType) once elaborated.
type ArrayIndexing struct {
	exprBase
	Base  Expr
	Index Expr
}

func (*ArrayIndexing) exprNode() {}

// NewArrayIndexing builds an unelaborated array-indexing expression.
func NewArrayIndexing(pos token.Position, base, index Expr) *ArrayIndexing {
	return &ArrayIndexing{exprBase: exprBase{pos: pos, typ: types.Error}, Base: base, Index: index}
}

// Dereference reads the value held by an l-value: its type is the base type
// of Inner's Reference type.
type Dereference struct {
	exprBase
	Inner Expr
}

func (*Dereference) exprNode() {}

// NewDereference wraps inner (whose type must be Reference(T)) in a
// Dereference node of type T.
func NewDereference(inner Expr) *Dereference {
	ref, ok := inner.Type().(*types.ReferenceType)
	if !ok {
		panic("ast: NewDereference on a non-Reference-typed expression")
	}
	return &Dereference{exprBase: exprBase{pos: inner.Pos(), typ: ref.Base}, Inner: inner}
}

// NarrowSubrange inserts a runtime bounds check converting Inner (whose type
// coerces to Target.Base) to Target.
type NarrowSubrange struct {
	exprBase
	Inner  Expr
	Target *types.SubrangeType
}

func (*NarrowSubrange) exprNode() {}

// NewNarrowSubrange wraps inner in a bounds-checked narrowing to target.
func NewNarrowSubrange(inner Expr, target *types.SubrangeType) *NarrowSubrange {
	return &NarrowSubrange{exprBase: exprBase{pos: inner.Pos(), typ: target}, Inner: inner, Target: target}
}

// WidenSubrange marks a subrange value as being used at its (always
// compatible, no-op at runtime) base/target type.
type WidenSubrange struct {
	exprBase
	Inner  Expr
	Target types.Type
}

func (*WidenSubrange) exprNode() {}

// NewWidenSubrange wraps inner in a no-op widening to target.
func NewWidenSubrange(inner Expr, target types.Type) *WidenSubrange {
	return &WidenSubrange{exprBase: exprBase{pos: inner.Pos(), typ: target}, Inner: inner, Target: target}
}

// ErrorExpr marks a position where elaboration failed; its type is always
// types.Error. It is never passed to the code generator — every ErrorExpr
// reaching codegen is an internal-error bug in the checker, since a program
// with elaboration errors never gets that far.
type ErrorExpr struct {
	exprBase
	Message string
}

func (*ErrorExpr) exprNode() {}

// NewErrorExpr builds an Error-typed node carrying the message that was
// reported to the error sink at pos, for debugging/snapshot purposes.
func NewErrorExpr(pos token.Position, message string) *ErrorExpr {
	return &ErrorExpr{exprBase: exprBase{pos: pos, typ: types.Error}, Message: message}
}
