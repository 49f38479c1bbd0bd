// Package types implements the type algebra for the language core: a small
// closed set of tagged-union types, structural/nominal equality between them,
// and the coercion search that makes every implicit conversion in an
// elaborated program explicit.
package types

import (
	"fmt"
	"strings"
)

// Type is implemented by every member of the type algebra. It is a closed
// union by convention (not by a sealed-interface trick) — callers switch on
// the concrete type rather than dispatching through visitor methods, per the
// language's rewriting-hooks design.
type Type interface {
	// String returns a human-readable rendering used in error messages.
	String() string

	// isType is unexported so only this package can add new variants.
	isType()
}

// Equals reports whether two types are the same type under the language's
// equality rules: identity for references and arrays, structural equality
// (same name and bounds for scalars, same base and bounds for subranges).
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch at := a.(type) {
	case *ErrorType:
		_, ok := b.(*ErrorType)
		return ok
	case *ScalarType:
		bt, ok := b.(*ScalarType)
		return ok && at.Name == bt.Name && at.Lower == bt.Lower && at.Upper == bt.Upper
	case *SubrangeType:
		bt, ok := b.(*SubrangeType)
		return ok && Equals(at.Base, bt.Base) && at.Lower == bt.Lower && at.Upper == bt.Upper
	case *ReferenceType:
		bt, ok := b.(*ReferenceType)
		return ok && at == bt
	case *ArrayType:
		bt, ok := b.(*ArrayType)
		return ok && at == bt
	case *FunctionType:
		bt, ok := b.(*FunctionType)
		return ok && Equals(at.Arg, bt.Arg) && Equals(at.Result, bt.Result)
	case *OperatorType:
		bt, ok := b.(*OperatorType)
		return ok && at.Symbol == bt.Symbol && Equals(at.Func, bt.Func)
	case *IntersectionType:
		bt, ok := b.(*IntersectionType)
		return ok && at == bt
	case *ProductType:
		bt, ok := b.(*ProductType)
		if !ok || len(at.Types) != len(bt.Types) {
			return false
		}
		for i := range at.Types {
			if !Equals(at.Types[i], bt.Types[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ErrorType is the sentinel type that absorbs cascading failures. It is the
// only type a failed elaboration may produce; every other type is non-null
// on a successfully elaborated node.
type ErrorType struct{}

func (*ErrorType) String() string { return "<error>" }
func (*ErrorType) isType()        {}

// Error is the single shared Error type instance.
var Error = &ErrorType{}

// IsError reports whether t is the Error sentinel.
func IsError(t Type) bool {
	_, ok := t.(*ErrorType)
	return ok
}

// ScalarType is a dense integer interval with a name: the predefined
// Integer/Boolean types, a user-declared scalar (enumeration-like) type, or
// an anonymous scalar synthesized by the `for` checker. Equality is
// structural (same Name, Lower, Upper), so two independently-constructed
// scalars that happen to share a name and bounds compare equal even though
// NewScalar never aliases their storage.
type ScalarType struct {
	Name  string
	Lower int
	Upper int
	Size  int // word count occupied by a value of this type
}

func (s *ScalarType) String() string { return s.Name }
func (*ScalarType) isType()          {}

// NewScalar constructs a fresh named scalar type with the given bounds.
// Panics if lower > upper or size <= 0: these are invariant violations the
// caller (parser or checker) must never produce.
func NewScalar(name string, size, lower, upper int) *ScalarType {
	if lower > upper {
		panic(fmt.Sprintf("types: scalar %q has lower %d > upper %d", name, lower, upper))
	}
	if size <= 0 {
		panic(fmt.Sprintf("types: scalar %q has non-positive size %d", name, size))
	}
	return &ScalarType{Name: name, Lower: lower, Upper: upper, Size: size}
}

// Width returns the word count a value of type t occupies in a frame. Only
// Scalar, Subrange, Reference, and Array types carry a defined width;
// anything else is an internal error to ask about.
func Width(t Type) int {
	switch tt := t.(type) {
	case *ScalarType:
		return tt.Size
	case *SubrangeType:
		return Width(tt.Base)
	case *ReferenceType:
		return 1 // an address is always one word
	case *ArrayType:
		lower, upper := tt.IndexBounds()
		return (upper - lower + 1) * Width(tt.Element)
	default:
		panic(fmt.Sprintf("types: %s has no defined width", t.String()))
	}
}

// Predefined scalar types. Integer is the widest scalar: every subrange
// silently widens to it.
var (
	Integer = NewScalar("integer", 1, minInt, maxInt)
	Boolean = NewScalar("boolean", 1, 0, 1)
)

const (
	minInt = -1 << 62
	maxInt = 1<<62 - 1
)

// IsIntegerLike reports whether t is Integer, a user scalar other than
// Boolean, or a subrange over one — i.e. whether it denotes an ordinal value
// that is not specifically the boolean type.
func IsIntegerLike(t Type) bool {
	switch tt := t.(type) {
	case *ScalarType:
		return tt != Boolean
	case *SubrangeType:
		return IsIntegerLike(tt.Base)
	default:
		return false
	}
}

// SubrangeType refines a scalar Base with tighter inclusive bounds. Equality
// is structural: same base, same bounds.
type SubrangeType struct {
	Base  Type
	Lower int
	Upper int
}

func (s *SubrangeType) String() string {
	return fmt.Sprintf("%s(%d..%d)", s.Base.String(), s.Lower, s.Upper)
}
func (*SubrangeType) isType() {}

// NewSubrange constructs a subrange of base with the given inclusive bounds.
func NewSubrange(base Type, lower, upper int) *SubrangeType {
	if lower > upper {
		panic(fmt.Sprintf("types: subrange of %s has lower %d > upper %d", base.String(), lower, upper))
	}
	return &SubrangeType{Base: base, Lower: lower, Upper: upper}
}

// ReferenceType is the type of an l-value: a memory cell holding a value of
// Base. Reference types compare by identity — ReferenceType is always
// constructed fresh by the checker at the point it types an l-value
// position, never interned, the same way array types are identity-compared.
type ReferenceType struct {
	Base Type
}

func (r *ReferenceType) String() string { return "ref " + r.Base.String() }
func (*ReferenceType) isType()          {}

// NewReference wraps base in a fresh Reference type.
func NewReference(base Type) *ReferenceType { return &ReferenceType{Base: base} }

// ArrayType is a one-dimensional array; Index must be a ScalarType (or a
// SubrangeType thereof) supplying the valid index range.
type ArrayType struct {
	Index   Type
	Element Type
}

func (a *ArrayType) String() string {
	return fmt.Sprintf("array[%s] of %s", a.Index.String(), a.Element.String())
}
func (*ArrayType) isType() {}

// NewArray constructs a fresh array type. Arrays compare by identity.
func NewArray(index, element Type) *ArrayType {
	return &ArrayType{Index: index, Element: element}
}

// IndexBounds returns the lower/upper bound of an array's index type,
// looking through a Subrange to its base Scalar if necessary.
func (a *ArrayType) IndexBounds() (lower, upper int) {
	switch idx := a.Index.(type) {
	case *ScalarType:
		return idx.Lower, idx.Upper
	case *SubrangeType:
		return idx.Lower, idx.Upper
	default:
		panic(fmt.Sprintf("types: array index type %s is not ordinal", a.Index.String()))
	}
}

// ProductType is a tuple of operand types, used as the argument type of an
// n-ary (binary) operator.
type ProductType struct {
	Types []Type
}

func (p *ProductType) String() string {
	parts := make([]string, len(p.Types))
	for i, t := range p.Types {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (*ProductType) isType() {}

// NewProduct builds a tuple type from the given operand types.
func NewProduct(types ...Type) *ProductType { return &ProductType{Types: types} }

// FunctionType maps an argument type (a single Type, or a Product for n-ary
// operators) to a result type.
type FunctionType struct {
	Arg    Type
	Result Type
}

func (f *FunctionType) String() string {
	return fmt.Sprintf("%s -> %s", f.Arg.String(), f.Result.String())
}
func (*FunctionType) isType() {}

// NewFunction builds a function type from argument and result types.
func NewFunction(arg, result Type) *FunctionType { return &FunctionType{Arg: arg, Result: result} }

// OperatorType is a single overload candidate: an operator symbol ("+", "=",
// "pred", ...) paired with the function type of that candidate.
type OperatorType struct {
	Symbol string
	Func   *FunctionType
}

func (o *OperatorType) String() string {
	return fmt.Sprintf("operator %s: %s", o.Symbol, o.Func.String())
}
func (*OperatorType) isType() {}

// NewOperator builds a single-candidate operator type.
func NewOperator(symbol string, fn *FunctionType) *OperatorType {
	return &OperatorType{Symbol: symbol, Func: fn}
}

// IntersectionType is the advertised type of an overloaded operator name: the
// set of candidate OperatorTypes tried, in order, during overload
// resolution. Intersections compare by identity — each operator name in the
// map checker.BuiltinOperators returns owns exactly one IntersectionType
// value.
type IntersectionType struct {
	Name       string
	Candidates []*OperatorType
}

func (i *IntersectionType) String() string { return i.Name }
func (*IntersectionType) isType()          {}

// NewIntersection builds an intersection type from its candidates, in the
// priority order overload resolution will try them.
func NewIntersection(name string, candidates ...*OperatorType) *IntersectionType {
	return &IntersectionType{Name: name, Candidates: candidates}
}
