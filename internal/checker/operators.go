package checker

import "github.com/cwbudde/pascore/internal/types"

// BuiltinOperators builds the disjoint operator namespace: operator names
// (+, =, pred, ...) live in their own flat table rather than in scope.Scope,
// since operator symbols are never looked up alongside ordinary identifiers,
// never nest, and can never be shadowed by a user declaration.
//
// Candidates are listed in the order overload resolution tries them: int*int
// before bool*bool wherever both could plausibly apply, since a narrower
// match should not be shadowed by a coercible one.
func BuiltinOperators() map[string]types.Type {
	intInt := types.NewProduct(types.Integer, types.Integer)
	boolBool := types.NewProduct(types.Boolean, types.Boolean)

	arith := func(symbol string) *types.IntersectionType {
		return types.NewIntersection(symbol,
			types.NewOperator(symbol, types.NewFunction(intInt, types.Integer)),
		)
	}

	compare := func(symbol string) *types.IntersectionType {
		return types.NewIntersection(symbol,
			types.NewOperator(symbol, types.NewFunction(intInt, types.Boolean)),
		)
	}

	equality := func(symbol string) *types.IntersectionType {
		return types.NewIntersection(symbol,
			types.NewOperator(symbol, types.NewFunction(intInt, types.Boolean)),
			types.NewOperator(symbol, types.NewFunction(boolBool, types.Boolean)),
		)
	}

	logical := func(symbol string) *types.IntersectionType {
		return types.NewIntersection(symbol,
			types.NewOperator(symbol, types.NewFunction(boolBool, types.Boolean)),
		)
	}

	neg := types.NewIntersection("-unary",
		types.NewOperator("-unary", types.NewFunction(types.Integer, types.Integer)),
	)
	not := types.NewIntersection("not",
		types.NewOperator("not", types.NewFunction(types.Boolean, types.Boolean)),
	)
	predSucc := func(symbol string) *types.IntersectionType {
		return types.NewIntersection(symbol,
			types.NewOperator(symbol, types.NewFunction(types.Integer, types.Integer)),
		)
	}

	return map[string]types.Type{
		"+":      arith("+"),
		"-":      arith("-"),
		"*":      arith("*"),
		"div":    arith("div"),
		"mod":    arith("mod"),
		"=":      equality("="),
		"<>":     equality("<>"),
		"<":      compare("<"),
		"<=":     compare("<="),
		">":      compare(">"),
		">=":     compare(">="),
		"and":    logical("and"),
		"or":     logical("or"),
		"-unary": neg,
		"not":    not,
		"pred":   predSucc("pred"),
		"succ":   predSucc("succ"),
	}
}
