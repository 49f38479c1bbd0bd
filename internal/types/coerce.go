package types

import "errors"

// ErrIncompatibleTypes is the internal control-flow signal used only inside
// overload resolution: it is never surfaced to a user by itself. Every
// other caller that needs a user-facing failure works from the plan this
// package returns and reports its own error — see internal/checker's
// CoerceExp, which needs an ErrorSink and a source position neither of
// which this package should depend on.
var ErrIncompatibleTypes = errors.New("incompatible types")

// Coercion identifies one step of a coercion plan.
type Coercion int

const (
	// CoerceDereference unwraps a Reference(U) to U.
	CoerceDereference Coercion = iota
	// CoerceNarrowSubrange wraps a value in a runtime-checked narrowing to
	// the subrange recorded in the step's Narrow field.
	CoerceNarrowSubrange
	// CoerceWidenSubrange widens a subrange value to the type recorded in
	// the step's WidenTo field (always a no-op at runtime).
	CoerceWidenSubrange
)

// CoerceStep is one element of a CoercePlan.
type CoerceStep struct {
	Kind    Coercion
	Narrow  *SubrangeType // set when Kind == CoerceNarrowSubrange
	WidenTo Type          // set when Kind == CoerceWidenSubrange
}

// CoercePlan is the sequence of coercions CoerceToType decided make expr's
// type match its target: step i is applied to the result of step i-1,
// starting from the original expression. An empty plan (Steps == nil) means
// the expression's type already equals the target — no wrapping needed.
type CoercePlan struct {
	Steps []CoerceStep
}

// CoerceToType searches, in a fixed priority order, for a way to make a
// value of type et match target:
//
//  1. et already equals target: empty plan.
//  2. et is Reference(U) and U equals target: dereference.
//  3. et is Reference(U) and U coerces to target: dereference, then recurse.
//  4. target is Subrange(B, lo, hi) and et coerces to B: narrow (bounds
//     checked at runtime).
//  5. et is Subrange(B, _, _) and B coerces to target: widen.
//
// At most one of (2-5) contributes a step; (3) may itself recurse into
// (4) or (5) after dereferencing, producing a two-step plan. Returns
// ErrIncompatibleTypes if none apply.
func CoerceToType(target, et Type) (*CoercePlan, error) {
	if Equals(et, target) {
		return &CoercePlan{}, nil
	}

	if ref, ok := et.(*ReferenceType); ok {
		if Equals(ref.Base, target) {
			return &CoercePlan{Steps: []CoerceStep{{Kind: CoerceDereference}}}, nil
		}
		if rest, err := CoerceToType(target, ref.Base); err == nil {
			steps := make([]CoerceStep, 0, len(rest.Steps)+1)
			steps = append(steps, CoerceStep{Kind: CoerceDereference})
			steps = append(steps, rest.Steps...)
			return &CoercePlan{Steps: steps}, nil
		}
	}

	if sub, ok := target.(*SubrangeType); ok {
		if base, err := CoerceToType(sub.Base, et); err == nil {
			steps := make([]CoerceStep, 0, len(base.Steps)+1)
			steps = append(steps, base.Steps...)
			steps = append(steps, CoerceStep{Kind: CoerceNarrowSubrange, Narrow: sub})
			return &CoercePlan{Steps: steps}, nil
		}
	}

	if sr, ok := et.(*SubrangeType); ok {
		if _, err := CoerceToType(target, sr.Base); err == nil {
			return &CoercePlan{Steps: []CoerceStep{{Kind: CoerceWidenSubrange, WidenTo: target}}}, nil
		}
	}

	return nil, ErrIncompatibleTypes
}
