package types

import "testing"

func TestCoerceToTypeIdentity(t *testing.T) {
	plan, err := CoerceToType(Integer, Integer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 0 {
		t.Errorf("identity coercion must be an empty plan, got %d steps", len(plan.Steps))
	}
}

func TestCoerceToTypeDereference(t *testing.T) {
	ref := NewReference(Integer)
	plan, err := CoerceToType(Integer, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 1 || plan.Steps[0].Kind != CoerceDereference {
		t.Errorf("expected a single dereference step, got %+v", plan.Steps)
	}
}

func TestCoerceToTypeNarrowSubrange(t *testing.T) {
	sub := NewSubrange(Integer, 1, 10)
	plan, err := CoerceToType(sub, Integer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 1 || plan.Steps[0].Kind != CoerceNarrowSubrange {
		t.Fatalf("expected a single narrow step, got %+v", plan.Steps)
	}
	if plan.Steps[0].Narrow != sub {
		t.Error("narrow step must record the target subrange")
	}
}

func TestCoerceToTypeWidenSubrange(t *testing.T) {
	sub := NewSubrange(Integer, 1, 10)
	plan, err := CoerceToType(Integer, sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 1 || plan.Steps[0].Kind != CoerceWidenSubrange {
		t.Fatalf("expected a single widen step, got %+v", plan.Steps)
	}
	if !Equals(plan.Steps[0].WidenTo, Integer) {
		t.Error("widen step must record the widen target")
	}
}

func TestCoerceToTypeDereferenceThenNarrow(t *testing.T) {
	sub := NewSubrange(Integer, 1, 10)
	ref := NewReference(Integer)
	plan, err := CoerceToType(sub, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Steps) != 2 {
		t.Fatalf("expected a two-step plan, got %+v", plan.Steps)
	}
	if plan.Steps[0].Kind != CoerceDereference {
		t.Errorf("first step must dereference, got %v", plan.Steps[0].Kind)
	}
	if plan.Steps[1].Kind != CoerceNarrowSubrange {
		t.Errorf("second step must narrow, got %v", plan.Steps[1].Kind)
	}
}

func TestCoerceToTypeIncompatible(t *testing.T) {
	_, err := CoerceToType(Boolean, Integer)
	if err != ErrIncompatibleTypes {
		t.Errorf("expected ErrIncompatibleTypes, got %v", err)
	}
}

func TestCoerceToTypeArrayIncompatible(t *testing.T) {
	arr := NewArray(Integer, Integer)
	_, err := CoerceToType(Integer, arr)
	if err != ErrIncompatibleTypes {
		t.Errorf("expected ErrIncompatibleTypes, got %v", err)
	}
}
