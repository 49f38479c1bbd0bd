package scope

import (
	"errors"
	"testing"

	"github.com/cwbudde/pascore/internal/types"
)

func TestNewIsLevelOneWithReservedFrame(t *testing.T) {
	s := New()
	if got := s.Level(); got != 1 {
		t.Errorf("Level() = %d, want 1", got)
	}
	if got := s.AllocVariableSpace(0); got != FrameReserved {
		t.Errorf("first free offset = %d, want %d", got, FrameReserved)
	}
}

func TestNewChildIncrementsLevel(t *testing.T) {
	parent := New()
	proc := &ProcEntry{Name: "p"}
	child := NewChild(parent, proc)
	if got := child.Level(); got != parent.Level()+1 {
		t.Errorf("child level = %d, want %d", got, parent.Level()+1)
	}
	if child.Owner() != proc {
		t.Error("child scope owner must be the passed ProcEntry")
	}
	if child.Parent() != parent {
		t.Error("child scope parent must be the passed parent")
	}
}

func TestNewInnerSharesLevel(t *testing.T) {
	parent := New()
	proc := &ProcEntry{Name: "p"}
	inner := NewInner(parent, proc)
	if got := inner.Level(); got != parent.Level() {
		t.Errorf("inner level = %d, want %d (same as parent)", got, parent.Level())
	}
}

func TestDefineAndLookup(t *testing.T) {
	s := New()
	entry := &ConstEntry{Name: "Max", Type: types.Integer, Value: 100}
	s.Define("Max", entry)

	if got := s.Lookup("Max"); got != entry {
		t.Errorf("Lookup(%q) = %v, want %v", "Max", got, entry)
	}
	if got := s.Lookup("MAX"); got != entry {
		t.Error("Lookup must be case-insensitive")
	}
}

func TestLookupUndefined(t *testing.T) {
	s := New()
	e := s.Lookup("nope")
	if !IsUndefined(e) {
		t.Error("Lookup of an unbound name must return the Undefined sentinel")
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	parent := New()
	parent.Define("x", &ConstEntry{Name: "x", Type: types.Integer, Value: 1})
	child := NewChild(parent, &ProcEntry{Name: "p"})

	if got := child.Lookup("x"); IsUndefined(got) {
		t.Error("Lookup must walk the parent chain")
	}
}

func TestLookupShadowing(t *testing.T) {
	parent := New()
	outer := &ConstEntry{Name: "x", Type: types.Integer, Value: 1}
	parent.Define("x", outer)
	child := NewChild(parent, &ProcEntry{Name: "p"})
	inner := &ConstEntry{Name: "x", Type: types.Integer, Value: 2}
	child.Define("x", inner)

	if got := child.Lookup("x"); got != inner {
		t.Error("a local binding must shadow an outer one")
	}
	if got := parent.Lookup("x"); got != outer {
		t.Error("defining in the child must not affect the parent's binding")
	}
}

func TestIsDeclaredHere(t *testing.T) {
	parent := New()
	parent.Define("x", &ConstEntry{Name: "x", Type: types.Integer, Value: 1})
	child := NewChild(parent, &ProcEntry{Name: "p"})

	if child.IsDeclaredHere("x") {
		t.Error("IsDeclaredHere must not see bindings from the parent")
	}
	if !parent.IsDeclaredHere("x") {
		t.Error("IsDeclaredHere must see a local binding")
	}
}

func TestAllocVariableSpaceAdvancesOffset(t *testing.T) {
	s := New()
	first := s.AllocVariableSpace(1)
	second := s.AllocVariableSpace(2)
	if first != FrameReserved {
		t.Errorf("first offset = %d, want %d", first, FrameReserved)
	}
	if second != FrameReserved+1 {
		t.Errorf("second offset = %d, want %d", second, FrameReserved+1)
	}
	if got := s.LocalSize(); got != FrameReserved+3 {
		t.Errorf("LocalSize() = %d, want %d", got, FrameReserved+3)
	}
}

func TestResolveScopeRunsThunksInOrder(t *testing.T) {
	s := New()
	var order []int
	s.Defer(func() error { order = append(order, 1); return nil })
	s.Defer(func() error { order = append(order, 2); return nil })

	if err := s.ResolveScope(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("thunks ran out of order: %v", order)
	}
}

func TestResolveScopeStopsOnFirstError(t *testing.T) {
	s := New()
	wantErr := errors.New("boom")
	ran := false
	s.Defer(func() error { return wantErr })
	s.Defer(func() error { ran = true; return nil })

	err := s.ResolveScope()
	if !errors.Is(err, wantErr) {
		t.Fatalf("ResolveScope() error = %v, want %v", err, wantErr)
	}
	if ran {
		t.Error("a thunk after a failing one must not run")
	}
}

func TestResolveScopeIsIdempotent(t *testing.T) {
	s := New()
	count := 0
	s.Defer(func() error { count++; return nil })

	if err := s.ResolveScope(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.ResolveScope(); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if count != 1 {
		t.Errorf("thunk ran %d times, want 1", count)
	}
}

func TestSymEntryNames(t *testing.T) {
	entries := []SymEntry{
		&ConstEntry{Name: "C"},
		&VarEntry{Name: "V"},
		&ProcEntry{Name: "P"},
		&TypeEntry{Name: "T"},
		&OperatorEntry{Symbol: "+"},
	}
	want := []string{"C", "V", "P", "T", "+"}
	for i, e := range entries {
		if got := e.symEntryName(); got != want[i] {
			t.Errorf("entry %d symEntryName() = %q, want %q", i, got, want[i])
		}
	}
}
