// Package scope implements name resolution and per-procedure frame layout:
// a chain of scopes, each owning a local symbol map, a parent pointer, an
// owning procedure entry, a static nesting level, and a running
// variable-offset counter.
package scope

import (
	"strings"

	"github.com/cwbudde/pascore/internal/types"
)

// FrameReserved is the number of words reserved at the bottom of every
// activation record for the frame-save area (return address, static link,
// dynamic link). Variable offsets are allocated starting here, never at 0,
// so the code generator's MEM_REF(0, 0) never collides with frame-management
// state.
const FrameReserved = 3

// SymEntry is implemented by every kind of symbol table entry: Constant,
// Variable, Procedure, Type, Operator. It is a closed union by convention,
// the same way types.Type is.
type SymEntry interface {
	symEntryName() string
	isSymEntry()
}

// ConstEntry is a read-only named value known at compile time.
type ConstEntry struct {
	Name  string
	Type  types.Type
	Value int
}

func (c *ConstEntry) symEntryName() string { return c.Name }
func (*ConstEntry) isSymEntry()            {}

// VarEntry is a named storage location: a type, the static level it was
// declared at, its word offset within that level's frame, and whether
// writes to it are rejected (set for `for`-loop control variables once the
// checker has elaborated the loop header).
type VarEntry struct {
	Name     string
	Type     types.Type
	Level    int
	Offset   int
	ReadOnly bool
}

func (v *VarEntry) symEntryName() string { return v.Name }
func (*VarEntry) isSymEntry()            {}

// ProcEntry is a named procedure: its static nesting level, its own local
// scope, and its body. Body holds the *ast.Procedure (or *ast.Program) node
// and is typed `any` to avoid an import cycle (internal/ast needs to refer to
// the owning ProcEntry of a Call/Procedure node, so scope cannot also import
// ast) — the same trick the teacher's TypeSystem uses for
// ClassInfo/RecordTypeValue in internal/interp/types/type_system.go.
type ProcEntry struct {
	Name       string
	Level      int
	LocalScope *Scope
	Body       any
}

func (p *ProcEntry) symEntryName() string { return p.Name }
func (*ProcEntry) isSymEntry()            {}

// TypeEntry binds a name to a user-declared type (a scalar or, transitively,
// a subrange of one).
type TypeEntry struct {
	Name string
	Type types.Type
}

func (t *TypeEntry) symEntryName() string { return t.Name }
func (*TypeEntry) isSymEntry()            {}

// OperatorEntry binds an operator symbol to its advertised Intersection (or,
// for a single-candidate operator, a bare Operator type). The checker keeps
// its operators in its own map (checker.BuiltinOperators), not in a Scope,
// so no user declaration can shadow +; nothing in the module builds an
// OperatorEntry.
type OperatorEntry struct {
	Symbol string
	Type   types.Type // *types.OperatorType or *types.IntersectionType
}

func (o *OperatorEntry) symEntryName() string { return o.Symbol }
func (*OperatorEntry) isSymEntry()            {}

// undefinedEntry is the sentinel SymEntry kind Lookup returns to signal "no
// such name" without using a nil SymEntry; IsUndefined tests for it. A concrete miss type
// keeps the zero value of the interface (a literal nil) reserved for "this
// call site didn't even look."
type undefinedEntry struct{ name string }

func (u *undefinedEntry) symEntryName() string { return u.name }
func (*undefinedEntry) isSymEntry()            {}

// IsUndefined reports whether e is the result of a failed lookup.
func IsUndefined(e SymEntry) bool {
	_, ok := e.(*undefinedEntry)
	return ok
}

// Scope is one node of the scope tree: a local symbol map, a parent link, the
// procedure that owns this scope (the nearest enclosing procedure; nil only
// for the program-level scope before any procedure has been entered), the
// static nesting level, and the next free word offset in this level's frame.
type Scope struct {
	parent    *Scope
	owner     *ProcEntry
	symbols   map[string]SymEntry
	level     int
	nextSlot  int
	resolved  bool
	forwarded []func() error // pending forward references, run by resolveScope
}

// New creates the program-level scope at level 1, the level the main
// program's block is always checked and generated at.
func New() *Scope {
	return newScope(nil, nil, 1)
}

// NewChild creates a scope nested one level deeper than parent, owned by
// owner (the procedure whose body this scope is the local scope of).
func NewChild(parent *Scope, owner *ProcEntry) *Scope {
	return newScope(parent, owner, parent.level+1)
}

// NewInner creates a scope nested in parent at the *same* static level —
// used for a `for` loop's inner scope, entered with the enclosing procedure
// installed as its owning entry, which shares its frame with the enclosing
// procedure rather than opening a new activation record.
func NewInner(parent *Scope, owner *ProcEntry) *Scope {
	return newScope(parent, owner, parent.level)
}

func newScope(parent *Scope, owner *ProcEntry, level int) *Scope {
	return &Scope{
		parent:   parent,
		owner:    owner,
		symbols:  make(map[string]SymEntry),
		level:    level,
		nextSlot: FrameReserved,
	}
}

// Level returns this scope's static nesting level.
func (s *Scope) Level() int { return s.level }

// Owner returns the procedure entry that owns this scope.
func (s *Scope) Owner() *ProcEntry { return s.owner }

// Parent returns the enclosing scope, or nil for the program scope.
func (s *Scope) Parent() *Scope { return s.parent }

func key(name string) string { return strings.ToLower(name) }

// Define installs a new entry in this scope under name. A redeclaration
// silently replaces the existing entry; IsDeclaredHere lets a caller detect
// one first. The parser does not call it, so redeclarations in a program
// replace the earlier entry without a diagnostic.
func (s *Scope) Define(name string, entry SymEntry) {
	s.symbols[key(name)] = entry
}

// IsDeclaredHere reports whether name is bound in this scope specifically,
// ignoring parents.
func (s *Scope) IsDeclaredHere(name string) bool {
	_, ok := s.symbols[key(name)]
	return ok
}

// Lookup walks parent-ward from s and returns the first entry bound to name,
// or the Undefined sentinel if no scope in the chain binds it.
func (s *Scope) Lookup(name string) SymEntry {
	for cur := s; cur != nil; cur = cur.parent {
		if e, ok := cur.symbols[key(name)]; ok {
			return e
		}
	}
	return &undefinedEntry{name: name}
}

// AllocVariableSpace returns the current offset counter and advances it by
// n words — the allocator for a newly declared variable's frame slot(s). A
// scope made by NewInner allocates from its parent's counter, since it
// shares the parent's frame.
func (s *Scope) AllocVariableSpace(n int) int {
	if s.parent != nil && s.parent.level == s.level {
		return s.parent.AllocVariableSpace(n)
	}
	off := s.nextSlot
	s.nextSlot += n
	return off
}

// LocalSize returns the total number of words this scope's frame needs,
// i.e. the final value of the offset counter — what the code generator
// emits as the operand to ALLOC_STACK for this procedure's block.
func (s *Scope) LocalSize() int { return s.nextSlot }

// Defer registers a forward reference to be resolved once the whole
// declaration region has been scanned (e.g. a procedure calling another
// procedure declared later in the same block). ResolveScope runs every
// registered thunk in registration order.
func (s *Scope) Defer(thunk func() error) {
	s.forwarded = append(s.forwarded, thunk)
}

// ResolveScope finalizes pending forward references. It is idempotent:
// calling it twice only runs the thunks registered since the last call.
func (s *Scope) ResolveScope() error {
	pending := s.forwarded
	s.forwarded = nil
	for _, thunk := range pending {
		if err := thunk(); err != nil {
			return err
		}
	}
	s.resolved = true
	return nil
}
