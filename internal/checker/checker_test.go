package checker

import (
	"testing"

	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/errsink"
	"github.com/cwbudde/pascore/internal/parser"
	"github.com/cwbudde/pascore/internal/types"
)

func parseAndCheck(t *testing.T, src string) (*ast.Program, *errsink.Collecting) {
	t.Helper()
	sink := errsink.NewCollecting()
	p := parser.New(src, sink)
	prog := p.ParseProgram()
	if sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", sink.Diagnostics())
	}
	New(sink, nil).CheckProgram(prog)
	return prog, sink
}

func TestCheckAssignmentResolvesIdentifierToVariable(t *testing.T) {
	prog, sink := parseAndCheck(t, `program p; var x: integer; begin x := 1 end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	list := prog.Block.Body.(*ast.List)
	assign := list.Stmts[0].(*ast.Assignment)
	if _, ok := assign.LHS.(*ast.Variable); !ok {
		t.Errorf("LHS = %T, want *ast.Variable", assign.LHS)
	}
}

func TestCheckAssignmentToUndeclaredName(t *testing.T) {
	_, sink := func() (*ast.Program, *errsink.Collecting) {
		sink := errsink.NewCollecting()
		p := parser.New(`program p; begin x := 1 end.`, sink)
		prog := p.ParseProgram()
		New(sink, nil).CheckProgram(prog)
		return prog, sink
	}()
	if !sink.HasErrors() {
		t.Fatal("expected an undeclared-identifier error")
	}
	if sink.Diagnostics()[0].Kind != errsink.KindUndeclaredIdentifier {
		t.Errorf("Kind = %v, want KindUndeclaredIdentifier", sink.Diagnostics()[0].Kind)
	}
}

func TestCheckAssignmentTypeMismatch(t *testing.T) {
	_, sink := func() (*ast.Program, *errsink.Collecting) {
		sink := errsink.NewCollecting()
		p := parser.New(`program p; var x: integer; begin x := true end.`, sink)
		prog := p.ParseProgram()
		New(sink, nil).CheckProgram(prog)
		return prog, sink
	}()
	if !sink.HasErrors() {
		t.Fatal("expected a type-mismatch error")
	}
	if sink.Diagnostics()[0].Kind != errsink.KindTypeMismatch {
		t.Errorf("Kind = %v, want KindTypeMismatch", sink.Diagnostics()[0].Kind)
	}
}

func TestCheckAssignmentToConstantIsRejected(t *testing.T) {
	sink := errsink.NewCollecting()
	p := parser.New(`program p; const Max = 10; begin Max := 1 end.`, sink)
	prog := p.ParseProgram()
	New(sink, nil).CheckProgram(prog)
	if !sink.HasErrors() {
		t.Fatal("expected an error assigning to a constant")
	}
}

func TestCheckSubrangeNarrowingInsertsNarrowSubrange(t *testing.T) {
	prog, sink := parseAndCheck(t, `program p;
type Range = 1..10;
var x: Range; y: integer;
begin
  x := y
end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	list := prog.Block.Body.(*ast.List)
	assign := list.Stmts[0].(*ast.Assignment)
	if _, ok := assign.RHS.(*ast.NarrowSubrange); !ok {
		t.Errorf("RHS = %T, want *ast.NarrowSubrange", assign.RHS)
	}
}

func TestCheckCallResolvesProcedureEntry(t *testing.T) {
	prog, sink := parseAndCheck(t, `program p;
procedure greet;
begin
  write 1
end;
begin
  call greet
end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	list := prog.Block.Body.(*ast.List)
	call := list.Stmts[0].(*ast.Call)
	if call.Entry == nil {
		t.Fatal("Call.Entry must be resolved after checking")
	}
	if call.Entry.Name != "greet" {
		t.Errorf("Call.Entry.Name = %q, want %q", call.Entry.Name, "greet")
	}
}

func TestCheckCallOfUndeclaredProcedure(t *testing.T) {
	sink := errsink.NewCollecting()
	p := parser.New(`program p; begin call nope end.`, sink)
	prog := p.ParseProgram()
	New(sink, nil).CheckProgram(prog)
	if !sink.HasErrors() {
		t.Fatal("expected an undeclared-identifier error")
	}
}

func TestCheckCallOfNonProcedure(t *testing.T) {
	sink := errsink.NewCollecting()
	p := parser.New(`program p; var x: integer; begin call x end.`, sink)
	prog := p.ParseProgram()
	New(sink, nil).CheckProgram(prog)
	if !sink.HasErrors() {
		t.Fatal("expected a procedure-identifier-required error")
	}
	if sink.Diagnostics()[0].Kind != errsink.KindProcedureIdentifierRequired {
		t.Errorf("Kind = %v, want KindProcedureIdentifierRequired", sink.Diagnostics()[0].Kind)
	}
}

func TestCheckForMarksLoopVariableReadOnly(t *testing.T) {
	prog, sink := parseAndCheck(t, `program p;
var i: integer;
begin
  for i := 1 to 10 do write i
end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	list := prog.Block.Body.(*ast.List)
	forStmt := list.Stmts[0].(*ast.For)
	v, ok := forStmt.LoopVar.(*ast.Variable)
	if !ok {
		t.Fatalf("LoopVar = %T, want *ast.Variable", forStmt.LoopVar)
	}
	if !v.Entry.ReadOnly {
		t.Error("a for-loop's control variable must be marked read-only")
	}
}

func TestCheckForLiteralBoundsUseIntegerScalar(t *testing.T) {
	// Literal bounds elaborate to types.Integer directly (a *ScalarType
	// already), so the first branch of the three-way fallback wins and the
	// loop's controlling scalar is plain Integer, not a narrowed [1, 5]
	// range synthesized from the literals.
	prog, sink := parseAndCheck(t, `program p;
var i: integer;
begin
  for i := 1 to 5 do write i
end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	list := prog.Block.Body.(*ast.List)
	forStmt := list.Stmts[0].(*ast.For)
	if !types.Equals(forStmt.Scalar, types.Integer) {
		t.Fatalf("Scalar = %v, want types.Integer", forStmt.Scalar)
	}
}

func TestCheckReadRequiresIntegerVariable(t *testing.T) {
	sink := errsink.NewCollecting()
	p := parser.New(`program p; var b: boolean; begin read b end.`, sink)
	prog := p.ParseProgram()
	New(sink, nil).CheckProgram(prog)
	if !sink.HasErrors() {
		t.Fatal("expected an integer-variable-expected error")
	}
	if sink.Diagnostics()[0].Kind != errsink.KindIntegerVariableExpected {
		t.Errorf("Kind = %v, want KindIntegerVariableExpected", sink.Diagnostics()[0].Kind)
	}
}

func TestCheckArrayIndexingProducesReferenceToElementType(t *testing.T) {
	prog, sink := parseAndCheck(t, `program p;
var a: array [1..10] of integer;
begin
  a[1] := 5
end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	list := prog.Block.Body.(*ast.List)
	assign := list.Stmts[0].(*ast.Assignment)
	idx, ok := assign.LHS.(*ast.ArrayIndexing)
	if !ok {
		t.Fatalf("LHS = %T, want *ast.ArrayIndexing", assign.LHS)
	}
	ref, ok := idx.Type().(*types.ReferenceType)
	if !ok {
		t.Fatalf("ArrayIndexing.Type() = %T, want *types.ReferenceType", idx.Type())
	}
	if !types.Equals(ref.Base, types.Integer) {
		t.Errorf("ArrayIndexing element type = %v, want Integer", ref.Base)
	}
}

func TestCheckArrayIndexingInsertsNarrowSubrange(t *testing.T) {
	prog, sink := parseAndCheck(t, `program p;
var a: array [2..5] of integer; i: integer;
begin
  a[i+1] := 0
end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	list := prog.Block.Body.(*ast.List)
	assign := list.Stmts[0].(*ast.Assignment)
	idx := assign.LHS.(*ast.ArrayIndexing)
	if _, ok := idx.Index.(*ast.NarrowSubrange); !ok {
		t.Errorf("Index = %T, want *ast.NarrowSubrange", idx.Index)
	}
}

func TestCheckForLoopVariableAssignmentIsRejected(t *testing.T) {
	sink := errsink.NewCollecting()
	p := parser.New(`program p;
var i: integer;
begin
  for i := 1 to 5 do i := 10
end.`, sink)
	prog := p.ParseProgram()
	New(sink, nil).CheckProgram(prog)
	if !sink.HasErrors() {
		t.Fatal("expected a read-only-assignment error for the loop variable")
	}
	if sink.Diagnostics()[0].Kind != errsink.KindReadOnlyAssignment {
		t.Errorf("Kind = %v, want KindReadOnlyAssignment", sink.Diagnostics()[0].Kind)
	}
}

func TestCheckOverloadedEqualityAcceptsBooleanOperands(t *testing.T) {
	_, sink := parseAndCheck(t, `program p; var b: boolean; begin b := true = false end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors resolving the boolean = overload: %v", sink.Diagnostics())
	}
}

func TestCheckNestedProcedureScoping(t *testing.T) {
	_, sink := parseAndCheck(t, `program p;
var g: integer;
procedure outer;
var o: integer;
  procedure inner;
  begin
    g := g + o
  end;
begin
  o := 1;
  call inner
end;
begin
  g := 0;
  call outer
end.`)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors in nested-scope lookup: %v", sink.Diagnostics())
	}
}
