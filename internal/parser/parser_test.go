package parser

import (
	"testing"

	"github.com/cwbudde/pascore/internal/ast"
	"github.com/cwbudde/pascore/internal/errsink"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	sink := errsink.NewCollecting()
	p := New(src, sink)
	prog := p.ParseProgram()
	if sink.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", sink.Diagnostics())
	}
	return prog
}

func TestParseMinimalProgram(t *testing.T) {
	prog := parseOK(t, "program p; begin write 1 end.")
	list, ok := prog.Block.Body.(*ast.List)
	if !ok {
		t.Fatalf("Body = %T, want *ast.List", prog.Block.Body)
	}
	if len(list.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1", len(list.Stmts))
	}
	if _, ok := list.Stmts[0].(*ast.Write); !ok {
		t.Errorf("Stmts[0] = %T, want *ast.Write", list.Stmts[0])
	}
}

func TestParseVarConstTypeSections(t *testing.T) {
	src := `program p;
const Max = 10;
type Range = 1..10;
var x, y: integer;
    r: Range;
begin
  x := 1;
  y := x + 2
end.`
	prog := parseOK(t, src)
	list := prog.Block.Body.(*ast.List)
	if len(list.Stmts) != 2 {
		t.Fatalf("len(Stmts) = %d, want 2", len(list.Stmts))
	}
}

func TestParseIfWhileFor(t *testing.T) {
	src := `program p;
var x: integer;
begin
  if x = 0 then x := 1 else x := 2;
  while x < 10 do x := x + 1;
  for x := 1 to 10 do write x
end.`
	prog := parseOK(t, src)
	list := prog.Block.Body.(*ast.List)
	if len(list.Stmts) != 3 {
		t.Fatalf("len(Stmts) = %d, want 3", len(list.Stmts))
	}
	if _, ok := list.Stmts[0].(*ast.If); !ok {
		t.Errorf("Stmts[0] = %T, want *ast.If", list.Stmts[0])
	}
	if _, ok := list.Stmts[1].(*ast.While); !ok {
		t.Errorf("Stmts[1] = %T, want *ast.While", list.Stmts[1])
	}
	if _, ok := list.Stmts[2].(*ast.For); !ok {
		t.Errorf("Stmts[2] = %T, want *ast.For", list.Stmts[2])
	}
}

func TestParseProcedureAndCall(t *testing.T) {
	src := `program p;
procedure greet;
begin
  write 42
end;
begin
  call greet
end.`
	prog := parseOK(t, src)
	if len(prog.Block.ChildProcedure) != 1 {
		t.Fatalf("len(ChildProcedure) = %d, want 1", len(prog.Block.ChildProcedure))
	}
	if prog.Block.ChildProcedure[0].Name != "greet" {
		t.Errorf("child procedure name = %q, want %q", prog.Block.ChildProcedure[0].Name, "greet")
	}

	list := prog.Block.Body.(*ast.List)
	call, ok := list.Stmts[0].(*ast.Call)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *ast.Call", list.Stmts[0])
	}
	if call.Name != "greet" {
		t.Errorf("Call.Name = %q, want %q", call.Name, "greet")
	}
}

func TestParseArrayIndexing(t *testing.T) {
	src := `program p;
var a: array [1..10] of integer;
begin
  a[1] := 5;
  write a[1]
end.`
	prog := parseOK(t, src)
	list := prog.Block.Body.(*ast.List)
	assign := list.Stmts[0].(*ast.Assignment)
	if _, ok := assign.LHS.(*ast.ArrayIndexing); !ok {
		t.Errorf("LHS = %T, want *ast.ArrayIndexing", assign.LHS)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	// 1 + 2 * 3 must parse as 1 + (2 * 3): the outer Binary is "+" and
	// its Right operand is the nested "*" term.
	src := `program p; begin write 1 + 2 * 3 end.`
	prog := parseOK(t, src)
	list := prog.Block.Body.(*ast.List)
	w := list.Stmts[0].(*ast.Write)
	bin, ok := w.Expr.(*ast.Binary)
	if !ok {
		t.Fatalf("Expr = %T, want *ast.Binary", w.Expr)
	}
	if bin.Op != "+" {
		t.Errorf("outer Op = %q, want %q", bin.Op, "+")
	}
	rightBin, ok := bin.Right.(*ast.Binary)
	if !ok {
		t.Fatalf("Right = %T, want *ast.Binary", bin.Right)
	}
	if rightBin.Op != "*" {
		t.Errorf("inner Op = %q, want %q", rightBin.Op, "*")
	}
}

func TestParsePredSuccAndUnaryMinus(t *testing.T) {
	src := `program p; var x: integer; begin x := pred(succ(-x)) end.`
	prog := parseOK(t, src)
	list := prog.Block.Body.(*ast.List)
	assign := list.Stmts[0].(*ast.Assignment)
	pred, ok := assign.RHS.(*ast.Unary)
	if !ok || pred.Op != "pred" {
		t.Fatalf("RHS = %+v, want Unary pred", assign.RHS)
	}
	succ, ok := pred.Operand.(*ast.Unary)
	if !ok || succ.Op != "succ" {
		t.Fatalf("pred.Operand = %+v, want Unary succ", pred.Operand)
	}
	neg, ok := succ.Operand.(*ast.Unary)
	if !ok || neg.Op != "-" {
		t.Fatalf("succ.Operand = %+v, want Unary -", succ.Operand)
	}
}

func TestParseReportsSyntaxError(t *testing.T) {
	sink := errsink.NewCollecting()
	p := New("program p; begin x := end.", sink)
	p.ParseProgram()
	if !sink.HasErrors() {
		t.Fatal("expected a syntax error for a missing expression")
	}
	if sink.Diagnostics()[0].Kind != errsink.KindSyntax {
		t.Errorf("Kind = %v, want KindSyntax", sink.Diagnostics()[0].Kind)
	}
}

func TestParseUndeclaredTypeName(t *testing.T) {
	sink := errsink.NewCollecting()
	p := New("program p; var x: frobnicate; begin x := 1 end.", sink)
	p.ParseProgram()
	if !sink.HasErrors() {
		t.Fatal("expected an undeclared-type error")
	}
}

func TestParseNestedProcedureLevels(t *testing.T) {
	src := `program p;
procedure outer;
  procedure inner;
  begin
    write 1
  end;
begin
  call inner
end;
begin
  call outer
end.`
	prog := parseOK(t, src)
	outer := prog.Block.ChildProcedure[0]
	if outer.Entry.Level != prog.Entry.Level+1 {
		t.Errorf("outer.Entry.Level = %d, want %d", outer.Entry.Level, prog.Entry.Level+1)
	}
	inner := outer.Block.ChildProcedure[0]
	if inner.Entry.Level != outer.Entry.Level+1 {
		t.Errorf("inner.Entry.Level = %d, want %d", inner.Entry.Level, outer.Entry.Level+1)
	}
}
