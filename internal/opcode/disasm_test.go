package opcode

import "testing"

func TestDisassemble(t *testing.T) {
	code := []Instruction{
		{Op: ALLOC_STACK, Operand: 4},
		{Op: LOAD_CONST, Operand: 99},
		{Op: MEM_REF, Operand: MemRefOperand(0, 3)},
		{Op: STORE, Operand: 1},
		{Op: BOUNDS_CHECK, Operand: BoundsOperand(1, 10)},
		{Op: CALL, Operand: -1, Proc: "sub"},
		{Op: JUMP_ALWAYS, Operand: -6},
		{Op: RETURN},
	}
	out := Disassemble(code)

	want := "   0  ALLOC_STACK 4\n" +
		"   1  LOAD_CONST 99\n" +
		"   2  MEM_REF 0, 3\n" +
		"   3  STORE 1\n" +
		"   4  BOUNDS_CHECK [1, 10]\n" +
		"   5  CALL level-1\n" +
		"   6  JUMP_ALWAYS -6\n" +
		"   7  RETURN\n"
	if out != want {
		t.Errorf("Disassemble() =\n%q\nwant\n%q", out, want)
	}
}
