// Package emitter is the code emitter: a mutable, append-only buffer of
// stack-machine instructions. It is intentionally single-pass — every jump
// offset is computed by the caller from the sizes of fragments already
// assembled, never patched after the fact; a flat instruction vector with
// relative branch offsets, so every fragment must know its own size before
// splicing. This is a deliberate departure from
// CWBudde-go-dws/internal/bytecode's patch-based jump compiler
// (patchJumpToTarget, which back-patches a placeholder once the jump target
// is known): that approach suits one growing chunk for a full scripting
// language, but this core keeps the emitter and the generator as separate,
// small components built around size-aware composition instead.
package emitter

import "github.com/cwbudde/pascore/internal/opcode"

// Code is one procedure's (or sub-expression's) emitted instruction
// sequence.
type Code struct {
	instructions []opcode.Instruction
}

// New returns an empty instruction buffer.
func New() *Code { return &Code{} }

// Size returns the current instruction count.
func (c *Code) Size() int { return len(c.instructions) }

// Instructions exposes the buffer's contents for disassembly or execution.
func (c *Code) Instructions() []opcode.Instruction { return c.instructions }

// Append splices other's instructions onto c.
func (c *Code) Append(other *Code) {
	c.instructions = append(c.instructions, other.instructions...)
}

// GenerateOp emits a nullary opcode.
func (c *Code) GenerateOp(op opcode.Code) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: op})
}

// GenLoadConstant emits ZERO/ONE for the common small constants, or
// LOAD_CONST(n) otherwise.
func (c *Code) GenLoadConstant(n int) {
	switch n {
	case 0:
		c.GenerateOp(opcode.ZERO)
	case 1:
		c.GenerateOp(opcode.ONE)
	default:
		c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.LOAD_CONST, Operand: n})
	}
}

// GenLoad emits a width-aware load. width is the word count of the type
// being loaded.
func (c *Code) GenLoad(width int) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.LOAD, Operand: width})
}

// GenStore emits a width-aware store.
func (c *Code) GenStore(width int) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.STORE, Operand: width})
}

// GenMemRef emits the address of a local levelDelta frames up the static
// chain, at the given word offset.
func (c *Code) GenMemRef(levelDelta, offset int) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.MEM_REF, Operand: opcode.MemRefOperand(levelDelta, offset)})
}

// GenAllocStack reserves n words on the stack for a procedure's locals.
func (c *Code) GenAllocStack(n int) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.ALLOC_STACK, Operand: n})
}

// GenCall emits a call resolved at load time: levelDelta frames up for the
// static link, proc naming the target (left untyped so this package need
// not import scope; the generator passes a *scope.ProcEntry).
func (c *Code) GenCall(levelDelta int, proc any) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.CALL, Operand: levelDelta, Proc: proc})
}

// GenBoundsCheck emits a runtime [lo, hi] bounds check that leaves its
// operand on the stack.
func (c *Code) GenBoundsCheck(lo, hi int) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.BOUNDS_CHECK, Operand: opcode.BoundsOperand(lo, hi)})
}

// GenBoolNot emits a boolean negation.
func (c *Code) GenBoolNot() { c.GenerateOp(opcode.BOOL_NOT) }

// GenJumpAlways emits an unconditional relative jump. relOffset must be
// computed by the caller from sizes already known.
func (c *Code) GenJumpAlways(relOffset int) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.JUMP_ALWAYS, Operand: relOffset})
}

// GenJumpIfFalse emits a conditional relative jump, taken when the popped
// boolean is false.
func (c *Code) GenJumpIfFalse(relOffset int) {
	c.instructions = append(c.instructions, opcode.Instruction{Op: opcode.JUMP_IF_FALSE, Operand: relOffset})
}

// GenIfThenElse splices already-emitted condition/then/else fragments
// into
//
//	cond; JIF(thenLen + SIZE_JUMP_ALWAYS); then; JA(elseLen); else
//
// elseCode may be nil for an `if` with no else branch, in which case the
// trailing JUMP_ALWAYS and else fragment are omitted.
func GenIfThenElse(cond, thenCode, elseCode *Code) *Code {
	out := New()
	out.Append(cond)
	if elseCode == nil {
		out.GenJumpIfFalse(thenCode.Size())
		out.Append(thenCode)
		return out
	}
	out.GenJumpIfFalse(thenCode.Size() + opcode.SizeJumpAlways)
	out.Append(thenCode)
	out.GenJumpAlways(elseCode.Size())
	out.Append(elseCode)
	return out
}
