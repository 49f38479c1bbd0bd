package opcode

import "testing"

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{ZERO, "ZERO"},
		{ADD, "ADD"},
		{JUMP_IF_FALSE, "JUMP_IF_FALSE"},
		{Code(200), "UNKNOWN_OPCODE"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("Code(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestMemRefOperandRoundTrip(t *testing.T) {
	tests := []struct {
		levelDelta, offset int
	}{
		{0, 0},
		{1, 5},
		{3, 123},
		{0, -1},
	}
	for _, tt := range tests {
		packed := MemRefOperand(tt.levelDelta, tt.offset)
		gotLevel, gotOffset := SplitMemRef(packed)
		if gotLevel != tt.levelDelta || gotOffset != tt.offset {
			t.Errorf("MemRefOperand(%d, %d) round-trip = (%d, %d)", tt.levelDelta, tt.offset, gotLevel, gotOffset)
		}
	}
}

func TestBoundsOperandRoundTrip(t *testing.T) {
	tests := []struct {
		lower, upper int
	}{
		{0, 10},
		{-5, 5},
		{1, 1},
	}
	for _, tt := range tests {
		packed := BoundsOperand(tt.lower, tt.upper)
		gotLower, gotUpper := SplitBounds(packed)
		if gotLower != tt.lower || gotUpper != tt.upper {
			t.Errorf("BoundsOperand(%d, %d) round-trip = (%d, %d)", tt.lower, tt.upper, gotLower, gotUpper)
		}
	}
}
