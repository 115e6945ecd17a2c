package main

import "testing"

func TestImmIEncodesNegativeTwelveBit(t *testing.T) {
	// imm = 0xFFF occupies bits [31:20] regardless of the other fields.
	instr := uint32(0xFFF00013)
	got := immI(instr)
	if got != 0xFFFFFFFFFFFFFFFF {
		t.Fatalf("immI(-1) = 0x%x, want all-ones", got)
	}
}

func TestImmUKeepsLowBitsZero(t *testing.T) {
	instr := uint32(0x12345037) // LUI x0, 0x12345
	got := immU(instr)
	if got&0xFFF != 0 {
		t.Fatalf("immU low 12 bits must be zero, got 0x%x", got)
	}
	if got != 0x12345000 {
		t.Fatalf("immU = 0x%x, want 0x12345000", got)
	}
}

func TestImmBAssemblesBranchOffset(t *testing.T) {
	// BEQ x0, x0, +8: imm=8 -> instr[7]=0, instr[11:8]=0b0100 at bit 8,
	// encoded per RISC-V B-type layout.
	instr := uint32(0x00000463) // beq x0, x0, 8
	if got := immB(instr); got != 8 {
		t.Fatalf("immB = %d, want 8", got)
	}
}

func TestImmJAssemblesJumpOffset(t *testing.T) {
	// JAL x1, 0x20
	instr := uint32(0x020000ef)
	if got := immJ(instr); got != 0x20 {
		t.Fatalf("immJ = 0x%x, want 0x20", got)
	}
}

func TestFieldExtractors(t *testing.T) {
	// ADD x3, x1, x2 -> 0x002081b3
	instr := uint32(0x002081b3)
	if opcode(instr) != opOp {
		t.Fatalf("opcode = 0x%x, want OP", opcode(instr))
	}
	if rd(instr) != 3 {
		t.Fatalf("rd = %d, want 3", rd(instr))
	}
	if rs1(instr) != 1 {
		t.Fatalf("rs1 = %d, want 1", rs1(instr))
	}
	if rs2(instr) != 2 {
		t.Fatalf("rs2 = %d, want 2", rs2(instr))
	}
	if funct3(instr) != 0 {
		t.Fatalf("funct3 = %d, want 0", funct3(instr))
	}
	if funct7(instr) != 0 {
		t.Fatalf("funct7 = %d, want 0", funct7(instr))
	}
}
