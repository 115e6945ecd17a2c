// decode.go - instruction field and immediate extraction
//
// Grounded on the immediate-decode helpers (decodeI/decodeS/decodeB/
// decodeU/decodeJ) referenced from
// aa38a499_wyf-ACCEPT-eth2030__pkg-zkvm-riscv_cpu.go in the retrieval pack,
// generalized here to the 64-bit sign-extension spec.md §4.E/§4.F require.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

func opcode(instr uint32) uint32 { return instr & 0x7F }
func rd(instr uint32) uint32     { return (instr >> 7) & 0x1F }
func funct3(instr uint32) uint32 { return (instr >> 12) & 0x7 }
func rs1(instr uint32) uint32    { return (instr >> 15) & 0x1F }
func rs2(instr uint32) uint32    { return (instr >> 20) & 0x1F }
func funct7(instr uint32) uint32 { return (instr >> 25) & 0x7F }

// immI extracts and sign-extends the 12-bit I-type immediate.
func immI(instr uint32) uint64 {
	return signExtend(uint64(instr>>20), 12)
}

// immS extracts and sign-extends the 12-bit S-type immediate.
func immS(instr uint32) uint64 {
	raw := ((instr >> 25) << 5) | ((instr >> 7) & 0x1F)
	return signExtend(uint64(raw), 12)
}

// immB extracts and sign-extends the 13-bit B-type immediate (branches).
func immB(instr uint32) uint64 {
	raw := ((instr>>31)&1)<<12 |
		((instr>>7)&1)<<11 |
		((instr>>25)&0x3F)<<5 |
		((instr>>8)&0xF)<<1
	return signExtend(uint64(raw), 13)
}

// immU extracts the 20-bit U-type immediate, already shifted into bits
// [31:12]. Callers sign-extend from bit 31 to 64 where LUI/AUIPC require it.
func immU(instr uint32) uint64 {
	return uint64(instr & 0xFFFFF000)
}

// immJ extracts and sign-extends the 21-bit J-type immediate (JAL).
func immJ(instr uint32) uint64 {
	raw := ((instr>>31)&1)<<20 |
		((instr>>12)&0xFF)<<12 |
		((instr>>20)&1)<<11 |
		((instr>>21)&0x3FF)<<1
	return signExtend(uint64(raw), 21)
}
