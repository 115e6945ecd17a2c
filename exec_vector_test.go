package main

import "testing"

func encodeVsetvli(rd, rs1 uint32, vsew, vlmul uint32) uint32 {
	zimm := (vsew << 3) | vlmul
	return zimm<<20 | rs1<<15 | 0x7<<12 | rd<<7 | opVector
}

func encodeOPIVX(rd, rs1, vs2, funct6 uint32, unmasked bool) uint32 {
	vm := uint32(0)
	if unmasked {
		vm = 1
	}
	return (funct6<<1|vm)<<25 | vs2<<20 | rs1<<15 | 0x4<<12 | rd<<7 | opVector
}

// S5 — vector configure and splat
func TestScenarioVectorConfigureAndSplat(t *testing.T) {
	m := newTestMachine()
	m.SetEntry(0x1000)

	vsetvli := encodeVsetvli(1, 0, 2 /* sew=32 */, 0 /* lmul=1 */)
	m.setX(3, 0xDEADBEEF)
	vmvvx := encodeOPIVX(2, 3, 0, 0x17, true)

	storeInstrs(m, 0x1000, []uint32{vsetvli, vmvvx})
	step(m)

	if m.vl != 32 {
		t.Fatalf("vl = %d, want 32", m.vl)
	}
	if m.getX(1) != 32 {
		t.Fatalf("x1 = %d, want 32", m.getX(1))
	}

	step(m)
	for i := uint32(0); i < m.vl; i++ {
		if got := m.vectorElem(2, i, 32); got != 0xDEADBEEF {
			t.Fatalf("v[2].elem[%d] = 0x%x, want 0xDEADBEEF", i, got)
		}
	}
}

func TestVsetvliIdempotent(t *testing.T) {
	m := newTestMachine()
	m.SetEntry(0x1000)
	vsetvli := encodeVsetvli(1, 0, 1 /* sew=16 */, 1 /* lmul=2 */)
	storeInstrs(m, 0x1000, []uint32{vsetvli, vsetvli})

	step(m)
	vl1, sew1, lmul1, lmulDiv1 := m.vl, m.sew, m.lmul, m.lmulDiv

	step(m)
	if m.vl != vl1 || m.sew != sew1 || m.lmul != lmul1 || m.lmulDiv != lmulDiv1 {
		t.Fatalf("vsetvli not idempotent: (%d,%d,%d,%d) -> (%d,%d,%d,%d)",
			vl1, sew1, lmul1, lmulDiv1, m.vl, m.sew, m.lmul, m.lmulDiv)
	}
}

func TestVectorStoreLoadRoundTrip(t *testing.T) {
	m := newTestMachine()
	m.SetEntry(0x1000)

	vsetvli := encodeVsetvli(1, 0, 2 /* sew=32 */, 0)
	m.setX(3, 0xCAFEF00D)
	splat := encodeOPIVX(2, 3, 0, 0x17, true)
	m.setX(10, 0x2000) // base address

	// vse32.v v2, (x10): funct3=6 selects eew=32, funct5=0x00
	vse := (uint32(0x00) << 20) | (10 << 15) | (0x6 << 12) | (2 << 7) | opFPStore
	// vle32.v v4, (x10)
	vle := (uint32(0x00) << 20) | (10 << 15) | (0x6 << 12) | (4 << 7) | opFPLoad

	storeInstrs(m, 0x1000, []uint32{vsetvli, splat, vse, vle})
	for i := 0; i < 4; i++ {
		step(m)
	}

	for i := uint32(0); i < m.vl; i++ {
		got := m.vectorElem(4, i, 32)
		if got != 0xCAFEF00D {
			t.Fatalf("round-tripped v[4].elem[%d] = 0x%x, want 0xCAFEF00D", i, got)
		}
	}
}

func TestVLMAXInvariant(t *testing.T) {
	m := newTestMachine()
	m.SetEntry(0x1000)
	vsetvli := encodeVsetvli(1, 0, 3 /* sew=64 */, 2 /* lmul=4 */)
	storeInstrs(m, 0x1000, []uint32{vsetvli})
	step(m)

	max := vlmax(m.sew, m.lmul, m.lmulDiv)
	if m.vl > max {
		t.Fatalf("vl=%d exceeds VLMAX=%d", m.vl, max)
	}
}
