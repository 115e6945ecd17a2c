// exec_vector.go - vector configuration, move/merge, and vector memory ops
//
// Grounded on the teacher's register-file/element-width pattern in
// cpu_ie64.go generalized to the RVV subset spec.md §4.F names: vtype
// configuration (vsetvli/vsetivli), splat/merge (vmv.v.i, vmv.v.x,
// vmv.s.x) and the vector store/load family.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

var vsewTable = [8]uint32{8, 16, 32, 64, 0, 0, 0, 0}

// lmulTable maps the 3-bit vlmul field to (lmul, lmul_div) per spec.md
// §4.F's table, including the three fractional encodings.
var lmulTable = [8][2]uint32{
	0: {1, 1},
	1: {2, 1},
	2: {4, 1},
	3: {8, 1},
	5: {1, 8},
	6: {1, 4},
	7: {1, 2},
}

func execVector(m *Machine, instr uint32) {
	f3 := funct3(instr)
	if f3 == 0x7 {
		execVsetvli(m, instr)
		return
	}

	f6 := funct7(instr) >> 1
	vs2 := rs2(instr)

	switch {
	case f3 == 0x3 && f6 == 0x17: // vmv.v.i / vmerge.vim
		execVectorImmMerge(m, instr)
	case f3 == 0x4 && f6 == 0x17: // vmv.v.x / vmerge.vxm
		execVectorScalarMerge(m, instr)
	case f3 == 0x6 && f6 == 0x10 && vs2 == 0: // vmv.s.x
		execVmvSX(m, instr)
	default:
		fault("unimplemented vector opcode")
	}
}

// execVsetvli handles both vsetvli (rs1 form) and vsetivli (uimm5 form),
// distinguished by bits 31 and 30 (both set only in the RVV spec's
// encoding of vsetivli).
func execVsetvli(m *Machine, instr uint32) {
	isImmediateAVL := (instr>>30)&1 == 1 && (instr>>31)&1 == 1

	var zimm uint32
	if isImmediateAVL {
		zimm = (instr >> 20) & 0x3FF
	} else {
		zimm = (instr >> 20) & 0x7FF
	}

	vlmul := zimm & 0x7
	vsew := (zimm >> 3) & 0x7

	sew := vsewTable[vsew]
	if sew == 0 {
		fault("reserved vsew encoding")
	}
	lmulPair := lmulTable[vlmul]
	lmul, lmulDiv := lmulPair[0], lmulPair[1]
	if lmul == 0 {
		fault("reserved vlmul encoding")
	}

	rdIdx := rd(instr)
	rs1Idx := rs1(instr)

	var avl uint64
	switch {
	case isImmediateAVL:
		avl = uint64(rs1Idx) // uimm5 is encoded in the rs1 field position
	case rs1Idx != 0:
		avl = m.getX(rs1Idx)
	case rdIdx != 0:
		avl = ^uint64(0)
	default:
		avl = uint64(m.vl)
	}

	vlmax := vlmax(sew, lmul, lmulDiv)
	vl := avl
	if vl > uint64(vlmax) {
		vl = uint64(vlmax)
	}

	m.sew = sew
	m.lmul = lmul
	m.lmulDiv = lmulDiv
	m.vl = uint32(vl)

	if rdIdx != 0 {
		m.setX(rdIdx, uint64(m.vl))
	}
	m.pc += 4
}

func maskedOrUnmasked(m *Machine, instr uint32, i uint32) bool {
	unmasked := (instr>>25)&1 == 1
	if unmasked {
		return true
	}
	return m.v0Bit(i)
}

// execVectorImmMerge implements vmv.v.i (unmasked) and vmerge.vim (masked):
// selected elements take sign_extend(imm5,5); the rest keep vs2's value.
func execVectorImmMerge(m *Machine, instr uint32) {
	vd := rd(instr)
	vs2 := rs2(instr)
	imm5 := uint64(rs1(instr) & 0x1F)
	splat := signExtend(imm5, 5)

	for i := uint32(0); i < m.vl; i++ {
		if maskedOrUnmasked(m, instr, i) {
			m.setVectorElem(vd, i, m.sew, splat)
		} else {
			m.setVectorElem(vd, i, m.sew, m.vectorElem(vs2, i, m.sew))
		}
	}
	m.pc += 4
}

// execVectorScalarMerge implements vmv.v.x (unmasked) and vmerge.vxm
// (masked), with the splat value taken from x[rs1].
func execVectorScalarMerge(m *Machine, instr uint32) {
	vd := rd(instr)
	vs2 := rs2(instr)
	val := m.getX(rs1(instr))

	for i := uint32(0); i < m.vl; i++ {
		if maskedOrUnmasked(m, instr, i) {
			m.setVectorElem(vd, i, m.sew, val)
		} else {
			m.setVectorElem(vd, i, m.sew, m.vectorElem(vs2, i, m.sew))
		}
	}
	m.pc += 4
}

// execVmvSX writes the low sew bits of x[rs1] into element 0 of vd only.
func execVmvSX(m *Machine, instr uint32) {
	vd := rd(instr)
	val := m.getX(rs1(instr))
	m.setVectorElem(vd, 0, m.sew, val)
	m.pc += 4
}

// vectorStoreEEW maps a store/load funct3 to the element width it moves,
// per spec.md §4.F's funct3 ∈ {0,5,6,7} → eew ∈ {8,16,32,64} selection.
func vectorStoreEEW(f3 uint32) uint32 {
	switch f3 {
	case 0:
		return 8
	case 5:
		return 16
	case 6:
		return 32
	case 7:
		return 64
	}
	return 0
}

// execVectorStore implements vse<eew>.v (funct5 == 0x00) and the whole
// register store vs<nf>r.v (funct5 == 0x08).
func execVectorStore(m *Machine, instr uint32) {
	f3 := funct3(instr)
	funct5 := (instr >> 20) & 0x1F
	base := m.getX(rs1(instr))
	vs3 := rd(instr) // vs3 shares the rd field position in this encoding

	switch funct5 {
	case 0x00:
		eew := vectorStoreEEW(f3)
		if eew == 0 {
			fault("reserved vector store eew")
		}
		stride := eew / 8
		for i := uint32(0); i < m.vl; i++ {
			val := m.vectorElem(vs3, i, eew)
			addr := base + uint64(i)*uint64(stride)
			storeVectorElem(m, addr, val, eew)
		}
	case 0x08:
		nf := (instr>>29)&0x7 + 1 // nf field holds NFIELDS-1: 0, 1, 3, 7
		for r := uint32(0); r < nf; r++ {
			for b := uint32(0); b < VRegBytes; b++ {
				addr := base + uint64(r)*VRegBytes + uint64(b)
				m.bus.Write8(addr, uint64(*m.vregByte(vs3+r, b)))
			}
		}
	default:
		fault("unimplemented vector store sub-op")
	}
	m.pc += 4
}

// execVectorLoad implements vle<eew>.v, the load-side counterpart kept for
// the vse/vle round-trip invariant (spec.md §8 invariant 10).
func execVectorLoad(m *Machine, instr uint32) {
	f3 := funct3(instr)
	funct5 := (instr >> 20) & 0x1F
	if funct5 != 0x00 {
		fault("unimplemented vector load sub-op")
	}
	eew := vectorStoreEEW(f3)
	if eew == 0 {
		fault("reserved vector load eew")
	}
	base := m.getX(rs1(instr))
	vd := rd(instr)
	stride := eew / 8

	for i := uint32(0); i < m.vl; i++ {
		addr := base + uint64(i)*uint64(stride)
		val := loadVectorElem(m, addr, eew)
		m.setVectorElem(vd, i, eew, val)
	}
	m.pc += 4
}

func storeVectorElem(m *Machine, addr uint64, val uint64, eew uint32) {
	switch eew {
	case 8:
		m.bus.Write8(addr, val)
	case 16:
		m.bus.Write16(addr, val)
	case 32:
		m.bus.Write32(addr, val)
	case 64:
		m.bus.Write64(addr, val)
	}
}

func loadVectorElem(m *Machine, addr uint64, eew uint32) uint64 {
	switch eew {
	case 8:
		return m.bus.Read8(addr)
	case 16:
		return m.bus.Read16(addr)
	case 32:
		return m.bus.Read32(addr)
	case 64:
		return m.bus.Read64(addr)
	}
	return 0
}
