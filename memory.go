// memory.go - guest memory and the MMIO aperture
//
// Grounded on the teacher's SystemBus in memory_bus.go: a contiguous byte
// slice for RAM plus a side table of memory-mapped I/O callbacks, with
// little-endian access helpers. The teacher's generic page-keyed IORegion
// map is replaced here with a single fixed-size aperture (spec.md §3 only
// ever defines one 4 KiB MMIO window), which keeps the hot path a plain
// bounds check instead of a map lookup.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import "encoding/binary"

// FaultError is raised (via panic) for conditions spec.md §7 classifies as
// fatal: out-of-bounds memory access, a zero jump/branch target, or an
// unimplemented instruction encoding. The Run Loop recovers it at the top
// of Run and terminates the process with a one-line diagnostic.
type FaultError struct {
	Reason string
}

func (e *FaultError) Error() string { return e.Reason }

func fault(reason string) {
	panic(&FaultError{Reason: reason})
}

// Bus is the guest's view of memory: RAM in [0, len(ram)) and the MMIO
// aperture at [MMIOBase, MMIOBase+MMIOSize).
type Bus struct {
	ram  []byte
	mmio *MMIODevice
}

// NewBus allocates a RAM buffer of size bytes and attaches mmio.
func NewBus(size int, mmio *MMIODevice) *Bus {
	return &Bus{
		ram:  make([]byte, size),
		mmio: mmio,
	}
}

func (b *Bus) RAM() []byte { return b.ram }

func (b *Bus) inRAM(addr uint64, width uint64) bool {
	return addr < uint64(len(b.ram)) && addr+width <= uint64(len(b.ram))
}

// checkOOB faults when addr falls below MMIOBase but outside the RAM
// buffer — spec.md §7's "out-of-bounds memory" case.
func (b *Bus) checkOOB(addr uint64) {
	if addr >= uint64(len(b.ram)) && addr < MMIOBase {
		fault("out-of-bounds memory access")
	}
}

func (b *Bus) Read8(addr uint64) uint64 {
	if addr >= MMIOBase {
		return uint64(b.mmio.Read(addr-MMIOBase, 1))
	}
	b.checkOOB(addr)
	if !b.inRAM(addr, 1) {
		fault("out-of-bounds memory access")
	}
	return uint64(b.ram[addr])
}

func (b *Bus) Read16(addr uint64) uint64 {
	if addr >= MMIOBase {
		return uint64(b.mmio.Read(addr-MMIOBase, 2))
	}
	b.checkOOB(addr)
	if !b.inRAM(addr, 2) {
		fault("out-of-bounds memory access")
	}
	return uint64(binary.LittleEndian.Uint16(b.ram[addr:]))
}

func (b *Bus) Read32(addr uint64) uint64 {
	if addr >= MMIOBase {
		return uint64(b.mmio.Read(addr-MMIOBase, 4))
	}
	b.checkOOB(addr)
	if !b.inRAM(addr, 4) {
		fault("out-of-bounds memory access")
	}
	return uint64(binary.LittleEndian.Uint32(b.ram[addr:]))
}

func (b *Bus) Read64(addr uint64) uint64 {
	if addr >= MMIOBase {
		return b.mmio.Read(addr-MMIOBase, 8)
	}
	b.checkOOB(addr)
	if !b.inRAM(addr, 8) {
		fault("out-of-bounds memory access")
	}
	return binary.LittleEndian.Uint64(b.ram[addr:])
}

func (b *Bus) Write8(addr uint64, val uint64) {
	if addr >= MMIOBase {
		b.mmio.Write(addr-MMIOBase, val, 1)
		return
	}
	b.checkOOB(addr)
	if !b.inRAM(addr, 1) {
		fault("out-of-bounds memory access")
	}
	b.ram[addr] = byte(val)
}

func (b *Bus) Write16(addr uint64, val uint64) {
	if addr >= MMIOBase {
		b.mmio.Write(addr-MMIOBase, val, 2)
		return
	}
	b.checkOOB(addr)
	if !b.inRAM(addr, 2) {
		fault("out-of-bounds memory access")
	}
	binary.LittleEndian.PutUint16(b.ram[addr:], uint16(val))
}

func (b *Bus) Write32(addr uint64, val uint64) {
	if addr >= MMIOBase {
		b.mmio.Write(addr-MMIOBase, val, 4)
		return
	}
	b.checkOOB(addr)
	if !b.inRAM(addr, 4) {
		fault("out-of-bounds memory access")
	}
	binary.LittleEndian.PutUint32(b.ram[addr:], uint32(val))
}

func (b *Bus) Write64(addr uint64, val uint64) {
	if addr >= MMIOBase {
		b.mmio.Write(addr-MMIOBase, val, 8)
		return
	}
	b.checkOOB(addr)
	if !b.inRAM(addr, 8) {
		fault("out-of-bounds memory access")
	}
	binary.LittleEndian.PutUint64(b.ram[addr:], val)
}
