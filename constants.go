// constants.go - address space and MMIO layout for the RV64 emulator core

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

const (
	// GuestMemorySize is the size of the linear guest RAM buffer (M in the
	// design doc). The host may choose a smaller value; 1 GiB is the
	// recommended default.
	GuestMemorySize = 1 << 30

	// MMIOBase is the first address of the memory-mapped I/O aperture.
	MMIOBase = 0xFFFF_0000

	// MMIOSize is the size of the MMIO aperture.
	MMIOSize = 4 * 1024
)

// MMIO register offsets, relative to MMIOBase.
const (
	RegFBAddr             = 0x00 // W, 64-bit
	RegFBStride           = 0x08 // R/W, 32-bit
	RegFBWidth            = 0x0C // R/W, 32-bit
	RegFBHeight           = 0x10 // R/W, 32-bit
	RegFBFormat           = 0x14 // R/W, 32-bit
	RegPresent            = 0x18 // W, 8-bit, any write presents
	RegCommandListAddr    = 0x20 // W, 64-bit
	RegCommandListSize    = 0x28 // W, 32-bit
	RegExecuteCommandList = 0x30 // W, 8-bit, any write executes
)

// Vector unit constants.
const (
	VLEN     = 1024      // vector register length in bits
	VLENBits = VLEN / 8   // VLENB CSR value: 128
	VRegBytes = VLEN / 8  // bytes of backing storage per vector register
)

// CSRVLENB is the CSR address read by CSRRS to fetch VLENB.
const CSRVLENB = 0xC22
