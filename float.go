// float.go - single-precision NaN-boxing for the narrow FP load/store pair
//
// RV64's F extension stores a 32-bit value inside a 64-bit register by
// setting every upper bit to 1 ("NaN-boxing"), so a narrower consumer can
// tell a valid single from a corrupted double. spec.md §4.E widens FLW/FSW
// the same way.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

func widenFloat32(bits uint32) uint64 {
	return 0xFFFFFFFF_00000000 | uint64(bits)
}

func narrowFloat32(val uint64) uint32 {
	return uint32(val)
}
