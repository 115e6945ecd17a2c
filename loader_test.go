package main

import (
	"encoding/binary"
	"testing"
)

// buildELFImage assembles a minimal valid ELF64 LE RISC-V executable with
// one PT_LOAD segment, matching exactly the byte offsets loader.go reads.
func buildELFImage(entry, vaddr uint64, payload []byte, memsz uint64) []byte {
	const ehdrSize = 64
	const phdrSize = 56
	phOff := uint64(ehdrSize)
	dataOff := phOff + phdrSize

	image := make([]byte, int(dataOff)+len(payload))

	image[0], image[1], image[2], image[3] = 0x7F, 'E', 'L', 'F'
	image[4] = elfClass64
	image[5] = elfDataLE
	image[6] = elfVersion
	image[7] = elfOSABI
	image[8] = elfABIVersion

	binary.LittleEndian.PutUint16(image[16:18], elfTypeExec)
	binary.LittleEndian.PutUint16(image[18:20], elfMachineRISCV)
	binary.LittleEndian.PutUint32(image[20:24], elfVersion)
	binary.LittleEndian.PutUint64(image[24:32], entry)
	binary.LittleEndian.PutUint64(image[32:40], phOff)
	binary.LittleEndian.PutUint16(image[54:56], phdrSize)
	binary.LittleEndian.PutUint16(image[56:58], 1)

	ph := image[phOff:]
	binary.LittleEndian.PutUint32(ph[0:4], ptLoad)
	binary.LittleEndian.PutUint64(ph[8:16], dataOff)
	binary.LittleEndian.PutUint64(ph[16:24], vaddr)
	binary.LittleEndian.PutUint64(ph[32:40], uint64(len(payload)))
	binary.LittleEndian.PutUint64(ph[40:48], memsz)

	copy(image[dataOff:], payload)
	return image
}

func TestLoadImageCopiesSegmentAndZeroFills(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	image := buildELFImage(0x1000, 0x1000, payload, 8)

	ram := make([]byte, 1<<16)
	result, err := LoadImage(image, ram)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if result.Entry != 0x1000 {
		t.Fatalf("Entry = 0x%x, want 0x1000", result.Entry)
	}
	for i, b := range payload {
		if ram[0x1000+i] != b {
			t.Fatalf("ram[0x1000+%d] = 0x%x, want 0x%x", i, ram[0x1000+i], b)
		}
	}
	for i := len(payload); i < 8; i++ {
		if ram[0x1000+i] != 0 {
			t.Fatalf("zero-fill tail byte %d not zero", i)
		}
	}
}

func TestLoadImageRejectsBadMagic(t *testing.T) {
	image := buildELFImage(0x1000, 0x1000, []byte{1, 2, 3, 4}, 4)
	image[0] = 0x00
	if _, err := LoadImage(image, make([]byte, 1<<16)); err == nil {
		t.Fatal("expected an error for a corrupted ELF magic")
	}
}

func TestLoadImageRejectsWrongMachine(t *testing.T) {
	image := buildELFImage(0x1000, 0x1000, []byte{1, 2, 3, 4}, 4)
	binary.LittleEndian.PutUint16(image[18:20], 0x3E) // x86-64, not RISC-V
	if _, err := LoadImage(image, make([]byte, 1<<16)); err == nil {
		t.Fatal("expected an error for a non-RISC-V e_machine")
	}
}

func TestLoadImageRejectsOversizedSegment(t *testing.T) {
	image := buildELFImage(0x1000, 0x1000, []byte{1, 2, 3, 4}, 4)
	ram := make([]byte, 8) // too small for vaddr 0x1000
	if _, err := LoadImage(image, ram); err == nil {
		t.Fatal("expected an error when a segment would overflow guest memory")
	}
}
