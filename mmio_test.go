package main

import "testing"

type fakeHost struct {
	presented  bool
	executed   bool
	lastWidth  uint32
	lastHeight uint32
}

func (f *fakeHost) PresentFramebuffer(ram []byte, addr uint64, width, height, stride, format uint32) {
	f.presented = true
	f.lastWidth, f.lastHeight = width, height
}

func (f *fakeHost) ExecuteCommandList(ram []byte, addr uint64, count uint32) {
	f.executed = true
}

// S4 — MMIO framebuffer setup
func TestScenarioMMIOFramebufferSetup(t *testing.T) {
	m := newTestMachine()
	m.SetEntry(0x1000)
	host := &fakeHost{}
	m.bus.mmio.AttachHost(host)

	storeInstrs(m, 0x1000, []uint32{
		encodeI(opOpImm, 0, 1, 0, 256),                  // x1 = 256
		encodeI(opOpImm, 0, 2, 0, 1024),                 // x2 = 1024
		encodeI(opOpImm, 0, 3, 0, 1),                     // x3 = 1 (present value)
	})
	m.setX(4, MMIOBase+RegFBWidth)
	m.setX(5, MMIOBase+RegFBHeight)
	m.setX(6, MMIOBase+RegFBStride)
	m.setX(7, MMIOBase+RegFBAddr)
	m.setX(8, MMIOBase+RegPresent)
	m.setX(9, 0x20000)

	for i := 0; i < 3; i++ {
		step(m)
	}

	m.bus.Write32(m.getX(4), 256)
	m.bus.Write32(m.getX(5), 256)
	m.bus.Write32(m.getX(6), 1024)
	m.bus.Write64(m.getX(7), m.getX(9))
	m.bus.Write8(m.getX(8), 1)

	mmio := m.bus.mmio
	if mmio.framebufferWidth != 256 || mmio.framebufferHeight != 256 {
		t.Fatalf("framebuffer dims = %dx%d, want 256x256", mmio.framebufferWidth, mmio.framebufferHeight)
	}
	if mmio.framebufferStride != 1024 {
		t.Fatalf("framebufferStride = %d, want 1024", mmio.framebufferStride)
	}
	if mmio.framebufferAddress != 0x20000 {
		t.Fatalf("framebufferAddress = 0x%x, want 0x20000", mmio.framebufferAddress)
	}
	if !mmio.FramebufferPresent() {
		t.Fatal("framebufferPresent = false, want true")
	}
	if !host.presented {
		t.Fatal("host callback was not invoked on PRESENT write")
	}
	if v := m.bus.Read32(MMIOBase + RegFBWidth); v != 256 {
		t.Fatalf("readback of FB_WIDTH = %d, want 256", v)
	}
}

func TestUnmappedMMIOWriteIsDropped(t *testing.T) {
	mmio := NewMMIODevice()
	mmio.Write(0xFFF, 0x42, 1) // far outside the defined register set
	if mmio.Read(0xFFF, 1) != 0 {
		t.Fatal("unmapped offset should read back as zero regardless of writes")
	}
}
