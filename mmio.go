// mmio.go - the memory-mapped I/O device bridging guest execution to the host
//
// Grounded on the teacher's VoodooEngine register interface in
// video_voodoo.go: a flat set of device registers updated by writes, with
// designated writes synchronously invoking a host callback rather than
// queuing an event for later.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

// HostGraphics is the external collaborator the MMIO device calls into.
// It is implemented by the Host Window / GPU Command Executor (SPEC_FULL.md
// §4.I/§4.J) and consumed here without the core depending on their
// concrete types.
type HostGraphics interface {
	PresentFramebuffer(ram []byte, addr uint64, width, height, stride, format uint32)
	ExecuteCommandList(ram []byte, addr uint64, count uint32)
}

// MMIODevice holds the register state described in spec.md §3/§4.G.
type MMIODevice struct {
	framebufferAddress  uint64
	framebufferStride   uint32
	framebufferWidth    uint32
	framebufferHeight   uint32
	framebufferFormat   uint32
	framebufferPresent  bool
	commandListAddress  uint64
	commandListSize     uint32
	commandListPresent  bool

	ram   []byte // set once the bus's RAM buffer exists (Write's host callbacks need it)
	host  HostGraphics
}

// NewMMIODevice creates a zeroed device. AttachRAM and AttachHost are
// called by main during startup, before the Run Loop starts; until a host
// is attached, PRESENT/EXECUTE_COMMAND_LIST writes only set their flags.
func NewMMIODevice() *MMIODevice {
	return &MMIODevice{}
}

func (d *MMIODevice) AttachRAM(ram []byte)       { d.ram = ram }
func (d *MMIODevice) AttachHost(h HostGraphics)  { d.host = h }

// FramebufferPresent reports the present flag; the host calls it after the
// Run Loop yields and clears the flag with AckFramebufferPresent, per
// spec.md §4.H.
func (d *MMIODevice) FramebufferPresent() bool { return d.framebufferPresent }
func (d *MMIODevice) AckFramebufferPresent()   { d.framebufferPresent = false }

func (d *MMIODevice) CommandListPresent() bool { return d.commandListPresent }
func (d *MMIODevice) AckCommandListPresent()   { d.commandListPresent = false }

// Read dispatches a width-byte read at offset (relative to MMIOBase).
// Unmapped offsets return 0.
func (d *MMIODevice) Read(offset uint64, width int) uint64 {
	switch offset {
	case RegFBStride:
		return uint64(d.framebufferStride)
	case RegFBWidth:
		return uint64(d.framebufferWidth)
	case RegFBHeight:
		return uint64(d.framebufferHeight)
	case RegFBFormat:
		return uint64(d.framebufferFormat)
	}
	return 0
}

// Write dispatches a width-byte write at offset. Unmapped offsets are
// silently dropped. PRESENT and EXECUTE_COMMAND_LIST synchronously invoke
// the host callback before returning, per spec.md §4.G.
func (d *MMIODevice) Write(offset uint64, val uint64, width int) {
	switch offset {
	case RegFBAddr:
		d.framebufferAddress = val
	case RegFBStride:
		d.framebufferStride = uint32(val)
	case RegFBWidth:
		d.framebufferWidth = uint32(val)
	case RegFBHeight:
		d.framebufferHeight = uint32(val)
	case RegFBFormat:
		d.framebufferFormat = uint32(val)
	case RegPresent:
		d.framebufferPresent = true
		if d.host != nil {
			d.host.PresentFramebuffer(d.ram, d.framebufferAddress, d.framebufferWidth, d.framebufferHeight, d.framebufferStride, d.framebufferFormat)
		}
	case RegCommandListAddr:
		d.commandListAddress = val
	case RegCommandListSize:
		d.commandListSize = uint32(val)
	case RegExecuteCommandList:
		d.commandListPresent = true
		if d.host != nil {
			d.host.ExecuteCommandList(d.ram, d.commandListAddress, d.commandListSize)
		}
	}
}
