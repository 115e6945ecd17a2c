// display_headless.go - no-window Host Window backend
//
// Grounded on the teacher's headless video backend (video_backend_headless.go):
// same HostDisplay surface, no windowing library, used for scripted/CI runs
// via the -headless flag and for builds tagged `headless` that omit the
// windowing/GPU libraries entirely.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

type headlessDisplay struct {
	width, height uint32
	lastFrame     struct {
		addr                      uint64
		width, height, stride, format uint32
	}
	gpu clearTarget
}

func NewHeadlessDisplay(width, height int) (HostDisplay, error) {
	return &headlessDisplay{
		width:  uint32(width),
		height: uint32(height),
		gpu:    newSoftwareGPUTarget(),
	}, nil
}

func (d *headlessDisplay) PresentFramebuffer(ram []byte, addr uint64, width, height, stride, format uint32) {
	d.lastFrame.addr = addr
	d.lastFrame.width = width
	d.lastFrame.height = height
	d.lastFrame.stride = stride
	d.lastFrame.format = format
}

func (d *headlessDisplay) ExecuteCommandList(ram []byte, addr uint64, count uint32) {
	runCommandList(d.gpu, ram, addr, count)
}

func (d *headlessDisplay) Close() error { return nil }
