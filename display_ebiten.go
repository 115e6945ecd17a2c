//go:build !headless

// display_ebiten.go - windowed Host Window backend
//
// Grounded on the teacher's EbitenOutput in video_backend_ebiten.go: a
// frame buffer guarded by a mutex, an ebiten.Game pumped on its own
// goroutine, and a channel used to block Start (here, NewEbitenDisplay)
// until the first Draw call proves the window is live.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

type ebitenDisplay struct {
	mu          sync.Mutex
	frame       *ebiten.Image
	width       int
	height      int
	scale       int
	vsyncChan   chan struct{}
	firstDraw   sync.Once

	overlayOn bool
	overlay   *overlayState

	gpu clearTarget
}

// NewEbitenDisplay opens a window sized width×height (times scale) and
// blocks until the first Draw call lands, mirroring EbitenOutput.Start's
// readiness handshake.
func NewEbitenDisplay(width, height, scale int, debugOverlay bool) (HostDisplay, error) {
	if scale < 1 {
		scale = 1
	}
	d := &ebitenDisplay{
		frame:     ebiten.NewImage(width, height),
		width:     width,
		height:    height,
		scale:     scale,
		vsyncChan: make(chan struct{}, 1),
		overlayOn: debugOverlay,
	}
	if debugOverlay {
		d.overlay = newOverlayState()
	}

	gpu, err := newVulkanGPUTarget(uint32(width), uint32(height))
	if err != nil {
		d.gpu = newSoftwareGPUTarget()
	} else {
		d.gpu = gpu
	}

	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetWindowTitle("rv64emu")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)

	go func() {
		if err := ebiten.RunGame(d); err != nil {
			fmt.Printf("ebiten: %v\n", err)
		}
	}()
	<-d.vsyncChan
	return d, nil
}

// PresentFramebuffer copies width×height pixels from ram[addr:], honoring
// stride, into the displayed image. Bounds are clamped defensively since
// the guest fully controls addr/width/height/stride.
func (d *ebitenDisplay) PresentFramebuffer(ram []byte, addr uint64, width, height, stride, format uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if int(width) != d.width || int(height) != d.height {
		d.frame = ebiten.NewImage(int(width), int(height))
		d.width, d.height = int(width), int(height)
	}

	rowBytes := int(width) * 4
	pixels := make([]byte, rowBytes*int(height))
	for y := uint32(0); y < height; y++ {
		rowStart := addr + uint64(y)*uint64(stride)
		n := copy(pixels[int(y)*rowBytes:int(y+1)*rowBytes], sliceFrom(ram, rowStart, uint64(rowBytes)))
		for i := int(y)*rowBytes + n; i < int(y+1)*rowBytes; i++ {
			pixels[i] = 0
		}
	}
	d.frame.WritePixels(pixels)
}

func sliceFrom(ram []byte, addr, n uint64) []byte {
	if addr >= uint64(len(ram)) {
		return nil
	}
	end := addr + n
	if end > uint64(len(ram)) {
		end = uint64(len(ram))
	}
	return ram[addr:end]
}

func (d *ebitenDisplay) ExecuteCommandList(ram []byte, addr uint64, count uint32) {
	d.mu.Lock()
	gpu := d.gpu
	d.mu.Unlock()
	runCommandList(gpu, ram, addr, count)
}

func (d *ebitenDisplay) Close() error { return nil }

// UpdateOverlay refreshes the HUD's instruction-count/MIPS sample. The Run
// Loop's host caller invokes this each time it yields, if -debug is set.
func (d *ebitenDisplay) UpdateOverlay(m *Machine) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.overlay != nil {
		d.overlay.sample(m)
	}
}

// Update satisfies ebiten.Game; input handling is out of scope for this
// module, matching spec.md's Non-goals around interactive input.
func (d *ebitenDisplay) Update() error { return nil }

func (d *ebitenDisplay) Draw(screen *ebiten.Image) {
	d.firstDraw.Do(func() { d.vsyncChan <- struct{}{} })

	d.mu.Lock()
	frame := d.frame
	overlayOn := d.overlayOn
	var stats overlayStats
	if overlayOn {
		stats = d.overlay.stats
	}
	d.mu.Unlock()

	op := &ebiten.DrawImageOptions{}
	sx := float64(d.scale)
	op.GeoM.Scale(sx, sx)
	screen.DrawImage(frame, op)

	if overlayOn {
		drawOverlay(screen, stats)
	}
}

func (d *ebitenDisplay) Layout(outsideWidth, outsideHeight int) (int, int) {
	return d.width * d.scale, d.height * d.scale
}
