//go:build !headless

// overlay.go - debug HUD text
//
// Grounded on the teacher's on-screen diagnostics conventions and built on
// golang.org/x/image/font/basicfont rather than the teacher's PNG-sourced
// font2rgba pipeline, since this module embeds no binary font asset.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type overlayStats struct {
	instructionCount uint64
	mips             float64
	vl, sew          uint32
}

type overlayState struct {
	stats     overlayStats
	lastCount uint64
	lastAt    time.Time
}

func newOverlayState() *overlayState {
	return &overlayState{lastAt: time.Time{}}
}

// sample recomputes the displayed MIPS figure from the machine's running
// instruction counter; called through UpdateOverlay each time Run returns
// to the host loop in main.
func (o *overlayState) sample(m *Machine) {
	now := time.Now()
	if !o.lastAt.IsZero() {
		elapsed := now.Sub(o.lastAt).Seconds()
		if elapsed > 0 {
			delta := m.InstructionCount - o.lastCount
			o.stats.mips = float64(delta) / elapsed / 1e6
		}
	}
	o.stats.instructionCount = m.InstructionCount
	o.stats.vl = m.vl
	o.stats.sew = m.sew
	o.lastCount = m.InstructionCount
	o.lastAt = now
}

func drawOverlay(screen *ebiten.Image, s overlayStats) {
	line := fmt.Sprintf("instr=%d  %.2f MIPS  vl=%d sew=%d", s.instructionCount, s.mips, s.vl, s.sew)
	text.Draw(screen, line, basicfont.Face7x13, 4, 14, color.RGBA{R: 0, G: 255, B: 0, A: 255})
}
