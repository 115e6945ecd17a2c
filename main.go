// main.go - CLI entry point
//
// Grounded on the teacher's main.go: parse arguments, build the bus and
// its attached devices, load the guest image, then hand off to the
// presentation loop — here split between the Run Loop (runloop.go) and
// whichever HostDisplay backend was selected.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	debug := flag.Bool("debug", false, "enable the HUD overlay and interactive debug console")
	headless := flag.Bool("headless", false, "exit after the first present event instead of opening a window")
	scale := flag.Int("scale", 2, "integer window scale factor")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rv64emu [-debug] [-headless] [-scale N] <image-path>")
		os.Exit(1)
	}
	imagePath := flag.Arg(0)

	image, err := os.ReadFile(imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "diagnostic: cannot read image — %v\n", err)
		os.Exit(1)
	}

	mmio := NewMMIODevice()
	bus := NewBus(GuestMemorySize, mmio)
	mmio.AttachRAM(bus.RAM())

	result, err := LoadImage(image, bus.RAM())
	if err != nil {
		fmt.Fprintf(os.Stderr, "diagnostic: image load failed — %v\n", err)
		os.Exit(1)
	}

	display, err := selectDisplay(256, 256, *scale, *headless, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "diagnostic: display init failed — %v\n", err)
		os.Exit(1)
	}
	defer display.Close()
	mmio.AttachHost(display)

	var console debugConsole
	if *debug {
		console, err = ambientNewDebugConsole()
		if err != nil {
			fmt.Fprintf(os.Stderr, "diagnostic: debug console init failed — %v\n", err)
			os.Exit(1)
		}
		if console != nil {
			defer console.Close()
		}
	}

	m := NewMachine(bus)
	m.SetEntry(result.Entry)

	overlayAware, hasOverlay := display.(interface{ UpdateOverlay(*Machine) })

	for {
		Run(m, console)

		if hasOverlay {
			overlayAware.UpdateOverlay(m)
		}

		if mmio.FramebufferPresent() {
			mmio.AckFramebufferPresent()
			if *headless {
				ambientPlayChime(true)
				return
			}
		}
		if mmio.CommandListPresent() {
			mmio.AckCommandListPresent()
		}
		if console != nil && console.shouldBreak(m) {
			if err := console.Prompt(m); err != nil {
				ambientPlayChime(true)
				return
			}
		}
	}
}
