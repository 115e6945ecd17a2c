//go:build !headless

// ambient.go - build-tag seam for the optional windowed/audio/debug stack
//
// Grounded on the teacher's be_unsupported.go / le_check.go pattern of a
// pair of files, one per build tag, presenting the same small surface so
// main.go never needs its own build tags.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

func selectDisplay(width, height, scale int, headlessFlag, debugOverlay bool) (HostDisplay, error) {
	if headlessFlag {
		return NewHeadlessDisplay(width, height)
	}
	return NewEbitenDisplay(width, height, scale, debugOverlay)
}

func ambientPlayChime(rising bool) {
	PlayChime(rising)
}

func ambientNewDebugConsole() (debugConsole, error) {
	return NewDebugConsole()
}
