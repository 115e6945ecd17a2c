//go:build headless

// ambient_headless.go - the `headless` build's version of ambient.go,
// omitting ebiten/vulkan/oto/term entirely for environments without them.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

func selectDisplay(width, height, scale int, headlessFlag, debugOverlay bool) (HostDisplay, error) {
	return NewHeadlessDisplay(width, height)
}

func ambientPlayChime(rising bool) {}

func ambientNewDebugConsole() (debugConsole, error) {
	return nil, nil
}
