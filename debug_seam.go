// debug_seam.go - the interface ambient.go/ambient_headless.go return,
// so main.go can use the debug console without a build tag of its own.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

type debugConsole interface {
	Prompt(m *Machine) error
	shouldBreak(m *Machine) bool
	Close() error
}
