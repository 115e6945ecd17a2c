// runloop.go - the fetch-decode-dispatch loop
//
// Grounded on the teacher's CPU64.Execute() in cpu_ie64.go: an unsafe
// instruction fetch followed by a dispatch switch, run until a stop
// condition, with the host polling volatile/atomic state between slices
// rather than the core calling back into host code directly.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"fmt"
	"os"
)

// Run drives the machine until a yield condition (framebuffer present,
// command list present, or an active breakpoint firing) or a fatal
// fault. It returns normally on a yield so the host can present/inspect
// and re-enter; it calls os.Exit(1) after printing a diagnostic on any
// fault, per spec.md §7's "no recovery" policy. console may be nil.
func Run(m *Machine, console debugConsole) {
	defer func() {
		if r := recover(); r != nil {
			if fe, ok := r.(*FaultError); ok {
				fmt.Fprintf(os.Stderr, "diagnostic: %s — pc=0x%x\n", fe.Reason, m.pc)
				ambientPlayChime(false)
				os.Exit(1)
			}
			panic(r)
		}
	}()

	for m.running.Load() {
		instr := uint32(m.bus.Read32(m.pc))
		Execute(m, instr)
		m.InstructionCount++

		mmio := m.bus.mmio
		if mmio.FramebufferPresent() || mmio.CommandListPresent() {
			return
		}
		if console != nil && console.shouldBreak(m) {
			return
		}
	}
}

// Stop requests the Run Loop halt cooperatively at the next iteration
// boundary; safe to call from the host goroutine between Run invocations.
func (m *Machine) Stop() { m.running.Store(false) }
