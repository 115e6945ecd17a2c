//go:build !headless

// debug_console.go - interactive single-step debugger
//
// Grounded on the teacher's Machine Monitor (debug_interface.go,
// debug_monitor.go) and its condition parser (debug_conditions.go): a
// raw-mode terminal reads single-character/short commands and prints
// register/memory state, with breakpoints expressed as `lhs OP rhs`
// strings. golang.org/x/term supplies the raw mode the teacher's
// terminal_host.go also uses.

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

type conditionOp int

const (
	condEqual conditionOp = iota
	condNotEqual
	condLess
	condGreater
	condLessEqual
	condGreaterEqual
)

// breakpointCondition is evaluated against a register's current value
// after every instruction; DebugConsole.shouldBreak owns the register
// lookup so the condition itself stays a plain comparison.
type breakpointCondition struct {
	reg   uint32
	op    conditionOp
	value uint64
}

// parseCondition parses "rN OP value" (value in decimal or 0x-prefixed
// hex), mirroring the teacher's ParseCondition grammar reduced to
// register comparisons, the only state this module's debugger exposes.
func parseCondition(text string) (*breakpointCondition, error) {
	text = strings.TrimSpace(text)
	var opStr string
	var opIdx int
	for _, candidate := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if idx := strings.Index(text, candidate); idx >= 0 {
			opStr, opIdx = candidate, idx
			break
		}
	}
	if opStr == "" {
		return nil, fmt.Errorf("no operator found (use ==, !=, <, >, <=, >=)")
	}

	lhs := strings.TrimSpace(text[:opIdx])
	rhs := strings.TrimSpace(text[opIdx+len(opStr):])

	if !strings.HasPrefix(lhs, "r") && !strings.HasPrefix(lhs, "x") {
		return nil, fmt.Errorf("condition must reference a register (rN)")
	}
	regNum, err := strconv.Atoi(lhs[1:])
	if err != nil || regNum < 0 || regNum > 31 {
		return nil, fmt.Errorf("invalid register: %s", lhs)
	}

	value, err := parseImmediate(rhs)
	if err != nil {
		return nil, err
	}

	var op conditionOp
	switch opStr {
	case "==":
		op = condEqual
	case "!=":
		op = condNotEqual
	case "<":
		op = condLess
	case ">":
		op = condGreater
	case "<=":
		op = condLessEqual
	case ">=":
		op = condGreaterEqual
	}
	return &breakpointCondition{reg: uint32(regNum), op: op, value: value}, nil
}

func parseImmediate(s string) (uint64, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	if strings.HasPrefix(s, "$") {
		return strconv.ParseUint(s[1:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

func (c *breakpointCondition) eval(m *Machine) bool {
	v := m.getX(c.reg)
	switch c.op {
	case condEqual:
		return v == c.value
	case condNotEqual:
		return v != c.value
	case condLess:
		return v < c.value
	case condGreater:
		return v > c.value
	case condLessEqual:
		return v <= c.value
	case condGreaterEqual:
		return v >= c.value
	}
	return false
}

// DebugConsole drives single-stepping and state inspection from stdin in
// raw mode, restoring the terminal on Close the way terminal_host.go does.
type DebugConsole struct {
	oldState   *term.State
	reader     *bufio.Reader
	breakpoint *breakpointCondition
}

func NewDebugConsole() (*DebugConsole, error) {
	fd := int(os.Stdin.Fd())
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("debug console: %w", err)
	}
	return &DebugConsole{oldState: old, reader: bufio.NewReader(os.Stdin)}, nil
}

func (c *DebugConsole) Close() error {
	return term.Restore(int(os.Stdin.Fd()), c.oldState)
}

// shouldBreak reports whether the active breakpoint condition fires for
// the machine's current register state.
func (c *DebugConsole) shouldBreak(m *Machine) bool {
	return c.breakpoint != nil && c.breakpoint.eval(m)
}

// Prompt reads one command line and executes it against m, writing any
// output directly to stdout. Raw mode means input arrives byte-by-byte
// with no host line editing, so this hand-assembles a line on \r.
func (c *DebugConsole) Prompt(m *Machine) error {
	fmt.Print("\r\n(dbg) ")
	line, err := c.readLine()
	if err != nil {
		return err
	}
	c.dispatch(m, strings.TrimSpace(line))
	return nil
}

func (c *DebugConsole) readLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '\r' || b == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
}

func (c *DebugConsole) dispatch(m *Machine, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "r", "regs":
		c.dumpRegs(m)
	case "m", "mem":
		if len(fields) < 2 {
			fmt.Print("\r\nusage: m <addr>\r\n")
			return
		}
		addr, err := parseImmediate(fields[1])
		if err != nil {
			fmt.Printf("\r\nbad address: %v\r\n", err)
			return
		}
		c.dumpMem(m, addr)
	case "b", "break":
		if len(fields) < 2 {
			c.breakpoint = nil
			fmt.Print("\r\nbreakpoint cleared\r\n")
			return
		}
		cond, err := parseCondition(strings.Join(fields[1:], ""))
		if err != nil {
			fmt.Printf("\r\nbad condition: %v\r\n", err)
			return
		}
		c.breakpoint = cond
		fmt.Print("\r\nbreakpoint set\r\n")
	default:
		fmt.Printf("\r\nunknown command: %s\r\n", fields[0])
	}
}

func (c *DebugConsole) dumpRegs(m *Machine) {
	for i := 0; i < 32; i += 4 {
		fmt.Printf("\r\nx%-2d=%016x x%-2d=%016x x%-2d=%016x x%-2d=%016x",
			i, m.getX(uint32(i)), i+1, m.getX(uint32(i+1)), i+2, m.getX(uint32(i+2)), i+3, m.getX(uint32(i+3)))
	}
	fmt.Printf("\r\npc=%016x\r\n", m.pc)
}

func (c *DebugConsole) dumpMem(m *Machine, addr uint64) {
	for row := uint64(0); row < 4; row++ {
		base := addr + row*16
		fmt.Printf("\r\n%016x: ", base)
		for i := uint64(0); i < 16; i++ {
			fmt.Printf("%02x ", byte(m.bus.Read8(base+i)))
		}
	}
	fmt.Print("\r\n")
}
