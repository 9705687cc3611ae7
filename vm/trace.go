package vm

import (
	"fmt"
	"io"
)

// Trace is a minimal per-step execution log: the LC-3-scaled-down
// counterpart of the teacher's vm/trace.go ExecutionTrace. One line is
// written per instruction, naming its address, raw instruction word,
// and the register file immediately afterward. There is no
// disassembler in scope (spec.md Non-goals), so lines report raw
// values rather than a mnemonic rendering.
type Trace struct {
	Enabled    bool
	Writer     io.Writer
	MaxEntries int // 0 means unbounded

	count uint64
}

// NewTrace creates a Trace writing to w, capped at maxEntries lines.
func NewTrace(w io.Writer, maxEntries int) *Trace {
	return &Trace{Enabled: true, Writer: w, MaxEntries: maxEntries}
}

// record appends one line for the instruction word instr fetched from
// pc, using the VM's register state after execution. No-op if t is
// nil, disabled, or the entry cap has been reached.
func (t *Trace) record(m *VM, pc, instr uint16) {
	if t == nil || !t.Enabled || t.Writer == nil {
		return
	}
	if t.MaxEntries > 0 && t.count >= uint64(t.MaxEntries) {
		return
	}
	t.count++
	fmt.Fprintf(t.Writer,
		"[%06d] %#04x: %#04x R0=%#04x R1=%#04x R2=%#04x R3=%#04x R4=%#04x R5=%#04x R6=%#04x R7=%#04x PC=%#04x COND=%s\n",
		t.count, pc, instr,
		m.Reg.Get(R0), m.Reg.Get(R1), m.Reg.Get(R2), m.Reg.Get(R3),
		m.Reg.Get(R4), m.Reg.Get(R5), m.Reg.Get(R6), m.Reg.Get(R7),
		m.Reg.PC(), condName(m.Reg.Get(RCOND)))
}

func condName(flags uint16) string {
	switch flags {
	case FlagPOS:
		return "POS"
	case FlagZRO:
		return "ZRO"
	case FlagNEG:
		return "NEG"
	default:
		return "?"
	}
}
