package vm

import (
	"github.com/lookbusy1344/lc3-toolchain/ioprovider"
)

// Memory-mapped I/O addresses.
const (
	MMIOKBSR uint16 = 0xFE00 // keyboard status
	MMIOKBDR uint16 = 0xFE02 // keyboard data
)

// Memory is the LC-3's flat 65536-word address space. Two addresses,
// KBSR and KBDR, alias the keyboard device rather than plain storage.
type Memory struct {
	cells [65536]uint16
	io    ioprovider.Provider
}

// NewMemory creates a zeroed memory backed by the given I/O provider.
// io may be nil, in which case KBSR always reads as not-ready.
func NewMemory(io ioprovider.Provider) *Memory {
	return &Memory{io: io}
}

// SetIO swaps the I/O provider backing MMIO reads.
func (m *Memory) SetIO(io ioprovider.Provider) {
	m.io = io
}

// Read returns the word stored at addr, performing the keyboard poll
// side effect when addr is KBSR.
func (m *Memory) Read(addr uint16) uint16 {
	if addr == MMIOKBSR {
		if m.pollKeyboard() {
			return 0x8000
		}
		return 0x0000
	}
	if addr == MMIOKBDR {
		return m.readKeyboardData()
	}
	return m.cells[addr]
}

// Write stores value at addr. Writes to MMIO addresses are accepted
// but have no device-side effect (the spec leaves keyboard writes
// undefined; the reference tolerates them).
func (m *Memory) Write(addr uint16, value uint16) {
	m.cells[addr] = value
}

// ReadRaw bypasses MMIO semantics, used by PUTS/PUTSP to walk the
// program's own data without disturbing the keyboard poll.
func (m *Memory) ReadRaw(addr uint16) uint16 {
	return m.cells[addr]
}

func (m *Memory) pollKeyboard() bool {
	if m.io == nil {
		return false
	}
	poller, ok := m.io.(ioprovider.Poller)
	if !ok {
		return false
	}
	return poller.Poll()
}

// readKeyboardData consumes one character from the I/O provider. It
// is only meaningful immediately after a KBSR read reported a
// character ready; callers that read KBDR first are, per the spec,
// undefined, and here they will block (or error) on GetChar.
func (m *Memory) readKeyboardData() uint16 {
	if m.io == nil {
		return 0
	}
	b, err := m.io.GetChar()
	if err != nil {
		return 0
	}
	return uint16(b)
}
