package vm

import "github.com/lookbusy1344/lc3-toolchain/word"

// Register indices into Registers.Reg. R0-R7 are general purpose;
// RPC and RCOND are the program counter and condition-code register.
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	RPC
	RCOND
	NumRegisters
)

// Condition flags. Exactly one holds at any time after initialization.
const (
	FlagPOS uint16 = 1 << 0
	FlagZRO uint16 = 1 << 1
	FlagNEG uint16 = 1 << 2
)

// Registers is the LC-3 register file.
type Registers struct {
	Reg [NumRegisters]uint16
}

// Get returns the current value of register r.
func (r *Registers) Get(reg int) uint16 {
	return r.Reg[reg]
}

// Set writes value into register reg, masked to 16 bits.
func (r *Registers) Set(reg int, value uint16) {
	r.Reg[reg] = value
}

// PC returns the program counter.
func (r *Registers) PC() uint16 {
	return r.Reg[RPC]
}

// SetPC sets the program counter.
func (r *Registers) SetPC(value uint16) {
	r.Reg[RPC] = value
}

// IncrementPC advances the program counter by one word, wrapping at 16 bits.
func (r *Registers) IncrementPC() {
	r.Reg[RPC] = word.Mask(uint32(r.Reg[RPC]) + 1)
}

// UpdateFlags sets RCOND from the sign of a general register's new value.
// ADD, AND, NOT, LD, LDI, LDR, LEA and TRAP GETC/IN call this; the R7
// link written by JSR/JSRR and TRAP leaves RCOND unchanged.
func (r *Registers) UpdateFlags(reg int) {
	switch word.ClassOf(r.Reg[reg]) {
	case word.Zero:
		r.Reg[RCOND] = FlagZRO
	case word.Negative:
		r.Reg[RCOND] = FlagNEG
	default:
		r.Reg[RCOND] = FlagPOS
	}
}

// Reset zeroes the general registers and sets RCOND to ZRO, the way
// init() does before RPC is assigned its start address.
func (r *Registers) Reset() {
	for i := range r.Reg {
		r.Reg[i] = 0
	}
	r.Reg[RCOND] = FlagZRO
}
