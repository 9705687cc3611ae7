package vm_test

import (
	"strings"
	"testing"

	"github.com/lookbusy1344/lc3-toolchain/ioprovider"
	"github.com/lookbusy1344/lc3-toolchain/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVM(t *testing.T) (*vm.VM, *ioprovider.ScriptedIO) {
	t.Helper()
	io := ioprovider.NewScriptedIO("")
	return vm.New(io), io
}

func TestVM_AddImmediate(t *testing.T) {
	m, _ := newVM(t)
	pc := m.Reg.PC()
	m.Mem.Write(pc, 0x12A3) // ADD R1, R2, #3
	require.NoError(t, m.Step())
	assert.Equal(t, uint16(3), m.Reg.Get(vm.R1))
	assert.Equal(t, uint16(vm.FlagPOS), m.Reg.Get(vm.RCOND))
}

func TestVM_AddWrapsToZeroSetsZeroFlag(t *testing.T) {
	m, _ := newVM(t)
	pc := m.Reg.PC()
	m.Reg.Set(vm.R2, 0xFFFF) // -1
	m.Mem.Write(pc, 0x10A1)  // ADD R0, R2, #1 -> 0
	require.NoError(t, m.Step())
	assert.Equal(t, uint16(0), m.Reg.Get(vm.R0))
	assert.Equal(t, uint16(vm.FlagZRO), m.Reg.Get(vm.RCOND))
}

func TestVM_BranchTaken(t *testing.T) {
	m, _ := newVM(t)
	start := m.Reg.PC()
	m.Reg.Reg[vm.RCOND] = vm.FlagZRO
	m.Mem.Write(start, 0x0402) // BRz #2
	require.NoError(t, m.Step())
	assert.Equal(t, start+1+2, m.Reg.PC())
}

func TestVM_BranchNotTaken(t *testing.T) {
	m, _ := newVM(t)
	start := m.Reg.PC()
	m.Reg.Reg[vm.RCOND] = vm.FlagPOS
	m.Mem.Write(start, 0x0402) // BRz #2, RCOND is POS
	require.NoError(t, m.Step())
	assert.Equal(t, start+1, m.Reg.PC())
}

func TestVM_Halt(t *testing.T) {
	m, io := newVM(t)
	m.Mem.Write(m.Reg.PC(), 0xF025)
	require.NoError(t, m.Step())
	assert.True(t, m.Halted)
	assert.Contains(t, io.Output.String(), "HALT")
}

func TestVM_ReservedOpcodeIsFatal(t *testing.T) {
	m, _ := newVM(t)
	m.Mem.Write(m.Reg.PC(), 0xD000) // RES
	err := m.Step()
	require.Error(t, err)
	var decodeErr *vm.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestVM_TrapPuts(t *testing.T) {
	m, io := newVM(t)
	base := uint16(0x4000)
	m.Reg.Set(vm.R0, base)
	for i, c := range "Hi" {
		m.Mem.Write(base+uint16(i), uint16(c))
	}
	m.Mem.Write(base+2, 0)
	m.Mem.Write(m.Reg.PC(), 0xF022) // TRAP PUTS
	require.NoError(t, m.Step())
	assert.Equal(t, "Hi", io.Output.String())
}

func TestVM_RunRespectsMaxCycles(t *testing.T) {
	m, _ := newVM(t)
	pc := m.Reg.PC()
	m.Mem.Write(pc, 0x1021)   // ADD R0, R0, #1
	m.Mem.Write(pc+1, 0x0FFE) // BR pc (unconditional, offset -2): infinite loop
	err := m.Run(5)
	require.NoError(t, err)
	assert.False(t, m.Halted)
	assert.Equal(t, uint64(5), m.Stats.Cycles)
}

func TestVM_TraceRecordsStep(t *testing.T) {
	m, _ := newVM(t)
	var buf strings.Builder
	m.Trace = vm.NewTrace(&buf, 0)

	pc := m.Reg.PC()
	m.Mem.Write(pc, 0x12A3) // ADD R1, R2, #3
	require.NoError(t, m.Step())

	out := buf.String()
	assert.Contains(t, out, "0x12a3")
	assert.Contains(t, out, "R1=0x0003")
}

func TestVM_TraceMaxEntriesCapsOutput(t *testing.T) {
	m, _ := newVM(t)
	var buf strings.Builder
	m.Trace = vm.NewTrace(&buf, 1)

	pc := m.Reg.PC()
	m.Mem.Write(pc, 0x1021)   // ADD R0, R0, #1
	m.Mem.Write(pc+1, 0x1021) // ADD R0, R0, #1
	require.NoError(t, m.Step())
	require.NoError(t, m.Step())

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestVM_ResetHonorsLoadedOrigin(t *testing.T) {
	m, _ := newVM(t)
	m.NoteLoad(0x5000)
	m.Reset()
	assert.Equal(t, uint16(0x5000), m.Reg.PC())
}

func TestVM_ResetDefaultsToStartAddress(t *testing.T) {
	m, _ := newVM(t)
	m.Reset()
	assert.Equal(t, vm.DefaultStartAddress, m.Reg.PC())
}
