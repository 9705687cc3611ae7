package vm_test

import (
	"testing"

	"github.com/lookbusy1344/lc3-toolchain/ioprovider"
	"github.com/lookbusy1344/lc3-toolchain/vm"
	"github.com/stretchr/testify/assert"
)

func TestMemory_KBSRReportsReadyOnlyWhenCharacterAvailable(t *testing.T) {
	io := ioprovider.NewScriptedIO("")
	mem := vm.NewMemory(io)

	assert.Equal(t, uint16(0x0000), mem.Read(vm.MMIOKBSR))
}

func TestMemory_KBSRThenKBDRConsumesBufferedCharacterOnce(t *testing.T) {
	io := ioprovider.NewScriptedIO("A")
	mem := vm.NewMemory(io)

	assert.Equal(t, uint16(0x8000), mem.Read(vm.MMIOKBSR))
	assert.Equal(t, uint16('A'), mem.Read(vm.MMIOKBDR))

	// The character was consumed: a second poll finds nothing ready.
	assert.Equal(t, uint16(0x0000), mem.Read(vm.MMIOKBSR))
}

func TestMemory_PollingKBSRRepeatedlyDoesNotLoseTheCharacter(t *testing.T) {
	io := ioprovider.NewScriptedIO("Z")
	mem := vm.NewMemory(io)

	// Multiple KBSR polls before the program ever reads KBDR must not
	// drop the character the first poll observed (spec.md §9 open
	// question on buffering a single pending character).
	assert.Equal(t, uint16(0x8000), mem.Read(vm.MMIOKBSR))
	assert.Equal(t, uint16(0x8000), mem.Read(vm.MMIOKBSR))
	assert.Equal(t, uint16('Z'), mem.Read(vm.MMIOKBDR))
}

func TestVM_TrapGetcReadsFromKeyboard(t *testing.T) {
	io := ioprovider.NewScriptedIO("Q")
	m := vm.New(io)
	m.Mem.Write(m.Reg.PC(), 0xF020) // TRAP GETC

	err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16('Q'), m.Reg.Get(vm.R0))
	assert.Equal(t, uint16(vm.FlagPOS), m.Reg.Get(vm.RCOND))
}

func TestVM_TrapInPromptsEchoesAndReadsCharacter(t *testing.T) {
	io := ioprovider.NewScriptedIO("k")
	m := vm.New(io)
	m.Mem.Write(m.Reg.PC(), 0xF023) // TRAP IN

	err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16('k'), m.Reg.Get(vm.R0))
	assert.Contains(t, io.Output.String(), "Enter a character: ")
	assert.Contains(t, io.Output.String(), "k")
}
