package vm

import "github.com/lookbusy1344/lc3-toolchain/ioprovider"

// DefaultStartAddress is the PC Reset uses when no object image has
// been loaded.
const DefaultStartAddress uint16 = 0x3000

// VM is one LC-3 machine instance: registers, memory, and the I/O
// provider standing in for the console. Created once per run by New,
// mutated by Step/Run, released implicitly at HALT.
type VM struct {
	Reg    Registers
	Mem    *Memory
	IO     ioprovider.Provider
	Halted bool

	// LoadedOrigin is the origin word of the most recently loaded
	// object image, or 0 if none has been loaded. Reset honors it
	// instead of the fixed 0x3000 when set (SPEC_FULL.md item 2).
	LoadedOrigin    uint16
	haveLoadedImage bool

	Stats Statistics

	// Trace is an optional per-step execution log. Nil disables
	// tracing entirely; Step only touches it when non-nil.
	Trace *Trace
}

// New creates a VM wired to the given I/O provider and resets it to
// its initial state.
func New(io ioprovider.Provider) *VM {
	vm := &VM{IO: io}
	vm.Mem = NewMemory(io)
	vm.Reset()
	return vm
}

// NoteLoad records the origin of a freshly loaded image so Reset can
// honor it.
func (vm *VM) NoteLoad(origin uint16) {
	vm.LoadedOrigin = origin
	vm.haveLoadedImage = true
}

// Reset re-initializes registers and run state: RCOND <- ZRO, RPC <-
// the loaded image's origin if one has been loaded, else 0x3000.
func (vm *VM) Reset() {
	vm.Reg.Reset()
	if vm.haveLoadedImage {
		vm.Reg.SetPC(vm.LoadedOrigin)
	} else {
		vm.Reg.SetPC(DefaultStartAddress)
	}
	vm.Halted = false
	vm.Stats = Statistics{}
}
