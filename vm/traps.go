package vm

import "fmt"

// execTRAP dispatches one of the six TRAP service routines.
func (vm *VM) execTRAP(instr uint16) error {
	vm.Reg.Set(R7, vm.Reg.PC())
	vector := instr & 0xFF
	vm.Stats.recordTrap(vector)

	switch vector {
	case TrapGETC:
		return vm.trapGetc()
	case TrapOUT:
		return vm.trapOut()
	case TrapPUTS:
		return vm.trapPuts()
	case TrapIN:
		return vm.trapIn()
	case TrapPUTSP:
		return vm.trapPutsp()
	case TrapHALT:
		return vm.trapHalt()
	default:
		return fmt.Errorf("unknown TRAP vector %#02x at address %#04x", vector, vm.Reg.PC()-1)
	}
}

func (vm *VM) trapGetc() error {
	b, err := vm.IO.GetChar()
	if err != nil {
		return fmt.Errorf("TRAP GETC: %w", err)
	}
	vm.Reg.Set(R0, uint16(b))
	vm.Reg.UpdateFlags(R0)
	return nil
}

func (vm *VM) trapOut() error {
	return vm.IO.PutChar(byte(vm.Reg.Get(R0) & 0xFF))
}

func (vm *VM) trapPuts() error {
	addr := vm.Reg.Get(R0)
	for {
		c := vm.Mem.ReadRaw(addr)
		if c == 0 {
			break
		}
		if err := vm.IO.PutChar(byte(c)); err != nil {
			return err
		}
		addr++
	}
	return nil
}

func (vm *VM) trapIn() error {
	if err := vm.IO.Print("Enter a character: "); err != nil {
		return err
	}
	b, err := vm.IO.GetChar()
	if err != nil {
		return fmt.Errorf("TRAP IN: %w", err)
	}
	if err := vm.IO.PutChar(b); err != nil {
		return err
	}
	vm.Reg.Set(R0, uint16(b))
	vm.Reg.UpdateFlags(R0)
	return nil
}

func (vm *VM) trapPutsp() error {
	addr := vm.Reg.Get(R0)
	for {
		c := vm.Mem.ReadRaw(addr)
		if c == 0 {
			break
		}
		low := byte(c & 0xFF)
		if err := vm.IO.PutChar(low); err != nil {
			return err
		}
		high := byte(c >> 8)
		if high != 0 {
			if err := vm.IO.PutChar(high); err != nil {
				return err
			}
		}
		addr++
	}
	return nil
}

func (vm *VM) trapHalt() error {
	if err := vm.IO.Print("HALT\n"); err != nil {
		return err
	}
	vm.Halted = true
	return nil
}
