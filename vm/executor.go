package vm

import "github.com/lookbusy1344/lc3-toolchain/word"

// Run executes instructions until HALT or a fatal error, up to
// maxCycles instructions (0 means unbounded). It returns the error
// that stopped execution, or nil if HALT was reached normally or the
// cycle limit ran out (Halted stays false in that case).
func (vm *VM) Run(maxCycles uint64) error {
	for !vm.Halted {
		if maxCycles != 0 && vm.Stats.Cycles >= maxCycles {
			return nil
		}
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step fetches, decodes, and executes exactly one instruction.
func (vm *VM) Step() error {
	pc := vm.Reg.PC()
	instr := vm.Mem.Read(pc)
	vm.Reg.IncrementPC()

	op := decodeOpcode(instr)
	vm.Stats.record(uint16(op))

	var err error
	switch op {
	case OpADD:
		vm.execAddAnd(instr, true)
	case OpAND:
		vm.execAddAnd(instr, false)
	case OpNOT:
		vm.execNot(instr)
	case OpBR:
		vm.execBR(instr)
	case OpJMP:
		vm.execJMP(instr)
	case OpJSR:
		vm.execJSR(instr)
	case OpLD:
		vm.execLD(instr)
	case OpLDI:
		vm.execLDI(instr)
	case OpLDR:
		vm.execLDR(instr)
	case OpLEA:
		vm.execLEA(instr)
	case OpST:
		vm.execST(instr)
	case OpSTI:
		vm.execSTI(instr)
	case OpSTR:
		vm.execSTR(instr)
	case OpTRAP:
		err = vm.execTRAP(instr)
	case OpRES, OpRTI:
		return &DecodeError{Opcode: op, Address: pc}
	}
	vm.Trace.record(vm, pc, instr)
	return err
}

// execAddAnd implements ADD and AND's shared DR,SR1,(SR2|imm5) layout.
func (vm *VM) execAddAnd(instr uint16, isAdd bool) {
	dr := int(instr>>9) & 0x7
	sr1 := int(instr>>6) & 0x7
	var b uint16
	if instr&0x20 != 0 {
		imm5 := word.SignExtend(instr&0x1F, 5)
		b = imm5
	} else {
		sr2 := int(instr) & 0x7
		b = vm.Reg.Get(sr2)
	}
	a := vm.Reg.Get(sr1)
	var result uint16
	if isAdd {
		result = word.Mask(uint32(a) + uint32(b))
	} else {
		result = a & b
	}
	vm.Reg.Set(dr, result)
	vm.Reg.UpdateFlags(dr)
}

func (vm *VM) execNot(instr uint16) {
	dr := int(instr>>9) & 0x7
	sr := int(instr>>6) & 0x7
	vm.Reg.Set(dr, ^vm.Reg.Get(sr))
	vm.Reg.UpdateFlags(dr)
}

func (vm *VM) execBR(instr uint16) {
	nzp := (instr >> 9) & 0x7
	if nzp&vm.Reg.Get(RCOND) != 0 {
		offset := word.SignExtend(instr&0x1FF, 9)
		vm.Reg.SetPC(word.Mask(uint32(vm.Reg.PC()) + uint32(offset)))
	}
}

func (vm *VM) execJMP(instr uint16) {
	baseR := int(instr>>6) & 0x7
	vm.Reg.SetPC(vm.Reg.Get(baseR))
}

func (vm *VM) execJSR(instr uint16) {
	vm.Reg.Set(R7, vm.Reg.PC())
	if instr&0x800 != 0 {
		offset := word.SignExtend(instr&0x7FF, 11)
		vm.Reg.SetPC(word.Mask(uint32(vm.Reg.PC()) + uint32(offset)))
	} else {
		baseR := int(instr>>6) & 0x7
		vm.Reg.SetPC(vm.Reg.Get(baseR))
	}
}

func (vm *VM) execLD(instr uint16) {
	dr := int(instr>>9) & 0x7
	offset := word.SignExtend(instr&0x1FF, 9)
	addr := word.Mask(uint32(vm.Reg.PC()) + uint32(offset))
	vm.Reg.Set(dr, vm.Mem.Read(addr))
	vm.Reg.UpdateFlags(dr)
}

func (vm *VM) execLDI(instr uint16) {
	dr := int(instr>>9) & 0x7
	offset := word.SignExtend(instr&0x1FF, 9)
	ptr := word.Mask(uint32(vm.Reg.PC()) + uint32(offset))
	addr := vm.Mem.Read(ptr)
	vm.Reg.Set(dr, vm.Mem.Read(addr))
	vm.Reg.UpdateFlags(dr)
}

func (vm *VM) execLDR(instr uint16) {
	dr := int(instr>>9) & 0x7
	baseR := int(instr>>6) & 0x7
	offset := word.SignExtend(instr&0x3F, 6)
	addr := word.Mask(uint32(vm.Reg.Get(baseR)) + uint32(offset))
	vm.Reg.Set(dr, vm.Mem.Read(addr))
	vm.Reg.UpdateFlags(dr)
}

func (vm *VM) execLEA(instr uint16) {
	dr := int(instr>>9) & 0x7
	offset := word.SignExtend(instr&0x1FF, 9)
	vm.Reg.Set(dr, word.Mask(uint32(vm.Reg.PC())+uint32(offset)))
	vm.Reg.UpdateFlags(dr)
}

func (vm *VM) execST(instr uint16) {
	sr := int(instr>>9) & 0x7
	offset := word.SignExtend(instr&0x1FF, 9)
	addr := word.Mask(uint32(vm.Reg.PC()) + uint32(offset))
	vm.Mem.Write(addr, vm.Reg.Get(sr))
}

func (vm *VM) execSTI(instr uint16) {
	sr := int(instr>>9) & 0x7
	offset := word.SignExtend(instr&0x1FF, 9)
	ptr := word.Mask(uint32(vm.Reg.PC()) + uint32(offset))
	addr := vm.Mem.Read(ptr)
	vm.Mem.Write(addr, vm.Reg.Get(sr))
}

func (vm *VM) execSTR(instr uint16) {
	sr := int(instr>>9) & 0x7
	baseR := int(instr>>6) & 0x7
	offset := word.SignExtend(instr&0x3F, 6)
	addr := word.Mask(uint32(vm.Reg.Get(baseR)) + uint32(offset))
	vm.Mem.Write(addr, vm.Reg.Get(sr))
}
