package assembler

import "github.com/lookbusy1344/lc3-toolchain/word"

// Encode runs pass 2 over prog: resolves every label reference against
// prog.Symbols, packs each statement's fields into a 16-bit word, and
// returns the full object image with the origin as its first word.
func Encode(prog *Program) ([]uint16, error) {
	words := make([]uint16, 0, len(prog.Stmts)+1)
	words = append(words, prog.Origin)

	for _, stmt := range prog.Stmts {
		switch stmt.Kind {
		case StmtFill:
			v, err := resolveFillOperand(prog.Symbols, stmt.Operands[0])
			if err != nil {
				return nil, err
			}
			words = append(words, word.Mask(uint32(v)))

		case StmtBlkw:
			for i := uint16(0); i < stmt.Count; i++ {
				words = append(words, 0)
			}

		case StmtStringz:
			for i := 0; i < len(stmt.Text); i++ {
				words = append(words, uint16(stmt.Text[i]))
			}
			words = append(words, 0)

		case StmtInstruction:
			w, err := encodeInstruction(prog.Symbols, stmt)
			if err != nil {
				return nil, err
			}
			words = append(words, w)
		}
	}

	return words, nil
}

// resolveOperand turns an operand into its numeric value: looks up a
// label's address (computing a PC-relative offset when relative is
// true) or returns a literal's parsed value, then range-checks it
// against a field of bitCount bits, signed or unsigned as the field
// demands (e.g. TRAP's vector is unsigned, every offset is signed).
func resolveOperand(symbols *SymbolTable, op operandValue, instrAddr uint16, bitCount int, relative, signed bool) (int64, error) {
	var v int64
	if op.Kind == TokenLabel {
		addr, ok := symbols.Lookup(op.Tok.Text)
		if !ok {
			return 0, newError(op.Tok.Pos, ErrorSymbol, op.Tok.Text, "undefined label %q", op.Tok.Text)
		}
		if relative {
			v = int64(addr) - int64(instrAddr+1)
		} else {
			v = int64(addr)
		}
	} else {
		n, err := parseNumber(op.Tok)
		if err != nil {
			return 0, err
		}
		v = n
	}
	if !fitsField(v, bitCount, signed) {
		return 0, newError(op.Tok.Pos, ErrorRange, op.Tok.Text, "value %d does not fit in a %d-bit field", v, bitCount)
	}
	return v, nil
}

// resolveFillOperand resolves a .FILL operand, which stores a raw
// 16-bit word rather than filling an instruction field: any value
// whose two's-complement pattern fits in 16 bits is accepted, signed
// or unsigned.
func resolveFillOperand(symbols *SymbolTable, op operandValue) (int64, error) {
	var v int64
	if op.Kind == TokenLabel {
		addr, ok := symbols.Lookup(op.Tok.Text)
		if !ok {
			return 0, newError(op.Tok.Pos, ErrorSymbol, op.Tok.Text, "undefined label %q", op.Tok.Text)
		}
		v = int64(addr)
	} else {
		n, err := parseNumber(op.Tok)
		if err != nil {
			return 0, err
		}
		v = n
	}
	if v < -32768 || v > 0xFFFF {
		return 0, newError(op.Tok.Pos, ErrorRange, op.Tok.Text, "value %d does not fit in a 16-bit word", v)
	}
	return v, nil
}

func encodeInstruction(symbols *SymbolTable, stmt Stmt) (uint16, error) {
	addr := stmt.Address
	ops := stmt.Operands

	if isBranchMnemonic(stmt.Mnemonic) {
		off, err := resolveOperand(symbols, ops[0], addr, 9, true, true)
		if err != nil {
			return 0, err
		}
		nzp := branchNZP(stmt.Mnemonic)
		return 0x0000 | nzp<<9 | word.Mask(uint32(off))&0x1FF, nil
	}

	switch stmt.Mnemonic {
	case "ADD", "AND":
		dr := uint16(ops[0].Reg)
		sr1 := uint16(ops[1].Reg)
		base := uint16(0x1000)
		if stmt.Mnemonic == "AND" {
			base = 0x5000
		}
		if ops[2].Kind == TokenRegister {
			sr2 := uint16(ops[2].Reg)
			return base | dr<<9 | sr1<<6 | sr2, nil
		}
		imm, err := resolveOperand(symbols, ops[2], addr, 5, false, true)
		if err != nil {
			return 0, err
		}
		return base | dr<<9 | sr1<<6 | 1<<5 | word.Mask(uint32(imm))&0x1F, nil

	case "NOT":
		dr := uint16(ops[0].Reg)
		sr := uint16(ops[1].Reg)
		return 0x9000 | dr<<9 | sr<<6 | 0x3F, nil

	case "LD":
		return encodePCOffset9(0x2000, symbols, ops, addr)
	case "LDI":
		return encodePCOffset9(0xA000, symbols, ops, addr)
	case "ST":
		return encodePCOffset9(0x3000, symbols, ops, addr)
	case "STI":
		return encodePCOffset9(0xB000, symbols, ops, addr)
	case "LEA":
		return encodePCOffset9(0xE000, symbols, ops, addr)

	case "LDR":
		return encodeOffset6(0x6000, symbols, ops, addr)
	case "STR":
		return encodeOffset6(0x7000, symbols, ops, addr)

	case "JSR":
		off, err := resolveOperand(symbols, ops[0], addr, 11, true, true)
		if err != nil {
			return 0, err
		}
		return 0x4800 | word.Mask(uint32(off))&0x7FF, nil

	case "JSRR":
		baseR := uint16(ops[0].Reg)
		return 0x4000 | baseR<<6, nil

	case "JMP":
		baseR := uint16(ops[0].Reg)
		return 0xC000 | baseR<<6, nil

	case "RET":
		return 0xC1C0, nil

	case "RTI":
		return 0x8000, nil

	case "TRAP":
		// Validated as unsigned 12-bit per spec.md §4.2, then masked
		// into the instruction's 8-bit trapvect8 field.
		vec, err := resolveOperand(symbols, ops[0], addr, 12, false, false)
		if err != nil {
			return 0, err
		}
		return 0xF000 | word.Mask(uint32(vec))&0xFF, nil

	case "GETC":
		return 0xF020, nil
	case "OUT":
		return 0xF021, nil
	case "PUTS":
		return 0xF022, nil
	case "IN":
		return 0xF023, nil
	case "PUTSP":
		return 0xF024, nil
	case "HALT":
		return 0xF025, nil

	default:
		return 0, newError(stmt.Pos, ErrorParse, stmt.Mnemonic, "internal: unknown mnemonic %q during encoding", stmt.Mnemonic)
	}
}

func encodePCOffset9(base uint16, symbols *SymbolTable, ops []operandValue, addr uint16) (uint16, error) {
	dr := uint16(ops[0].Reg)
	off, err := resolveOperand(symbols, ops[1], addr, 9, true, true)
	if err != nil {
		return 0, err
	}
	return base | dr<<9 | word.Mask(uint32(off))&0x1FF, nil
}

func encodeOffset6(base uint16, symbols *SymbolTable, ops []operandValue, addr uint16) (uint16, error) {
	dr := uint16(ops[0].Reg)
	baseR := uint16(ops[1].Reg)
	off, err := resolveOperand(symbols, ops[2], addr, 6, false, true)
	if err != nil {
		return 0, err
	}
	return base | dr<<9 | baseR<<6 | word.Mask(uint32(off))&0x3F, nil
}
