package assembler

import "strings"

// StmtKind distinguishes what occupies a location-counter slot.
type StmtKind int

const (
	StmtInstruction StmtKind = iota
	StmtFill
	StmtStringz
	StmtBlkw
)

// Stmt is one piece of emitted program content: an instruction or a
// data directive, already assigned its absolute address by pass 1.
type Stmt struct {
	Kind     StmtKind
	Address  uint16
	Mnemonic string // uppercased opcode text, for StmtInstruction
	Operands []operandValue
	Text     string // decoded string, for StmtStringz
	Count    uint16 // repeat count, for StmtBlkw
	Pos      Position
}

// Program is the result of pass 1: the statements in source order with
// their addresses resolved, the origin header, and the completed
// symbol table pass 2 will read from.
type Program struct {
	Origin   uint16
	Stmts    []Stmt
	Symbols  *SymbolTable
	Warnings ErrorList
}

// Parse runs the lexer then pass 1 (location-counter walk and symbol
// table construction) over src, implementing spec.md §4.2. filename is
// threaded into every diagnostic's Position and is typically the path
// the caller read src from; it may be empty.
func Parse(filename, src string) (*Program, error) {
	lex := NewLexer(filename, src)
	tokens, err := lex.Lex()
	if err != nil {
		return nil, attachContext(err, src)
	}
	prog, err := parseTokens(tokens)
	if err != nil {
		return nil, attachContext(err, src)
	}
	return prog, nil
}

// attachContext fills in Error.Context with the source line the
// error's position points at, the way the teacher's
// parser.NewErrorWithContext does for its parser errors.
func attachContext(err error, src string) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	e.Context = sourceLine(src, e.Pos.Line)
	return e
}

// sourceLine returns the 1-indexed line of src, or "" if line is out
// of range (e.g. an EOF position past the last line).
func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

type parserState struct {
	tokens     []Token
	idx        int
	lc         uint16
	open       bool
	segs       int
	program    *Program
	referenced map[string]bool
}

func parseTokens(tokens []Token) (*Program, error) {
	p := &parserState{
		tokens:     tokens,
		program:    &Program{Symbols: NewSymbolTable()},
		referenced: make(map[string]bool),
	}

	for {
		tok := p.tokens[p.idx]
		switch tok.Kind {
		case TokenEOF:
			if p.open {
				return nil, newError(tok.Pos, ErrorParse, "", "missing .END before end of file")
			}
			p.collectUnusedLabelWarnings()
			return p.program, nil

		case TokenNewLine:
			p.idx++

		case TokenORIG:
			if err := p.handleOrig(); err != nil {
				return nil, err
			}

		case TokenEND:
			if !p.open {
				return nil, newError(tok.Pos, ErrorParse, "", ".END without a matching .ORIG")
			}
			p.open = false
			p.idx++

		case TokenLabel:
			if !p.open {
				return nil, newError(tok.Pos, ErrorParse, tok.Text, "label outside of a .ORIG/.END block")
			}
			if err := p.program.Symbols.Define(tok.Text, p.lc, tok.Pos); err != nil {
				return nil, err
			}
			p.idx++

		case TokenFILL:
			if err := p.handleFill(); err != nil {
				return nil, err
			}

		case TokenSTRINGZ:
			if err := p.handleStringz(); err != nil {
				return nil, err
			}

		case TokenBLKW:
			if err := p.handleBlkw(); err != nil {
				return nil, err
			}

		case TokenOpcode:
			if err := p.handleInstruction(); err != nil {
				return nil, err
			}

		default:
			return nil, newError(tok.Pos, ErrorParse, tok.Text, "unexpected token %s", tok.Kind)
		}
	}
}

func (p *parserState) cur() Token { return p.tokens[p.idx] }

func (p *parserState) requireOpen() error {
	if !p.open {
		return newError(p.cur().Pos, ErrorParse, p.cur().Text, "directive or instruction outside of a .ORIG/.END block")
	}
	return nil
}

func (p *parserState) handleOrig() error {
	pos := p.cur().Pos
	if p.open {
		return newError(pos, ErrorParse, "", "nested .ORIG is not allowed")
	}
	if p.segs >= 1 {
		return newError(pos, ErrorParse, "", "multiple .ORIG segments are not supported")
	}
	p.idx++
	numTok := p.cur()
	if numTok.Kind != TokenDecimal && numTok.Kind != TokenHex && numTok.Kind != TokenBinary {
		return newError(numTok.Pos, ErrorParse, numTok.Text, "expected numeric literal after .ORIG")
	}
	v, err := parseNumber(numTok)
	if err != nil {
		return err
	}
	if !fitsField(v, 16, false) {
		return newError(numTok.Pos, ErrorRange, numTok.Text, ".ORIG address out of 16-bit range")
	}
	p.idx++
	p.lc = uint16(v)
	p.program.Origin = p.lc
	p.segs++
	p.open = true
	return nil
}

func (p *parserState) handleFill() error {
	if err := p.requireOpen(); err != nil {
		return err
	}
	pos := p.cur().Pos
	p.idx++
	operand, err := p.parseOperand(slotLabelOrNum)
	if err != nil {
		return err
	}
	p.program.Stmts = append(p.program.Stmts, Stmt{
		Kind: StmtFill, Address: p.lc, Operands: []operandValue{operand}, Pos: pos,
	})
	p.lc++
	return nil
}

func (p *parserState) handleStringz() error {
	if err := p.requireOpen(); err != nil {
		return err
	}
	pos := p.cur().Pos
	p.idx++
	strTok := p.cur()
	if strTok.Kind != TokenString {
		return newError(strTok.Pos, ErrorParse, strTok.Text, "expected string literal after .STRINGZ")
	}
	p.idx++
	p.program.Stmts = append(p.program.Stmts, Stmt{
		Kind: StmtStringz, Address: p.lc, Text: strTok.Text, Pos: pos,
	})
	p.lc += uint16(len(strTok.Text)) + 1
	return nil
}

func (p *parserState) handleBlkw() error {
	if err := p.requireOpen(); err != nil {
		return err
	}
	pos := p.cur().Pos
	p.idx++
	numTok := p.cur()
	if numTok.Kind != TokenDecimal && numTok.Kind != TokenHex && numTok.Kind != TokenBinary {
		return newError(numTok.Pos, ErrorParse, numTok.Text, "expected numeric literal after .BLKW")
	}
	v, err := parseNumber(numTok)
	if err != nil {
		return err
	}
	if v < 0 || v > 0xFFFF {
		return newError(numTok.Pos, ErrorRange, numTok.Text, ".BLKW count out of range")
	}
	p.idx++
	p.program.Stmts = append(p.program.Stmts, Stmt{
		Kind: StmtBlkw, Address: p.lc, Count: uint16(v), Pos: pos,
	})
	p.lc += uint16(v)
	return nil
}

func (p *parserState) handleInstruction() error {
	if err := p.requireOpen(); err != nil {
		return err
	}
	pos := p.cur().Pos
	mnemonic := strings.ToUpper(p.cur().Text)
	p.idx++

	var slots []slotKind
	if isBranchMnemonic(mnemonic) {
		slots = []slotKind{slotLabelOrNum}
	} else {
		var ok bool
		slots, ok = instrSlots[mnemonic]
		if !ok {
			return newError(pos, ErrorParse, mnemonic, "unknown opcode %q", mnemonic)
		}
	}

	operands := make([]operandValue, 0, len(slots))
	for _, slot := range slots {
		operand, err := p.parseOperand(slot)
		if err != nil {
			return err
		}
		operands = append(operands, operand)
	}

	p.program.Stmts = append(p.program.Stmts, Stmt{
		Kind: StmtInstruction, Address: p.lc, Mnemonic: mnemonic, Operands: operands, Pos: pos,
	})
	p.lc++
	return nil
}

// parseOperand consumes and validates one operand token against slot.
func (p *parserState) parseOperand(slot slotKind) (operandValue, error) {
	tok := p.cur()

	switch slot {
	case slotReg:
		if tok.Kind != TokenRegister {
			return operandValue{}, newError(tok.Pos, ErrorParse, tok.Text, "expected register, got %s", tok.Kind)
		}
		p.idx++
		return operandValue{Kind: TokenRegister, Reg: registerIndex(tok), Tok: tok}, nil

	case slotRegOrImm5:
		if tok.Kind == TokenRegister {
			p.idx++
			return operandValue{Kind: TokenRegister, Reg: registerIndex(tok), Tok: tok}, nil
		}
		return p.parseLiteralOperand(tok, 5, true)

	case slotImm6:
		return p.parseLiteralOperand(tok, 6, true)

	case slotTrapVec:
		// spec.md §4.2: "A TRAP vector must be non-negative (unsigned
		// 12-bit)" — wider than the 8-bit trapvect8 instruction field
		// it ultimately packs into; word.Mask truncates at encode time.
		return p.parseLiteralOperand(tok, 12, false)

	case slotLabelOrNum:
		if tok.Kind == TokenLabel {
			p.referenced[tok.Text] = true
			p.idx++
			return operandValue{Kind: TokenLabel, Tok: tok}, nil
		}
		if tok.Kind == TokenDecimal || tok.Kind == TokenHex || tok.Kind == TokenBinary {
			// Bit width depends on the instruction (9 or 11 bits, or a
			// full 16-bit word for .FILL); the full check happens in
			// pass 2 once we know which field it fills. Here we only
			// confirm it parses as a number.
			if _, err := parseNumber(tok); err != nil {
				return operandValue{}, err
			}
			p.idx++
			return operandValue{Kind: tok.Kind, Tok: tok}, nil
		}
		return operandValue{}, newError(tok.Pos, ErrorParse, tok.Text, "expected label or numeric literal, got %s", tok.Kind)

	default:
		return operandValue{}, newError(tok.Pos, ErrorParse, tok.Text, "internal: unhandled operand slot")
	}
}

func (p *parserState) parseLiteralOperand(tok Token, bitCount int, signed bool) (operandValue, error) {
	if tok.Kind != TokenDecimal && tok.Kind != TokenHex && tok.Kind != TokenBinary {
		return operandValue{}, newError(tok.Pos, ErrorParse, tok.Text, "expected numeric literal, got %s", tok.Kind)
	}
	v, err := parseNumber(tok)
	if err != nil {
		return operandValue{}, err
	}
	if !fitsField(v, bitCount, signed) {
		return operandValue{}, newError(tok.Pos, ErrorRange, tok.Text, "value %d does not fit in a %d-bit field", v, bitCount)
	}
	p.idx++
	return operandValue{Kind: tok.Kind, Tok: tok}, nil
}

// fitsField reports whether v is a legal numeric literal for a field
// of bitCount bits, per spec.md §4.2: a signed field accepts
// [-2^(bitCount-1), 2^bitCount), i.e. both the two's-complement
// negative range and the wider unsigned reading of the same bits
// (word.Mask truncates either representation to the same pattern at
// encode time). An unsigned field accepts [0, 2^bitCount).
func fitsField(v int64, bitCount int, signed bool) bool {
	hi := (int64(1) << bitCount) - 1
	if signed {
		lo := -(int64(1) << (bitCount - 1))
		return v >= lo && v <= hi
	}
	return v >= 0 && v <= hi
}

// collectUnusedLabelWarnings appends a Warning for every label that
// pass 1 defined but no operand ever referenced.
func (p *parserState) collectUnusedLabelWarnings() {
	p.program.Symbols.Each(func(label string, _ uint16, pos Position) {
		if !p.referenced[label] {
			p.program.Warnings.AddWarning(&Warning{Pos: pos, Message: "label \"" + label + "\" is never referenced"})
		}
	})
}
