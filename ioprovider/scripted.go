package ioprovider

import (
	"errors"
	"strings"
)

// ScriptedIO is a deterministic Provider for tests: GetChar drains a
// fixed input queue instead of blocking, and every byte written is
// captured for later inspection.
type ScriptedIO struct {
	input  []byte
	pos    int
	Output strings.Builder
}

// NewScriptedIO creates a ScriptedIO whose GetChar calls will return
// the bytes of input in order.
func NewScriptedIO(input string) *ScriptedIO {
	return &ScriptedIO{input: []byte(input)}
}

// ErrNoMoreInput is returned once the scripted input queue is exhausted.
var ErrNoMoreInput = errors.New("ioprovider: scripted input exhausted")

func (s *ScriptedIO) GetChar() (byte, error) {
	if s.pos >= len(s.input) {
		return 0, ErrNoMoreInput
	}
	b := s.input[s.pos]
	s.pos++
	return b, nil
}

// Poll reports whether a character is available without consuming it,
// the non-blocking counterpart GetChar needs to back a KBSR read.
func (s *ScriptedIO) Poll() bool {
	return s.pos < len(s.input)
}

func (s *ScriptedIO) PutChar(b byte) error {
	s.Output.WriteByte(b)
	return nil
}

func (s *ScriptedIO) Print(str string) error {
	s.Output.WriteString(str)
	return nil
}

var _ Provider = (*ScriptedIO)(nil)
