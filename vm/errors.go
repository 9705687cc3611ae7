package vm

import "fmt"

// DecodeError reports a reserved opcode encountered at runtime (RES,
// RTI). The spec treats this as fatal with no recovery.
type DecodeError struct {
	Opcode  Opcode
	Address uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unused op code %#x at address %#04x", e.Opcode, e.Address)
}
