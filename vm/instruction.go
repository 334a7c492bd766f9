package vm

import (
	"fmt"

	"github.com/hexaflex/gob8/arch"
)

// TraceFunc represents a callback handler for debug trace output.
type TraceFunc func(*Instruction)

// Instruction defines decoded instruction data.
type Instruction struct {
	PC     int         // Instruction address.
	Opcode arch.Opcode // Instruction opcode.
}

func (i *Instruction) String() string {
	return fmt.Sprintf("%03x: %04x %s", i.PC, uint16(i.Opcode), arch.Disassemble(i.Opcode))
}
