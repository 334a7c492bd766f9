package vm

import (
	"fmt"

	"github.com/hexaflex/gob8/arch"
	"github.com/pkg/errors"
)

// Known runtime fault causes.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrOutOfBounds    = errors.New("address out of bounds")
	ErrInvalidKey     = errors.New("invalid key index")
)

// Fault defines a runtime error raised by a single instruction.
// The machine state is left as it was before the instruction executed.
type Fault struct {
	PC     int         // Address of the faulting instruction.
	Opcode arch.Opcode // The faulting instruction.
	Err    error       // Underlying cause.
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%04x: %s: %v", f.PC, arch.Disassemble(f.Opcode), f.Err)
}

// Cause returns the underlying cause of the fault.
func (f *Fault) Cause() error {
	return f.Err
}

// Unwrap returns the underlying cause of the fault.
func (f *Fault) Unwrap() error {
	return f.Err
}
