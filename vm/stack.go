package vm

import "github.com/hexaflex/gob8/arch"

// The call stack lives at the top of memory and grows downward.
// sp holds the address of the highest free byte. Each entry occupies
// the two bytes directly above sp, stored big-endian.

// push pushes the given value onto the call stack and updates sp.
func (m *Machine) push(value int) error {
	if m.sp < arch.StackEntry-1 {
		return ErrStackOverflow
	}

	if err := m.mem.SetU16(m.sp-1, uint16(value)); err != nil {
		return err
	}

	m.sp -= arch.StackEntry
	return nil
}

// pop returns the top value from the call stack and updates sp.
func (m *Machine) pop() (int, error) {
	if m.sp >= arch.StackTop {
		return 0, ErrStackUnderflow
	}

	v, err := m.mem.U16(m.sp + 1)
	if err != nil {
		return 0, err
	}

	m.sp += arch.StackEntry
	return int(v), nil
}

// StackDepth returns the number of entries on the call stack.
func (m *Machine) StackDepth() int {
	return (arch.StackTop - m.sp) / arch.StackEntry
}
