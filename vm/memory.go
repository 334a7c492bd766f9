package vm

import (
	"github.com/hexaflex/gob8/arch"
	"github.com/pkg/errors"
)

// Memory defines the system's memory bank. Every accessor rejects
// addresses outside the bank with ErrOutOfBounds.
type Memory []byte

// NewMemory creates a zeroed memory bank of arch.MemorySize bytes.
func NewMemory() Memory {
	return make(Memory, arch.MemorySize)
}

// check ensures the n bytes starting at addr lie inside the bank.
func (m Memory) check(addr, n int) error {
	if addr < 0 || addr+n > len(m) {
		return errors.Wrapf(ErrOutOfBounds, "access to 0x%04x", addr)
	}
	return nil
}

// U8 returns the 8-bit value at the given address.
func (m Memory) U8(addr int) (byte, error) {
	if err := m.check(addr, 1); err != nil {
		return 0, err
	}
	return m[addr], nil
}

// SetU8 sets the 8-bit value at the given address.
func (m Memory) SetU8(addr int, value byte) error {
	if err := m.check(addr, 1); err != nil {
		return err
	}
	m[addr] = value
	return nil
}

// U16 returns the big-endian 16-bit value at the given address.
func (m Memory) U16(addr int) (uint16, error) {
	if err := m.check(addr, 2); err != nil {
		return 0, err
	}
	return uint16(m[addr])<<8 | uint16(m[addr+1]), nil
}

// SetU16 sets the big-endian 16-bit value at the given address.
func (m Memory) SetU16(addr int, value uint16) error {
	if err := m.check(addr, 2); err != nil {
		return err
	}
	m[addr] = byte(value >> 8)
	m[addr+1] = byte(value)
	return nil
}

// Write writes len(p) bytes from p into memory, starting at the given address.
func (m Memory) Write(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil {
		return err
	}
	copy(m[addr:], p)
	return nil
}

// Read reads len(p) bytes from memory into p, starting at the given address.
func (m Memory) Read(addr int, p []byte) error {
	if err := m.check(addr, len(p)); err != nil {
		return err
	}
	copy(p, m[addr:])
	return nil
}

// clear zeroes the bank.
func (m Memory) clear() {
	for i := range m {
		m[i] = 0
	}
}
