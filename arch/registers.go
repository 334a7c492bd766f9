package arch

import "fmt"

// FlagRegister is the register holding the ALU flags.
const FlagRegister = 0xf

// Bits in the flag register.
const (
	FlagCarry byte = 1 << iota // Result did not fit in a byte.
	FlagSign                   // Result exceeds the signed byte range.
	FlagZero                   // Low byte of the result is zero.
)

// IsRegister returns true if the given name represents a known register.
func IsRegister(name string) bool {
	return RegisterIndex(name) > -1
}

// RegisterIndex returns the index for the given register: v0-vf,
// case-insensitive. Returns -1 if the name is not recognized.
func RegisterIndex(name string) int {
	if len(name) != 2 || (name[0] != 'v' && name[0] != 'V') {
		return -1
	}

	switch c := name[1]; {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}

	return -1
}

// RegisterName returns the name associated with the given register index.
// Returns "" if the index is not recognized.
func RegisterName(n int) string {
	if n < 0 || n >= RegisterCount {
		return ""
	}
	return fmt.Sprintf("v%x", n)
}
