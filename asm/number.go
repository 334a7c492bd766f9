package asm

import (
	"strconv"
	"strings"
)

// ParseNumber parses a decimal, 0x-prefixed hexadecimal or 0b-prefixed
// binary literal. The result is never negative.
func ParseNumber(value string) (int64, error) {
	base, digits := SplitNumber(value)
	n, err := strconv.ParseUint(digits, base, 32)
	return int64(n), err
}

// SplitNumber splits the given number into its base and the digits
// following the prefix. Defaults to base-10 if there is no prefix.
func SplitNumber(v string) (int, string) {
	lower := strings.ToLower(v)

	switch {
	case strings.HasPrefix(lower, "0x"):
		return 16, v[2:]
	case strings.HasPrefix(lower, "0b"):
		return 2, v[2:]
	}

	return 10, v
}
