package arch

// OperandKind defines the kind of value an instruction operand accepts.
type OperandKind byte

// Known operand kinds.
const (
	Register  OperandKind = iota // vx
	Register0                    // v0 only; selects the indexed jump.
	Byte                         // 8-bit immediate.
	Address                      // 12-bit address or label reference.
	Height                       // Sprite height, 1-16, stored as height-1.
)

func (k OperandKind) String() string {
	switch k {
	case Register:
		return "register"
	case Register0:
		return "v0"
	case Byte:
		return "byte"
	case Address:
		return "address"
	case Height:
		return "sprite height"
	}
	return ""
}

// Limit returns the largest value an operand of this kind can hold.
func (k OperandKind) Limit() int {
	switch k {
	case Register, Register0:
		return RegisterCount - 1
	case Byte:
		return 0xff
	case Address:
		return AddressMask
	case Height:
		return MaxSpriteRows
	}
	return 0
}
