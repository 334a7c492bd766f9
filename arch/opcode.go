// Package arch defines the system's instruction set along with
// some related helper functions. Both the assembler and the machine
// encode and decode instructions exclusively through this package.
package arch

import (
	"fmt"
	"strings"
)

// Opcode families, selected by the top nibble of an instruction.
const (
	Control      = 0x0
	Jump         = 0x1
	Call         = 0x2
	SkipEqual    = 0x3
	SkipNotEqual = 0x4
	SkipRegEqual = 0x5
	Load         = 0x6
	AddImmediate = 0x7
	ALU          = 0x8
	SetPointer   = 0xa
	JumpIndexed  = 0xb
	Random       = 0xc
	Draw         = 0xd
	KeySkip      = 0xe
	Special      = 0xf
)

// Literal control opcodes in family 0.
const (
	NOP   Opcode = 0x0000
	CLEAR Opcode = 0x00e0
	HALT  Opcode = 0x00e1
	SWAP  Opcode = 0x00e2
	RET   Opcode = 0x00ee
)

// ALU sub-operations, selected by the low nibble of family 8.
const (
	AluMove   = 0x0
	AluOr     = 0x1
	AluAnd    = 0x2
	AluXor    = 0x3
	AluAdd    = 0x4
	AluSub    = 0x5
	AluRotR   = 0x6
	AluSubRev = 0x7
	AluRotL   = 0x8
)

// Key skip sub-operations, selected by the low byte of family E.
const (
	KeyPressed    = 0x9e
	KeyNotPressed = 0xa1
)

// Special sub-operations, selected by the low byte of family F.
const (
	GetTimer   = 0x07 // Reserved.
	AwaitKey   = 0x0a
	SetTimer   = 0x15 // Reserved.
	SoundTimer = 0x18 // Reserved.
	PointerAdd = 0x1e
)

// Opcode is a single 16-bit instruction.
//
//	family |x      |y      |n
//	family |x      |kk
//	family |nnn
type Opcode uint16

// Family returns the top nibble.
func (op Opcode) Family() int { return int(op >> 12) }

// X returns the second nibble.
func (op Opcode) X() int { return int(op>>8) & 0xf }

// Y returns the third nibble.
func (op Opcode) Y() int { return int(op>>4) & 0xf }

// N returns the low nibble.
func (op Opcode) N() int { return int(op) & 0xf }

// KK returns the low byte.
func (op Opcode) KK() byte { return byte(op) }

// NNN returns the low 12 bits.
func (op Opcode) NNN() int { return int(op) & AddressMask }

// Bytes returns the big-endian memory representation of op.
func (op Opcode) Bytes() [2]byte {
	return [2]byte{byte(op >> 8), byte(op)}
}

// FromBytes builds an opcode from its big-endian memory representation.
func FromBytes(hi, lo byte) Opcode {
	return Opcode(hi)<<8 | Opcode(lo)
}

// EncodeAddress builds a family|nnn opcode.
func EncodeAddress(family, nnn int) Opcode {
	return Opcode(family&0xf)<<12 | Opcode(nnn&AddressMask)
}

// EncodeByte builds a family|x|kk opcode.
func EncodeByte(family, x, kk int) Opcode {
	return Opcode(family&0xf)<<12 | Opcode(x&0xf)<<8 | Opcode(kk&0xff)
}

// EncodeNibbles builds a family|x|y|n opcode.
func EncodeNibbles(family, x, y, n int) Opcode {
	return Opcode(family&0xf)<<12 | Opcode(x&0xf)<<8 | Opcode(y&0xf)<<4 | Opcode(n&0xf)
}

// Form describes one operand signature for a mnemonic and how to encode it.
// Encode receives the operand values in order. Address operands are passed
// as 0 when they still refer to an unresolved label.
type Form struct {
	Operands []OperandKind
	Encode   func(args []int) Opcode
}

func fixed(op Opcode) []Form {
	return []Form{{Encode: func([]int) Opcode { return op }}}
}

func addr(family int) Form {
	return Form{
		Operands: []OperandKind{Address},
		Encode:   func(a []int) Opcode { return EncodeAddress(family, a[0]) },
	}
}

func regByte(family int) Form {
	return Form{
		Operands: []OperandKind{Register, Byte},
		Encode:   func(a []int) Opcode { return EncodeByte(family, a[0], a[1]) },
	}
}

func regReg(family, n int) Form {
	return Form{
		Operands: []OperandKind{Register, Register},
		Encode:   func(a []int) Opcode { return EncodeNibbles(family, a[0], a[1], n) },
	}
}

func reg(family, kk int) Form {
	return Form{
		Operands: []OperandKind{Register},
		Encode:   func(a []int) Opcode { return EncodeByte(family, a[0], kk) },
	}
}

// mnemonics maps lower case mnemonics to their accepted forms.
// Forms are tried in order; the first one whose operand kinds match wins.
var mnemonics = map[string][]Form{
	"nop":   fixed(NOP),
	"clear": fixed(CLEAR),
	"cls":   fixed(CLEAR),
	"hlt":   fixed(HALT),
	"halt":  fixed(HALT),
	"swap":  fixed(SWAP),
	"ret":   fixed(RET),

	"jmp": {
		{
			Operands: []OperandKind{Register0, Address},
			Encode:   func(a []int) Opcode { return EncodeAddress(JumpIndexed, a[1]) },
		},
		addr(Jump),
	},
	"goto": {addr(Jump)},
	"call": {addr(Call)},
	"mem":  {addr(SetPointer)},

	"se":   {regByte(SkipEqual), regReg(SkipRegEqual, 0)},
	"sne":  {regByte(SkipNotEqual)},
	"mov":  {regReg(ALU, AluMove), regByte(Load)},
	"add":  {regReg(ALU, AluAdd), regByte(AddImmediate)},
	"or":   {regReg(ALU, AluOr)},
	"and":  {regReg(ALU, AluAnd)},
	"xor":  {regReg(ALU, AluXor)},
	"sub":  {regReg(ALU, AluSub)},
	"ror":  {regReg(ALU, AluRotR)},
	"rsub": {regReg(ALU, AluSubRev)},
	"rol":  {regReg(ALU, AluRotL)},
	"rand": {regByte(Random)},

	"draw": {{
		Operands: []OperandKind{Register, Register, Height},
		Encode:   func(a []int) Opcode { return EncodeNibbles(Draw, a[0], a[1], a[2]-1) },
	}},

	"skp":      {reg(KeySkip, KeyPressed)},
	"sknp":     {reg(KeySkip, KeyNotPressed)},
	"key":      {reg(Special, AwaitKey)},
	"memadd":   {reg(Special, PointerAdd)},
	"gettimer": {reg(Special, GetTimer)},
	"settimer": {reg(Special, SetTimer)},
	"sound":    {reg(Special, SoundTimer)},
}

// Forms returns the operand forms for the given mnemonic.
// Returns false if the name is not recognized.
func Forms(name string) ([]Form, bool) {
	forms, ok := mnemonics[strings.ToLower(name)]
	return forms, ok
}

// Disassemble returns a human readable form of op, using the
// mnemonics the assembler accepts.
func Disassemble(op Opcode) string {
	x, y := RegisterName(op.X()), RegisterName(op.Y())

	switch op.Family() {
	case Control:
		switch op {
		case NOP:
			return "nop"
		case CLEAR:
			return "clear"
		case HALT:
			return "hlt"
		case SWAP:
			return "swap"
		case RET:
			return "ret"
		}
	case Jump:
		return fmt.Sprintf("jmp 0x%03x", op.NNN())
	case Call:
		return fmt.Sprintf("call 0x%03x", op.NNN())
	case SkipEqual:
		return fmt.Sprintf("se %s, 0x%02x", x, op.KK())
	case SkipNotEqual:
		return fmt.Sprintf("sne %s, 0x%02x", x, op.KK())
	case SkipRegEqual:
		if op.N() == 0 {
			return fmt.Sprintf("se %s, %s", x, y)
		}
	case Load:
		return fmt.Sprintf("mov %s, 0x%02x", x, op.KK())
	case AddImmediate:
		return fmt.Sprintf("add %s, 0x%02x", x, op.KK())
	case ALU:
		if name, ok := aluNames[op.N()]; ok {
			return fmt.Sprintf("%s %s, %s", name, x, y)
		}
	case SetPointer:
		return fmt.Sprintf("mem 0x%03x", op.NNN())
	case JumpIndexed:
		return fmt.Sprintf("jmp v0, 0x%03x", op.NNN())
	case Random:
		return fmt.Sprintf("rand %s, 0x%02x", x, op.KK())
	case Draw:
		return fmt.Sprintf("draw %s, %s, %d", x, y, op.N()+1)
	case KeySkip:
		switch op.KK() {
		case KeyPressed:
			return "skp " + x
		case KeyNotPressed:
			return "sknp " + x
		}
	case Special:
		if name, ok := specialNames[int(op.KK())]; ok {
			return name + " " + x
		}
	}

	return fmt.Sprintf("dw 0x%04x", uint16(op))
}

var aluNames = map[int]string{
	AluMove:   "mov",
	AluOr:     "or",
	AluAnd:    "and",
	AluXor:    "xor",
	AluAdd:    "add",
	AluSub:    "sub",
	AluRotR:   "ror",
	AluSubRev: "rsub",
	AluRotL:   "rol",
}

var specialNames = map[int]string{
	GetTimer:   "gettimer",
	AwaitKey:   "key",
	SetTimer:   "settimer",
	SoundTimer: "sound",
	PointerAdd: "memadd",
}
