// Package asm implements a two-pass assembler which turns source lines
// into a binary program, ready for use on a vm.Machine.
package asm

import (
	"strconv"
	"strings"

	"github.com/hexaflex/gob8/arch"
	"github.com/hexaflex/gob8/asm/dbg"
	"github.com/pkg/errors"
)

// fixup marks an address operand which refers to a label
// that was not yet defined when the operand was encoded.
type fixup struct {
	offset int      // Offset of the first opcode byte in the output.
	pos    Position // Source position of the reference.
}

// Assembler turns preprocessed source lines into bytecode.
type Assembler struct {
	File    string // Optional source name, used in error positions and debug symbols.
	lines   []string
	code    []byte
	labels  map[string]int
	forward map[string][]fixup
	pending []string // Forward referenced labels, in order of first use.
	symbols []dbg.Symbol
}

// New creates a new assembler for the given, preprocessed, source lines.
func New(lines []string) *Assembler {
	return &Assembler{lines: lines}
}

// Lines returns the source lines being assembled.
func (a *Assembler) Lines() []string {
	return a.lines
}

// Bytes returns the assembled program. If Assemble failed, this holds
// whatever was produced up to the failure, with unresolved references
// left unpatched. It is only meant for diagnostics in that case.
func (a *Assembler) Bytes() []byte {
	return a.code
}

// Labels returns a copy of the label table.
func (a *Assembler) Labels() map[string]int {
	out := make(map[string]int, len(a.labels))
	for k, v := range a.labels {
		out[k] = v
	}
	return out
}

// Debug returns the debug symbols for the last assembled program.
func (a *Assembler) Debug() *dbg.Debug {
	d := dbg.New(a.File)
	d.Symbols = append(d.Symbols, a.symbols...)
	d.SetLabels(a.labels)
	return d
}

// Assemble runs both passes over the source. It can be called more than
// once; every call starts from a clean state.
func (a *Assembler) Assemble() error {
	a.code = nil
	a.labels = make(map[string]int)
	a.forward = make(map[string][]fixup)
	a.pending = nil
	a.symbols = nil

	for i, line := range a.lines {
		if err := a.assembleLine(i, line); err != nil {
			return err
		}
	}

	return a.resolve()
}

// resolve patches all forward references with their final label addresses.
func (a *Assembler) resolve() error {
	for _, name := range a.pending {
		refs := a.forward[name]

		addr, ok := a.labels[name]
		if !ok {
			return newError(refs[0].pos, "unknown label %q", name)
		}

		if addr > arch.AddressMask {
			return newError(refs[0].pos, "label %q at 0x%x is out of address range", name, addr)
		}

		for _, ref := range refs {
			a.code[ref.offset] |= byte(addr>>8) & 0xf
			a.code[ref.offset+1] = byte(addr)
		}

		delete(a.forward, name)
	}

	a.pending = nil
	return nil
}

// assembleLine encodes a single source line.
func (a *Assembler) assembleLine(index int, line string) (err error) {
	defer func() {
		x := recover()
		if x == nil {
			return
		}

		if e, ok := x.(*Error); ok {
			err = e
			return
		}

		panic(x)
	}()

	s := newScanner(a.File, index, line)
	if s.atEnd() {
		return nil
	}

	if label, ok := s.readLabel(); ok {
		a.defineLabel(label)
		if s.atEnd() {
			return nil
		}
	}

	word, pos := s.readWord()
	if word == "" || !isIdentStart(word[0]) {
		panic(newError(pos, "expected instruction"))
	}

	switch name := strings.ToLower(word); name {
	case "times":
		a.times(s, pos)
	case "db", "dw":
		a.data(s, pos, name, 1)
	default:
		a.instruction(s, word, pos)
	}

	return nil
}

func (a *Assembler) defineLabel(t token) {
	if arch.IsRegister(t.value) {
		panic(newError(t.pos, "register name %q can not be used as a label", t.value))
	}

	if _, ok := a.labels[t.value]; ok {
		panic(newError(t.pos, "duplicate label %q", t.value))
	}

	a.labels[t.value] = len(a.code)
}

// mark records a debug symbol for the code emitted next.
func (a *Assembler) mark(pos Position) {
	a.symbols = append(a.symbols, dbg.Symbol{
		Address: len(a.code),
		Line:    pos.Line,
		Col:     pos.Col,
	})
}

// times handles `times N db|dw values`.
func (a *Assembler) times(s *scanner, pos Position) {
	count := s.readOperand()
	if count.typ != tokNumber {
		panic(newError(count.pos, "expected repeat count, found %q", count.value))
	}

	n := a.number(count, 0, arch.MemorySize, "repeat count")

	word, wpos := s.readWord()
	switch name := strings.ToLower(word); name {
	case "db", "dw":
		a.data(s, pos, name, n)
	default:
		panic(newError(wpos, "expected db or dw"))
	}
}

// data handles db and dw directives. The value list is emitted count times.
func (a *Assembler) data(s *scanner, pos Position, directive string, count int) {
	values := s.readOperands()
	if len(values) == 0 {
		s.fail("%s expects at least one value", directive)
	}

	var chunk []byte
	for _, v := range values {
		if v.typ != tokNumber {
			panic(newError(v.pos, "expected number, found %q", v.value))
		}

		if directive == "dw" {
			n := a.number(v, 0, 0xffff, "word")
			chunk = append(chunk, byte(n>>8), byte(n))
		} else {
			n := a.number(v, 0, 0xff, "byte")
			chunk = append(chunk, byte(n))
		}
	}

	if count > 0 {
		a.mark(pos)
	}

	for i := 0; i < count; i++ {
		a.code = append(a.code, chunk...)
	}
}

// instruction encodes a mnemonic and its operands.
func (a *Assembler) instruction(s *scanner, name string, pos Position) {
	forms, ok := arch.Forms(name)
	if !ok {
		panic(newError(pos, "unknown instruction %q", name))
	}

	operands := s.readOperands()
	form := matchForm(forms, name, operands, s.position())
	offset := len(a.code)

	args := make([]int, len(operands))
	for i, kind := range form.Operands {
		args[i] = a.operand(kind, operands[i], offset)
	}

	a.mark(pos)
	b := form.Encode(args).Bytes()
	a.code = append(a.code, b[0], b[1])
}

// operand returns the encodable value for the given operand.
func (a *Assembler) operand(kind arch.OperandKind, t token, offset int) int {
	switch kind {
	case arch.Register, arch.Register0:
		return arch.RegisterIndex(t.value)
	case arch.Height:
		return a.number(t, 1, kind.Limit(), kind.String())
	case arch.Address:
		if t.typ == tokIdent {
			return a.reference(t, offset)
		}
	}
	return a.number(t, 0, kind.Limit(), kind.String())
}

// reference returns the address of the given label. If it is not yet known,
// the operand is recorded for patching and 0 is returned.
func (a *Assembler) reference(t token, offset int) int {
	if addr, ok := a.labels[t.value]; ok {
		if addr > arch.AddressMask {
			panic(newError(t.pos, "label %q at 0x%x is out of address range", t.value, addr))
		}
		return addr
	}

	if _, ok := a.forward[t.value]; !ok {
		a.pending = append(a.pending, t.value)
	}

	a.forward[t.value] = append(a.forward[t.value], fixup{offset: offset, pos: t.pos})
	return 0
}

// number parses t and ensures it lies in the range [min, max].
func (a *Assembler) number(t token, min, max int, what string) int {
	n, err := ParseNumber(t.value)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic(newError(t.pos, "invalid number %q", t.value))
	}

	if err != nil || n < int64(min) || n > int64(max) {
		panic(newError(t.pos, "%s %s out of range (%d-%d)", what, t.value, min, max))
	}

	return int(n)
}

// matchForm returns the first form accepting the given operands.
// end is the position of the end of the line.
func matchForm(forms []arch.Form, name string, operands []token, end Position) arch.Form {
	var candidate *arch.Form
	var most int

	for i := range forms {
		f := &forms[i]
		if len(f.Operands) > most {
			most = len(f.Operands)
		}

		if len(f.Operands) != len(operands) {
			continue
		}

		if mismatch(f.Operands, operands) == -1 {
			return *f
		}

		if candidate == nil {
			candidate = f
		}
	}

	if candidate != nil {
		i := mismatch(candidate.Operands, operands)
		panic(newError(operands[i].pos, "%s: expected %s, found %q", name, candidate.Operands[i], operands[i].value))
	}

	if len(operands) > most {
		panic(newError(operands[most].pos, "unexpected %q", operands[most].value))
	}

	panic(newError(end, "%s: missing operand", name))
}

// mismatch returns the index of the first operand not accepted by kinds,
// or -1 if all are accepted.
func mismatch(kinds []arch.OperandKind, operands []token) int {
	for i, kind := range kinds {
		var ok bool

		switch t := operands[i]; kind {
		case arch.Register:
			ok = t.typ == tokRegister
		case arch.Register0:
			ok = t.typ == tokRegister && arch.RegisterIndex(t.value) == 0
		case arch.Byte, arch.Height:
			ok = t.typ == tokNumber
		case arch.Address:
			ok = t.typ == tokNumber || t.typ == tokIdent
		}

		if !ok {
			return i
		}
	}
	return -1
}
