// Package dbg defines the debug symbol type produced by the assembler,
// as well as an encoder and decoder for its file format.
package dbg

import (
	"compress/gzip"
	"fmt"
	"io"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Debug defines the debug symbols for a single program.
type Debug struct {
	File    string   // Name of the source file the program was built from.
	Symbols []Symbol // Per-instruction source context, ordered by address.
	Labels  []Label  // Label table, ordered by address.
}

// Symbol defines the source context for one instruction or data directive.
type Symbol struct {
	Address int // Address of the first byte emitted for the source line.
	Line    int // 0-based line index.
	Col     int // 0-based column of the instruction.
}

// Label defines a named address.
type Label struct {
	Name    string
	Address int
}

// New creates debug data for the given file.
func New(file string) *Debug {
	return &Debug{File: file}
}

// Find returns the symbol associated with the given address.
// Returns nil if there is none.
func (d *Debug) Find(addr int) *Symbol {
	i := sort.Search(len(d.Symbols), func(i int) bool {
		return d.Symbols[i].Address >= addr
	})
	if i < len(d.Symbols) && d.Symbols[i].Address == addr {
		return &d.Symbols[i]
	}
	return nil
}

// LabelAt returns the first label defined at addr.
func (d *Debug) LabelAt(addr int) (string, bool) {
	for _, l := range d.Labels {
		if l.Address == addr {
			return l.Name, true
		}
	}
	return "", false
}

// SetLabels replaces the label table with the contents of m.
func (d *Debug) SetLabels(m map[string]int) {
	d.Labels = d.Labels[:0]
	for name, addr := range m {
		d.Labels = append(d.Labels, Label{Name: name, Address: addr})
	}

	sort.Slice(d.Labels, func(i, j int) bool {
		a, b := d.Labels[i], d.Labels[j]
		if a.Address == b.Address {
			return a.Name < b.Name
		}
		return a.Address < b.Address
	})
}

// Load reads debug data from the given stream.
func (d *Debug) Load(r io.Reader) (err error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return errors.Wrapf(err, "dbg: invalid file format")
	}

	defer gz.Close()
	defer recoverOnPanic(&err)

	d.File = string(readBytes(gz))

	d.Symbols = make([]Symbol, readU32(gz))
	for i := range d.Symbols {
		d.Symbols[i].read(gz)
	}

	d.Labels = make([]Label, readU32(gz))
	for i := range d.Labels {
		d.Labels[i].read(gz)
	}

	return
}

// Save writes debug data to the given stream.
func (d *Debug) Save(w io.Writer) (err error) {
	defer recoverOnPanic(&err)

	gz := gzip.NewWriter(w)
	defer gz.Close()

	writeBytes(gz, []byte(d.File))

	writeU32(gz, uint32(len(d.Symbols)))
	for i := range d.Symbols {
		d.Symbols[i].write(gz)
	}

	writeU32(gz, uint32(len(d.Labels)))
	for i := range d.Labels {
		d.Labels[i].write(gz)
	}

	return
}

// String returns a human-readable dump of the debug data.
func (d *Debug) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Source file: %s\n", d.File)

	fmt.Fprintf(&sb, "Labels (%d):\n", len(d.Labels))
	for _, v := range d.Labels {
		fmt.Fprintf(&sb, " %03x: %s\n", v.Address, v.Name)
	}

	fmt.Fprintf(&sb, "Debug symbols (%d):\n", len(d.Symbols))
	for _, v := range d.Symbols {
		fmt.Fprintf(&sb, " %03x: Line: %d, Col: %d\n", v.Address, v.Line+1, v.Col+1)
	}

	return sb.String()
}

func (s *Symbol) read(r io.Reader) {
	s.Address = int(readU32(r))
	s.Line = int(readU32(r))
	s.Col = int(readU16(r))
}

func (s *Symbol) write(w io.Writer) {
	writeU32(w, uint32(s.Address))
	writeU32(w, uint32(s.Line))
	writeU16(w, uint16(s.Col))
}

func (l *Label) read(r io.Reader) {
	l.Name = string(readBytes(r))
	l.Address = int(readU32(r))
}

func (l *Label) write(w io.Writer) {
	writeBytes(w, []byte(l.Name))
	writeU32(w, uint32(l.Address))
}

func recoverOnPanic(err *error) {
	x := recover()
	if x == nil {
		return
	}

	switch tx := x.(type) {
	case runtime.Error:
		panic(tx)
	case error:
		*err = errors.Wrapf(tx, "dbg")
	default:
		*err = fmt.Errorf("dbg: %v", tx)
	}
}
