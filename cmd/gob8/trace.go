package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/hexaflex/gob8/asm/dbg"
	"github.com/hexaflex/gob8/vm"
)

// tracer prints instruction trace data. Output can be toggled
// on and off through config.PrintTrace.
type tracer struct {
	config *Config
	debug  *dbg.Debug // Optional source context.
	out    io.Writer
}

func (t *tracer) trace(i *vm.Instruction) {
	if !t.config.PrintTrace {
		return
	}

	var sb strings.Builder
	sb.Grow(80)
	sb.WriteString(i.String())

	// Add source context if it is available.
	if t.debug != nil {
		if sym := t.debug.Find(i.PC); sym != nil {
			pad(&sb, 32)
			fmt.Fprintf(&sb, " %s:%d:%d", t.debug.File, sym.Line+1, sym.Col+1)
		}

		if name, ok := t.debug.LabelAt(i.PC); ok {
			fmt.Fprintf(&sb, " (%s)", name)
		}
	}

	fmt.Fprintln(t.out, sb.String())
}

// loadDebug reads the debug symbols stored in the given file.
// Returns nil without error if the file does not exist.
func loadDebug(path string) (*dbg.Debug, error) {
	fd, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to open debug symbols")
	}

	defer fd.Close()

	var d dbg.Debug
	if err := d.Load(fd); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return &d, nil
}

// pad pads sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()
