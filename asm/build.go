package asm

import (
	"io"

	"github.com/pkg/errors"
)

// Build reads all source from r, preprocesses it and assembles it.
// The name is used for error positions and debug symbols.
//
// The assembler is returned along with any assembly error, so the caller
// can still inspect the source lines and partial output.
func Build(r io.Reader, name string) (*Assembler, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "asm: read %s", name)
	}

	a := New(Preprocess(SplitLines(string(data))))
	a.File = name
	return a, a.Assemble()
}
