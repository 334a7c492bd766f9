package asm

import "fmt"

// Position defines a source position. Line and Col are 0-based.
type Position struct {
	File string // Source file name; may be empty.
	Line int    // Line index.
	Col  int    // Column index in bytes.
}

// String returns the position in its 1-based, human readable form.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("line %d, column %d", p.Line+1, p.Col+1)
	}
	return fmt.Sprintf("%s: line %d, column %d", p.File, p.Line+1, p.Col+1)
}

// Error defines a build error with source context.
type Error struct {
	Pos Position
	Msg string
}

// newError creates a new, formatted error message with the given source context.
func newError(pos Position, f string, argv ...interface{}) *Error {
	return &Error{
		Pos: pos,
		Msg: fmt.Sprintf(f, argv...),
	}
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}
