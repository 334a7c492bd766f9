package asm

import "github.com/hexaflex/gob8/arch"

// Known token types.
const (
	tokRegister = 1 + iota
	tokNumber
	tokIdent
)

// token defines a single operand read from source.
type token struct {
	typ   int
	pos   Position
	value string
}

// scanner reads tokens from a single source line.
//
// It breaks out of any read through the use of a panic carrying an *Error.
// The assembler catches it and turns it into a regular error.
type scanner struct {
	file string
	line int
	data string
	pos  int
}

func newScanner(file string, line int, data string) *scanner {
	return &scanner{file: file, line: line, data: data}
}

// position returns the current source position.
func (s *scanner) position() Position {
	return Position{File: s.file, Line: s.line, Col: s.pos}
}

// fail aborts scanning with an error at the current position.
func (s *scanner) fail(f string, argv ...interface{}) {
	panic(newError(s.position(), f, argv...))
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		s.pos++
	}
}

// atEnd skips whitespace and returns true if nothing remains on the line.
func (s *scanner) atEnd() bool {
	s.skipSpace()
	return s.pos >= len(s.data)
}

func (s *scanner) peek() byte {
	if s.pos < len(s.data) {
		return s.data[s.pos]
	}
	return 0
}

// readWord reads a run of word characters, along with its starting position.
// Returns an empty string if the next character is not a word character.
func (s *scanner) readWord() (string, Position) {
	s.skipSpace()

	start := s.position()
	n := s.pos
	for s.pos < len(s.data) && isWord(s.data[s.pos]) {
		s.pos++
	}

	return s.data[n:s.pos], start
}

// readLabel reads an `identifier:` label definition. If there is none,
// the scanner is left untouched and false is returned.
func (s *scanner) readLabel() (token, bool) {
	mark := s.pos

	word, pos := s.readWord()
	if word != "" && isIdentStart(word[0]) && s.peek() == ':' {
		s.pos++
		return token{typ: tokIdent, pos: pos, value: word}, true
	}

	s.pos = mark
	return token{}, false
}

// readOperand reads a register, number or identifier.
func (s *scanner) readOperand() token {
	word, pos := s.readWord()

	switch {
	case word == "" && s.pos >= len(s.data):
		s.fail("expected operand")
	case word == "":
		s.fail("unexpected %q", s.peek())
	case arch.IsRegister(word):
		return token{typ: tokRegister, pos: pos, value: word}
	case isDigit(word[0]):
		return token{typ: tokNumber, pos: pos, value: word}
	}

	return token{typ: tokIdent, pos: pos, value: word}
}

// readOperands reads a comma separated list of operands up to the end
// of the line. An empty line yields an empty list.
func (s *scanner) readOperands() []token {
	if s.atEnd() {
		return nil
	}

	var list []token
	for {
		list = append(list, s.readOperand())

		if s.atEnd() {
			return list
		}

		switch c := s.peek(); {
		case c == ',':
			s.pos++
		case isWord(c):
			s.fail("expected ','")
		default:
			s.fail("unexpected %q", c)
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isWord(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
