package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// FormatError renders err along with the line it occurred on and one line
// of context either side. A caret marks the column. Errors which carry no
// source position are returned as-is.
func FormatError(lines []string, err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	var sb strings.Builder
	fmt.Fprintln(&sb, e.Error())

	width := len(strconv.Itoa(e.Pos.Line + 2))
	for i := e.Pos.Line - 1; i <= e.Pos.Line+1; i++ {
		if i < 0 || i >= len(lines) {
			continue
		}

		fmt.Fprintf(&sb, "%*d | %s\n", width, i+1, lines[i])
		if i == e.Pos.Line {
			fmt.Fprintf(&sb, "%*s | %s^\n", width, "", indent(lines[i], e.Pos.Col))
		}
	}

	return sb.String()
}

// indent returns the whitespace needed to line up with column col of line.
// Tabs are kept so the caret aligns regardless of tab width.
func indent(line string, col int) string {
	var sb strings.Builder
	for i := 0; i < col; i++ {
		if i < len(line) && line[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
