package asm

import (
	"regexp"
	"sort"
	"strings"
)

// CommentMarker starts a comment that runs to the end of the line.
const CommentMarker = ';'

var equPattern = regexp.MustCompile(`^\s*([a-zA-Z]\w*)\s+(?i:equ)\s+(\w+)\s*$`)

// SplitLines splits source into lines. Both \n and \r\n are accepted.
func SplitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.Split(source, "\n")
}

// Preprocess strips comments and applies `name equ value` definitions.
//
// A definition line is replaced by an empty line, so line numbers remain
// stable. Every whole-word occurrence of a defined name that is not
// immediately followed by ':' is replaced by its value. Names are applied
// in sorted order. A name defined more than once takes its last value.
func Preprocess(lines []string) []string {
	out := make([]string, len(lines))
	defs := make(map[string]string)

	for i, line := range lines {
		if n := strings.IndexByte(line, CommentMarker); n > -1 {
			line = line[:n]
		}

		if m := equPattern.FindStringSubmatch(line); m != nil {
			defs[m[1]] = m[2]
			line = ""
		}

		out[i] = line
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		for i := range out {
			out[i] = substitute(out[i], re, defs[name])
		}
	}

	return out
}

// substitute replaces every match of re in line with value, except
// matches used as a label definition.
func substitute(line string, re *regexp.Regexp, value string) string {
	matches := re.FindAllStringIndex(line, -1)
	if len(matches) == 0 {
		return line
	}

	var sb strings.Builder
	var last int

	for _, m := range matches {
		if m[1] < len(line) && line[m[1]] == ':' {
			continue
		}
		sb.WriteString(line[last:m[0]])
		sb.WriteString(value)
		last = m[1]
	}

	sb.WriteString(line[last:])
	return sb.String()
}
