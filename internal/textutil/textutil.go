// Package textutil holds line-level text helpers shared by the directive,
// hover and completion code. Columns are byte offsets into a single line.
package textutil

import (
	"bytes"
	"regexp"
)

var reNewline = regexp.MustCompile(`\r?\n`)

// SplitLines splits text on \n or \r\n. An empty text yields one empty line.
func SplitLines(text string) []string {
	return reNewline.Split(text, -1)
}

// NormalizeUTF8LF converts CRLF to LF and ensures the output is valid UTF-8
// by replacing invalid byte sequences with the Unicode replacement character.
// A lone \r is not a line break and is kept.
func NormalizeUTF8LF(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ToValidUTF8(b, []byte("\uFFFD"))
}

// Lines normalises raw file contents and splits them. Every command that
// numbers or classifies lines goes through here.
func Lines(b []byte) []string {
	return SplitLines(string(NormalizeUTF8LF(b)))
}

// EnsureTrailingLF appends a single \n if not already present.
func EnsureTrailingLF(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] == '\n' {
		return b
	}
	return append(b, '\n')
}

// IsDelimiter reports whether c separates entries on a directive line
// (whitespace or comma).
func IsDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f', ',':
		return true
	}
	return false
}

func charAt(line string, i int) (byte, bool) {
	if i < 0 || i >= len(line) {
		return 0, false
	}
	return line[i], true
}

// FindStart walks left from col and returns the column just after the
// nearest delimiter. Without one it returns len(prefix), the end of the
// directive the line starts with.
func FindStart(line string, col int, prefix string) int {
	for i := col; i > -1; i-- {
		if c, ok := charAt(line, i); ok && IsDelimiter(c) {
			return i + 1
		}
	}
	return len(prefix)
}

// FindEnd walks right from col and returns the column of the next delimiter
// or the line length.
func FindEnd(line string, col int) int {
	for i := max(col, 0); i < len(line); i++ {
		if IsDelimiter(line[i]) {
			return i
		}
	}
	return len(line)
}

// FindVersionStart returns the column after the nearest ':' left of col, or
// col itself.
func FindVersionStart(line string, col int) int {
	for i := col; i > -1; i-- {
		if c, ok := charAt(line, i); ok && c == ':' {
			return i + 1
		}
	}
	return col
}

// TextAt returns the delimiter-bounded token covering index, or "" and
// false when index is out of range or sits on a delimiter.
func TextAt(line string, index int) (string, bool) {
	c, ok := charAt(line, index)
	if !ok || IsDelimiter(c) {
		return "", false
	}
	start := index
	for start > 0 && !IsDelimiter(line[start-1]) {
		start--
	}
	end := index + 1
	for end < len(line) && !IsDelimiter(line[end]) {
		end++
	}
	return line[start:end], true
}
