package main

import (
	"fmt"
	"os"
)

// Document is a file loaded for viewing. Lines are stored without their
// terminators; the viewer never writes them back.
type Document struct {
	Path  string
	Lines []string
}

// LoadDocument reads the file at path and splits it into lines in a single
// pass, treating both \n and \r\n as terminators. A final line without a
// terminator is kept as a line of its own.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	var lines []string
	start := 0
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			lines = append(lines, string(data[start:i]))
			start = i + 1
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				lines = append(lines, string(data[start:i]))
				i++
				start = i + 1
			}
		}
	}
	if start < len(data) {
		lines = append(lines, string(data[start:]))
	}
	return &Document{Path: path, Lines: lines}, nil
}

// LineCount is safe on a nil document.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// Line returns line i, or "" when i is out of range.
func (d *Document) Line(i int) string {
	if d == nil || i < 0 || i >= len(d.Lines) {
		return ""
	}
	return d.Lines[i]
}

// MaxCol returns the last valid cursor column on line i. Empty lines still
// have column 0 as a valid cursor position.
func (d *Document) MaxCol(i int) int {
	n := len(d.Line(i))
	if n == 0 {
		return 0
	}
	return n - 1
}

// Padding returns the number of leading whitespace bytes on line i.
func (d *Document) Padding(i int) int {
	line := d.Line(i)
	p := 0
	for p < len(line) && isASCIISpace(line[p]) {
		p++
	}
	return p
}

func isASCIISpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f' || c == '\r'
}
