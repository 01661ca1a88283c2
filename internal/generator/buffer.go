package generator

import "strings"

const defaultIndent = 4

// Buffer is an append-only sequence of output lines with a current
// indentation depth.
type Buffer struct {
	lines  []string
	indent string
	depth  int
}

// NewBuffer returns an empty buffer that indents each level by indentSpaces
// spaces.
func NewBuffer(indentSpaces int) *Buffer {
	var indentStr string
	if indentSpaces > 0 {
		indentStr = strings.Repeat(" ", indentSpaces)
	}
	return &Buffer{indent: indentStr}
}

// Line appends s at the current depth.
func (b *Buffer) Line(s string) {
	b.lines = append(b.lines, strings.Repeat(b.indent, b.depth)+s)
}

// Outdented appends s one level shallower than the current depth. Visibility
// labels use it so they sit at the level of their class header.
func (b *Buffer) Outdented(s string) {
	depth := max(b.depth-1, 0)
	b.lines = append(b.lines, strings.Repeat(b.indent, depth)+s)
}

// Blank appends an empty line.
func (b *Buffer) Blank() {
	b.lines = append(b.lines, "")
}

// Indent increases the depth and returns a function that restores it. The
// usual form is
//
//	defer b.Indent()()
//
// which keeps the depth balanced on every return path.
func (b *Buffer) Indent() func() {
	b.depth++
	return func() {
		b.depth--
	}
}

// Depth returns the current indentation depth.
func (b *Buffer) Depth() int {
	return b.depth
}

// Lines returns the buffered lines.
func (b *Buffer) Lines() []string {
	return b.lines
}

// String joins the buffered lines with newlines. There is no trailing newline.
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}
