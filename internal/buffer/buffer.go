// Package buffer provides the text access surface the structural parser and
// indenter work against. The buffer is the sole source of truth: nothing
// derived from it is cached across calls.
package buffer

import "strings"

// Buffer is the read-only view of an editor buffer.
type Buffer interface {
	// ReadRange returns the text in [start, end). Out-of-range bounds are
	// clamped to the buffer.
	ReadRange(start, end int) string
	// Len returns the buffer length in bytes.
	Len() int
	// LineAt returns the zero-based line number containing offset.
	LineAt(offset int) int
	// ColumnAt returns the zero-based column of offset within its line.
	ColumnAt(offset int) int
}

// Document is an in-memory Buffer over a text snapshot. It additionally
// supports the one mutation the indenter is allowed: rewriting the leading
// whitespace of a line.
type Document struct {
	text       string
	lineStarts []int
}

// NewDocument creates a Document from text.
func NewDocument(text string) *Document {
	d := &Document{text: text}
	d.reindex()
	return d
}

func (d *Document) reindex() {
	d.lineStarts = d.lineStarts[:0]
	d.lineStarts = append(d.lineStarts, 0)
	for i := 0; i < len(d.text); i++ {
		if d.text[i] == '\n' {
			d.lineStarts = append(d.lineStarts, i+1)
		}
	}
}

// Text returns the full buffer contents.
func (d *Document) Text() string {
	return d.text
}

// Len returns the buffer length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// ReadRange returns the text in [start, end), clamped to the buffer.
func (d *Document) ReadRange(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(d.text) {
		end = len(d.text)
	}
	if start >= end {
		return ""
	}
	return d.text[start:end]
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	return len(d.lineStarts)
}

// LineAt returns the zero-based line number containing offset.
func (d *Document) LineAt(offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	// Binary search for the last line start <= offset.
	lo, hi := 0, len(d.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if d.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// ColumnAt returns the zero-based column of offset within its line.
func (d *Document) ColumnAt(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(d.text) {
		offset = len(d.text)
	}
	return offset - d.lineStarts[d.LineAt(offset)]
}

// LineStart returns the offset of the first byte of line n.
func (d *Document) LineStart(n int) int {
	if n < 0 {
		return 0
	}
	if n >= len(d.lineStarts) {
		return len(d.text)
	}
	return d.lineStarts[n]
}

// LineEnd returns the offset just past the last byte of line n, excluding
// the newline.
func (d *Document) LineEnd(n int) int {
	if n < 0 {
		return 0
	}
	if n+1 < len(d.lineStarts) {
		return d.lineStarts[n+1] - 1
	}
	return len(d.text)
}

// Line returns the text of line n without its newline.
func (d *Document) Line(n int) string {
	return d.text[d.LineStart(n):d.LineEnd(n)]
}

// LineIndent returns the number of leading space/tab bytes of line n.
func (d *Document) LineIndent(n int) int {
	line := d.Line(n)
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

// SetLineIndent replaces the leading whitespace of line n with col spaces.
// This is the only mutation the indenter performs.
func (d *Document) SetLineIndent(n, col int) {
	if n < 0 || n >= len(d.lineStarts) || col < 0 {
		return
	}
	start := d.LineStart(n)
	cur := d.LineIndent(n)
	d.text = d.text[:start] + strings.Repeat(" ", col) + d.text[start+cur:]
	d.reindex()
}
