package receipt

import (
	"fmt"
	"strings"
)

// Document builds a fixed-width plain-text receipt, the kind a POS front
// end prints or exports alongside the on-screen invoice.
type Document struct {
	b     strings.Builder
	width int // line width in characters (default 32 for 58mm, 48 for 80mm)
}

// NewDocument creates a receipt document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	return &Document{width: charWidth}
}

// Line writes a line of text followed by a newline. Text longer than the
// document width is truncated.
func (d *Document) Line(s string) *Document {
	if len(s) > d.width {
		s = s[:d.width]
	}
	d.b.WriteString(s)
	d.b.WriteByte('\n')
	return d
}

// LineF writes a formatted line of text.
func (d *Document) LineF(format string, args ...interface{}) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Center writes a line centered within the document width.
func (d *Document) Center(s string) *Document {
	if len(s) >= d.width {
		return d.Line(s)
	}
	pad := (d.width - len(s)) / 2
	return d.Line(strings.Repeat(" ", pad) + s)
}

// Row writes a left/right column pair separated by spaces. When the two
// sides do not fit on one line the left side is truncated.
func (d *Document) Row(left, right string) *Document {
	gap := d.width - len(left) - len(right)
	if gap < 1 {
		keep := d.width - len(right) - 1
		if keep < 0 {
			keep = 0
		}
		left = left[:keep]
		gap = 1
	}
	return d.Line(left + strings.Repeat(" ", gap) + right)
}

// Divider writes a full-width rule of the given character.
func (d *Document) Divider(ch byte) *Document {
	return d.Line(strings.Repeat(string(ch), d.width))
}

// Blank writes an empty line.
func (d *Document) Blank() *Document {
	d.b.WriteByte('\n')
	return d
}

// String returns the rendered receipt.
func (d *Document) String() string {
	return d.b.String()
}

// Bytes returns the rendered receipt as raw bytes.
func (d *Document) Bytes() []byte {
	return []byte(d.b.String())
}
