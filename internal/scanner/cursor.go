package scanner

import "github.com/gmlfmt/gmlfmt/internal/types"

// cursor is a forward, peekable cursor over the input (spec §4.1).
//
// It advances its own byte index on next(); the scanner owns
// column/line bookkeeping explicitly, since only the scanner knows the
// logical width of the lexeme it just consumed (a multi-line comment
// advances line/column very differently than a single-char token does).
type cursor struct {
	source []byte
	pos    int
	line   int32
	column int32
}

func newCursor(source []byte) *cursor {
	return &cursor{source: source}
}

// peek returns the next byte without advancing.
func (c *cursor) peek() (byte, bool) {
	if c.pos >= len(c.source) {
		return 0, false
	}
	return c.source[c.pos], true
}

// peekAt returns the byte at offset bytes ahead of the current position,
// without advancing.
func (c *cursor) peekAt(offset int) (byte, bool) {
	idx := c.pos + offset
	if idx < 0 || idx >= len(c.source) {
		return 0, false
	}
	return c.source[idx], true
}

// next returns the current byte and its index, then advances.
func (c *cursor) next() (int, byte, bool) {
	if c.pos >= len(c.source) {
		return c.pos, 0, false
	}
	idx := c.pos
	b := c.source[c.pos]
	c.pos++
	return idx, b, true
}

// nextLine increments line and resets column to 0, per spec §4.1's
// position-update policy for a consumed '\n'.
func (c *cursor) nextLine() {
	c.line++
	c.column = 0
}

// bumpColumn advances column by n, the logical width of a lexeme the
// scanner just consumed (spec §4.1: the scanner, not the cursor, decides
// this width).
func (c *cursor) bumpColumn(n int32) {
	c.column += n
}

// setColumn sets column directly, used after a multi-line token (a
// multiline comment) to resync column to "current index - last line
// start" (spec §4.6).
func (c *cursor) setColumn(n int32) {
	c.column = n
}

// position returns the cursor's current logical position.
func (c *cursor) position() types.Position {
	return types.Position{Line: c.line, Column: c.column}
}
