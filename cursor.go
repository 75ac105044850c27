package toon

// LineCursor advances over a slice of ParsedLines. It is the substrate the
// recursive-descent decoder runs on.
type LineCursor struct {
	lines []ParsedLine
	pos   int
}

func newLineCursor(lines []ParsedLine) *LineCursor {
	return &LineCursor{lines: lines}
}

// AtEnd reports whether every line has been consumed.
func (c *LineCursor) AtEnd() bool { return c.pos >= len(c.lines) }

// Peek returns the next line without consuming it. ok is false at end of
// input.
func (c *LineCursor) Peek() (ParsedLine, bool) {
	if c.AtEnd() {
		return ParsedLine{}, false
	}
	return c.lines[c.pos], true
}

// Next consumes and returns the next line. ok is false at end of input.
func (c *LineCursor) Next() (ParsedLine, bool) {
	ln, ok := c.Peek()
	if ok {
		c.pos++
	}
	return ln, ok
}

// PeekAtDepth returns the next line only if it exists and its Depth equals
// d exactly; otherwise ok is false and the cursor is not advanced.
func (c *LineCursor) PeekAtDepth(d int) (ParsedLine, bool) {
	ln, ok := c.Peek()
	if !ok || ln.Depth != d {
		return ParsedLine{}, false
	}
	return ln, true
}

// LastLine returns the line number of the most recently consumed line, or 0
// if nothing has been consumed yet.
func (c *LineCursor) LastLine() int {
	if c.pos == 0 {
		return 0
	}
	return c.lines[c.pos-1].LineNumber
}
