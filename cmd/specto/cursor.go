package main

// Cursor is the caret position. Row is relative to the top of the viewport;
// Col is an absolute byte offset into the line under the caret.
type Cursor struct {
	Col int
	Row int
}

// CursorState is the navigation-assist memory that survives across moves.
type CursorState struct {
	// ScrollY is the document line shown on the top viewport row.
	ScrollY int
	// LastColumn keeps the caret snapped to end of line across vertical
	// moves until a leftward move clears it.
	LastColumn bool
	// LastPadding is the leading-whitespace width of the line the caret
	// last rested on, used to track indentation on vertical moves.
	LastPadding int
}

// lineIndex is the document line under the caret, clamped into the document.
func (s *Session) lineIndex() int {
	idx := s.CState.ScrollY + s.Cursor.Row
	if n := s.Doc.LineCount(); idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// maxScrollY is the largest scroll offset that still keeps the viewport
// inside the document.
func (s *Session) maxScrollY() int {
	m := s.Editor.DocLines - s.Editor.Rows
	if m < 0 {
		m = 0
	}
	return m
}

// moveUp moves the caret one line up, scrolling when it sits on the top row
// and ringing the bell at the top of the document.
func (s *Session) moveUp() {
	if s.Cursor.Row == 0 {
		if s.CState.ScrollY > 0 {
			s.Render.MarkAll()
			s.CState.ScrollY--
		} else {
			s.bell.Ring()
		}
		return
	}
	s.Render.RememberCursor(s.Cursor)
	s.Cursor.Row--
}

// moveDown mirrors moveUp, with the extra guard that the caret may not move
// past the last document line even when filler rows remain below it.
func (s *Session) moveDown() {
	es := &s.Editor
	if s.Cursor.Row == es.Rows-1 {
		if s.CState.ScrollY < s.maxScrollY() {
			s.Render.MarkAll()
			s.CState.ScrollY++
		} else {
			s.bell.Ring()
		}
		return
	}
	if es.DocLines == 0 {
		return
	}
	if s.Cursor.Row < es.DocLines-s.CState.ScrollY-1 {
		s.Render.RememberCursor(s.Cursor)
		s.Cursor.Row++
	} else {
		s.bell.Ring()
	}
}

// pageUp scrolls up a full screen, snapping caret and scroll to the top when
// less than a screen remains.
func (s *Session) pageUp() {
	if s.CState.ScrollY >= s.Editor.Rows {
		s.Render.MarkAll()
		s.CState.ScrollY -= s.Editor.Rows
		return
	}
	if s.CState.ScrollY > 0 {
		s.Render.MarkAll()
	} else {
		s.Render.RememberCursor(s.Cursor)
	}
	s.CState.ScrollY = 0
	s.Cursor.Row = 0
}

// pageDown scrolls down a full screen while that keeps the viewport inside
// the document, clamps to the bottom edge when a partial screen remains, and
// finally snaps the caret onto the last line once the edge is reached.
func (s *Session) pageDown() {
	es := &s.Editor
	if es.DocLines == 0 {
		s.bell.Ring()
		return
	}
	max := s.maxScrollY()
	if s.CState.ScrollY+es.Rows <= max {
		s.Render.MarkAll()
		s.CState.ScrollY += es.Rows
		return
	}
	if s.CState.ScrollY < max {
		s.Render.MarkAll()
		s.CState.ScrollY = max
		return
	}
	s.Render.RememberCursor(s.Cursor)
	row := es.DocLines%es.Rows - 1
	if row < 0 {
		row = 0
	}
	if row > es.Rows-1 {
		row = es.Rows - 1
	}
	s.Cursor.Row = row
}

// scrollUp shifts the viewport one line up. The caret keeps its document
// position by moving down a viewport row until it hits the bottom edge.
func (s *Session) scrollUp() {
	if s.CState.ScrollY == 0 {
		s.bell.Ring()
		return
	}
	s.Render.MarkAll()
	s.CState.ScrollY--
	if s.Cursor.Row < s.Editor.Rows-1 {
		s.Cursor.Row++
	}
}

// scrollDown shifts the viewport one line down, with the caret pinned to the
// top edge once it gets there.
func (s *Session) scrollDown() {
	if s.CState.ScrollY >= s.maxScrollY() {
		s.bell.Ring()
		return
	}
	s.Render.MarkAll()
	s.CState.ScrollY++
	if s.Cursor.Row > 0 {
		s.Cursor.Row--
	}
}

// adjustColumnVertical realigns the column after a vertical move so the caret
// tracks indentation depth rather than raw offset. Holding Control skips the
// indentation shift; a sticky end-of-line column overrides everything.
func (s *Session) adjustColumnVertical(mod Modifiers) {
	idx := s.lineIndex()
	p := s.Doc.Padding(idx)
	newCol := s.Cursor.Col
	if !mod.Has(ModCtrl) {
		newCol += p - s.CState.LastPadding
		if newCol < 0 {
			newCol = 0
		}
	}
	s.CState.LastPadding = p
	maxCol := s.Doc.MaxCol(idx)
	switch {
	case s.CState.LastColumn:
		s.Cursor.Col = maxCol
	case newCol > maxCol:
		s.Cursor.Col = maxCol
	default:
		s.Cursor.Col = newCol
	}
}

// adjustColumnStart puts the caret on the first non-whitespace byte of the
// current line.
func (s *Session) adjustColumnStart() {
	idx := s.lineIndex()
	p := s.Doc.Padding(idx)
	s.CState.LastPadding = p
	if maxCol := s.Doc.MaxCol(idx); p > maxCol {
		p = maxCol
	}
	s.Cursor.Col = p
}

// adjustColumnEnd puts the caret on the last byte of the current line. The
// sticky end-of-line flag is cleared: reaching the end via a leftward wrap is
// a deliberate position, not a request to stay pinned there.
func (s *Session) adjustColumnEnd() {
	idx := s.lineIndex()
	s.CState.LastPadding = s.Doc.Padding(idx)
	s.CState.LastColumn = false
	s.Cursor.Col = s.Doc.MaxCol(idx)
}

// adjustColumnRandom clamps a freely chosen column (from a mouse click) into
// the current line, turning on the sticky flag when it lands at the end.
func (s *Session) adjustColumnRandom() {
	idx := s.lineIndex()
	s.CState.LastPadding = s.Doc.Padding(idx)
	if maxCol := s.Doc.MaxCol(idx); s.Cursor.Col >= maxCol {
		s.CState.LastColumn = true
		s.Cursor.Col = maxCol
	}
}

// moveRight advances one column, or one word with Control held. At the end
// of a line it wraps to the start of the next one.
func (s *Session) moveRight(mod Modifiers) {
	if s.Doc.LineCount() == 0 {
		return
	}
	idx := s.lineIndex()
	maxCol := s.Doc.MaxCol(idx)

	if s.Cursor.Col >= maxCol {
		prevRow, prevScroll := s.Cursor.Row, s.CState.ScrollY
		s.Render.RememberCursor(s.Cursor)
		s.moveDown()
		if s.Cursor.Row != prevRow || s.CState.ScrollY != prevScroll {
			s.adjustColumnStart()
		}
		return
	}

	s.Render.RememberCursor(s.Cursor)
	if mod.Has(ModCtrl) {
		s.Cursor.Col = wordForward(s.Doc.Line(idx), s.Cursor.Col)
	} else {
		s.Cursor.Col++
	}
	if s.Cursor.Col >= maxCol {
		s.Cursor.Col = maxCol
		s.CState.LastColumn = true
	}
}

// moveLeft retreats one column, or one word with Control held. At the start
// of a line it wraps to the end of the previous one. Any leftward move drops
// the sticky end-of-line flag.
func (s *Session) moveLeft(mod Modifiers) {
	s.CState.LastColumn = false
	if s.Doc.LineCount() == 0 {
		return
	}

	if s.Cursor.Col == 0 {
		prevRow, prevScroll := s.Cursor.Row, s.CState.ScrollY
		s.moveUp()
		if s.Cursor.Row != prevRow || s.CState.ScrollY != prevScroll {
			s.adjustColumnEnd()
		}
		return
	}

	s.Render.RememberCursor(s.Cursor)
	if mod.Has(ModCtrl) {
		s.Cursor.Col = wordBackward(s.Doc.Line(s.lineIndex()), s.Cursor.Col)
	} else {
		s.Cursor.Col--
	}
}

// wordForward returns the column of the next word start: from inside a word
// it skips the rest of the word and the spaces after it, from inside a space
// run it skips to the run's end. It never leaves the line.
func wordForward(line string, col int) int {
	maxCol := len(line) - 1
	if maxCol < 0 {
		return 0
	}
	c := col
	if c > maxCol {
		return maxCol
	}
	if line[c] == ' ' {
		for c < maxCol && line[c] == ' ' {
			c++
		}
	} else {
		for c < maxCol && line[c] != ' ' {
			c++
		}
		for c < maxCol && line[c] == ' ' {
			c++
		}
	}
	return c
}

// wordBackward is the mirror of wordForward: it retreats over the current
// word (or space run) and the spaces before it, landing on the last byte of
// the previous word.
func wordBackward(line string, col int) int {
	if col <= 0 || len(line) == 0 {
		return 0
	}
	c := col
	if c > len(line)-1 {
		c = len(line) - 1
	}
	if line[c] == ' ' {
		for c > 0 && line[c] == ' ' {
			c--
		}
	} else {
		for c > 0 && line[c] != ' ' {
			c--
		}
		for c > 0 && line[c] == ' ' {
			c--
		}
	}
	return c
}

// placeCursor maps a terminal click to a document position: rows clamp into
// the populated part of the viewport, columns shift past the gutter and
// clamp into the line.
func (s *Session) placeCursor(row, col int) {
	s.Render.RememberCursor(s.Cursor)
	if s.Doc.LineCount() == 0 {
		s.Cursor = Cursor{}
		return
	}
	es := &s.Editor
	maxRow := es.DocLines%es.Rows - 1
	if maxRow < 0 {
		maxRow = 0
	}
	if maxRow > es.Rows-1 {
		maxRow = es.Rows - 1
	}
	if row > maxRow {
		row = maxRow
	}
	if row < 0 {
		row = 0
	}
	c := col - gutterWidth
	if c < 0 {
		c = 0
	}
	if c > es.Cols {
		c = es.Cols
	}
	s.Cursor.Row = row
	s.Cursor.Col = c
	s.adjustColumnRandom()
}
