package main

import "fmt"

const statusBarRows = 1

// EditorState holds the per-iteration session facts: the usable viewport
// (terminal size minus gutter and status bar) and the document length.
type EditorState struct {
	Rows     int
	Cols     int
	DocLines int
	Running  bool
}

// Refresh recomputes the usable viewport from the raw terminal size.
func (e *EditorState) Refresh(termCols, termRows, docLines int) {
	e.Rows = termRows - statusBarRows
	e.Cols = termCols - gutterWidth
	e.DocLines = docLines
}

// Degenerate reports a viewport too small to draw into. Frames are skipped
// until the terminal grows back.
func (e *EditorState) Degenerate() bool { return e.Rows < 1 || e.Cols < 1 }

// Session bundles every piece of mutable viewer state. It is owned by the
// event loop and mutated only between event arrival and the next paint.
type Session struct {
	Doc    *Document
	Cursor Cursor
	CState CursorState
	Editor EditorState
	Render RenderState

	// StatusMsg is shown in the status bar until the next input event.
	StatusMsg string

	bell Bell
	clip Clipboard
}

// NewSession wires a document to its navigation and render state. A nil bell
// is replaced with a silent one.
func NewSession(doc *Document, bell Bell, clip Clipboard) *Session {
	if bell == nil {
		bell = nopBell{}
	}
	s := &Session{Doc: doc, Render: newRenderState(), bell: bell, clip: clip}
	s.Editor.Running = true
	return s
}

// ApplyEvent advances the session by one input event, recording the cheapest
// sufficient repaint in the render state.
func (s *Session) ApplyEvent(ev InputEvent) {
	// The quit key works even when the viewport is too small to draw; raw
	// mode cleared ISIG, so this is the only way out.
	if kev, ok := ev.(KeyEvent); ok && kev.Code == KeyChar && kev.Ch == 'q' {
		s.Editor.Running = false
		return
	}
	if s.Editor.Degenerate() {
		return
	}
	if s.StatusMsg != "" {
		s.StatusMsg = ""
		s.Render.ModifStatus = true
	}
	switch ev := ev.(type) {
	case KeyEvent:
		s.applyKey(ev)
	case MouseScrollEvent:
		s.Render.ModifStatus = true
		if ev.Mod.Has(ModShift) {
			if ev.Up {
				s.pageUp()
			} else {
				s.pageDown()
			}
		} else {
			if ev.Up {
				s.scrollUp()
			} else {
				s.scrollDown()
			}
		}
		s.postVertical(ev.Mod)
	case MouseClickEvent:
		s.Render.ModifStatus = true
		s.placeCursor(ev.Row, ev.Col)
	}
}

func (s *Session) applyKey(ev KeyEvent) {
	switch ev.Code {
	case KeyChar:
		if ev.Ch == 'y' {
			s.yankLine()
		}
	case KeyUp:
		s.Render.ModifStatus = true
		if ev.Mod.Has(ModShift) {
			s.pageUp()
		} else {
			s.moveUp()
		}
		s.postVertical(ev.Mod)
	case KeyDown:
		s.Render.ModifStatus = true
		if ev.Mod.Has(ModShift) {
			s.pageDown()
		} else {
			s.moveDown()
		}
		s.postVertical(ev.Mod)
	case KeyRight:
		s.Render.ModifStatus = true
		s.moveRight(ev.Mod)
	case KeyLeft:
		s.Render.ModifStatus = true
		s.moveLeft(ev.Mod)
	}
}

// postVertical normalizes the column after any vertical move. An empty or
// missing document pins the caret at the origin instead.
func (s *Session) postVertical(mod Modifiers) {
	if s.Doc.LineCount() == 0 {
		s.Cursor = Cursor{}
		return
	}
	s.adjustColumnVertical(mod)
}

// yankLine copies the line under the caret to the clipboard and reports the
// outcome in the status bar.
func (s *Session) yankLine() {
	if s.clip == nil || s.Doc.LineCount() == 0 {
		return
	}
	idx := s.CState.ScrollY + s.Cursor.Row
	if idx >= s.Doc.LineCount() {
		return
	}
	if err := s.clip.WriteAll(s.Doc.Line(idx)); err != nil {
		s.setStatus("yank failed")
		return
	}
	s.setStatus(fmt.Sprintf("yanked line %d", idx))
}

func (s *Session) setStatus(msg string) {
	s.StatusMsg = msg
	s.Render.ModifStatus = true
}

// clampToViewport re-establishes the cursor and scroll invariants after the
// viewport shrinks or grows under us.
func (s *Session) clampToViewport() {
	es := &s.Editor
	if es.Degenerate() {
		return
	}
	changed := false
	if m := s.maxScrollY(); s.CState.ScrollY > m {
		s.CState.ScrollY = m
		changed = true
	}
	if s.Cursor.Row > es.Rows-1 {
		s.Cursor.Row = es.Rows - 1
		changed = true
	}
	if es.DocLines > 0 {
		if last := es.DocLines - s.CState.ScrollY - 1; s.Cursor.Row > last {
			s.Cursor.Row = last
			changed = true
		}
		if maxCol := s.Doc.MaxCol(s.lineIndex()); s.Cursor.Col > maxCol {
			s.Cursor.Col = maxCol
			changed = true
		}
	} else if s.Cursor != (Cursor{}) {
		s.Cursor = Cursor{}
		changed = true
	}
	if changed {
		s.Render.MarkAll()
		s.Render.ModifStatus = true
	}
}
