package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// gutterWidth is the line-number margin: three digits and a space.
const gutterWidth = 4

// RenderState describes the dirty region the next frame must repaint.
// Navigation marks the cheapest sufficient region; the renderer consumes the
// marks and resets them.
type RenderState struct {
	// ModifAll requests a repaint of the whole body.
	ModifAll bool
	// ModifRow requests a repaint of a single body row; -1 when unset.
	// Ignored while ModifAll is pending.
	ModifRow int
	// ModifStatus requests a status bar repaint.
	ModifStatus bool
	// LastCursor is the caret position before the last move; when set and no
	// body repaint is pending, only the caret is repositioned.
	LastCursor *Cursor
}

func newRenderState() RenderState { return RenderState{ModifRow: -1} }

// Reset clears all marks. Called once per painted frame.
func (r *RenderState) Reset() { *r = newRenderState() }

// MarkAll requests a full-body repaint, superseding any single-row request.
func (r *RenderState) MarkAll() {
	r.ModifAll = true
	r.ModifRow = -1
}

// MarkRow requests a single-row repaint unless a full one is already pending.
func (r *RenderState) MarkRow(row int) {
	if !r.ModifAll {
		r.ModifRow = row
	}
}

// RememberCursor records the caret position before a move so the renderer
// can take the caret-only path.
func (r *RenderState) RememberCursor(c Cursor) {
	cc := c
	r.LastCursor = &cc
}

// DrawSink is the renderer's only way to touch the terminal. Coordinates are
// 0-based; implementations buffer until Flush.
type DrawSink interface {
	MoveTo(col, row int)
	ClearLine()
	Print(s string)
	HideCaret()
	ShowCaret()
	Flush() error
}

// Renderer turns render-state marks into draw calls.
type Renderer struct {
	sink  DrawSink
	theme Theme
}

func NewRenderer(sink DrawSink, theme Theme) *Renderer {
	return &Renderer{sink: sink, theme: theme}
}

// Refresh paints whatever the session's render state marks dirty, then
// clears the marks. At most one body repaint happens per frame: the full
// viewport, a single row, or a caret reposition. Whatever was drawn, the
// frame always ends with the terminal caret parked on the cursor; drawing
// the status bar or a row moves the caret as a side effect and must not
// strand it there.
func (r *Renderer) Refresh(s *Session) error {
	rs := &s.Render
	defer rs.Reset()
	if s.Editor.Degenerate() {
		return nil
	}
	if !rs.ModifAll && rs.ModifRow < 0 && !rs.ModifStatus && rs.LastCursor == nil {
		return nil
	}
	r.sink.HideCaret()
	if rs.ModifStatus {
		r.drawStatusBar(s)
	}
	switch {
	case rs.ModifAll:
		r.drawAll(s)
	case rs.ModifRow >= 0:
		r.drawRow(s, rs.ModifRow)
	}
	r.sink.MoveTo(s.Cursor.Col+gutterWidth, s.Cursor.Row)
	r.sink.ShowCaret()
	return r.sink.Flush()
}

func (r *Renderer) drawAll(s *Session) {
	if s.Doc != nil {
		for row := 0; row < s.Editor.Rows; row++ {
			r.drawRow(s, row)
		}
	} else {
		r.drawWelcome(s)
	}
}

func (r *Renderer) drawRow(s *Session, row int) {
	r.sink.MoveTo(0, row)
	r.sink.ClearLine()
	idx := s.CState.ScrollY + row
	if s.Doc != nil && idx < s.Doc.LineCount() {
		r.sink.Print(r.theme.Gutter.Render(gutterLabel(idx)))
		r.sink.Print(clipLine(s.Doc.Line(idx), s.Editor.Cols))
	} else {
		r.sink.Print(r.theme.Filler.Render("~"))
	}
}

// gutterLabel renders a line index in exactly gutterWidth cells. Caret and
// click arithmetic assume the gutter never widens, so four-digit indices give
// up their padding space and wider ones their leading digits.
func gutterLabel(idx int) string {
	s := strconv.Itoa(idx)
	switch {
	case len(s) < gutterWidth:
		return fmt.Sprintf("%3d ", idx)
	case len(s) == gutterWidth:
		return s
	default:
		return s[len(s)-gutterWidth:]
	}
}

var welcomeLines = []string{
	"specto " + version,
	"",
	"a read-only file viewer",
	"press q to quit",
}

func (r *Renderer) drawWelcome(s *Session) {
	for row := 0; row < s.Editor.Rows; row++ {
		r.sink.MoveTo(0, row)
		r.sink.ClearLine()
		r.sink.Print(r.theme.Filler.Render("~"))
		bannerRow := row - s.Editor.Rows/3
		if bannerRow < 0 || bannerRow >= len(welcomeLines) {
			continue
		}
		msg := welcomeLines[bannerRow]
		if msg == "" {
			continue
		}
		start := gutterWidth
		if w := runewidth.StringWidth(msg); s.Editor.Cols > w {
			start += (s.Editor.Cols - w) / 2
		}
		r.sink.MoveTo(start, row)
		r.sink.Print(r.theme.Welcome.Render(msg))
	}
}

func (r *Renderer) drawStatusBar(s *Session) {
	r.sink.MoveTo(0, s.Editor.Rows)
	r.sink.ClearLine()
	r.sink.Print(r.theme.Status.Render(statusLine(s)))
}

// statusLine lays the path (and any transient message) on the left and
// "col,line pct%" on the right, padded to the full terminal width.
func statusLine(s *Session) string {
	width := s.Editor.Cols + gutterWidth
	if s.Doc == nil {
		return padToWidth("[no document]", width)
	}
	left := s.Doc.Path
	if s.StatusMsg != "" {
		left += " | " + s.StatusMsg
	}
	line := s.CState.ScrollY + s.Cursor.Row
	pct := 0
	if n := s.Doc.LineCount(); n > 0 {
		pct = line * 100 / n
	}
	right := fmt.Sprintf("%d,%d %3d%%", s.Cursor.Col, line, pct)

	pad := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if pad < 1 {
		keep := width - runewidth.StringWidth(right) - 1
		if keep < 0 {
			return runewidth.Truncate(right, width, "")
		}
		left = runewidth.Truncate(left, keep, "")
		pad = width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	}
	return left + strings.Repeat(" ", pad) + right
}

func padToWidth(s string, width int) string {
	if d := width - runewidth.StringWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return runewidth.Truncate(s, width, "")
}

// clipLine truncates a line to the viewport width and replaces control bytes
// so stray escapes in the file cannot corrupt the terminal. The cut backs off
// to a rune boundary so no partial UTF-8 sequence reaches the terminal.
func clipLine(line string, cols int) string {
	if cols >= 0 && len(line) > cols {
		cut := cols
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		line = line[:cut]
	}
	clean := true
	for i := 0; i < len(line); i++ {
		if c := line[i]; c < 0x20 || c == 0x7f {
			clean = false
			break
		}
	}
	if clean {
		return line
	}
	b := []byte(line)
	for i, c := range b {
		if c == '\t' {
			b[i] = ' '
		} else if c < 0x20 || c == 0x7f {
			b[i] = '?'
		}
	}
	return string(b)
}
