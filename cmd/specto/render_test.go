package main

import (
	"fmt"
	"strings"
	"testing"
)

// opSink records draw calls so tests can assert on what a frame touched.
type opSink struct {
	ops     []string
	flushes int
}

func (s *opSink) MoveTo(col, row int) { s.ops = append(s.ops, fmt.Sprintf("move %d,%d", col, row)) }

func (s *opSink) ClearLine() { s.ops = append(s.ops, "clear") }

func (s *opSink) Print(str string) { s.ops = append(s.ops, "print "+str) }

func (s *opSink) HideCaret() { s.ops = append(s.ops, "hide") }

func (s *opSink) ShowCaret() { s.ops = append(s.ops, "show") }

func (s *opSink) Flush() error { s.flushes++; return nil }

func (s *opSink) count(op string) int {
	n := 0
	for _, o := range s.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (s *opSink) joined() string { return strings.Join(s.ops, "\n") }

func renderFixture(lines []string, rows, cols int) (*Session, *Renderer, *opSink) {
	s := seedSession(lines, rows, cols)
	sink := &opSink{}
	return s, NewRenderer(sink, Theme{}), sink
}

func TestFullRepaintTouchesEveryRow(t *testing.T) {
	s, r, sink := renderFixture([]string{"one", "two"}, 5, 40)
	s.Render.MarkAll()
	if err := r.Refresh(s); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if got := sink.count("clear"); got != 5 {
		t.Fatalf("full repaint must clear every body row, cleared %d of 5", got)
	}
	if !strings.Contains(sink.joined(), "print ~") {
		t.Fatalf("rows past the document must draw filler markers")
	}
	if sink.flushes != 1 {
		t.Fatalf("a frame must flush exactly once, flushed %d times", sink.flushes)
	}
}

func TestFullRepaintDrawsGutterNumbers(t *testing.T) {
	s, r, sink := renderFixture([]string{"hello"}, 3, 40)
	s.CState.ScrollY = 0
	s.Render.MarkAll()
	_ = r.Refresh(s)
	if !strings.Contains(sink.joined(), "print   0 ") {
		t.Fatalf("gutter must show the 0-based line number, got:\n%s", sink.joined())
	}
}

func TestSingleRowRepaintTouchesOneRow(t *testing.T) {
	s, r, sink := renderFixture([]string{"one", "two", "three"}, 5, 40)
	s.Render.MarkRow(2)
	_ = r.Refresh(s)
	if got := sink.count("clear"); got != 1 {
		t.Fatalf("single-row repaint must clear one row, cleared %d", got)
	}
	if sink.ops[1] != "move 0,2" {
		t.Fatalf("single-row repaint must address the marked row, got %q", sink.ops[1])
	}
}

func TestMarkAllSupersedesMarkRow(t *testing.T) {
	rs := newRenderState()
	rs.MarkRow(3)
	rs.MarkAll()
	if rs.ModifRow != -1 {
		t.Fatalf("full repaint must absorb the pending row repaint")
	}
	rs.Reset()
	rs.MarkAll()
	rs.MarkRow(3)
	if rs.ModifRow != -1 {
		t.Fatalf("row marks after a full mark must be ignored")
	}
}

func TestCaretOnlyFrameMovesWithoutDrawing(t *testing.T) {
	s, r, sink := renderFixture([]string{"hello world"}, 5, 40)
	s.Render.RememberCursor(s.Cursor)
	s.Cursor.Col = 3
	_ = r.Refresh(s)
	if sink.count("clear") != 0 {
		t.Fatalf("caret-only frame must not repaint any row")
	}
	want := fmt.Sprintf("move %d,0", 3+gutterWidth)
	if !strings.Contains(sink.joined(), want) {
		t.Fatalf("caret must land at the gutter-shifted column, want %q in:\n%s", want, sink.joined())
	}
	if sink.count("hide") != 1 || sink.count("show") != 1 {
		t.Fatalf("caret reposition must hide then show the caret")
	}
}

func TestStatusOnlyFrame(t *testing.T) {
	s, r, sink := renderFixture([]string{"hello"}, 5, 40)
	s.Render.ModifStatus = true
	_ = r.Refresh(s)
	if sink.ops[1] != "move 0,5" {
		t.Fatalf("status bar must draw on the row below the body, got %q", sink.ops[1])
	}
	if got := sink.count("clear"); got != 1 {
		t.Fatalf("status-only frame must clear one row, cleared %d", got)
	}
}

// lastMove returns the final caret move of a frame.
func (s *opSink) lastMove() string {
	for i := len(s.ops) - 1; i >= 0; i-- {
		if strings.HasPrefix(s.ops[i], "move ") {
			return s.ops[i]
		}
	}
	return ""
}

func TestStatusOnlyFrameParksCaretOnCursor(t *testing.T) {
	s, r, sink := renderFixture([]string{"hello world"}, 5, 40)
	s.Cursor.Col = 3
	s.Render.ModifStatus = true
	_ = r.Refresh(s)
	want := fmt.Sprintf("move %d,0", 3+gutterWidth)
	if got := sink.lastMove(); got != want {
		t.Fatalf("a status-only frame must leave the caret on the cursor, got %q want %q", got, want)
	}
	if sink.ops[len(sink.ops)-1] != "show" {
		t.Fatalf("every frame must end with the caret visible")
	}
}

func TestBoundaryBellFrameRestoresCaret(t *testing.T) {
	s, r, sink := renderFixture(manyLines(3), 5, 40)
	s.Cursor.Col = 2
	s.CState.LastPadding = 0
	s.ApplyEvent(key(KeyUp, 0))
	_ = r.Refresh(s)
	want := fmt.Sprintf("move %d,0", s.Cursor.Col+gutterWidth)
	if got := sink.lastMove(); got != want {
		t.Fatalf("a bell-at-boundary frame must leave the caret on the cursor, got %q want %q", got, want)
	}
}

func TestYankFrameRestoresCaret(t *testing.T) {
	s, r, sink := renderFixture([]string{"hello world"}, 5, 40)
	s.clip = &recordingClipboard{}
	s.Cursor.Col = 4
	s.ApplyEvent(KeyEvent{Code: KeyChar, Ch: 'y'})
	_ = r.Refresh(s)
	want := fmt.Sprintf("move %d,0", 4+gutterWidth)
	if got := sink.lastMove(); got != want {
		t.Fatalf("a yank frame must leave the caret on the cursor, got %q want %q", got, want)
	}
}

func TestIdleFrameDrawsNothing(t *testing.T) {
	s, r, sink := renderFixture([]string{"hello"}, 5, 40)
	_ = r.Refresh(s)
	if len(sink.ops) != 0 || sink.flushes != 0 {
		t.Fatalf("a frame with no dirty marks must not touch the terminal, got %d ops", len(sink.ops))
	}
}

func TestRenderStateResetsAfterFrame(t *testing.T) {
	s, r, _ := renderFixture([]string{"hello"}, 5, 40)
	s.Render.MarkAll()
	s.Render.ModifStatus = true
	s.Render.RememberCursor(s.Cursor)
	_ = r.Refresh(s)
	rs := s.Render
	if rs.ModifAll || rs.ModifStatus || rs.ModifRow != -1 || rs.LastCursor != nil {
		t.Fatalf("render state must reset after a frame, got %+v", rs)
	}
}

func TestDegenerateViewportSkipsFrame(t *testing.T) {
	s, r, sink := renderFixture([]string{"hello"}, 5, 40)
	s.Editor.Refresh(3, 1, 1)
	s.Render.MarkAll()
	if err := r.Refresh(s); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if len(sink.ops) != 0 || sink.flushes != 0 {
		t.Fatalf("degenerate viewport must not draw, got %d ops", len(sink.ops))
	}
	if s.Render.ModifAll {
		t.Fatalf("marks must still reset on a skipped frame")
	}
}

func TestWelcomeScreenWithoutDocument(t *testing.T) {
	s := NewSession(nil, nopBell{}, nil)
	s.Editor.Refresh(84, 25, 0)
	sink := &opSink{}
	r := NewRenderer(sink, Theme{})
	s.Render.MarkAll()
	s.Render.ModifStatus = true
	_ = r.Refresh(s)
	joined := sink.joined()
	if !strings.Contains(joined, "print specto "+version) {
		t.Fatalf("welcome screen must show the program banner, got:\n%s", joined)
	}
	if !strings.Contains(joined, "print [no document]") {
		t.Fatalf("status bar must flag the missing document")
	}
}

func TestStatusLineLayout(t *testing.T) {
	s := seedSession([]string{"alpha", "beta", "gamma", "delta"}, 10, 36)
	s.CState.ScrollY = 1
	s.Cursor = Cursor{Col: 2, Row: 1}
	got := statusLine(s)
	if len(got) != 40 {
		t.Fatalf("status line must span the full terminal width, got %d bytes", len(got))
	}
	if !strings.HasPrefix(got, "test.txt") {
		t.Fatalf("status line must start with the document path, got %q", got)
	}
	if !strings.Contains(got, "2,2  50%") {
		t.Fatalf("status line must show column, line and percentage, got %q", got)
	}
}

func TestStatusLineShowsTransientMessage(t *testing.T) {
	s := seedSession([]string{"alpha"}, 10, 60)
	s.StatusMsg = "yanked line 0"
	if got := statusLine(s); !strings.Contains(got, "yanked line 0") {
		t.Fatalf("status line must carry the transient message, got %q", got)
	}
}

func TestClipLineSanitizesAndTruncates(t *testing.T) {
	if got := clipLine("a\tb\x1bc", 40); got != "a b?c" {
		t.Fatalf("control bytes must be neutralized, got %q", got)
	}
	if got := clipLine("abcdef", 3); got != "abc" {
		t.Fatalf("lines must truncate to the viewport width, got %q", got)
	}
	if got := clipLine("plain", 40); got != "plain" {
		t.Fatalf("clean lines must pass through untouched, got %q", got)
	}
}

func TestClipLineNeverSplitsRunes(t *testing.T) {
	if got := clipLine("aé", 2); got != "a" {
		t.Fatalf("truncation must back off to a rune boundary, got %q", got)
	}
	if got := clipLine("日本語", 4); got != "日" {
		t.Fatalf("truncation inside a 3-byte rune must drop it whole, got %q", got)
	}
	if got := clipLine("aé", 3); got != "aé" {
		t.Fatalf("a cut on a rune boundary must keep the rune, got %q", got)
	}
}

func TestGutterLabelStaysFourCells(t *testing.T) {
	cases := map[int]string{
		0:      "  0 ",
		42:     " 42 ",
		999:    "999 ",
		1000:   "1000",
		123456: "3456",
	}
	for idx, want := range cases {
		if got := gutterLabel(idx); got != want {
			t.Fatalf("gutterLabel(%d) = %q, want %q", idx, got, want)
		}
		if len(gutterLabel(idx)) != gutterWidth {
			t.Fatalf("gutter must stay %d cells for index %d", gutterWidth, idx)
		}
	}
}
