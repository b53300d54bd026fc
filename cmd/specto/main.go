package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"golang.org/x/term"
)

var version = "0.1.0"

const pollTimeout = 50 * time.Millisecond

func main() {
	args := os.Args[1:]
	for _, arg := range args {
		if arg == "--version" || arg == "-V" {
			fmt.Printf("specto %s\n", version)
			return
		}
	}
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	cfg, err := loadConfig(os.Getenv("SPECTO_CONFIG"))
	if err != nil {
		fatal(err)
	}

	var doc *Document
	if len(args) > 0 {
		doc, err = LoadDocument(args[0])
		if err != nil {
			fatal(err)
		}
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fatal(errors.New("stdin and stdout must be a terminal"))
	}

	t := NewTerminal()
	if err := t.EnterRaw(); err != nil {
		fatal(err)
	}
	defer t.Restore()

	// Any panic must restore the tty before the stack trace prints, or the
	// trace lands on the alternate screen in raw mode.
	defer func() {
		if p := recover(); p != nil {
			t.Restore()
			fmt.Fprintf(os.Stderr, "specto: panic: %v\n%s", p, debug.Stack())
			os.Exit(1)
		}
	}()

	var bell Bell = nopBell{}
	if cfg.Bell {
		bell = terminalBell{out: os.Stdout}
	}
	sess := NewSession(doc, bell, systemClipboard{out: os.Stdout})
	renderer := NewRenderer(t, cfg.theme())

	if err := run(sess, renderer, t); err != nil {
		t.Restore()
		fatal(err)
	}
}

// run is the event loop: one thread, one iteration per frame. Each pass
// re-reads the terminal size, paints whatever the render state marks dirty,
// then blocks up to pollTimeout for a single event and applies it.
func run(s *Session, r *Renderer, t *Terminal) error {
	reader := &eventReader{fd: int(os.Stdin.Fd())}
	s.Render.MarkAll()
	s.Render.ModifStatus = true

	lastCols, lastRows := -1, -1
	for {
		cols, rows, err := t.Size()
		if err != nil {
			return err
		}
		if cols != lastCols || rows != lastRows {
			if lastCols >= 0 {
				s.Render.MarkAll()
				s.Render.ModifStatus = true
			}
			lastCols, lastRows = cols, rows
		}
		s.Editor.Refresh(cols, rows, s.Doc.LineCount())
		s.clampToViewport()

		if err := r.Refresh(s); err != nil {
			return err
		}
		if !s.Editor.Running {
			return nil
		}

		ev, err := reader.Poll(pollTimeout)
		if err != nil {
			return err
		}
		if ev != nil {
			s.ApplyEvent(ev)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "specto:", err)
	os.Exit(1)
}
