package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/sys/unix"
)

// termEnterSeq switches to the alternate screen, turns on SGR mouse
// reporting and clears; termLeaveSeq undoes it in reverse order and makes
// sure the caret is visible again.
const (
	termEnterSeq = "\x1b[?1049h\x1b[?1000h\x1b[?1006h\x1b[2J\x1b[H"
	termLeaveSeq = "\x1b[?1006l\x1b[?1000l\x1b[?1049l\x1b[?25h"
)

// Terminal owns the tty: raw mode, size queries, and buffered draw output.
// It implements DrawSink.
type Terminal struct {
	in     *os.File
	out    *os.File
	orig   *unix.Termios
	buf    bytes.Buffer
	numBuf [16]byte
}

func NewTerminal() *Terminal {
	return &Terminal{in: os.Stdin, out: os.Stdout}
}

// EnterRaw saves the current termios, switches the tty to raw mode with a
// 100ms read timeout, and enters the alternate screen.
func (t *Terminal) EnterRaw() error {
	fd := int(t.in.Fd())
	orig, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("get termios: %w", err)
	}
	t.orig = orig

	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	_, _ = t.out.WriteString(termEnterSeq)
	return nil
}

// Restore leaves the alternate screen and puts the termios back. Safe to
// call more than once.
func (t *Terminal) Restore() {
	if t.orig == nil {
		return
	}
	_, _ = t.out.WriteString(termLeaveSeq)
	_ = unix.IoctlSetTermios(int(t.in.Fd()), unix.TCSETS, t.orig)
	t.orig = nil
}

// Size returns the terminal dimensions in character cells.
func (t *Terminal) Size() (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("get window size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}

func (t *Terminal) MoveTo(col, row int) {
	t.buf.WriteString("\x1b[")
	t.buf.Write(strconv.AppendInt(t.numBuf[:0], int64(row+1), 10))
	t.buf.WriteByte(';')
	t.buf.Write(strconv.AppendInt(t.numBuf[:0], int64(col+1), 10))
	t.buf.WriteByte('H')
}

func (t *Terminal) ClearLine() { t.buf.WriteString("\x1b[2K") }

func (t *Terminal) Print(s string) { t.buf.WriteString(s) }

func (t *Terminal) HideCaret() { t.buf.WriteString("\x1b[?25l") }

func (t *Terminal) ShowCaret() { t.buf.WriteString("\x1b[?25h") }

// Flush writes the frame in a single syscall so partial frames never show.
func (t *Terminal) Flush() error {
	_, err := t.out.Write(t.buf.Bytes())
	t.buf.Reset()
	return err
}

// Bell signals that navigation hit a document boundary.
type Bell interface {
	Ring()
}

type terminalBell struct{ out io.Writer }

func (b terminalBell) Ring() { _, _ = b.out.Write([]byte{0x07}) }

type nopBell struct{}

func (nopBell) Ring() {}

// eventReader polls the tty for input and assembles escape sequences that
// arrive split across reads.
type eventReader struct {
	fd  int
	buf []byte
}

// Poll waits up to timeout for input and returns at most one decoded event.
// A nil event with a nil error means the wait timed out or the bytes decoded
// to nothing actionable.
func (r *eventReader) Poll(timeout time.Duration) (InputEvent, error) {
	if ev, ok := r.next(); ok {
		return ev, nil
	}
	ready, err := waitReadable(r.fd, timeout)
	if err != nil {
		return nil, err
	}
	if !ready {
		// A dangling escape prefix that outlived a whole poll interval will
		// never complete; drop it.
		r.buf = r.buf[:0]
		return nil, nil
	}
	var tmp [256]byte
	n, err := unix.Read(r.fd, tmp[:])
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return nil, nil
		}
		return nil, fmt.Errorf("read input: %w", err)
	}
	if n <= 0 {
		return nil, nil
	}
	r.buf = append(r.buf, tmp[:n]...)
	ev, _ := r.next()
	return ev, nil
}

// next decodes events out of the buffer until one is actionable or the
// buffer is exhausted or incomplete.
func (r *eventReader) next() (InputEvent, bool) {
	for len(r.buf) > 0 {
		ev, n, ok := parseEvent(r.buf)
		if !ok {
			return nil, false
		}
		r.buf = r.buf[n:]
		if ev != nil {
			return ev, true
		}
	}
	return nil, false
}

func waitReadable(fd int, timeout time.Duration) (bool, error) {
	var set unix.FdSet
	set.Bits[fd/64] |= 1 << (uint(fd) % 64)
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(fd+1, &set, nil, nil, &tv)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("select: %w", err)
	}
	return n > 0, nil
}
