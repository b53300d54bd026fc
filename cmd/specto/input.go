package main

// Modifiers is the set of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
)

// Has reports whether any of the wanted modifiers are held.
func (m Modifiers) Has(want Modifiers) bool { return m&want != 0 }

// KeyCode identifies which key a KeyEvent carries.
type KeyCode int

const (
	KeyChar KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// InputEvent is one decoded terminal event. The concrete types are KeyEvent,
// MouseScrollEvent and MouseClickEvent; handlers switch over them and ignore
// nothing silently.
type InputEvent interface{ inputEvent() }

// KeyEvent is a keypress. Ch is only meaningful when Code is KeyChar.
type KeyEvent struct {
	Code KeyCode
	Ch   byte
	Mod  Modifiers
}

// MouseScrollEvent is one wheel notch.
type MouseScrollEvent struct {
	Up  bool
	Mod Modifiers
}

// MouseClickEvent is a left-button release at 0-based terminal coordinates.
type MouseClickEvent struct {
	Row int
	Col int
}

func (KeyEvent) inputEvent()         {}
func (MouseScrollEvent) inputEvent() {}
func (MouseClickEvent) inputEvent()  {}

// Escape sequences longer than this cannot be anything we recognize, so a
// buffer that grows past it without a final byte is discarded rather than
// held forever.
const maxSeqLen = 32

// parseEvent decodes the first event in buf. It returns the decoded event
// (nil when the consumed bytes carry no event we act on), the number of bytes
// consumed, and ok=false when buf ends in the middle of an escape sequence
// and more bytes are needed. ok=true always comes with n > 0 for a non-empty
// buffer.
func parseEvent(buf []byte) (ev InputEvent, n int, ok bool) {
	if len(buf) == 0 {
		return nil, 0, false
	}
	c := buf[0]
	if c != 0x1b {
		return KeyEvent{Code: KeyChar, Ch: c}, 1, true
	}
	if len(buf) == 1 {
		return nil, 0, false
	}
	if buf[1] != '[' {
		// Alt-chord or bare escape pair; not bound to anything.
		return nil, 2, true
	}

	// Scan the CSI body for its final byte.
	end := -1
	for i := 2; i < len(buf); i++ {
		b := buf[i]
		if b == '~' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') {
			end = i
			break
		}
	}
	if end < 0 {
		if len(buf) > maxSeqLen {
			return nil, len(buf), true
		}
		return nil, 0, false
	}
	seq := buf[2 : end+1]
	n = end + 1

	if seq[0] == '<' {
		return parseSGRMouse(seq), n, true
	}

	var code KeyCode
	switch seq[len(seq)-1] {
	case 'A':
		code = KeyUp
	case 'B':
		code = KeyDown
	case 'C':
		code = KeyRight
	case 'D':
		code = KeyLeft
	default:
		return nil, n, true
	}
	var mod Modifiers
	if len(seq) >= 4 && seq[0] == '1' && seq[1] == ';' {
		mod = xtermModifiers(seq[2 : len(seq)-1])
	}
	return KeyEvent{Code: code, Mod: mod}, n, true
}

// xtermModifiers decodes the "1;N" modifier parameter: N-1 is a bitset with
// bit 0 for Shift and bit 2 for Control.
func xtermModifiers(digits []byte) Modifiers {
	v := 0
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0
		}
		v = v*10 + int(d-'0')
	}
	if v <= 1 {
		return 0
	}
	bits := v - 1
	var m Modifiers
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}

// parseSGRMouse decodes an SGR mouse report "<b;x;yM" (or final 'm' for a
// release). Wheel notches arrive as button 64/65; a plain left-button release
// becomes a click placement. Everything else is dropped.
func parseSGRMouse(seq []byte) InputEvent {
	final := seq[len(seq)-1]
	if final != 'M' && final != 'm' {
		return nil
	}
	var parts [3]int
	part, val, haveDigit := 0, 0, false
	for _, b := range seq[1 : len(seq)-1] {
		switch {
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			haveDigit = true
		case b == ';':
			if part >= 2 || !haveDigit {
				return nil
			}
			parts[part] = val
			part++
			val, haveDigit = 0, false
		default:
			return nil
		}
	}
	if part != 2 || !haveDigit {
		return nil
	}
	parts[2] = val
	b, x, y := parts[0], parts[1], parts[2]

	var mod Modifiers
	if b&4 != 0 {
		mod |= ModShift
	}
	if b&16 != 0 {
		mod |= ModCtrl
	}
	btn := b &^ (4 | 8 | 16 | 32)
	if btn&64 != 0 {
		if final != 'M' {
			return nil
		}
		return MouseScrollEvent{Up: btn == 64, Mod: mod}
	}
	if btn == 0 && final == 'm' {
		return MouseClickEvent{Row: y - 1, Col: x - 1}
	}
	return nil
}
