// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report repeats, not releases, so held state decays after this window.
const keyHoldDuration = 120 * time.Millisecond

// KeyCode identifies a discrete key press.
type KeyCode int

const (
	KeyRune KeyCode = iota // Printable character, see KeyEvent.Rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeySpace
)

// KeyEvent is a single key press seen during a frame.
type KeyEvent struct {
	Code KeyCode
	Rune rune
}

// Input represents the current frame's input state.
// Movement and Fire are held state; Events are the discrete presses of this frame.
type Input struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Fire   bool
	Events []KeyEvent
}

// Tapped reports whether the key was pressed during this frame.
func (in Input) Tapped(code KeyCode) bool {
	for _, ev := range in.Events {
		if ev.Code == code {
			return true
		}
	}
	return false
}

// TappedRune reports whether any of the given characters was typed during this frame.
func (in Input) TappedRune(runes ...rune) bool {
	for _, ev := range in.Events {
		if ev.Code != KeyRune {
			continue
		}
		for _, r := range runes {
			if ev.Rune == r {
				return true
			}
		}
	}
	return false
}

// Number returns the first digit typed during this frame, or -1.
func (in Input) Number() int {
	for _, ev := range in.Events {
		if ev.Code == KeyRune && ev.Rune >= '0' && ev.Rune <= '9' {
			return int(ev.Rune - '0')
		}
	}
	return -1
}

// Confirmed reports whether enter or space was pressed this frame.
func (in Input) Confirmed() bool {
	return in.Tapped(KeyEnter) || in.Tapped(KeySpace)
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time
	fire  time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	closed bool
}

func newStream() *Stream {
	return &Stream{ch: make(chan byte, 128)}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when the reader fails, which surfaces as Input.Quit.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Reset forgets all held keys, e.g. after a screen transition.
func (s *Stream) Reset() {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	return ReadInputAt(s, time.Now())
}

// ReadInputAt is ReadInput with an explicit clock.
func ReadInputAt(s *Stream, now time.Time) Input {
	buf := s.drain()

	var events []KeyEvent
	quit := s.closed
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if code, ok := arrowCode(buf[i+2]); ok {
				events = append(events, KeyEvent{Code: code})
				s.hold(code, now)
				i += 2
				continue
			}
		}

		if b == 0x03 { // Ctrl+C
			quit = true
			continue
		}

		ev, ok := byteEvent(b)
		if !ok {
			continue
		}
		events = append(events, ev)
		s.holdRune(ev, now)
	}

	return Input{
		Quit:   quit,
		Left:   now.Sub(s.state.left) < keyHoldDuration,
		Right:  now.Sub(s.state.right) < keyHoldDuration,
		Up:     now.Sub(s.state.up) < keyHoldDuration,
		Down:   now.Sub(s.state.down) < keyHoldDuration,
		Fire:   now.Sub(s.state.fire) < keyHoldDuration,
		Events: events,
	}
}

func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

func arrowCode(b byte) (KeyCode, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return 0, false
}

// byteEvent maps a single byte to a key event.
func byteEvent(b byte) (KeyEvent, bool) {
	switch b {
	case ' ':
		return KeyEvent{Code: KeySpace, Rune: ' '}, true
	case '\n', '\r':
		return KeyEvent{Code: KeyEnter}, true
	case '\b', 0x7f:
		return KeyEvent{Code: KeyBackspace}, true
	case '\x1b':
		return KeyEvent{Code: KeyEscape}, true
	}
	if b >= 0x20 && b < 0x7f {
		return KeyEvent{Code: KeyRune, Rune: rune(b)}, true
	}
	return KeyEvent{}, false
}

func (s *Stream) hold(code KeyCode, now time.Time) {
	switch code {
	case KeyUp:
		s.state.up = now
	case KeyDown:
		s.state.down = now
	case KeyLeft:
		s.state.left = now
	case KeyRight:
		s.state.right = now
	case KeySpace:
		s.state.fire = now
	}
}

// holdRune maps WASD and space onto held movement keys.
func (s *Stream) holdRune(ev KeyEvent, now time.Time) {
	if ev.Code != KeyRune {
		s.hold(ev.Code, now)
		return
	}
	switch ev.Rune {
	case 'a', 'A':
		s.state.left = now
	case 'd', 'D':
		s.state.right = now
	case 'w', 'W':
		s.state.up = now
	case 's', 'S':
		s.state.down = now
	}
}
