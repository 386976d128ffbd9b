package draw

import (
	"strconv"
	"strings"
)

// Color is an index into the 256-colour terminal palette. ColorNone marks an unset pixel.
type Color uint8

// Palette entries used by the game.
const (
	ColorNone    Color = 0
	ColorRed     Color = 196
	ColorGreen   Color = 46
	ColorBlue    Color = 33
	ColorYellow  Color = 226
	ColorMagenta Color = 201
	ColorCyan    Color = 51
	ColorOrange  Color = 208
	ColorWhite   Color = 231
	ColorGrey    Color = 245
	ColorDimGrey Color = 238
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

const ansiReset = "\033[0m"

// Foreground returns the escape sequence selecting c as the foreground colour.
func Foreground(c Color) string {
	if c == ColorNone {
		return "\033[39m"
	}
	return "\033[38;5;" + strconv.Itoa(int(c)) + "m"
}

// Background returns the escape sequence selecting c as the background colour.
func Background(c Color) string {
	if c == ColorNone {
		return "\033[49m"
	}
	return "\033[48;5;" + strconv.Itoa(int(c)) + "m"
}

// styleState remembers the colours already emitted in a render pass so each cell
// only writes escapes when its colours change.
type styleState struct {
	fg, bg Color
	set    bool
}

func (s *styleState) apply(b *strings.Builder, fg, bg Color) {
	if !s.set || s.fg != fg {
		b.WriteString(Foreground(fg))
	}
	if !s.set || s.bg != bg {
		b.WriteString(Background(bg))
	}
	s.fg, s.bg, s.set = fg, bg, true
}
