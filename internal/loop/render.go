package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/inverters/internal/draw"
)

// updateScreen handles terminal resize and fits the canvas to the running game's
// field. Size changes are recorded so the next frame starts from a clear terminal,
// removing residual pixels outside the new render area.
func (g *Game) updateScreen() {
	w, h, err := g.termSizeFunc()
	if err != nil || w <= 0 || h <= 0 {
		return
	}
	if w != g.termW || h != g.termH {
		g.termW, g.termH = w, h
		g.resized = true
	}

	field, ok := g.playField()
	if !ok || !g.screen.Playing() {
		return
	}
	if g.canvas == nil || g.canvasField != field {
		g.canvas = draw.NewScaledCanvas(1, 1, field.Width, field.Height)
		g.canvasField = field
		g.resized = true
	}
	width, height, offCol, offRow := draw.FitAspect(w, h, field.Width, field.Height)
	if width != g.canvas.TerminalWidth() || height != g.canvas.TerminalHeight() ||
		offCol != g.canvas.OffsetCol() || offRow != g.canvas.OffsetRow() {
		g.resized = true
	}
	g.canvas.Resize(width, height)
	g.canvas.SetOffset(offCol, offRow)
}

// drawFrame draws the current frame.
func (g *Game) drawFrame(now time.Time) error {
	// On screen or overlay transitions, do a full terminal clear
	// so text from the previous screen doesn't persist.
	shuttingDown := !g.shutdownAt.IsZero()
	if g.screen != g.drawn || g.inactive != g.wasInactive || g.resized || shuttingDown != g.drawnShutdown {
		g.out.Clear()
		g.drawn = g.screen
		g.wasInactive = g.inactive
		g.drawnShutdown = shuttingDown
		g.resized = false
	}

	switch {
	case shuttingDown:
		g.drawTextScreen(g.shutdownLines(now))
	case g.inactive:
		g.drawTextScreen(g.inactivityLines(now))
	case g.screen.Playing():
		if err := g.drawPlay(now); err != nil {
			return err
		}
	default:
		g.drawTextScreen(g.textScreen(now))
	}
	return g.out.Flush()
}

func (g *Game) inactivityLines(now time.Time) []textLine {
	left := max(InactivityDisconnect-now.Sub(g.lastInput), 0)
	return []textLine{
		{"INACTIVITY WARNING", draw.ColorYellow},
		{},
		{"You have been inactive for too long.", draw.ColorWhite},
		{fmt.Sprintf("You will be disconnected in %d seconds.", int(left/time.Second)), draw.ColorWhite},
		{},
		{"Press any key to continue", draw.ColorGrey},
	}
}

func (g *Game) shutdownLines(now time.Time) []textLine {
	left := max(g.shutdownAt.Sub(now), 0)
	return []textLine{
		{"SERVER SHUTTING DOWN", draw.ColorRed},
		{},
		{"The server is restarting for maintenance.", draw.ColorWhite},
		{"Your progress has been saved.", draw.ColorWhite},
		{},
		{fmt.Sprintf("Disconnecting in %d seconds...", int(left/time.Second)+1), draw.ColorWhite},
		{},
		{"Press Q to disconnect now", draw.ColorGrey},
	}
}
