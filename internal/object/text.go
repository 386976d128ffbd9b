package object

import (
	"github.com/tomz197/inverters/internal/draw"
)

// Text is a drawable label. Coordinates are 1-based render-area positions.
type Text struct {
	X     int
	Y     int
	Value string
	Color draw.Color
}

// Update is a no-op for static text.
func (t Text) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw writes the text at its position.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" || ctx.Writer == nil {
		return nil
	}
	if t.Color == draw.ColorNone {
		ctx.Writer.WriteAt(t.X, t.Y, t.Value)
		return nil
	}
	ctx.Writer.WriteAtColor(t.X, t.Y, t.Value, t.Color)
	return nil
}
