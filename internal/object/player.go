package object

import (
	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/physics"
)

// Player ship dimensions and base speed in logical units per frame.
const (
	PlayerSize      = 80.0
	PlayerBaseSpeed = 3.0
)

// Player is the ship controlled by the user. X and Y are its top-left corner.
type Player struct {
	X, Y   float64
	VX, VY float64 // Velocity of the current frame
	Speed  float64 // Units per frame along each held axis
	Color  draw.Color

	// ShieldLeft is the remaining shield time in seconds, used for blinking only.
	ShieldLeft float64
}

// NewPlayer creates a player at the standard start position of the field.
func NewPlayer(field Field) *Player {
	return &Player{
		X:     field.Width/2 - PlayerSize/2,
		Y:     field.Height - 120,
		Speed: PlayerBaseSpeed,
		Color: draw.ColorCyan,
	}
}

// Bounds returns the player's collision rectangle.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: PlayerSize, H: PlayerSize}
}

// Center returns the centre of the ship.
func (p *Player) Center() (float64, float64) {
	return p.Bounds().Center()
}

// Steer sets the frame velocity from held movement keys.
func (p *Player) Steer(in Input) {
	p.VX, p.VY = 0, 0
	if in.Left {
		p.VX -= p.Speed
	}
	if in.Right {
		p.VX += p.Speed
	}
	if in.Up {
		p.VY -= p.Speed
	}
	if in.Down {
		p.VY += p.Speed
	}
}

// Update steers the ship from input, moves it and clamps it to the field.
// The player is never removed.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	p.Steer(ctx.Input)
	p.X = physics.Clamp(p.X+p.VX, 0, ctx.Field.Width-PlayerSize)
	p.Y = physics.Clamp(p.Y+p.VY, 0, ctx.Field.Height-PlayerSize)
	return false, nil
}

// Draw renders the ship as an arrow-shaped hull with two wings.
func (p *Player) Draw(ctx DrawContext) error {
	if !ShouldRenderBlink(p.ShieldLeft, 5.0) {
		return nil
	}
	c := ctx.Canvas
	const s = PlayerSize

	// Hull
	c.FillRect(p.X+s*0.4, p.Y, s*0.2, s, p.Color)
	// Wings
	c.FillRect(p.X, p.Y+s*0.55, s, s*0.25, p.Color)
	c.FillRect(p.X+s*0.15, p.Y+s*0.35, s*0.7, s*0.2, p.Color)
	// Cockpit
	c.FillRect(p.X+s*0.45, p.Y+s*0.15, s*0.1, s*0.15, draw.ColorWhite)

	if p.ShieldLeft > 0 {
		cx, cy := p.Center()
		ring := draw.ColorBlue
		r := s * 0.7
		c.DrawLine(draw.Point{X: cx - r, Y: cy - r}, draw.Point{X: cx + r, Y: cy - r}, ring)
		c.DrawLine(draw.Point{X: cx - r, Y: cy + r}, draw.Point{X: cx + r, Y: cy + r}, ring)
		c.DrawLine(draw.Point{X: cx - r, Y: cy - r}, draw.Point{X: cx - r, Y: cy + r}, ring)
		c.DrawLine(draw.Point{X: cx + r, Y: cy - r}, draw.Point{X: cx + r, Y: cy + r}, ring)
	}
	return nil
}
