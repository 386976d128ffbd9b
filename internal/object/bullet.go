package object

import (
	"math"

	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/physics"
)

// Bullet sizes and base speed in logical units.
const (
	BulletWidth     = 10.0
	BulletHeight    = 20.0
	BigBulletWidth  = 20.0
	BigBulletHeight = 40.0
	BulletSpeed     = 7.0
)

// Bullet is a shot fired by the player. X and Y are its top-left corner.
type Bullet struct {
	X, Y  float64
	Angle float64 // Degrees, 0 = straight up, positive turns right
	Speed float64 // Units per frame
	Big   bool
}

// NewBullet creates a bullet at (x, y) travelling at angle degrees.
func NewBullet(x, y, angle, speed float64, big bool) *Bullet {
	return &Bullet{X: x, Y: y, Angle: angle, Speed: speed, Big: big}
}

// Size returns the bullet dimensions.
func (b *Bullet) Size() (w, h float64) {
	if b.Big {
		return BigBulletWidth, BigBulletHeight
	}
	return BulletWidth, BulletHeight
}

// Bounds returns the bullet's collision rectangle.
func (b *Bullet) Bounds() physics.Rect {
	w, h := b.Size()
	return physics.Rect{X: b.X, Y: b.Y, W: w, H: h}
}

// Update moves the bullet along its angle and removes it once it leaves the field.
func (b *Bullet) Update(ctx UpdateContext) (bool, error) {
	rad := b.Angle * math.Pi / 180
	b.X += b.Speed * math.Sin(rad)
	b.Y -= b.Speed * math.Cos(rad)

	outside := b.Y <= 0 || b.X < 0 || b.X > ctx.Field.Width || b.Y > ctx.Field.Height
	return outside, nil
}

// Draw renders the bullet.
func (b *Bullet) Draw(ctx DrawContext) error {
	w, h := b.Size()
	col := draw.ColorYellow
	if b.Big {
		col = draw.ColorOrange
	}
	ctx.Canvas.FillRect(b.X, b.Y, w, h, col)
	return nil
}
