package object

import (
	"github.com/tomz197/inverters/internal/buff"
	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/physics"
)

// PowerUpKind is the effect granted when a power-up is collected.
type PowerUpKind int

const (
	PowerUpSpeed PowerUpKind = iota
	PowerUpHealth
	PowerUpBigBullet
	PowerUpDouble
	PowerUpTriple
	PowerUpSpread
	PowerUpRadial
	PowerUpSuper
	numPowerUpKinds
)

// Power-up and meteor geometry in logical units.
const (
	PowerUpSize      = 64.0
	PowerUpFallSpeed = 3.0
	MeteorSize       = 40.0
	MeteorSpeed      = 5.0
	DropSpawnY       = -50.0
)

var powerUpKinds = [numPowerUpKinds]struct {
	name   string
	notice string
	buff   buff.Kind
	color  draw.Color
}{
	PowerUpSpeed:     {"speed", "Speed Boost!", buff.Speed, draw.ColorCyan},
	PowerUpHealth:    {"health", "Health Restored!", -1, draw.ColorGreen},
	PowerUpBigBullet: {"bullet", "Big Bullets!", buff.BigBullet, draw.ColorOrange},
	PowerUpDouble:    {"double", "Double Shot!", buff.DoubleShot, draw.ColorYellow},
	PowerUpTriple:    {"triple", "Triple Shot!", buff.TripleShot, draw.ColorYellow},
	PowerUpSpread:    {"spread", "Spread Shot!", buff.SpreadShot, draw.ColorMagenta},
	PowerUpRadial:    {"radial", "Radial Shot!", buff.RadialShot, draw.ColorRed},
	PowerUpSuper:     {"super", "Super Mode!", buff.SuperMode, draw.ColorWhite},
}

func (k PowerUpKind) String() string {
	if k < 0 || k >= numPowerUpKinds {
		return "unknown"
	}
	return powerUpKinds[k].name
}

// Notice is the message shown when the power-up is collected.
func (k PowerUpKind) Notice() string {
	return powerUpKinds[k].notice
}

// Buff returns the buff granted by the power-up. Health grants none.
func (k PowerUpKind) Buff() (buff.Kind, bool) {
	b := powerUpKinds[k].buff
	return b, b >= 0
}

// PowerUp is a falling pickup. X and Y are its top-left corner.
type PowerUp struct {
	X, Y float64
	Kind PowerUpKind
}

// SpawnPowerUp creates a power-up of a random kind above the field.
func SpawnPowerUp(ctx UpdateContext) *PowerUp {
	x := ctx.Rand.Intn(max(int(ctx.Field.Width-PowerUpSize), 0) + 1)
	kind := PowerUpKind(ctx.Rand.Intn(int(numPowerUpKinds)))
	return &PowerUp{X: float64(x), Y: DropSpawnY, Kind: kind}
}

// Bounds returns the power-up's collision rectangle.
func (p *PowerUp) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: PowerUpSize, H: PowerUpSize}
}

// Update moves the power-up down. Returns true once it has left the bottom of the field.
func (p *PowerUp) Update(ctx UpdateContext) (bool, error) {
	p.Y += PowerUpFallSpeed
	return p.Y > ctx.Field.Height, nil
}

// Draw renders the power-up as a framed box.
func (p *PowerUp) Draw(ctx DrawContext) error {
	col := powerUpKinds[p.Kind].color
	ctx.Canvas.FillRect(p.X, p.Y, PowerUpSize, PowerUpSize, draw.ColorDimGrey)
	inset := PowerUpSize / 4
	ctx.Canvas.FillRect(p.X+inset, p.Y+inset, PowerUpSize-2*inset, PowerUpSize-2*inset, col)
	return nil
}

// Meteor is a falling rock that hurts the player. X and Y are its top-left corner.
type Meteor struct {
	X, Y float64
}

// SpawnMeteor creates a meteor above the field at a random x.
func SpawnMeteor(ctx UpdateContext) *Meteor {
	x := ctx.Rand.Intn(max(int(ctx.Field.Width-MeteorSize), 0) + 1)
	return &Meteor{X: float64(x), Y: DropSpawnY}
}

// Bounds returns the meteor's collision rectangle.
func (m *Meteor) Bounds() physics.Rect {
	return physics.Rect{X: m.X, Y: m.Y, W: MeteorSize, H: MeteorSize}
}

// Update moves the meteor down. Returns true once it has left the bottom of the field.
func (m *Meteor) Update(ctx UpdateContext) (bool, error) {
	m.Y += MeteorSpeed
	return m.Y > ctx.Field.Height, nil
}

// Draw renders the meteor.
func (m *Meteor) Draw(ctx DrawContext) error {
	r := MeteorSize / 2
	ctx.Canvas.FillCircle(m.X+r, m.Y+r, r, draw.ColorGrey)
	return nil
}
