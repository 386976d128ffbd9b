package object

import (
	"strconv"

	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/physics"
)

// EnemyKind is the archetype of an enemy.
type EnemyKind int

const (
	EnemyFast EnemyKind = iota
	EnemyShooter
	EnemyTank
	numEnemyKinds
)

// Enemy spawn parameters.
const (
	EnemyHealth  = 5     // Starting health
	EnemySpawnY  = -50.0 // Spawn height above the field
	EnemySpawnW  = 60.0  // Horizontal margin kept free at the right edge when spawning
	EnemyRosterY = 300.0 // Vertical gap between initial mission enemies
)

// Larger enemies descend slower.
var enemyKinds = [numEnemyKinds]struct {
	name   string
	radius float64
	speed  float64
}{
	EnemyFast:    {"fast", 20, 3},
	EnemyShooter: {"shooter", 30, 2},
	EnemyTank:    {"tank", 40, 1},
}

var enemyColors = []draw.Color{
	draw.ColorRed,
	draw.ColorGreen,
	draw.ColorBlue,
	draw.ColorMagenta,
	draw.ColorOrange,
}

func (k EnemyKind) String() string {
	if k < 0 || k >= numEnemyKinds {
		return "unknown"
	}
	return enemyKinds[k].name
}

// Radius returns the enemy radius of the kind.
func (k EnemyKind) Radius() float64 {
	return enemyKinds[k].radius
}

// Speed returns the base descent speed of the kind in units per frame.
func (k EnemyKind) Speed() float64 {
	return enemyKinds[k].speed
}

// Enemy is a descending hostile ship. X and Y are its centre.
type Enemy struct {
	X, Y   float64
	Health int
	Kind   EnemyKind
	Radius float64
	Speed  float64 // Units per frame, already scaled by difficulty
	Color  draw.Color
}

// NewEnemy creates an enemy of the given kind centred at (x, y).
func NewEnemy(x, y float64, kind EnemyKind, difficulty float64, col draw.Color) *Enemy {
	return &Enemy{
		X:      x,
		Y:      y,
		Health: EnemyHealth,
		Kind:   kind,
		Radius: kind.Radius(),
		Speed:  kind.Speed() * difficulty,
		Color:  col,
	}
}

// SpawnEnemy creates an enemy of a random kind and colour at the given height and a
// random x in [0, width-EnemySpawnW].
func SpawnEnemy(ctx UpdateContext, y, difficulty float64) *Enemy {
	maxX := int(ctx.Field.Width - EnemySpawnW)
	x := float64(ctx.Rand.Intn(max(maxX, 0) + 1))
	kind := EnemyKind(ctx.Rand.Intn(int(numEnemyKinds)))
	col := enemyColors[ctx.Rand.Intn(len(enemyColors))]
	return NewEnemy(x, y, kind, difficulty, col)
}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.CircleBounds(e.X, e.Y, e.Radius)
}

// Hit applies damage and reports whether the enemy died.
func (e *Enemy) Hit(damage int) bool {
	e.Health -= damage
	return e.Health <= 0
}

// Update moves the enemy down. Returns true once it has left the bottom of the field.
func (e *Enemy) Update(ctx UpdateContext) (bool, error) {
	e.Y += e.Speed
	return e.Y > ctx.Field.Height, nil
}

// Draw renders the enemy as a filled disc with its health above it.
func (e *Enemy) Draw(ctx DrawContext) error {
	ctx.Canvas.FillCircle(e.X, e.Y, e.Radius, e.Color)
	if ctx.Writer != nil && e.Y-e.Radius > 0 {
		col, row := ctx.Canvas.LogicalToTerminal(e.X, e.Y-e.Radius)
		ctx.Writer.WriteAtColor(col, row-1, strconv.Itoa(e.Health), draw.ColorWhite)
	}
	return nil
}
