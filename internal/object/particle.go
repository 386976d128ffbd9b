package object

import (
	"sync"

	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/spawn"
)

// Burst parameters.
const (
	BurstSize           = 10
	particleMinLifetime = 20 // Frames
	particleMaxLifetime = 40
	particleMaxSpeed    = 2.0
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Lifetime int // Frames remaining
	Color    draw.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy float64, lifetime int, col draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Radius = 3
	p.Lifetime = lifetime
	p.Color = col
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Burst creates BurstSize particles at (x, y) with random velocity and lifetime.
func Burst(x, y float64, col draw.Color, rng spawn.Rand) []*Particle {
	out := make([]*Particle, 0, BurstSize)
	for range BurstSize {
		vx := (rng.Float64()*2 - 1) * particleMaxSpeed
		vy := (rng.Float64()*2 - 1) * particleMaxSpeed
		life := particleMinLifetime + rng.Intn(particleMaxLifetime-particleMinLifetime+1)
		p := NewParticle(x, y, vx, vy, life, col)
		p.Radius = 2 + float64(rng.Intn(4))
		out = append(out, p)
	}
	return out
}

// Update moves the particle and counts down its lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	p.X += p.VX
	p.Y += p.VY
	p.Lifetime--
	return p.Lifetime <= 0, nil
}

// Draw renders the particle, dimming it near the end of its life.
func (p *Particle) Draw(ctx DrawContext) error {
	col := p.Color
	if p.Lifetime < particleMinLifetime/4 {
		col = draw.ColorDimGrey
	}
	ctx.Canvas.FillRect(p.X-p.Radius, p.Y-p.Radius, 2*p.Radius, 2*p.Radius, col)
	return nil
}
