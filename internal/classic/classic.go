// Package classic implements the original single-enemy version of the game.
package classic

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/game"
	"github.com/tomz197/inverters/internal/input"
	"github.com/tomz197/inverters/internal/object"
	"github.com/tomz197/inverters/internal/physics"
	"github.com/tomz197/inverters/internal/spawn"
)

// Field and sprite geometry in logical units. Positions are sprite top-left corners.
const (
	FieldSize   = 500.0
	SpriteSize  = 64.0
	maxPosition = FieldSize - SpriteSize
	playerStart = 225.0
	playerRow   = 400.0
	enemyRow    = 100.0
)

// Speeds in units per frame and game rules.
const (
	PlayerSpeed      = 5.0
	EnemySpeed       = 2.0 // Scaled by difficulty
	BulletSpeed      = 5.0
	EnemyBulletSpeed = 5.0
	StartHealth      = 3
	EnemyFirePercent = 1 // Chance per frame while the enemy bullet is ready
	HitRadius        = 27.0
	PlayerHitRadius  = 30.0
	hitFlash         = 500 * time.Millisecond
)

// BulletState is the state of a single-shot bullet.
type BulletState int

const (
	BulletReady BulletState = iota // Held by the shooter
	BulletFire                     // In flight
)

// Shot is a single bullet that is either ready or in flight.
type Shot struct {
	X, Y  float64
	State BulletState
}

// Session is one classic game.
type Session struct {
	PlayerX, PlayerY float64
	EnemyX, EnemyY   float64
	EnemyVX          float64
	Bullet           Shot
	EnemyBullet      Shot
	Health           int
	Score            int

	rng      spawn.Rand
	hitUntil time.Time
	outcome  game.Outcome
}

// NewSession starts a classic game. difficulty scales the enemy speed and is clamped
// to the arcade difficulty range.
func NewSession(difficulty float64, rng spawn.Rand) (*Session, error) {
	if rng == nil {
		return nil, errors.New("classic session needs a random source")
	}
	if difficulty == 0 {
		difficulty = game.DefaultDifficulty
	}
	difficulty = physics.Clamp(difficulty, game.MinDifficulty, game.MaxDifficulty)
	s := &Session{
		PlayerX: playerStart,
		PlayerY: playerRow,
		EnemyX:  float64(rng.Intn(int(maxPosition) + 1)),
		EnemyY:  enemyRow,
		EnemyVX: EnemySpeed * difficulty,
		Health:  StartHealth,
		rng:     rng,
	}
	s.Bullet.Y = s.PlayerY
	s.EnemyBullet.Y = s.EnemyY
	return s, nil
}

// Field returns the playfield.
func (s *Session) Field() object.Field {
	return object.Field{Width: FieldSize, Height: FieldSize}
}

// Outcome returns the latched outcome.
func (s *Session) Outcome() game.Outcome {
	return s.outcome
}

// Update advances the game by one frame. The session ends with a loss once health
// reaches zero; there is no win.
func (s *Session) Update(in input.Input, now time.Time) (game.Outcome, error) {
	if s.outcome != game.OutcomeNone {
		return s.outcome, nil
	}

	dx := 0.0
	if in.Left {
		dx -= PlayerSpeed
	}
	if in.Right {
		dx += PlayerSpeed
	}
	s.PlayerX = physics.Clamp(s.PlayerX+dx, 0, maxPosition)

	if in.Fire && s.Bullet.State == BulletReady {
		s.Bullet = Shot{X: s.PlayerX, Y: s.PlayerY, State: BulletFire}
	}
	if s.Bullet.State == BulletFire {
		s.Bullet.Y -= BulletSpeed
		if s.Bullet.Y <= 0 {
			s.Bullet = Shot{Y: s.PlayerY}
		}
	}

	s.EnemyX += s.EnemyVX
	if s.EnemyX <= 0 || s.EnemyX >= maxPosition {
		s.EnemyVX = -s.EnemyVX
		s.EnemyX = physics.Clamp(s.EnemyX, 0, maxPosition)
	}

	if s.EnemyBullet.State == BulletReady && s.rng.Intn(100) < EnemyFirePercent {
		s.EnemyBullet = Shot{X: s.EnemyX, Y: s.EnemyY, State: BulletFire}
	}
	if s.EnemyBullet.State == BulletFire {
		s.EnemyBullet.Y += EnemyBulletSpeed
		if s.EnemyBullet.Y >= FieldSize {
			s.EnemyBullet = Shot{Y: s.EnemyY}
		}
	}

	if s.Bullet.State == BulletFire && physics.PointsWithin(s.EnemyX, s.EnemyY, s.Bullet.X, s.Bullet.Y, HitRadius) {
		s.Bullet = Shot{Y: s.PlayerY}
		s.Score++
		s.EnemyX = float64(s.rng.Intn(int(maxPosition) + 1))
		s.EnemyY = float64(50 + s.rng.Intn(101))
	}

	if s.EnemyBullet.State == BulletFire && physics.PointsWithin(s.PlayerX, s.PlayerY, s.EnemyBullet.X, s.EnemyBullet.Y, PlayerHitRadius) {
		s.Health--
		s.EnemyBullet = Shot{Y: s.EnemyY}
		s.hitUntil = now.Add(hitFlash)
		if s.Health <= 0 {
			s.outcome = game.OutcomeLoss
		}
	}
	return s.outcome, nil
}

// Draw renders the game.
func (s *Session) Draw(ctx object.DrawContext, now time.Time) error {
	c := ctx.Canvas
	const q = SpriteSize / 4

	// Enemy saucer
	c.FillRect(s.EnemyX, s.EnemyY+q, SpriteSize, 2*q, draw.ColorGreen)
	c.FillRect(s.EnemyX+q, s.EnemyY, 2*q, q, draw.ColorGreen)

	// Player ship, red while hit
	col := draw.ColorWhite
	if now.Before(s.hitUntil) {
		col = draw.ColorRed
	}
	c.FillRect(s.PlayerX, s.PlayerY+2*q, SpriteSize, 2*q, col)
	c.FillRect(s.PlayerX+1.5*q, s.PlayerY, q, 2*q, col)

	if s.Bullet.State == BulletFire {
		c.FillRect(s.Bullet.X+SpriteSize/4, s.Bullet.Y, 8, 16, draw.ColorYellow)
	}
	if s.EnemyBullet.State == BulletFire {
		c.FillRect(s.EnemyBullet.X+SpriteSize/4, s.EnemyBullet.Y, 8, 16, draw.ColorMagenta)
	}
	return nil
}

// HUD returns the status line.
func (s *Session) HUD(highScore int) string {
	return fmt.Sprintf("Score: %d  High Score: %d  Health: %d/%d", s.Score, max(highScore, s.Score), max(s.Health, 0), StartHealth)
}
