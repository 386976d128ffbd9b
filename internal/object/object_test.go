package object

import (
	"math"
	"math/rand"
	"testing"

	"pgregory.net/rapid"
)

var testField = Field{Width: 560, Height: 900}

func testContext() UpdateContext {
	return UpdateContext{Field: testField, Rand: rand.New(rand.NewSource(1))}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBulletMovesAlongAngle(t *testing.T) {
	tests := []struct {
		name   string
		angle  float64
		dx, dy float64
	}{
		{"straight up", 0, 0, -10},
		{"right", 90, 10, 0},
		{"left diagonal", -30, -5, -10 * math.Cos(math.Pi/6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBullet(200, 400, tt.angle, 10, false)
			if _, err := b.Update(testContext()); err != nil {
				t.Fatal(err)
			}
			if !approx(b.X-200, tt.dx) || !approx(b.Y-400, tt.dy) {
				t.Errorf("moved by (%f, %f), want (%f, %f)", b.X-200, b.Y-400, tt.dx, tt.dy)
			}
		})
	}
}

func TestBulletCulledOutsideField(t *testing.T) {
	tests := []struct {
		name string
		b    *Bullet
		want bool
	}{
		{"inside", NewBullet(100, 100, 0, 5, false), false},
		{"top", NewBullet(100, 3, 0, 5, false), true},
		{"left", NewBullet(2, 100, -90, 5, false), true},
		{"right", NewBullet(558, 100, 90, 5, false), true},
		{"bottom", NewBullet(100, 898, 180, 5, false), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remove, _ := tt.b.Update(testContext())
			if remove != tt.want {
				t.Errorf("remove = %v, want %v", remove, tt.want)
			}
		})
	}
}

func TestBigBulletBounds(t *testing.T) {
	b := NewBullet(0, 0, 0, 1, true)
	r := b.Bounds()
	if r.W != BigBulletWidth || r.H != BigBulletHeight {
		t.Errorf("big bullet bounds = %+v", r)
	}
}

func TestEnemyHitAndExit(t *testing.T) {
	e := NewEnemy(100, 100, EnemyFast, 1, 0)
	if e.Hit(2) || e.Hit(2) {
		t.Fatal("enemy died too early")
	}
	if !e.Hit(2) {
		t.Fatal("enemy should die on the third 2-damage hit")
	}

	tests := []struct {
		name   string
		startY float64
		want   bool
	}{
		{"inside", testField.Height / 2, false},
		{"lands on the bottom edge", testField.Height - EnemyTank.Speed(), false},
		{"below the field", testField.Height, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnemy(100, tt.startY, EnemyTank, 1, 0)
			if remove, _ := e.Update(testContext()); remove != tt.want {
				t.Errorf("remove = %v at y=%f, want %v", remove, e.Y, tt.want)
			}
		})
	}
}

func TestEnemySpeedScalesWithDifficulty(t *testing.T) {
	slow := NewEnemy(0, 0, EnemyShooter, 0.5, 0)
	fast := NewEnemy(0, 0, EnemyShooter, 2, 0)
	if !approx(fast.Speed, 4*slow.Speed) {
		t.Errorf("speeds %f and %f do not scale with difficulty", slow.Speed, fast.Speed)
	}
	if EnemyFast.Speed() <= EnemyTank.Speed() {
		t.Error("smaller enemies should be faster")
	}
}

func TestSpawnEnemyWithinRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		ctx := UpdateContext{Field: testField, Rand: rand.New(rand.NewSource(seed))}
		e := SpawnEnemy(ctx, EnemySpawnY, 1)
		if e.X < 0 || e.X > testField.Width-EnemySpawnW {
			t.Fatalf("x = %f out of spawn range", e.X)
		}
		if e.Y != EnemySpawnY || e.Health != EnemyHealth {
			t.Fatalf("unexpected spawn state %+v", e)
		}
	})
}

func TestPlayerClampedToField(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := NewPlayer(testField)
		p.Speed = rapid.Float64Range(0, 50).Draw(t, "speed")
		frames := rapid.IntRange(1, 200).Draw(t, "frames")
		for range frames {
			ctx := testContext()
			ctx.Input = Input{
				Left:  rapid.Bool().Draw(t, "left"),
				Right: rapid.Bool().Draw(t, "right"),
				Up:    rapid.Bool().Draw(t, "up"),
				Down:  rapid.Bool().Draw(t, "down"),
			}
			p.Update(ctx)
			if p.X < 0 || p.X > testField.Width-PlayerSize || p.Y < 0 || p.Y > testField.Height-PlayerSize {
				t.Fatalf("player escaped the field: (%f, %f)", p.X, p.Y)
			}
		}
	})
}

func TestPowerUpBuffs(t *testing.T) {
	if _, ok := PowerUpHealth.Buff(); ok {
		t.Error("health power-up should not grant a buff")
	}
	for k := PowerUpKind(0); k < numPowerUpKinds; k++ {
		if k == PowerUpHealth {
			continue
		}
		if _, ok := k.Buff(); !ok {
			t.Errorf("%s should grant a buff", k)
		}
		if k.Notice() == "" {
			t.Errorf("%s has no notice", k)
		}
	}
}

func TestBurstAndUpdateAll(t *testing.T) {
	ctx := testContext()
	parts := Burst(50, 50, 0, ctx.Rand)
	if len(parts) != BurstSize {
		t.Fatalf("burst of %d, want %d", len(parts), BurstSize)
	}
	for _, p := range parts {
		if p.Lifetime < particleMinLifetime || p.Lifetime > particleMaxLifetime {
			t.Errorf("lifetime %d out of range", p.Lifetime)
		}
	}

	released := 0
	var err error
	for frame := 0; frame < particleMaxLifetime; frame++ {
		parts, err = UpdateAll(ctx, parts, func(p *Particle) {
			released++
			ReleaseObject(p)
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	if len(parts) != 0 || released != BurstSize {
		t.Errorf("after max lifetime: %d alive, %d released", len(parts), released)
	}
}

func TestDropsFall(t *testing.T) {
	ctx := testContext()
	p := &PowerUp{X: 10, Y: 0, Kind: PowerUpSpeed}
	m := &Meteor{X: 10, Y: 0}
	p.Update(ctx)
	m.Update(ctx)
	if p.Y != PowerUpFallSpeed || m.Y != MeteorSpeed {
		t.Errorf("after one frame power-up y=%f meteor y=%f", p.Y, m.Y)
	}

	p.Y = testField.Height
	if remove, _ := p.Update(ctx); !remove {
		t.Error("power-up below the field should be removed")
	}
}
