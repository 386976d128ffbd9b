package spawn

import (
	"math/rand"
	"testing"

	"pgregory.net/rapid"
)

// fixedRand returns the same Intn value every call.
type fixedRand int

func (f fixedRand) Intn(int) int     { return int(f) }
func (f fixedRand) Float64() float64 { return 0 }

func TestChance_Roll(t *testing.T) {
	c := Chance{OneIn: 200}

	if !c.Roll(0, 1, fixedRand(0)) {
		t.Error("expected spawn on winning roll")
	}
	if c.Roll(0, 1, fixedRand(5)) {
		t.Error("expected no spawn on losing roll")
	}
	if c.Roll(1, 1, fixedRand(0)) {
		t.Error("expected no spawn at cap")
	}
	if (Chance{}).Roll(0, 1, fixedRand(0)) {
		t.Error("zero chance should never spawn")
	}
}

func TestChance_NeverExceedsCap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rng := rand.New(rand.NewSource(rapid.Int64().Draw(t, "seed")))
		c := Chance{OneIn: rapid.IntRange(1, 5).Draw(t, "oneIn")}
		limit := rapid.IntRange(0, 3).Draw(t, "cap")

		count := 0
		for range 500 {
			if c.Roll(count, limit, rng) {
				count++
			}
			if count > limit {
				t.Fatalf("population %d exceeds cap %d", count, limit)
			}
		}
	})
}

func TestTimer_Tick(t *testing.T) {
	timer := NewTimer(60)

	spawned := 0
	for range 59 {
		if timer.Tick(0, 10) {
			spawned++
		}
	}
	if spawned != 0 {
		t.Fatalf("spawned %d before interval elapsed", spawned)
	}
	if !timer.Tick(0, 10) {
		t.Fatal("expected spawn on frame 60")
	}
	if timer.Tick(0, 10) {
		t.Fatal("timer should reset after spawning")
	}
}

func TestTimer_HeldAtCap(t *testing.T) {
	timer := NewTimer(60)
	for range 100 {
		if timer.Tick(10, 10) {
			t.Fatal("timer must not spawn at cap")
		}
	}
	if !timer.Tick(9, 10) {
		t.Error("timer should spawn as soon as a slot frees up")
	}
}
