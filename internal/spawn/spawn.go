// Package spawn decides when new entities enter the playfield.
//
// Two policies coexist: power-ups and meteors roll a fixed per-frame chance,
// while enemies in continuous play appear on a frame-count timer.
package spawn

// Rand is the subset of *rand.Rand used for spawn decisions.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Chance spawns with probability 1/OneIn per frame while the population is under its cap.
type Chance struct {
	OneIn int
}

// Roll reports whether an entity should spawn this frame.
func (c Chance) Roll(count, limit int, rng Rand) bool {
	if count >= limit || c.OneIn <= 0 {
		return false
	}
	return rng.Intn(c.OneIn) == 0
}

// Timer spawns once every Interval frames while the population is under its cap.
type Timer struct {
	Interval int
	frames   int
}

// NewTimer creates a frame timer that fires every interval frames.
func NewTimer(interval int) *Timer {
	return &Timer{Interval: interval}
}

// Tick advances the timer by one frame and reports whether an entity should spawn.
// The counter keeps running while the population is capped, so a slot that frees up
// is filled on the next frame.
func (t *Timer) Tick(count, limit int) bool {
	t.frames++
	if t.frames >= t.Interval && count < limit {
		t.frames = 0
		return true
	}
	return false
}
