// Package buff tracks timed gameplay modifiers granted by power-ups.
package buff

import "time"

// Duration is how long a buff stays active after it was last activated.
const Duration = 5 * time.Second

// Kind identifies a buff.
type Kind int

const (
	Speed Kind = iota
	BigBullet
	Shield
	DoubleShot
	TripleShot
	SpreadShot
	RadialShot
	SuperMode
	numKinds
)

var kindNames = [numKinds]string{
	Speed:      "speed",
	BigBullet:  "big-bullet",
	Shield:     "shield",
	DoubleShot: "double-shot",
	TripleShot: "triple-shot",
	SpreadShot: "spread-shot",
	RadialShot: "radial-shot",
	SuperMode:  "super-mode",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Tracker maps each active buff kind to the time it was last activated.
// The zero value is not usable; create one with NewTracker.
type Tracker struct {
	activated map[Kind]time.Time
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{activated: make(map[Kind]time.Time, numKinds)}
}

// Activate starts the buff or refreshes its timestamp if it is already tracked.
func (t *Tracker) Activate(k Kind, now time.Time) {
	t.activated[k] = now
}

// IsActive reports whether now is within Duration of the buff's activation.
func (t *Tracker) IsActive(k Kind, now time.Time) bool {
	at, ok := t.activated[k]
	if !ok {
		return false
	}
	return now.Sub(at) <= Duration
}

// Remaining returns how much time is left on the buff, or zero if it is inactive.
func (t *Tracker) Remaining(k Kind, now time.Time) time.Duration {
	if !t.IsActive(k, now) {
		return 0
	}
	return Duration - now.Sub(t.activated[k])
}

// Sweep drops every buff that has expired at now.
func (t *Tracker) Sweep(now time.Time) {
	for k := range t.activated {
		if !t.IsActive(k, now) {
			delete(t.activated, k)
		}
	}
}

// Active returns the active kinds in declaration order.
func (t *Tracker) Active(now time.Time) []Kind {
	var active []Kind
	for k := Kind(0); k < numKinds; k++ {
		if t.IsActive(k, now) {
			active = append(active, k)
		}
	}
	return active
}
