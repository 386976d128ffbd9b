package game

import (
	"time"

	"github.com/tomz197/inverters/internal/buff"
	"github.com/tomz197/inverters/internal/object"
)

// Fire intervals.
const (
	FireInterval      = 200 * time.Millisecond
	SuperFireInterval = 50 * time.Millisecond
)

// Pattern is a firing pattern, selected from the active buffs.
type Pattern int

const (
	PatternSingle Pattern = iota
	PatternDouble
	PatternTriple
	PatternSpread
	PatternRadial
)

var patternNames = [...]string{"single", "double", "triple", "spread", "radial"}

func (p Pattern) String() string {
	if p < 0 || int(p) >= len(patternNames) {
		return "unknown"
	}
	return patternNames[p]
}

const (
	sideOffset  = 20.0 // Horizontal gap between parallel bullets
	radialStep  = 30.0 // Degrees between radial bullets
	radialCount = 12
)

var spreadAngles = [...]float64{-30, -15, 0, 15, 30}

// SelectPattern picks the firing pattern by fixed precedence:
// radial > spread > triple/super > double > single.
func SelectPattern(buffs *buff.Tracker, now time.Time) Pattern {
	switch {
	case buffs.IsActive(buff.RadialShot, now):
		return PatternRadial
	case buffs.IsActive(buff.SpreadShot, now):
		return PatternSpread
	case buffs.IsActive(buff.TripleShot, now), buffs.IsActive(buff.SuperMode, now):
		return PatternTriple
	case buffs.IsActive(buff.DoubleShot, now):
		return PatternDouble
	default:
		return PatternSingle
	}
}

// Volley returns the bullets of one shot fired from (x, y), where x is the
// left edge of a centred single bullet.
func Volley(p Pattern, x, y, speed float64, big bool) []*object.Bullet {
	switch p {
	case PatternRadial:
		out := make([]*object.Bullet, 0, radialCount)
		for i := range radialCount {
			out = append(out, object.NewBullet(x, y, float64(i)*radialStep, speed, big))
		}
		return out
	case PatternSpread:
		out := make([]*object.Bullet, 0, len(spreadAngles))
		for _, a := range spreadAngles {
			out = append(out, object.NewBullet(x, y, a, speed, big))
		}
		return out
	case PatternTriple:
		return []*object.Bullet{
			object.NewBullet(x-sideOffset, y, 0, speed, big),
			object.NewBullet(x, y, 0, speed, big),
			object.NewBullet(x+sideOffset, y, 0, speed, big),
		}
	case PatternDouble:
		return []*object.Bullet{
			object.NewBullet(x-sideOffset, y, 0, speed, big),
			object.NewBullet(x+sideOffset, y, 0, speed, big),
		}
	default:
		return []*object.Bullet{object.NewBullet(x, y, 0, speed, big)}
	}
}
