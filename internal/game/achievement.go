package game

import "time"

// Achievement names as stored on disk.
const (
	AchievementMeteorDodger     = "Meteor Dodger"
	AchievementPowerUpCollector = "Power-Up Collector"
	AchievementSpeedDemon       = "Speed Demon"
)

// Achievement thresholds.
const (
	meteorDodgerTarget     = 10
	powerUpCollectorTarget = 20
	speedDemonSurvival     = 30 * time.Second
)

// AchievementNames lists every achievement in display order.
func AchievementNames() []string {
	return []string{AchievementMeteorDodger, AchievementPowerUpCollector, AchievementSpeedDemon}
}

// Achievements is the set of unlocked achievements.
type Achievements map[string]bool

// DefaultAchievements returns every achievement locked.
func DefaultAchievements() Achievements {
	a := make(Achievements, 3)
	for _, name := range AchievementNames() {
		a[name] = false
	}
	return a
}

// Clone returns a copy of a.
func (a Achievements) Clone() Achievements {
	out := make(Achievements, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
