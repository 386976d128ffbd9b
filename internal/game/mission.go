package game

import "fmt"

// Goal is the counter a mission is measured against.
type Goal int

const (
	GoalEnemies Goal = iota
	GoalPowerUps
	GoalTime
	GoalMeteors
	GoalScore
	numGoals
)

var goalNames = [numGoals]string{
	GoalEnemies:  "enemies",
	GoalPowerUps: "powerups",
	GoalTime:     "time",
	GoalMeteors:  "meteors",
	GoalScore:    "score",
}

func (g Goal) String() string {
	if g < 0 || g >= numGoals {
		return "unknown"
	}
	return goalNames[g]
}

// Mission is a goal to reach within one mission session.
type Mission struct {
	Name   string
	Goal   Goal
	Target int
	Reward int
}

// Missions lists the available missions. Completed missions are stored by index.
var Missions = []Mission{
	{Name: "Destroy 10 Enemies", Goal: GoalEnemies, Target: 10, Reward: 50},
	{Name: "Collect 5 Power-ups", Goal: GoalPowerUps, Target: 5, Reward: 30},
	{Name: "Survive 30 Seconds", Goal: GoalTime, Target: 30, Reward: 20},
	{Name: "Dodge 5 Meteors", Goal: GoalMeteors, Target: 5, Reward: 40},
	{Name: "Score 50 Points", Goal: GoalScore, Target: 50, Reward: 60},
}

// ValidMission reports whether i indexes a mission.
func ValidMission(i int) bool {
	return i >= 0 && i < len(Missions)
}

// Progress holds the running counters of a session, one per goal.
type Progress [numGoals]int

// Get returns the counter for g.
func (p *Progress) Get(g Goal) int {
	return p[g]
}

// Add increments the counter for g.
func (p *Progress) Add(g Goal, n int) {
	p[g] += n
}

// Set overwrites the counter for g.
func (p *Progress) Set(g Goal, n int) {
	p[g] = n
}

// Reached reports whether the mission target is met.
func (p *Progress) Reached(m Mission) bool {
	return p[m.Goal] >= m.Target
}

// Status formats the mission progress for the HUD.
func (p *Progress) Status(m Mission) string {
	return fmt.Sprintf("%s (%d/%d)", m.Name, min(p[m.Goal], m.Target), m.Target)
}
