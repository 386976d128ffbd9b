// Package store persists player records between runs.
package store

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/tomz197/inverters/internal/game"
	"github.com/tomz197/inverters/internal/physics"
)

// Settings bounds.
const (
	MinVolume     = 0.0
	MaxVolume     = 1.0
	DefaultVolume = 0.5
)

// Shop errors.
var (
	ErrUnknownShip     = errors.New("unknown ship")
	ErrAlreadyOwned    = errors.New("ship already owned")
	ErrNotOwned        = errors.New("ship not owned")
	ErrNotEnoughMoney  = errors.New("not enough money")
	ErrUnknownMission  = errors.New("unknown mission")
	ErrMissionComplete = errors.New("mission already completed")
)

// Profile holds the player's name, wallet, hangar and settings.
type Profile struct {
	Name       string  `json:"name"`
	Money      int     `json:"money"`
	OwnedShips []bool  `json:"owned_ships"`
	Ship       int     `json:"ship"`
	Volume     float64 `json:"volume"`
	Vibration  bool    `json:"vibration"`
	Difficulty float64 `json:"difficulty"`
}

// DefaultProfile returns a fresh profile owning only the first ship.
func DefaultProfile() Profile {
	owned := make([]bool, game.NumShips)
	owned[0] = true
	return Profile{
		OwnedShips: owned,
		Volume:     DefaultVolume,
		Vibration:  true,
		Difficulty: game.DefaultDifficulty,
	}
}

// Records is everything persisted for one player.
type Records struct {
	HighScore         int
	Leaderboard       map[string]int
	Achievements      game.Achievements
	CompletedMissions []int
	Profile           Profile
}

// DefaultRecords returns the records of a first run.
func DefaultRecords() Records {
	return Records{
		Leaderboard:       map[string]int{},
		Achievements:      game.DefaultAchievements(),
		CompletedMissions: []int{},
		Profile:           DefaultProfile(),
	}
}

// normalize repairs records read from disk so every invariant holds.
func (r *Records) normalize() {
	if r.Leaderboard == nil {
		r.Leaderboard = map[string]int{}
	}
	achievements := game.DefaultAchievements()
	for k, v := range r.Achievements {
		achievements[k] = v
	}
	r.Achievements = achievements

	missions := make([]int, 0, len(r.CompletedMissions))
	for _, m := range r.CompletedMissions {
		if game.ValidMission(m) && !slices.Contains(missions, m) {
			missions = append(missions, m)
		}
	}
	slices.Sort(missions)
	r.CompletedMissions = missions

	p := &r.Profile
	owned := make([]bool, game.NumShips)
	copy(owned, p.OwnedShips)
	owned[0] = true
	p.OwnedShips = owned
	if !game.ValidShip(p.Ship) || !owned[p.Ship] {
		p.Ship = 0
	}
	p.Money = max(p.Money, 0)
	p.Volume = physics.Clamp(p.Volume, MinVolume, MaxVolume)
	if p.Difficulty == 0 {
		p.Difficulty = game.DefaultDifficulty
	}
	p.Difficulty = physics.Clamp(p.Difficulty, game.MinDifficulty, game.MaxDifficulty)
}

// Clone returns a deep copy of r.
func (r Records) Clone() Records {
	out := r
	out.Leaderboard = make(map[string]int, len(r.Leaderboard))
	for k, v := range r.Leaderboard {
		out.Leaderboard[k] = v
	}
	out.Achievements = r.Achievements.Clone()
	out.CompletedMissions = slices.Clone(r.CompletedMissions)
	out.Profile.OwnedShips = slices.Clone(r.Profile.OwnedShips)
	return out
}

// RecordScore updates the high score and the player's best leaderboard entry.
// It reports whether the score is a new high score.
func (r *Records) RecordScore(name string, score int) bool {
	if r.Leaderboard == nil {
		r.Leaderboard = map[string]int{}
	}
	if best, ok := r.Leaderboard[name]; !ok || score > best {
		r.Leaderboard[name] = score
	}
	if score > r.HighScore {
		r.HighScore = score
		return true
	}
	return false
}

// Entry is one leaderboard row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// TopScores returns up to n leaderboard entries, best first, ties by name.
func (r Records) TopScores(n int) []Entry {
	entries := make([]Entry, 0, len(r.Leaderboard))
	for name, score := range r.Leaderboard {
		entries = append(entries, Entry{Name: name, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Name < entries[j].Name
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// MissionCompleted reports whether mission i was completed before.
func (r Records) MissionCompleted(i int) bool {
	return slices.Contains(r.CompletedMissions, i)
}

// CompleteMission marks mission i completed.
func (r *Records) CompleteMission(i int) error {
	if !game.ValidMission(i) {
		return fmt.Errorf("%w: %d", ErrUnknownMission, i)
	}
	if r.MissionCompleted(i) {
		return ErrMissionComplete
	}
	r.CompletedMissions = append(r.CompletedMissions, i)
	slices.Sort(r.CompletedMissions)
	return nil
}

// Unlock merges achievements into the records.
func (r *Records) Unlock(a game.Achievements) {
	if r.Achievements == nil {
		r.Achievements = game.DefaultAchievements()
	}
	for k, v := range a {
		if v {
			r.Achievements[k] = true
		}
	}
}

// Owns reports whether the ship is in the hangar.
func (r Records) Owns(ship int) bool {
	return game.ValidShip(ship) && ship < len(r.Profile.OwnedShips) && r.Profile.OwnedShips[ship]
}

// BuyShip pays for a ship and adds it to the hangar.
func (r *Records) BuyShip(ship int) error {
	if !game.ValidShip(ship) {
		return fmt.Errorf("%w: %d", ErrUnknownShip, ship)
	}
	if r.Owns(ship) {
		return ErrAlreadyOwned
	}
	price := game.Ships[ship].Price
	if r.Profile.Money < price {
		return fmt.Errorf("%w: need $%d, have $%d", ErrNotEnoughMoney, price, r.Profile.Money)
	}
	if len(r.Profile.OwnedShips) < game.NumShips {
		owned := make([]bool, game.NumShips)
		copy(owned, r.Profile.OwnedShips)
		r.Profile.OwnedShips = owned
	}
	r.Profile.Money -= price
	r.Profile.OwnedShips[ship] = true
	return nil
}

// EquipShip selects an owned ship.
func (r *Records) EquipShip(ship int) error {
	if !game.ValidShip(ship) {
		return fmt.Errorf("%w: %d", ErrUnknownShip, ship)
	}
	if !r.Owns(ship) {
		return ErrNotOwned
	}
	r.Profile.Ship = ship
	return nil
}

// SetVolume stores the volume, clamped to its range.
func (r *Records) SetVolume(v float64) {
	r.Profile.Volume = physics.Clamp(v, MinVolume, MaxVolume)
}

// SetDifficulty stores the difficulty, clamped to its range.
func (r *Records) SetDifficulty(d float64) {
	r.Profile.Difficulty = physics.Clamp(d, game.MinDifficulty, game.MaxDifficulty)
}
