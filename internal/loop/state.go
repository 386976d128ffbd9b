package loop

import (
	"strconv"
	"time"

	"github.com/tomz197/inverters/internal/game"
	"github.com/tomz197/inverters/internal/input"
)

// Screen identifies what the player is looking at.
type Screen int

const (
	ScreenIntro       Screen = iota // Story crawl
	ScreenNameEntry                 // First run, asks for a leaderboard name
	ScreenMainMenu                  // Top-level menu
	ScreenSettings                  // Volume, difficulty, vibration
	ScreenHowToPlay                 // Controls and rules
	ScreenShop                      // Buy and equip ships
	ScreenLeaderboard               // Top scores
	ScreenMissions                  // Mission picker
	ScreenGame                      // Continuous play
	ScreenMissionGame               // Mission play
	ScreenPaused                    // Pause menu over a running game
	ScreenGameOver                  // Result of the last game
	ScreenClassic                   // Minimal version
)

var screenNames = [...]string{
	ScreenIntro:       "intro",
	ScreenNameEntry:   "name entry",
	ScreenMainMenu:    "main menu",
	ScreenSettings:    "settings",
	ScreenHowToPlay:   "how to play",
	ScreenShop:        "shop",
	ScreenLeaderboard: "leaderboard",
	ScreenMissions:    "missions",
	ScreenGame:        "game",
	ScreenMissionGame: "mission game",
	ScreenPaused:      "paused",
	ScreenGameOver:    "game over",
	ScreenClassic:     "classic",
}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return "unknown"
	}
	return screenNames[s]
}

// Playing reports whether the screen runs a simulation.
func (s Screen) Playing() bool {
	return s == ScreenGame || s == ScreenMissionGame || s == ScreenClassic
}

// Menu is a vertical list with a cursor. Entries are picked with Enter or Space,
// or directly by their 1-based number.
type Menu struct {
	Items  []string
	Cursor int
}

// Handle moves the cursor and reports the picked entry, if any.
func (m *Menu) Handle(in input.Input) (int, bool) {
	n := len(m.Items)
	if n == 0 {
		return 0, false
	}
	if in.Tapped(input.KeyUp) || in.TappedRune('w', 'W') {
		m.Cursor = (m.Cursor + n - 1) % n
	}
	if in.Tapped(input.KeyDown) || in.TappedRune('s', 'S') {
		m.Cursor = (m.Cursor + 1) % n
	}
	if d := in.Number(); d >= 1 && d <= n {
		m.Cursor = d - 1
		return m.Cursor, true
	}
	if in.Confirmed() {
		return m.Cursor, true
	}
	return 0, false
}

// Lines renders the entries, marking the cursor.
func (m *Menu) Lines() []string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		prefix := "   "
		if i == m.Cursor {
			prefix = ">> "
		}
		lines[i] = prefix + strconv.Itoa(i+1) + ". " + item
	}
	return lines
}

// result describes the game that just ended.
type result struct {
	screen   Screen // ScreenGame, ScreenMissionGame or ScreenClassic
	outcome  game.Outcome
	score    int
	best     int
	newBest  bool
	earned   int
	mission  int
	elapsed  time.Duration
	unlocked []string
	ended    time.Time
}
