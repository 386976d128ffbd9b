package loop

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/game"
	"github.com/tomz197/inverters/internal/input"
	"github.com/tomz197/inverters/internal/store"
)

// ASCII art titles (figlet "small" font)
var (
	titleArt = []string{
		` ___  _  _ __   __ ___  ___  _____  ___  ___  ___`,
		`|_ _|| \| |\ \ / /| __|| _ \|_   _|| __|| _ \/ __|`,
		` | | | .' | \ V / | _| |   /  | |  | _| |   /\__ \`,
		`|___||_|\_|  \_/  |___||_|_\  |_|  |___||_|_\|___/`,
	}
	gameOverArt = []string{
		`  ___    _    __  __  ___     ___  __   __ ___  ___`,
		` / __|  /_\  |  \/  || __|   / _ \ \ \ / /| __|| _ \`,
		`| (_ | / _ \ | |\/| || _|   | (_) | \ V / | _| |   /`,
		` \___|/_/ \_\|_|  |_||___|   \___/   \_/  |___||_|_\`,
	}
	pausedArt = []string{
		` ___    _    _   _  ___  ___  ___`,
		`| _ \  /_\  | | | |/ __|| __||   \`,
		`|  _/ / _ \ | |_| |\__ \| _| | |) |`,
		`|_|  /_/ \_\ \___/ |___/|___||___/`,
	}
)

var introStory = []string{
	"A massive virus, bigger than anything before,",
	"has invaded space!",
	"",
	"Your mission: defeat the viruses",
	"and dodge the meteors!",
}

var howToPlay = []string{
	"Arrows / WASD  . . . . . . Move",
	"SPACE  . . . . . . . . . . Shoot",
	"ESC / P  . . . . . . . . . Pause",
	"Ctrl+C . . . . . . . . . . Quit",
	"",
	"Shoot viruses for points and money.",
	"Avoid touching viruses and meteors.",
	"Power-ups last 5 seconds.",
	"Spend money on ships in the shop.",
	"Missions pay a one-time reward.",
}

// Main menu entries
const (
	menuStart = iota
	menuClassic
	menuMissions
	menuSettings
	menuShop
	menuLeaderboard
	menuHowTo
	menuExit
)

var mainMenuItems = []string{
	menuStart:       "Start Game",
	menuClassic:     "Classic Mode",
	menuMissions:    "Missions",
	menuSettings:    "Settings",
	menuShop:        "Shop",
	menuLeaderboard: "Leaderboard",
	menuHowTo:       "How to Play",
	menuExit:        "Exit",
}

// Settings entries
const (
	settingVolume = iota
	settingDifficulty
	settingVibration
	settingBack
)

// Pause menu entries
const (
	pauseResume = iota
	pauseMenu
)

// menuItems returns the entries of a screen's menu.
func (g *Game) menuItems(s Screen) []string {
	switch s {
	case ScreenMainMenu:
		return mainMenuItems
	case ScreenSettings:
		return g.settingsItems()
	case ScreenShop:
		return g.shopItems()
	case ScreenMissions:
		return g.missionItems()
	case ScreenPaused:
		return []string{pauseResume: "Resume", pauseMenu: "Main Menu"}
	case ScreenGameOver:
		return g.gameOverItems()
	}
	return nil
}

func (g *Game) updateIntro(in input.Input, now time.Time) {
	if len(in.Events) == 0 && now.Sub(g.introStart) < IntroDuration {
		return
	}
	if g.records.Profile.Name != "" {
		g.enter(ScreenMainMenu)
		return
	}
	g.enter(ScreenNameEntry)
	name := []rune(strings.TrimSpace(g.username))
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	g.nameBuf = name
}

func (g *Game) updateNameEntry(in input.Input) {
	for _, ev := range in.Events {
		switch ev.Code {
		case input.KeyRune:
			if len(g.nameBuf) < MaxNameLength && unicode.IsPrint(ev.Rune) {
				g.nameBuf = append(g.nameBuf, ev.Rune)
			}
		case input.KeySpace:
			if len(g.nameBuf) > 0 && len(g.nameBuf) < MaxNameLength {
				g.nameBuf = append(g.nameBuf, ' ')
			}
		case input.KeyBackspace:
			if len(g.nameBuf) > 0 {
				g.nameBuf = g.nameBuf[:len(g.nameBuf)-1]
			}
		case input.KeyEnter:
			name := strings.TrimSpace(string(g.nameBuf))
			if name == "" {
				g.setMessage("Name cannot be empty", draw.ColorRed)
				continue
			}
			g.records.Profile.Name = name
			g.logger.Info("player named", "name", name)
			g.save()
			g.enter(ScreenMainMenu)
			return
		}
	}
}

func (g *Game) updateMainMenu(in input.Input, now time.Time) {
	i, ok := g.menu.Handle(in)
	if !ok {
		return
	}
	switch i {
	case menuStart:
		g.startArcade(game.ModeContinuous, 0, now)
	case menuClassic:
		g.startClassic(now)
	case menuMissions:
		g.enter(ScreenMissions)
	case menuSettings:
		g.enter(ScreenSettings)
	case menuShop:
		g.enter(ScreenShop)
	case menuLeaderboard:
		g.enter(ScreenLeaderboard)
	case menuHowTo:
		g.enter(ScreenHowToPlay)
	case menuExit:
		g.quit(now)
	}
}

func (g *Game) settingsItems() []string {
	p := g.records.Profile
	vibration := "Off"
	if p.Vibration {
		vibration = "On"
	}
	return []string{
		settingVolume:     fmt.Sprintf("Volume      < %3.0f%% >", p.Volume*100),
		settingDifficulty: fmt.Sprintf("Difficulty  < %.1fx >", p.Difficulty),
		settingVibration:  fmt.Sprintf("Vibration   < %-3s >", vibration),
		settingBack:       "Back",
	}
}

func (g *Game) updateSettings(in input.Input) {
	picked := -1
	if i, ok := g.menu.Handle(in); ok {
		picked = i
	}
	step := 0.0
	if in.Tapped(input.KeyLeft) || in.TappedRune('a', 'A') {
		step -= SliderStep
	}
	if in.Tapped(input.KeyRight) || in.TappedRune('d', 'D') {
		step += SliderStep
	}

	p := &g.records.Profile
	switch g.menu.Cursor {
	case settingVolume:
		g.records.SetVolume(roundStep(p.Volume + step))
	case settingDifficulty:
		g.records.SetDifficulty(roundStep(p.Difficulty + step))
	case settingVibration:
		if step != 0 || picked == settingVibration {
			p.Vibration = !p.Vibration
		}
	}
	g.menu.Items = g.settingsItems()

	if picked == settingBack || in.Tapped(input.KeyEscape) {
		g.save()
		g.enter(ScreenMainMenu)
	}
}

// roundStep keeps slider values on the SliderStep grid.
func roundStep(v float64) float64 {
	return math.Round(v/SliderStep) * SliderStep
}

func (g *Game) shopItems() []string {
	items := make([]string, 0, game.NumShips+1)
	for i, ship := range game.Ships {
		status := fmt.Sprintf("$%d", ship.Price)
		switch {
		case g.records.Profile.Ship == i:
			status = "Equipped"
		case g.records.Owns(i):
			status = "Owned"
		}
		items = append(items, fmt.Sprintf("%-8s %-19s %8s", ship.Name, ship.Ability, status))
	}
	return append(items, "Back")
}

func (g *Game) updateShop(in input.Input) {
	i, ok := g.menu.Handle(in)
	if in.Tapped(input.KeyEscape) || (ok && i == game.NumShips) {
		g.enter(ScreenMainMenu)
		return
	}
	if !ok {
		return
	}

	ship := game.Ships[i]
	if !g.records.Owns(i) {
		if err := g.records.BuyShip(i); err != nil {
			if errors.Is(err, store.ErrNotEnoughMoney) {
				g.setMessage("Not enough money!", draw.ColorRed)
			} else {
				g.setMessage(err.Error(), draw.ColorRed)
			}
			return
		}
		g.logger.Info("ship bought", "ship", ship.Name, "money", g.records.Profile.Money)
	}
	if err := g.records.EquipShip(i); err != nil {
		g.setMessage(err.Error(), draw.ColorRed)
		return
	}
	g.setMessage(ship.Name+" equipped", draw.ColorGreen)
	g.menu.Items = g.shopItems()
	g.save()
}

func (g *Game) missionItems() []string {
	items := make([]string, 0, len(game.Missions)+1)
	for i, m := range game.Missions {
		status := fmt.Sprintf("$%d", m.Reward)
		if g.records.MissionCompleted(i) {
			status = "Completed"
		}
		items = append(items, fmt.Sprintf("%-20s %10s", m.Name, status))
	}
	return append(items, "Back")
}

func (g *Game) updateMissions(in input.Input, now time.Time) {
	i, ok := g.menu.Handle(in)
	if in.Tapped(input.KeyEscape) || (ok && i == len(game.Missions)) {
		g.enter(ScreenMainMenu)
		return
	}
	if !ok {
		return
	}
	if g.records.MissionCompleted(i) {
		g.setMessage("Mission already completed", draw.ColorGrey)
		return
	}
	g.startArcade(game.ModeMission, i, now)
}

// textLine is one centred line of a text screen.
type textLine struct {
	text  string
	color draw.Color
}

func plain(lines ...string) []textLine {
	out := make([]textLine, len(lines))
	for i, l := range lines {
		out[i] = textLine{text: l, color: draw.ColorWhite}
	}
	return out
}

func colored(col draw.Color, lines ...string) []textLine {
	out := plain(lines...)
	for i := range out {
		out[i].color = col
	}
	return out
}

// blink returns text on alternating 600ms phases and blanks otherwise.
func blink(text string, now time.Time) string {
	if now.UnixMilli()/600%2 == 0 {
		return text
	}
	return ""
}

// textScreen returns the lines of a menu-style screen.
func (g *Game) textScreen(now time.Time) []textLine {
	var lines []textLine
	add := func(l ...textLine) { lines = append(lines, l...) }
	blank := textLine{}

	switch g.screen {
	case ScreenIntro:
		add(colored(draw.ColorGreen, titleArt...)...)
		add(blank, textLine{"~ Space Inverters ~", draw.ColorCyan}, blank)
		add(plain(introStory...)...)
		add(blank, textLine{blink(">>  Press any key  <<", now), draw.ColorYellow})
	case ScreenNameEntry:
		add(colored(draw.ColorGreen, titleArt...)...)
		add(blank, textLine{"Enter your name for the leaderboard", draw.ColorWhite}, blank)
		cursor := "_"
		if now.UnixMilli()/600%2 == 1 {
			cursor = " "
		}
		add(textLine{fmt.Sprintf("Name: %-*s", MaxNameLength+1, string(g.nameBuf)+cursor), draw.ColorYellow})
		add(blank, textLine{"ENTER to confirm", draw.ColorGrey})
	case ScreenMainMenu:
		add(colored(draw.ColorGreen, titleArt...)...)
		add(blank, textLine{fmt.Sprintf("Pilot: %s   Money: $%d", g.records.Profile.Name, g.records.Profile.Money), draw.ColorCyan})
		if g.hub != nil {
			add(textLine{fmt.Sprintf("Players online: %d", g.hub.Players()), draw.ColorGrey})
		}
		add(blank)
		add(plain(g.menu.Lines()...)...)
	case ScreenSettings:
		add(textLine{"SETTINGS", draw.ColorCyan}, blank)
		add(plain(g.menu.Lines()...)...)
		add(blank, textLine{"Up/Down select, Left/Right change, ESC back", draw.ColorGrey})
	case ScreenHowToPlay:
		add(textLine{"HOW TO PLAY", draw.ColorCyan}, blank)
		add(plain(howToPlay...)...)
		add(blank, textLine{"ENTER or ESC to go back", draw.ColorGrey})
	case ScreenShop:
		add(textLine{"SHOP", draw.ColorCyan}, textLine{fmt.Sprintf("Money: $%d", g.records.Profile.Money), draw.ColorYellow}, blank)
		add(plain(g.menu.Lines()...)...)
		add(blank, textLine{"ENTER to buy or equip, ESC back", draw.ColorGrey})
	case ScreenLeaderboard:
		add(g.leaderboardLines()...)
	case ScreenMissions:
		add(textLine{"MISSIONS", draw.ColorCyan}, blank)
		add(plain(g.menu.Lines()...)...)
		add(blank, textLine{"ENTER to start, ESC back", draw.ColorGrey})
	case ScreenPaused:
		add(colored(draw.ColorYellow, pausedArt...)...)
		add(blank)
		add(plain(g.menu.Lines()...)...)
	case ScreenGameOver:
		add(g.gameOverLines(now)...)
	}
	add(blank, textLine{g.message, g.msgColor})
	return lines
}

func (g *Game) leaderboardLines() []textLine {
	lines := []textLine{
		{"LEADERBOARD", draw.ColorCyan},
		{},
		{fmt.Sprintf("High Score: %d", g.records.HighScore), draw.ColorYellow},
		{},
	}
	top := g.records.TopScores(LeaderboardSize)
	for i := range LeaderboardSize {
		text := fmt.Sprintf("%d. %-*s %6s", i+1, MaxNameLength, "---", "")
		if i < len(top) {
			text = fmt.Sprintf("%d. %-*s %6d", i+1, MaxNameLength, top[i].Name, top[i].Score)
		}
		lines = append(lines, textLine{text, draw.ColorWhite})
	}
	lines = append(lines, textLine{}, textLine{"ACHIEVEMENTS", draw.ColorCyan})
	for _, name := range game.AchievementNames() {
		mark := "[ ]"
		col := draw.ColorGrey
		if g.records.Achievements[name] {
			mark = "[x]"
			col = draw.ColorGreen
		}
		lines = append(lines, textLine{fmt.Sprintf("%s %-20s", mark, name), col})
	}
	return append(lines, textLine{}, textLine{"ENTER or ESC to go back", draw.ColorGrey})
}

// drawTextScreen writes the lines centred on the terminal. Every line is padded
// to a fixed width so shorter text overwrites what the previous frame drew.
func (g *Game) drawTextScreen(lines []textLine) {
	g.out.SetOffset(0, 0)
	row := max((g.termH-len(lines))/2, 1)
	for i, l := range lines {
		width := max(textWidth, len([]rune(l.text)))
		g.out.WriteCentered(g.termW, row+i, pad(l.text, width), l.color)
	}
}

// pad centres s in a field of width runes.
func pad(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
