package loop

import (
	"fmt"
	"time"

	"github.com/tomz197/inverters/internal/classic"
	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/game"
	"github.com/tomz197/inverters/internal/input"
	"github.com/tomz197/inverters/internal/object"
)

// gameOverDelay keeps a held fire key from skipping the result screen.
const gameOverDelay = time.Second

// defaultName is recorded on the leaderboard when the player never picked a name.
const defaultName = "Player"

// startArcade starts a continuous or mission session with the equipped ship.
func (g *Game) startArcade(mode game.Mode, mission int, now time.Time) {
	p := g.records.Profile
	s, err := game.NewSession(game.Config{
		Mode:         mode,
		Mission:      mission,
		Ship:         p.Ship,
		Difficulty:   p.Difficulty,
		Achievements: g.records.Achievements,
		Rand:         g.rng,
		Logger:       g.logger,
	}, g.clock(now))
	if err != nil {
		g.logger.Error("session not started", "mode", mode, "err", err)
		g.setMessage("Could not start the game", draw.ColorRed)
		return
	}
	g.session = s
	g.classic = nil
	g.mission = mission
	if mode == game.ModeMission {
		g.enter(ScreenMissionGame)
		return
	}
	g.enter(ScreenGame)
}

// startClassic starts the minimal version.
func (g *Game) startClassic(now time.Time) {
	s, err := classic.NewSession(g.records.Profile.Difficulty, g.rng)
	if err != nil {
		g.logger.Error("classic session not started", "err", err)
		g.setMessage("Could not start the game", draw.ColorRed)
		return
	}
	g.classic = s
	g.session = nil
	g.logger.Debug("classic started", "difficulty", g.records.Profile.Difficulty)
	g.enter(ScreenClassic)
}

func pausePressed(in input.Input) bool {
	return in.Tapped(input.KeyEscape) || in.TappedRune('p', 'P')
}

func (g *Game) updateArcade(in input.Input, now time.Time) error {
	if pausePressed(in) {
		g.pause(now)
		return nil
	}
	outcome, err := g.session.Update(in, g.clock(now))
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if outcome != game.OutcomeNone {
		g.endPlay(now, false)
		g.enter(ScreenGameOver)
	}
	return nil
}

func (g *Game) updateClassic(in input.Input, now time.Time) error {
	if pausePressed(in) {
		g.pause(now)
		return nil
	}
	outcome, err := g.classic.Update(in, g.clock(now))
	if err != nil {
		return fmt.Errorf("update classic session: %w", err)
	}
	if outcome != game.OutcomeNone {
		g.endPlay(now, false)
		g.enter(ScreenGameOver)
	}
	return nil
}

func (g *Game) pause(now time.Time) {
	g.paused = g.screen
	g.pauseAt = now
	g.enter(ScreenPaused)
}

func (g *Game) updatePaused(in input.Input, now time.Time) {
	i, ok := g.menu.Handle(in)
	switch {
	case pausePressed(in) || (ok && i == pauseResume):
		g.offset += now.Sub(g.pauseAt)
		g.enter(g.paused)
	case ok && i == pauseMenu:
		g.offset += now.Sub(g.pauseAt)
		g.endPlay(now, true)
		g.enter(ScreenMainMenu)
	}
}

// endPlay closes the running session, if any, folds its results into the records
// and saves them. An abandoned game keeps its money and achievements but is not
// ranked. It reports whether a session was running.
func (g *Game) endPlay(now time.Time, abandoned bool) bool {
	switch {
	case g.session != nil:
		g.endArcade(abandoned)
	case g.classic != nil:
		g.endClassic(abandoned)
	default:
		return false
	}
	g.last.ended = now
	g.save()
	return true
}

func (g *Game) endArcade(abandoned bool) {
	s := g.session
	g.session = nil
	r := &g.records

	res := result{
		screen:   ScreenGame,
		outcome:  s.Outcome(),
		score:    s.Score,
		earned:   s.Money,
		elapsed:  s.Elapsed(),
		unlocked: s.Unlocked(),
	}
	r.Unlock(s.Achievements())
	r.Profile.Money += s.Money

	if _, idx, ok := s.Mission(); ok {
		res.screen = ScreenMissionGame
		res.mission = idx
		if s.Outcome() == game.OutcomeWin {
			if err := r.CompleteMission(idx); err != nil {
				g.logger.Warn("mission not recorded", "mission", idx, "err", err)
			}
		}
	} else if !abandoned {
		name := r.Profile.Name
		if name == "" {
			name = defaultName
		}
		res.newBest = r.RecordScore(name, s.Score)
	}
	res.best = r.HighScore
	g.last = res
	g.logger.Info("session ended",
		"session", s.ID.String(),
		"mode", s.Mode(),
		"outcome", s.Outcome(),
		"abandoned", abandoned,
		"score", s.Score,
		"earned", s.Money,
	)
}

func (g *Game) endClassic(abandoned bool) {
	s := g.classic
	g.classic = nil
	r := &g.records

	res := result{screen: ScreenClassic, outcome: s.Outcome(), score: s.Score}
	if !abandoned && s.Score > r.HighScore {
		r.HighScore = s.Score
		res.newBest = true
	}
	res.best = r.HighScore
	g.last = res
	g.logger.Info("classic ended", "abandoned", abandoned, "score", s.Score)
}

func (g *Game) gameOverItems() []string {
	again := "Play Again"
	if g.last.screen == ScreenMissionGame {
		again = "Retry Mission"
		if g.last.outcome == game.OutcomeWin {
			again = "Missions"
		}
	}
	return []string{again, "Main Menu"}
}

func (g *Game) updateGameOver(in input.Input, now time.Time) {
	if now.Sub(g.last.ended) < gameOverDelay {
		return
	}
	i, ok := g.menu.Handle(in)
	if in.Tapped(input.KeyEscape) || (ok && i == 1) {
		g.enter(ScreenMainMenu)
		return
	}
	if !ok {
		return
	}
	switch g.last.screen {
	case ScreenGame:
		g.startArcade(game.ModeContinuous, 0, now)
	case ScreenMissionGame:
		if g.last.outcome == game.OutcomeWin {
			g.enter(ScreenMissions)
			return
		}
		g.startArcade(game.ModeMission, g.last.mission, now)
	case ScreenClassic:
		g.startClassic(now)
	}
}

func (g *Game) gameOverLines(now time.Time) []textLine {
	res := g.last
	var lines []textLine
	switch {
	case res.screen == ScreenMissionGame && res.outcome == game.OutcomeWin:
		lines = append(lines, textLine{"MISSION COMPLETED", draw.ColorGreen})
	case res.screen == ScreenMissionGame:
		lines = append(lines, textLine{"MISSION FAILED", draw.ColorRed})
	default:
		lines = append(lines, colored(draw.ColorRed, gameOverArt...)...)
	}
	lines = append(lines, textLine{})

	if res.screen == ScreenMissionGame {
		lines = append(lines, textLine{game.Missions[res.mission].Name, draw.ColorCyan})
	}
	lines = append(lines, textLine{fmt.Sprintf("Score: %d", res.score), draw.ColorWhite})
	if res.screen != ScreenMissionGame {
		lines = append(lines, textLine{fmt.Sprintf("High Score: %d", res.best), draw.ColorWhite})
	}
	if res.newBest {
		lines = append(lines, textLine{"New High Score!", draw.ColorYellow})
	}
	if res.screen != ScreenClassic {
		lines = append(lines, textLine{fmt.Sprintf("Time: %ds", int(res.elapsed/time.Second)), draw.ColorWhite})
	}
	if res.earned > 0 {
		lines = append(lines, textLine{fmt.Sprintf("Earned: $%d", res.earned), draw.ColorYellow})
	}
	for _, name := range res.unlocked {
		lines = append(lines, textLine{"Achievement Unlocked: " + name, draw.ColorGreen})
	}
	lines = append(lines, textLine{})

	if now.Sub(res.ended) < gameOverDelay {
		for range g.menu.Items {
			lines = append(lines, textLine{})
		}
		return lines
	}
	return append(lines, plain(g.menu.Lines()...)...)
}

// playField returns the logical field of the running game.
func (g *Game) playField() (object.Field, bool) {
	switch {
	case g.session != nil:
		return g.session.Field(), true
	case g.classic != nil:
		return g.classic.Field(), true
	}
	return object.Field{}, false
}

// drawPlay renders the running game: canvas first, then entity labels, then the HUD.
func (g *Game) drawPlay(now time.Time) error {
	if g.canvas == nil {
		return nil
	}
	offCol, offRow := g.canvas.OffsetCol(), g.canvas.OffsetRow()
	g.out.SetOffset(offCol, offRow)
	g.overlay.SetOffset(offCol, offRow)
	g.canvas.Clear()

	ctx := object.DrawContext{Canvas: g.canvas, Writer: g.overlay}
	clock := g.clock(now)
	var (
		hud    []game.HUDLine
		notice string
	)
	switch {
	case g.session != nil:
		if err := g.session.Draw(ctx); err != nil {
			return err
		}
		hud = g.session.HUD(clock)
		notice = g.session.Notice(clock)
	case g.classic != nil:
		if err := g.classic.Draw(ctx, clock); err != nil {
			return err
		}
		hud = []game.HUDLine{{Text: g.classic.HUD(g.records.HighScore), Color: draw.ColorWhite}}
	}

	g.canvas.Render(g.out)
	g.canvas.RenderBorder(g.out)
	g.out.WriteString(g.overlay.String())
	g.overlay.Reset()

	labels := make([]object.Text, 0, len(hud)+1)
	for i, l := range hud {
		labels = append(labels, object.Text{X: 2, Y: 1 + i, Value: l.Text, Color: l.Color})
	}
	if notice != "" {
		width := g.canvas.TerminalWidth()
		labels = append(labels, object.Text{
			X:     max(width/2-len([]rune(notice))/2+1, 1),
			Y:     g.canvas.TerminalHeight() / 2,
			Value: notice,
			Color: draw.ColorYellow,
		})
	}
	return object.DrawAll(object.DrawContext{Canvas: g.canvas, Writer: g.out}, labels)
}
