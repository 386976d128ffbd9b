package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/object"
)

// Draw renders the world. Particles go first so entities stay on top.
func (s *Session) Draw(ctx object.DrawContext) error {
	if err := object.DrawAll(ctx, s.Particles); err != nil {
		return err
	}
	if err := object.DrawAll(ctx, s.Meteors); err != nil {
		return err
	}
	if err := object.DrawAll(ctx, s.PowerUps); err != nil {
		return err
	}
	if err := object.DrawAll(ctx, s.Enemies); err != nil {
		return err
	}
	if err := object.DrawAll(ctx, s.Bullets); err != nil {
		return err
	}
	return s.Player.Draw(ctx)
}

// HUDLine is one line of the status overlay.
type HUDLine struct {
	Text  string
	Color draw.Color
}

// HUD returns the status overlay: score, health and time, then the mission
// progress and active buffs when there are any.
func (s *Session) HUD(now time.Time) []HUDLine {
	lines := []HUDLine{{
		Text:  fmt.Sprintf("Score: %d  Health: %s  Time: %ds", s.Score, hearts(s.Health, MaxHealth(s.ship)), int(s.elapsed/time.Second)),
		Color: draw.ColorWhite,
	}}
	if s.mode == ModeMission {
		lines = append(lines, HUDLine{Text: "Mission: " + s.Progress.Status(s.mission), Color: draw.ColorWhite})
	} else if s.Money > 0 {
		lines = append(lines, HUDLine{Text: fmt.Sprintf("Earned: $%d", s.Money), Color: draw.ColorYellow})
	}
	if active := s.Buffs.Active(now); len(active) > 0 {
		names := make([]string, 0, len(active))
		for _, k := range active {
			names = append(names, fmt.Sprintf("%s %.0fs", k, s.Buffs.Remaining(k, now).Seconds()))
		}
		lines = append(lines, HUDLine{Text: strings.Join(names, "  "), Color: draw.ColorCyan})
	}
	return lines
}

func hearts(health, maxHealth int) string {
	health = max(health, 0)
	return strings.Repeat("♥", health) + strings.Repeat("·", max(maxHealth-health, 0))
}
