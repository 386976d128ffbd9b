package loop

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.uber.org/mock/gomock"

	"github.com/tomz197/inverters/internal/classic"
	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/game"
	"github.com/tomz197/inverters/internal/input"
	"github.com/tomz197/inverters/internal/store"
	"github.com/tomz197/inverters/internal/store/mocks"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fixedRand never rolls a drop and always picks the last option.
type fixedRand struct{}

func (fixedRand) Intn(n int) int   { return n - 1 }
func (fixedRand) Float64() float64 { return 0.5 }

func fixedSize(w, h int) draw.TermSizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func named(name string) store.Records {
	r := store.DefaultRecords()
	r.Profile.Name = name
	return r
}

func newTestGame(t *testing.T, records store.Records, opts Options) (*Game, *mocks.MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load().Return(records, nil)

	opts.Store = st
	if opts.Rand == nil {
		opts.Rand = fixedRand{}
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(120, 40)
	}
	g, err := New(opts, t0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, st
}

// captureSaves records every saved snapshot.
func captureSaves(st *mocks.MockStore) *[]store.Records {
	var saved []store.Records
	st.EXPECT().Save(gomock.Any()).DoAndReturn(func(r store.Records) error {
		saved = append(saved, r.Clone())
		return nil
	}).AnyTimes()
	return &saved
}

func lastSave(t *testing.T, saved *[]store.Records) store.Records {
	t.Helper()
	if len(*saved) == 0 {
		t.Fatal("records were never saved")
	}
	return (*saved)[len(*saved)-1]
}

func press(events ...input.KeyEvent) input.Input {
	return input.Input{Events: events}
}

func key(code input.KeyCode) input.KeyEvent {
	return input.KeyEvent{Code: code}
}

func char(r rune) input.KeyEvent {
	return input.KeyEvent{Code: input.KeyRune, Rune: r}
}

func typed(s string) input.Input {
	events := make([]input.KeyEvent, 0, len(s))
	for _, r := range s {
		events = append(events, char(r))
	}
	return input.Input{Events: events}
}

func mustStep(t *testing.T, g *Game, in input.Input, now time.Time) {
	t.Helper()
	if err := g.step(in, now); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(Options{}, t0); err == nil {
		t.Fatal("expected an error without a store")
	}
}

func TestNew_LoadErrorKeepsDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load().Return(store.DefaultRecords(), errors.New("malformed leaderboard"))

	g, err := New(Options{Store: st, Rand: fixedRand{}}, t0)
	if err != nil {
		t.Fatalf("load errors must not stop the game: %v", err)
	}
	if g.Screen() != ScreenIntro {
		t.Errorf("screen = %v, want intro", g.Screen())
	}
}

func TestStoreFailuresLoggedOnce(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	g, err := New(Options{
		Logger: log.New(&buf),
		Store:  store.NewFileStore(filepath.Join(blocker, "data")),
		Rand:   fixedRand{},
	}, t0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	buf.Reset()

	g.save()
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("save failure logged %d times, want once:\n%s", n, buf.String())
	}
}

func TestIntro_FirstRunAsksForName(t *testing.T) {
	g, _ := newTestGame(t, store.DefaultRecords(), Options{Username: "ada"})

	mustStep(t, g, input.Input{}, t0.Add(time.Second))
	if g.Screen() != ScreenIntro {
		t.Fatalf("intro must wait for a key, got %v", g.Screen())
	}
	mustStep(t, g, press(char('x')), t0.Add(2*time.Second))
	if g.Screen() != ScreenNameEntry {
		t.Fatalf("screen = %v, want name entry", g.Screen())
	}
	if got := string(g.nameBuf); got != "ada" {
		t.Errorf("name suggestion = %q, want %q", got, "ada")
	}
}

func TestIntro_TimesOutToMenu(t *testing.T) {
	g, _ := newTestGame(t, named("ada"), Options{})
	mustStep(t, g, input.Input{}, t0.Add(IntroDuration))
	if g.Screen() != ScreenMainMenu {
		t.Fatalf("screen = %v, want main menu", g.Screen())
	}
}

func TestNameEntry_EditAndConfirm(t *testing.T) {
	g, st := newTestGame(t, store.DefaultRecords(), Options{})
	saved := captureSaves(st)
	g.enter(ScreenNameEntry)

	mustStep(t, g, press(key(input.KeyEnter)), t0)
	if g.Screen() != ScreenNameEntry || g.message == "" {
		t.Fatal("an empty name must be rejected with a message")
	}

	mustStep(t, g, typed("bobx"), t0)
	mustStep(t, g, press(key(input.KeyBackspace), key(input.KeyEnter)), t0)

	if g.Screen() != ScreenMainMenu {
		t.Fatalf("screen = %v, want main menu", g.Screen())
	}
	if got := lastSave(t, saved).Profile.Name; got != "bob" {
		t.Errorf("saved name = %q, want %q", got, "bob")
	}
}

func TestNameEntry_LengthLimit(t *testing.T) {
	g, _ := newTestGame(t, store.DefaultRecords(), Options{})
	g.enter(ScreenNameEntry)
	mustStep(t, g, typed(strings.Repeat("z", MaxNameLength+5)), t0)
	if len(g.nameBuf) != MaxNameLength {
		t.Errorf("name length = %d, want %d", len(g.nameBuf), MaxNameLength)
	}
}

func TestMainMenu_Navigation(t *testing.T) {
	tests := []struct {
		name string
		in   input.Input
		want Screen
	}{
		{"number picks missions", typed("3"), ScreenMissions},
		{"number picks settings", typed("4"), ScreenSettings},
		{"number picks shop", typed("5"), ScreenShop},
		{"number picks leaderboard", typed("6"), ScreenLeaderboard},
		{"number picks how to play", typed("7"), ScreenHowToPlay},
		{"enter picks first entry", press(key(input.KeyEnter)), ScreenGame},
		{"up wraps to exit then number", press(key(input.KeyUp), char('2')), ScreenClassic},
		{"out of range number ignored", typed("9"), ScreenMainMenu},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, named("ada"), Options{})
			g.enter(ScreenMainMenu)
			mustStep(t, g, tt.in, t0)
			if g.Screen() != tt.want {
				t.Errorf("screen = %v, want %v", g.Screen(), tt.want)
			}
		})
	}
}

func TestMainMenu_ExitSavesAndStops(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	st.EXPECT().Save(gomock.Any()).Return(nil).Times(1)
	g.enter(ScreenMainMenu)

	mustStep(t, g, typed("8"), t0)
	if g.Running() {
		t.Fatal("exit must stop the loop")
	}
}

func TestMenu_CursorWraps(t *testing.T) {
	m := Menu{Items: []string{"a", "b", "c"}}
	if _, ok := m.Handle(press(key(input.KeyUp))); ok {
		t.Fatal("moving must not pick")
	}
	if m.Cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.Cursor)
	}
	m.Handle(press(key(input.KeyDown)))
	if m.Cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.Cursor)
	}
	if i, ok := m.Handle(press(key(input.KeySpace))); !ok || i != 0 {
		t.Errorf("space picks the cursor entry, got %d %v", i, ok)
	}
	if lines := m.Lines(); !strings.HasPrefix(lines[0], ">> 1.") {
		t.Errorf("cursor line = %q", lines[0])
	}
}

func TestHowToPlayAndLeaderboard_Back(t *testing.T) {
	for _, s := range []Screen{ScreenHowToPlay, ScreenLeaderboard} {
		g, _ := newTestGame(t, named("ada"), Options{})
		g.enter(s)
		mustStep(t, g, press(key(input.KeyEscape)), t0)
		if g.Screen() != ScreenMainMenu {
			t.Errorf("%v: screen = %v, want main menu", s, g.Screen())
		}
	}
}

func TestSettings_SlidersClampAndSave(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	saved := captureSaves(st)
	g.enter(ScreenSettings)

	for range 8 {
		mustStep(t, g, press(key(input.KeyRight)), t0)
	}
	if got := g.records.Profile.Volume; got != store.MaxVolume {
		t.Errorf("volume = %v, want %v", got, store.MaxVolume)
	}

	mustStep(t, g, press(key(input.KeyDown)), t0)
	for range 20 {
		mustStep(t, g, press(key(input.KeyLeft)), t0)
	}
	if got := g.records.Profile.Difficulty; got != game.MinDifficulty {
		t.Errorf("difficulty = %v, want %v", got, game.MinDifficulty)
	}

	mustStep(t, g, press(key(input.KeyDown), key(input.KeyEnter)), t0)
	if g.records.Profile.Vibration {
		t.Error("enter on vibration must toggle it off")
	}

	mustStep(t, g, press(key(input.KeyEscape)), t0)
	if g.Screen() != ScreenMainMenu {
		t.Fatalf("screen = %v, want main menu", g.Screen())
	}
	got := lastSave(t, saved).Profile
	if got.Volume != store.MaxVolume || got.Difficulty != game.MinDifficulty || got.Vibration {
		t.Errorf("saved profile = %+v", got)
	}
}

func TestShop_BuyEquipAndRefuse(t *testing.T) {
	r := named("ada")
	r.Profile.Money = 150
	g, st := newTestGame(t, r, Options{})
	saved := captureSaves(st)
	g.enter(ScreenShop)

	mustStep(t, g, typed("2"), t0)
	got := lastSave(t, saved).Profile
	if got.Money != 50 || !got.OwnedShips[game.ShipDoubleDamage] || got.Ship != game.ShipDoubleDamage {
		t.Fatalf("after buying: %+v", got)
	}

	saves := len(*saved)
	mustStep(t, g, typed("3"), t0)
	if g.message != "Not enough money!" {
		t.Errorf("message = %q", g.message)
	}
	if len(*saved) != saves {
		t.Error("a refused purchase must not save")
	}

	mustStep(t, g, typed("1"), t0)
	if g.records.Profile.Ship != game.ShipSpeedBoost {
		t.Errorf("owned ship must be equipped, got %d", g.records.Profile.Ship)
	}

	mustStep(t, g, typed("6"), t0)
	if g.Screen() != ScreenMainMenu {
		t.Errorf("back: screen = %v", g.Screen())
	}
}

func TestMissions_CompletedAreDisabled(t *testing.T) {
	r := named("ada")
	r.CompletedMissions = []int{0}
	g, _ := newTestGame(t, r, Options{})
	g.enter(ScreenMissions)

	mustStep(t, g, typed("1"), t0)
	if g.Screen() != ScreenMissions || g.session != nil {
		t.Fatal("a completed mission must not start")
	}
	mustStep(t, g, typed("2"), t0)
	if g.Screen() != ScreenMissionGame {
		t.Fatalf("screen = %v, want mission game", g.Screen())
	}
	if _, idx, ok := g.session.Mission(); !ok || idx != 1 {
		t.Errorf("mission = %d %v, want 1", idx, ok)
	}
}

func TestGame_UsesProfile(t *testing.T) {
	r := named("ada")
	r.Profile.OwnedShips[game.ShipExtraHealth] = true
	r.Profile.Ship = game.ShipExtraHealth
	g, _ := newTestGame(t, r, Options{})
	g.startArcade(game.ModeContinuous, 0, t0)

	if g.session.Ship() != game.ShipExtraHealth {
		t.Errorf("ship = %d", g.session.Ship())
	}
	if g.session.Health != game.MaxHealth(game.ShipExtraHealth) {
		t.Errorf("health = %d", g.session.Health)
	}
}

func TestGame_PauseFreezesClock(t *testing.T) {
	g, _ := newTestGame(t, named("ada"), Options{})
	g.startArcade(game.ModeContinuous, 0, t0)

	mustStep(t, g, input.Input{}, t0.Add(time.Second))
	mustStep(t, g, press(key(input.KeyEscape)), t0.Add(time.Second))
	if g.Screen() != ScreenPaused {
		t.Fatalf("screen = %v, want paused", g.Screen())
	}
	mustStep(t, g, press(char('p')), t0.Add(61*time.Second))
	if g.Screen() != ScreenGame {
		t.Fatalf("screen = %v, want game", g.Screen())
	}
	mustStep(t, g, input.Input{}, t0.Add(62*time.Second))

	if got := g.session.Elapsed(); got != 2*time.Second {
		t.Errorf("elapsed = %v, want 2s of unpaused play", got)
	}
}

func TestGame_LossRecordsScore(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	saved := captureSaves(st)
	g.startArcade(game.ModeContinuous, 0, t0)
	g.session.Score = 40
	g.session.Money = 20
	g.session.Health = 0

	mustStep(t, g, input.Input{}, t0.Add(time.Second))
	if g.Screen() != ScreenGameOver {
		t.Fatalf("screen = %v, want game over", g.Screen())
	}
	got := lastSave(t, saved)
	if got.HighScore != 40 || got.Leaderboard["ada"] != 40 {
		t.Errorf("high score %d, leaderboard %v", got.HighScore, got.Leaderboard)
	}
	if got.Profile.Money != 20 {
		t.Errorf("money = %d, want 20", got.Profile.Money)
	}
	if !g.last.newBest {
		t.Error("first score must be a new best")
	}
}

func TestGameOver_DelayThenReplay(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	captureSaves(st)
	g.startArcade(game.ModeContinuous, 0, t0)
	g.session.Health = 0
	mustStep(t, g, input.Input{}, t0)

	mustStep(t, g, press(key(input.KeySpace)), t0.Add(gameOverDelay/2))
	if g.Screen() != ScreenGameOver {
		t.Fatal("a held fire key must not skip the result screen")
	}
	mustStep(t, g, press(key(input.KeyEnter)), t0.Add(gameOverDelay))
	if g.Screen() != ScreenGame || g.session == nil {
		t.Fatalf("screen = %v, want a new game", g.Screen())
	}
}

func TestMission_WinCompletesAndPays(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	saved := captureSaves(st)
	g.startArcade(game.ModeMission, 2, t0)

	mustStep(t, g, input.Input{}, t0.Add(30*time.Second))
	if g.Screen() != ScreenGameOver || g.last.outcome != game.OutcomeWin {
		t.Fatalf("screen = %v outcome = %v", g.Screen(), g.last.outcome)
	}
	got := lastSave(t, saved)
	if !got.MissionCompleted(2) {
		t.Error("mission not recorded")
	}
	if got.Profile.Money != game.Missions[2].Reward {
		t.Errorf("money = %d, want %d", got.Profile.Money, game.Missions[2].Reward)
	}
	if len(got.Leaderboard) != 0 {
		t.Error("missions are not ranked")
	}
	if items := g.gameOverItems(); items[0] != "Missions" {
		t.Errorf("won mission offers %q", items[0])
	}
}

func TestMission_LossOffersRetry(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	captureSaves(st)
	g.startArcade(game.ModeMission, 3, t0)
	g.session.Health = 0
	mustStep(t, g, input.Input{}, t0)

	mustStep(t, g, press(key(input.KeyEnter)), t0.Add(gameOverDelay))
	if g.Screen() != ScreenMissionGame {
		t.Fatalf("screen = %v, want mission game", g.Screen())
	}
	if _, idx, _ := g.session.Mission(); idx != 3 {
		t.Errorf("retried mission %d, want 3", idx)
	}
}

func TestQuit_AbandonKeepsMoneyNotRank(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	saved := captureSaves(st)
	g.startArcade(game.ModeContinuous, 0, t0)
	g.session.Score = 99
	g.session.Money = 30

	mustStep(t, g, input.Input{Quit: true}, t0)
	if g.Running() {
		t.Fatal("ctrl+c must stop the loop")
	}
	got := lastSave(t, saved)
	if got.Profile.Money != 30 {
		t.Errorf("money = %d, want 30", got.Profile.Money)
	}
	if got.HighScore != 0 || len(got.Leaderboard) != 0 {
		t.Error("an abandoned game must not be ranked")
	}
	if len(*saved) != 1 {
		t.Errorf("saved %d times, want once", len(*saved))
	}
}

func TestPaused_MainMenuAbandons(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	captureSaves(st)
	g.startArcade(game.ModeContinuous, 0, t0)
	mustStep(t, g, press(char('p')), t0)
	mustStep(t, g, typed("2"), t0)

	if g.Screen() != ScreenMainMenu || g.session != nil {
		t.Fatalf("screen = %v, session running = %v", g.Screen(), g.session != nil)
	}
}

func TestClassic_LossUpdatesHighScore(t *testing.T) {
	r := named("ada")
	r.HighScore = 2
	g, st := newTestGame(t, r, Options{})
	saved := captureSaves(st)
	g.startClassic(t0)

	s := g.classic
	s.Score = 5
	s.Health = 1
	s.EnemyBullet = classic.Shot{X: s.PlayerX, Y: s.PlayerY - classic.EnemyBulletSpeed, State: classic.BulletFire}

	mustStep(t, g, input.Input{}, t0)
	if g.Screen() != ScreenGameOver {
		t.Fatalf("screen = %v, want game over", g.Screen())
	}
	got := lastSave(t, saved)
	if got.HighScore != 5 {
		t.Errorf("high score = %d, want 5", got.HighScore)
	}
	if len(got.Leaderboard) != 0 {
		t.Error("classic scores only feed the high score")
	}
}

func TestShutdownEvent(t *testing.T) {
	hub := NewHub(nil)
	g, st := newTestGame(t, named("ada"), Options{Hub: hub})
	saved := captureSaves(st)
	g.startArcade(game.ModeContinuous, 0, t0)
	g.session.Money = 10

	g.handle.EventsCh <- Event{Type: EventServerShutdown}
	g.processHubEvents(t0)
	if g.session != nil {
		t.Fatal("shutdown must end the running game")
	}
	if lastSave(t, saved).Profile.Money != 10 {
		t.Error("progress must be saved on shutdown")
	}

	mustStep(t, g, input.Input{}, t0.Add(ShutdownDisplay/2))
	if !g.Running() {
		t.Fatal("the shutdown screen stays up for its countdown")
	}
	mustStep(t, g, input.Input{}, t0.Add(ShutdownDisplay+time.Millisecond))
	if g.Running() {
		t.Fatal("the countdown must disconnect the player")
	}
}

func TestInactivity(t *testing.T) {
	hub := NewHub(nil)
	g, st := newTestGame(t, named("ada"), Options{Hub: hub})
	captureSaves(st)

	g.trackActivity(input.Input{}, t0.Add(InactivityWarn+time.Second))
	if !g.inactive {
		t.Fatal("idle player must be warned")
	}
	g.trackActivity(press(char('x')), t0.Add(InactivityWarn+2*time.Second))
	if g.inactive {
		t.Fatal("a key press must clear the warning")
	}
	g.trackActivity(input.Input{}, t0.Add(InactivityWarn+3*time.Second+InactivityDisconnect))
	if g.Running() {
		t.Fatal("idle player must be disconnected")
	}
}

func TestInactivity_LocalNeverDisconnects(t *testing.T) {
	g, _ := newTestGame(t, named("ada"), Options{})
	g.trackActivity(input.Input{}, t0.Add(time.Hour))
	if g.inactive || !g.Running() {
		t.Error("local play has no inactivity limit")
	}
}

func TestDrawFrame(t *testing.T) {
	g, st := newTestGame(t, named("ada"), Options{})
	captureSaves(st)
	var buf bytes.Buffer
	g.out = draw.NewChunkWriter(&buf, 0, 0)
	g.overlay = draw.NewChunkWriter(&bytes.Buffer{}, 0, 0)

	g.enter(ScreenMainMenu)
	g.updateScreen()
	if err := g.drawFrame(t0); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if out := buf.String(); !strings.Contains(out, "Start Game") || !strings.Contains(out, "\033[2J") {
		t.Errorf("menu frame missing entries or initial clear")
	}

	buf.Reset()
	g.startArcade(game.ModeContinuous, 0, t0)
	g.updateScreen()
	if err := g.drawFrame(t0); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(buf.String(), "Score: 0") {
		t.Error("game frame missing the HUD")
	}
	if g.canvas.TerminalHeight() != 40 {
		t.Errorf("canvas height = %d, want the full terminal", g.canvas.TerminalHeight())
	}

	buf.Reset()
	if err := g.drawFrame(t0); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if strings.Contains(buf.String(), "\033[2J") {
		t.Error("steady frames must not clear the terminal")
	}
}

func TestRun_EndsWhenInputCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().Load().Return(named("ada"), nil)
	st.EXPECT().Save(gomock.Any()).Return(nil).MinTimes(1)

	var out bytes.Buffer
	err := Run(bufio.NewReader(strings.NewReader("")), &out, Options{
		Store:        st,
		Rand:         fixedRand{},
		TermSizeFunc: fixedSize(80, 24),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "\033[?25h") {
		t.Error("cursor must be restored on exit")
	}
}
