// Package loop runs the screen state machine and the Input -> Update -> Draw
// terminal loop for one player.
package loop

import (
	"bufio"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/inverters/internal/classic"
	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/game"
	"github.com/tomz197/inverters/internal/input"
	"github.com/tomz197/inverters/internal/object"
	"github.com/tomz197/inverters/internal/spawn"
	"github.com/tomz197/inverters/internal/store"
)

// Options configures a game.
type Options struct {
	Logger       *log.Logger
	Store        store.Store
	TermSizeFunc draw.TermSizeFunc
	Username     string     // Suggested leaderboard name on first run
	Hub          *Hub       // Set on multi-user servers; enables inactivity and shutdown handling
	Rand         spawn.Rand // Defaults to a time-seeded source
}

// Game is one player's run of the program, from intro to exit.
type Game struct {
	id       uuid.UUID
	logger   *log.Logger
	store    store.Store
	records  store.Records
	hub      *Hub
	handle   *Handle
	rng      spawn.Rand
	username string
	running  bool

	screen     Screen
	drawn      Screen // Screen rendered by the previous frame
	menu       Menu
	message    string
	msgColor   draw.Color
	nameBuf    []rune
	introStart time.Time

	session *game.Session
	classic *classic.Session
	mission int
	paused  Screen        // Game screen behind the pause menu
	pauseAt time.Time     // Wall time the pause began
	offset  time.Duration // Total paused time, hidden from the simulation clock
	last    result

	stream       *input.Stream
	out          *draw.ChunkWriter
	overlay      *draw.ChunkWriter // Labels drawn by entities, appended after the canvas
	canvas       *draw.Canvas
	canvasField  object.Field
	termSizeFunc draw.TermSizeFunc
	termW, termH int
	resized      bool

	lastInput     time.Time
	inactive      bool
	wasInactive   bool
	shutdownAt    time.Time
	drawnShutdown bool
}

// New loads the player's records and prepares the intro screen.
func New(opts Options, now time.Time) (*Game, error) {
	if opts.Store == nil {
		return nil, errors.New("game needs a record store")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(now.UnixNano()))
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	id := uuid.New()
	logger = logger.With("game", id.String())
	records, err := opts.Store.Load()
	if err != nil {
		logger.Warn("records partially loaded, using defaults for the rest", "err", err)
	}

	g := &Game{
		id:           id,
		logger:       logger,
		store:        opts.Store,
		records:      records,
		hub:          opts.Hub,
		rng:          rng,
		username:     opts.Username,
		running:      true,
		screen:       ScreenIntro,
		drawn:        -1,
		introStart:   now,
		termSizeFunc: termSizeFunc,
		lastInput:    now,
	}
	if g.hub != nil {
		g.handle = g.hub.Register(opts.Username)
	}
	return g, nil
}

// Run plays a game on r and w until the player quits. It is the local entry point.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	g, err := New(opts, time.Now())
	if err != nil {
		return err
	}
	return g.Run(r, w)
}

// Run starts the frame loop. Blocks until the player quits, the input closes,
// or the server shuts down. Records are saved before it returns.
func (g *Game) Run(r *bufio.Reader, w io.Writer) error {
	g.out = draw.NewChunkWriter(w, 0, 0)
	g.overlay = draw.NewChunkWriter(io.Discard, 0, 0)
	g.stream = input.StartStream(r)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	g.logger.Info("game started", "user", g.username)
	defer func() {
		if g.hub != nil {
			g.hub.Unregister(g.handle.ID)
		}
		g.logger.Info("game ended", "high_score", g.records.HighScore, "money", g.records.Profile.Money)
	}()

	for g.running {
		frameStart := time.Now()

		in := g.processInput(frameStart)
		g.processHubEvents(frameStart)
		if err := g.step(in, frameStart); err != nil {
			g.save()
			return err
		}
		if !g.running {
			break
		}
		g.updateScreen()
		if err := g.drawFrame(frameStart); err != nil {
			g.save()
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// processInput reads this frame's input and tracks inactivity on remote sessions.
func (g *Game) processInput(now time.Time) input.Input {
	in := input.ReadInputAt(g.stream, now)
	g.trackActivity(in, now)
	return in
}

func (g *Game) trackActivity(in input.Input, now time.Time) {
	if len(in.Events) > 0 || in.Fire || in.Left || in.Right || in.Up || in.Down {
		g.lastInput = now
		g.inactive = false
		return
	}
	if g.hub == nil {
		return
	}
	idle := now.Sub(g.lastInput)
	switch {
	case idle > InactivityDisconnect:
		g.logger.Info("disconnecting idle player", "idle", idle.Round(time.Second))
		g.quit(now)
	case idle > InactivityWarn:
		g.inactive = true
	}
}

// processHubEvents handles events from the hub.
func (g *Game) processHubEvents(now time.Time) {
	if g.handle == nil {
		return
	}
	for {
		select {
		case event := <-g.handle.EventsCh:
			if event.Type == EventServerShutdown && g.shutdownAt.IsZero() {
				g.logger.Info("server shutting down")
				g.endPlay(now, true)
				g.shutdownAt = now.Add(ShutdownDisplay)
			}
		default:
			return
		}
	}
}

// step advances the state machine by one frame.
func (g *Game) step(in input.Input, now time.Time) error {
	if in.Quit {
		g.quit(now)
		return nil
	}
	if !g.shutdownAt.IsZero() {
		if now.After(g.shutdownAt) || in.TappedRune('q', 'Q') {
			g.quit(now)
		}
		return nil
	}

	switch g.screen {
	case ScreenIntro:
		g.updateIntro(in, now)
	case ScreenNameEntry:
		g.updateNameEntry(in)
	case ScreenMainMenu:
		g.updateMainMenu(in, now)
	case ScreenSettings:
		g.updateSettings(in)
	case ScreenHowToPlay, ScreenLeaderboard:
		if in.Confirmed() || in.Tapped(input.KeyEscape) {
			g.enter(ScreenMainMenu)
		}
	case ScreenShop:
		g.updateShop(in)
	case ScreenMissions:
		g.updateMissions(in, now)
	case ScreenGame, ScreenMissionGame:
		return g.updateArcade(in, now)
	case ScreenClassic:
		return g.updateClassic(in, now)
	case ScreenPaused:
		g.updatePaused(in, now)
	case ScreenGameOver:
		g.updateGameOver(in, now)
	}
	return nil
}

// enter switches screens and rebuilds the screen's menu.
func (g *Game) enter(s Screen) {
	if g.screen != s {
		g.logger.Debug("screen", "from", g.screen, "to", s)
	}
	g.screen = s
	g.message = ""
	g.menu = Menu{Items: g.menuItems(s)}
	if g.stream != nil {
		g.stream.Reset()
	}
}

// quit ends any running game, saves and stops the loop.
func (g *Game) quit(now time.Time) {
	if !g.endPlay(now, true) {
		g.save()
	}
	g.running = false
}

// save writes the records. Failures are logged and never stop play.
func (g *Game) save() {
	if err := g.store.Save(g.records); err != nil {
		g.logger.Warn("records not saved", "err", err)
	}
}

func (g *Game) setMessage(text string, col draw.Color) {
	g.message = text
	g.msgColor = col
}

// clock returns the simulation time: wall time minus time spent paused.
func (g *Game) clock(now time.Time) time.Time {
	return now.Add(-g.offset)
}

// Screen returns the current screen.
func (g *Game) Screen() Screen {
	return g.screen
}

// Records returns a copy of the player's records.
func (g *Game) Records() store.Records {
	return g.records.Clone()
}

// Running reports whether the loop continues.
func (g *Game) Running() bool {
	return g.running
}
