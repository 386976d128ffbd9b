// Package game implements one play session of the arcade mode: the per-frame
// simulation of the player, enemies, bullets, drops and particles.
package game

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/inverters/internal/buff"
	"github.com/tomz197/inverters/internal/draw"
	"github.com/tomz197/inverters/internal/input"
	"github.com/tomz197/inverters/internal/object"
	"github.com/tomz197/inverters/internal/physics"
	"github.com/tomz197/inverters/internal/spawn"
)

// Playfield dimensions in logical units.
const (
	FieldWidth  = 560.0
	FieldHeight = 900.0
)

// Spawning and scoring.
const (
	RosterSize         = 3  // Enemies present when a session starts
	EnemyCap           = 10 // Continuous mode population limit
	EnemySpawnInterval = 60 // Frames between continuous mode spawns
	PowerUpOneIn       = 200
	MeteorOneIn        = 300
	DropCap            = 1
	KillScore          = 10
	KillMoney          = 10
	NoticeDuration     = 2 * time.Second
)

// Difficulty bounds.
const (
	MinDifficulty     = 0.5
	MaxDifficulty     = 2.0
	DefaultDifficulty = 1.0
)

// Mode selects the session rules.
type Mode int

const (
	ModeContinuous Mode = iota // Endless play until the player dies
	ModeMission                // Play until the mission goal is reached or the player dies
)

func (m Mode) String() string {
	if m == ModeMission {
		return "mission"
	}
	return "continuous"
}

// Outcome is the terminal state reported by Update.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	default:
		return "none"
	}
}

// Config holds the parameters of a new session.
type Config struct {
	Mode         Mode
	Mission      int     // Index into Missions, ModeMission only
	Ship         int     // Equipped ship id
	Difficulty   float64 // Enemy speed multiplier, clamped to [MinDifficulty, MaxDifficulty]
	Achievements Achievements
	Rand         spawn.Rand
	Logger       *log.Logger
}

// Session is the state of one game, from start to outcome.
type Session struct {
	ID uuid.UUID

	mode       Mode
	mission    Mission
	missionIdx int
	ship       int
	difficulty float64
	field      object.Field
	rng        spawn.Rand
	logger     *log.Logger

	Player    *object.Player
	Health    int
	Buffs     *buff.Tracker
	Enemies   []*object.Enemy
	Bullets   []*object.Bullet
	PowerUps  []*object.PowerUp
	Meteors   []*object.Meteor
	Particles []*object.Particle

	Score    int
	Money    int // Earned during this session
	Progress Progress

	achievements Achievements
	unlocked     []string

	enemyTimer   *spawn.Timer
	powerUpRoll  spawn.Chance
	meteorRoll   spawn.Chance
	start        time.Time
	lastShot     time.Time
	elapsed      time.Duration
	notice       string
	noticeExpiry time.Time
	outcome      Outcome
}

// NewSession starts a session at now.
func NewSession(cfg Config, now time.Time) (*Session, error) {
	if !ValidShip(cfg.Ship) {
		return nil, fmt.Errorf("unknown ship %d", cfg.Ship)
	}
	if cfg.Mode == ModeMission && !ValidMission(cfg.Mission) {
		return nil, fmt.Errorf("unknown mission %d", cfg.Mission)
	}
	if cfg.Rand == nil {
		return nil, errors.New("session needs a random source")
	}
	difficulty := cfg.Difficulty
	if difficulty == 0 {
		difficulty = DefaultDifficulty
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	achievements := DefaultAchievements()
	for k, v := range cfg.Achievements {
		achievements[k] = v
	}

	id := uuid.New()
	s := &Session{
		ID:           id,
		mode:         cfg.Mode,
		missionIdx:   cfg.Mission,
		ship:         cfg.Ship,
		difficulty:   physics.Clamp(difficulty, MinDifficulty, MaxDifficulty),
		field:        object.Field{Width: FieldWidth, Height: FieldHeight},
		rng:          cfg.Rand,
		logger:       logger.With("session", id.String()),
		Health:       MaxHealth(cfg.Ship),
		Buffs:        buff.NewTracker(),
		achievements: achievements,
		enemyTimer:   spawn.NewTimer(EnemySpawnInterval),
		powerUpRoll:  spawn.Chance{OneIn: PowerUpOneIn},
		meteorRoll:   spawn.Chance{OneIn: MeteorOneIn},
		start:        now,
		lastShot:     now.Add(-SuperFireInterval - FireInterval),
	}
	if cfg.Mode == ModeMission {
		s.mission = Missions[cfg.Mission]
	}
	s.Player = object.NewPlayer(s.field)

	ctx := s.updateContext(input.Input{})
	for i := range RosterSize {
		s.Enemies = append(s.Enemies, object.SpawnEnemy(ctx, object.EnemySpawnY-float64(i)*object.EnemyRosterY, s.difficulty))
	}
	if cfg.Ship == ShipShield {
		s.Buffs.Activate(buff.Shield, now)
	}

	s.logger.Debug("session started", "mode", s.mode, "ship", s.ship, "difficulty", s.difficulty)
	return s, nil
}

// Mode returns the session rules.
func (s *Session) Mode() Mode {
	return s.mode
}

// Mission returns the mission being played and its index, if any.
func (s *Session) Mission() (Mission, int, bool) {
	return s.mission, s.missionIdx, s.mode == ModeMission
}

// Ship returns the equipped ship id.
func (s *Session) Ship() int {
	return s.ship
}

// Field returns the playfield.
func (s *Session) Field() object.Field {
	return s.field
}

// Outcome returns the latched outcome, OutcomeNone while the session runs.
func (s *Session) Outcome() Outcome {
	return s.outcome
}

// Elapsed returns the time played.
func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// Achievements returns the achievement set including those unlocked in this session.
func (s *Session) Achievements() Achievements {
	return s.achievements.Clone()
}

// Unlocked returns the achievements unlocked during this session, in order.
func (s *Session) Unlocked() []string {
	return s.unlocked
}

// Notify shows text for NoticeDuration.
func (s *Session) Notify(text string, now time.Time) {
	s.notice = text
	s.noticeExpiry = now.Add(NoticeDuration)
}

// Notice returns the current notification, or "" once it expired.
func (s *Session) Notice(now time.Time) string {
	if now.Before(s.noticeExpiry) {
		return s.notice
	}
	return ""
}

func (s *Session) updateContext(in input.Input) object.UpdateContext {
	return object.UpdateContext{Input: in, Field: s.field, Rand: s.rng}
}

// Update advances the session by one frame. Once an outcome was reached it is
// returned unchanged and the world no longer advances.
func (s *Session) Update(in input.Input, now time.Time) (Outcome, error) {
	if s.outcome != OutcomeNone {
		return s.outcome, nil
	}
	ctx := s.updateContext(in)

	// Movement
	s.Player.Speed = s.playerSpeed(now)
	if _, err := s.Player.Update(ctx); err != nil {
		return OutcomeNone, err
	}

	s.Buffs.Sweep(now)
	s.Player.ShieldLeft = s.Buffs.Remaining(buff.Shield, now).Seconds()
	s.elapsed = now.Sub(s.start)
	s.Progress.Set(GoalTime, int(s.elapsed/time.Second))

	if s.mode == ModeContinuous && s.enemyTimer.Tick(len(s.Enemies), EnemyCap) {
		s.Enemies = append(s.Enemies, object.SpawnEnemy(ctx, object.EnemySpawnY, s.difficulty))
	}

	if in.Fire && now.Sub(s.lastShot) >= s.fireInterval(now) {
		s.fire(now)
	}

	var err error
	if s.Bullets, err = object.UpdateAll(ctx, s.Bullets, nil); err != nil {
		return OutcomeNone, err
	}
	if err := s.updateEnemies(ctx, now); err != nil {
		return OutcomeNone, err
	}
	s.resolveHits(ctx)

	if s.powerUpRoll.Roll(len(s.PowerUps), DropCap, s.rng) {
		s.PowerUps = append(s.PowerUps, object.SpawnPowerUp(ctx))
	}
	if s.meteorRoll.Roll(len(s.Meteors), DropCap, s.rng) {
		s.Meteors = append(s.Meteors, object.SpawnMeteor(ctx))
	}
	if err := s.updateDrops(ctx, now); err != nil {
		return OutcomeNone, err
	}

	if s.Particles, err = object.UpdateAll(ctx, s.Particles, func(p *object.Particle) { object.ReleaseObject(p) }); err != nil {
		return OutcomeNone, err
	}

	if s.mode == ModeContinuous {
		s.checkAchievements(now)
	}
	return s.evaluate(now), nil
}

func (s *Session) playerSpeed(now time.Time) float64 {
	speed := object.PlayerBaseSpeed
	if s.ship == ShipSpeedBoost {
		speed *= ShipSpeedFactor
	}
	if s.Buffs.IsActive(buff.Speed, now) || s.Buffs.IsActive(buff.SuperMode, now) {
		speed *= BoostedSpeedFactor
	}
	return speed
}

func (s *Session) fireInterval(now time.Time) time.Duration {
	if s.Buffs.IsActive(buff.SuperMode, now) {
		return SuperFireInterval
	}
	return FireInterval
}

func (s *Session) bulletSpeed(now time.Time) float64 {
	speed := object.BulletSpeed
	if s.ship == ShipFastBullets || s.Buffs.IsActive(buff.SuperMode, now) {
		speed *= BulletSpeedFactor
	}
	return speed
}

func (s *Session) fire(now time.Time) {
	x := s.Player.X + object.PlayerSize/2 - object.BulletWidth/2
	big := s.Buffs.IsActive(buff.BigBullet, now)
	pattern := SelectPattern(s.Buffs, now)
	s.Bullets = append(s.Bullets, Volley(pattern, x, s.Player.Y, s.bulletSpeed(now), big)...)
	s.lastShot = now
}

func (s *Session) shielded(now time.Time) bool {
	return s.Buffs.IsActive(buff.Shield, now)
}

func (s *Session) respawnEnemy(ctx object.UpdateContext) *object.Enemy {
	return object.SpawnEnemy(ctx, object.EnemySpawnY, s.difficulty)
}

func (s *Session) burst(x, y float64, col draw.Color) {
	s.Particles = append(s.Particles, object.Burst(x, y, col, s.rng)...)
}

// updateEnemies moves enemies and resolves contact with the player. Enemies that
// hit the player or leave the field are replaced in place.
func (s *Session) updateEnemies(ctx object.UpdateContext, now time.Time) error {
	player := s.Player.Bounds()
	shielded := s.shielded(now)
	for i, e := range s.Enemies {
		exited, err := e.Update(ctx)
		if err != nil {
			return err
		}
		switch {
		case !shielded && e.Bounds().Overlaps(player):
			s.Health--
			s.burst(e.X, e.Y, e.Color)
			s.Enemies[i] = s.respawnEnemy(ctx)
			s.logger.Debug("player hit", "by", e.Kind, "health", s.Health)
		case exited:
			s.Enemies[i] = s.respawnEnemy(ctx)
		}
	}
	return nil
}

// resolveHits applies each bullet to at most one enemy: the nearest overlapping
// one, ties going to the lower index.
func (s *Session) resolveHits(ctx object.UpdateContext) {
	damage := Damage(s.ship)
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		target := nearestHit(b, s.Enemies)
		if target < 0 {
			kept = append(kept, b)
			continue
		}
		e := s.Enemies[target]
		if e.Hit(damage) {
			s.kill(ctx, target)
		}
	}
	clear(s.Bullets[len(kept):])
	s.Bullets = kept
}

// nearestHit returns the index of the target overlapping shot whose centre is
// closest to the shot's centre, or -1 when none overlaps.
func nearestHit[T object.Collider](shot object.Collider, targets []T) int {
	rect := shot.Bounds()
	sx, sy := rect.Center()
	best, bestDist := -1, 0.0
	for i, target := range targets {
		tb := target.Bounds()
		if !rect.Overlaps(tb) {
			continue
		}
		tx, ty := tb.Center()
		d := physics.DistanceSquared(sx, sy, tx, ty)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (s *Session) kill(ctx object.UpdateContext, i int) {
	e := s.Enemies[i]
	s.Score += KillScore
	if s.mode == ModeContinuous {
		s.Money += KillMoney
	}
	s.Progress.Add(GoalEnemies, 1)
	s.Progress.Set(GoalScore, s.Score)
	s.burst(e.X, e.Y, e.Color)
	s.Enemies[i] = s.respawnEnemy(ctx)
}

func (s *Session) updateDrops(ctx object.UpdateContext, now time.Time) error {
	player := s.Player.Bounds()

	kept := s.PowerUps[:0]
	for _, p := range s.PowerUps {
		exited, err := p.Update(ctx)
		if err != nil {
			return err
		}
		if p.Bounds().Overlaps(player) {
			s.collect(p.Kind, now)
			continue
		}
		if !exited {
			kept = append(kept, p)
		}
	}
	clear(s.PowerUps[len(kept):])
	s.PowerUps = kept

	shielded := s.shielded(now)
	keptMeteors := s.Meteors[:0]
	for _, m := range s.Meteors {
		exited, err := m.Update(ctx)
		if err != nil {
			return err
		}
		switch {
		case !shielded && m.Bounds().Overlaps(player):
			s.Health--
			cx, cy := m.Bounds().Center()
			s.burst(cx, cy, draw.ColorGrey)
		case exited:
			s.Progress.Add(GoalMeteors, 1)
		default:
			keptMeteors = append(keptMeteors, m)
		}
	}
	clear(s.Meteors[len(keptMeteors):])
	s.Meteors = keptMeteors
	return nil
}

func (s *Session) collect(kind object.PowerUpKind, now time.Time) {
	if b, ok := kind.Buff(); ok {
		s.Buffs.Activate(b, now)
	} else {
		s.Health = min(MaxHealth(s.ship), s.Health+1)
	}
	s.Progress.Add(GoalPowerUps, 1)
	s.Notify(kind.Notice(), now)
}

func (s *Session) checkAchievements(now time.Time) {
	s.unlock(AchievementMeteorDodger, s.Progress.Get(GoalMeteors) >= meteorDodgerTarget, now)
	s.unlock(AchievementPowerUpCollector, s.Progress.Get(GoalPowerUps) >= powerUpCollectorTarget, now)
	s.unlock(AchievementSpeedDemon, s.elapsed > speedDemonSurvival, now)
}

func (s *Session) unlock(name string, reached bool, now time.Time) {
	if !reached || s.achievements[name] {
		return
	}
	s.achievements[name] = true
	s.unlocked = append(s.unlocked, name)
	s.Notify("Achievement Unlocked: "+name+"!", now)
	s.logger.Info("achievement unlocked", "name", name)
}

func (s *Session) evaluate(now time.Time) Outcome {
	switch {
	case s.mode == ModeMission && s.Progress.Reached(s.mission):
		s.outcome = OutcomeWin
		s.Money += s.mission.Reward
		s.Notify(fmt.Sprintf("Mission Completed! Reward: $%d", s.mission.Reward), now)
		s.logger.Info("mission completed", "mission", s.mission.Name, "reward", s.mission.Reward)
	case s.Health <= 0:
		s.outcome = OutcomeLoss
		if s.mode == ModeMission {
			s.Notify("Mission Failed!", now)
		}
		s.logger.Info("session lost", "score", s.Score, "elapsed", s.elapsed.Round(time.Second))
	}
	return s.outcome
}
