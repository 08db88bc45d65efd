package session

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/younwookim/duskblade/internal/application/state"
	"github.com/younwookim/duskblade/internal/application/system"
	"github.com/younwookim/duskblade/internal/domain/entity"
	"github.com/younwookim/duskblade/internal/infrastructure/config"
)

// ErrNilConfig is returned when a session is built without configuration
var ErrNilConfig = errors.New("session: nil config")

// ErrBadLevel is returned when a save points past the configured levels
var ErrBadLevel = errors.New("session: level out of range")

// Saver persists checkpoints
type Saver interface {
	Save(data entity.GameData) error
}

// Options configures a session
type Options struct {
	Seed   int64
	Saver  Saver
	Logger *log.Logger

	// OnHit is called for every landed melee hit
	OnHit func(attacker, target *entity.Character)
}

// Session owns one play-through: the current stage, the player and the
// enemy roster. It decides roster membership and level progression; the
// systems it drives never do.
type Session struct {
	tuning     *config.Tuning
	levels     []*config.LevelConfig
	levelIndex int

	stage   *entity.Stage
	index   *system.ObstacleIndex
	player  *entity.Character
	enemies []*entity.Enemy

	physics    *system.PhysicsSystem
	combat     *system.CombatSystem
	characters *system.CharacterSystem
	ai         *system.EnemyAI
	platforms  *system.PlatformSystem

	rng    *rand.Rand
	state  state.GameState
	saver  Saver
	logger *log.Logger

	tick  int
	kills int
}

// New starts a session at the first level
func New(cfg *config.GameConfig, opts Options) (*Session, error) {
	s, err := newSession(cfg, opts)
	if err != nil {
		return nil, err
	}

	if err := s.loadLevel(0); err != nil {
		return nil, err
	}
	s.checkpoint()
	return s, nil
}

// FromSave rebuilds a session from a checkpoint. Enemies come back at their
// saved positions and health instead of being spawned at random.
func FromSave(cfg *config.GameConfig, data entity.GameData, opts Options) (*Session, error) {
	s, err := newSession(cfg, opts)
	if err != nil {
		return nil, err
	}
	if data.Level < 0 || data.Level >= len(s.levels) {
		return nil, fmt.Errorf("%w: %d", ErrBadLevel, data.Level)
	}

	if err := s.buildStage(data.Level); err != nil {
		return nil, err
	}
	s.player.Restore(data.Player)

	for _, snap := range data.Enemies {
		pos := entity.Vec2{X: snap.X, Y: snap.Y}
		c := s.newEnemyCharacter(pos)
		c.Restore(snap)
		s.enemies = append(s.enemies, entity.NewEnemy(c, s.ai.RoamDuration()))
	}

	s.logger.Info("session restored", "level", s.stage.Name, "enemies", len(s.enemies))
	return s, nil
}

func newSession(cfg *config.GameConfig, opts Options) (*Session, error) {
	if cfg == nil || cfg.Tuning == nil {
		return nil, ErrNilConfig
	}
	if len(cfg.Levels) == 0 {
		return nil, config.ErrNoLevels
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	physics := system.NewPhysicsSystem(cfg.Tuning)
	combat := system.NewCombatSystem()
	combat.OnHit = opts.OnHit

	s := &Session{
		tuning:     cfg.Tuning,
		levels:     cfg.Levels,
		physics:    physics,
		combat:     combat,
		characters: system.NewCharacterSystem(physics, combat),
		ai:         system.NewEnemyAI(cfg.Tuning, rng),
		platforms:  system.NewPlatformSystem(),
		rng:        rng,
		state:      state.StatePlaying,
		saver:      opts.Saver,
		logger:     logger,
	}

	p := cfg.Tuning.Player
	s.player = entity.NewCharacter(entity.RolePlayer, cfg.Tuning.PlayerStats(), entity.Vec2{},
		p.Width, p.Height, cfg.Tuning.Physics.Inset)

	return s, nil
}

// buildStage loads level i and moves the player to its spawn
func (s *Session) buildStage(i int) error {
	stage, err := system.LoadStage(s.levels[i], s.tuning)
	if err != nil {
		return fmt.Errorf("failed to build level %q: %w", s.levels[i].Name, err)
	}

	s.levelIndex = i
	s.stage = stage
	s.index = system.NewObstacleIndex(stage)
	s.enemies = nil

	s.player.Spawn = stage.PlayerSpawn
	s.player.Position = stage.PlayerSpawn
	s.player.Velocity = entity.Vec2{}
	s.player.Grounded = false

	return nil
}

// loadLevel builds level i and spawns its enemies on randomly chosen markers
func (s *Session) loadLevel(i int) error {
	if err := s.buildStage(i); err != nil {
		return err
	}

	spawns := s.stage.EnemySpawns
	n := s.stage.EnemyCount
	if n > len(spawns) {
		n = len(spawns)
	}
	for _, k := range s.rng.Perm(len(spawns))[:n] {
		c := s.newEnemyCharacter(spawns[k])
		s.enemies = append(s.enemies, entity.NewEnemy(c, s.ai.RoamDuration()))
	}

	s.logger.Info("level loaded", "level", s.stage.Name, "index", i, "enemies", len(s.enemies))
	return nil
}

func (s *Session) newEnemyCharacter(pos entity.Vec2) *entity.Character {
	e := s.tuning.Enemy
	return entity.NewCharacter(entity.RoleEnemy, s.tuning.EnemyStats(), pos,
		e.Width, e.Height, s.tuning.Physics.Inset)
}

// checkpoint hands the current snapshot to the saver. Failures are logged.
func (s *Session) checkpoint() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(s.Snapshot()); err != nil {
		s.logger.Warn("checkpoint failed", "level", s.levelIndex, "error", err)
		return
	}
	s.logger.Debug("checkpoint written", "level", s.levelIndex)
}

// Update advances the session by one tick. Moving platforms move first,
// then the player, then each enemy in roster order. Character events are
// cleared once at the start of each tick.
func (s *Session) Update(intent system.Intent, dt float64) {
	switch s.state {
	case state.StateLevelClear:
		s.advanceLevel()
		return
	case state.StatePlaying:
	default:
		return
	}

	s.tick++
	s.clearEvents()
	s.platforms.Update(s.stage, s.index, dt)

	s.characters.Update(s.player, intent, s.stage, s.opponents(), dt)

	target := []*entity.Character{s.player}
	for _, e := range s.enemies {
		in := s.ai.Decide(e, s.player, s.index, dt)
		s.characters.Update(e.Character, in, s.stage, target, dt)
		if e.HasEvent(entity.EventDied) {
			s.kills++
			s.player.Heal(s.tuning.HealOnKill)
		}
	}

	s.killFallen()
	s.removeDead()

	if len(s.enemies) == 0 {
		s.state = state.StateLevelClear
		s.logger.Info("level cleared", "level", s.stage.Name, "tick", s.tick)
	}
}

// clearEvents drops last tick's events so every event raised this tick,
// including hits taken during another character's update, survives until
// the next Update.
func (s *Session) clearEvents() {
	s.player.ClearEvents()
	for _, e := range s.enemies {
		e.ClearEvents()
	}
}

// opponents returns the enemy roster as characters, in roster order
func (s *Session) opponents() []*entity.Character {
	out := make([]*entity.Character, 0, len(s.enemies))
	for _, e := range s.enemies {
		out = append(out, e.Character)
	}
	return out
}

// killFallen kills any character that dropped below the world
func (s *Session) killFallen() {
	if s.fallen(s.player) {
		s.player.Die()
	}
	for _, e := range s.enemies {
		if s.fallen(e.Character) {
			e.Die()
		}
	}
}

func (s *Session) fallen(c *entity.Character) bool {
	return !c.IsDead() && c.Position.Y > s.stage.Height
}

// removeDead drops removable enemies, keeping roster order
func (s *Session) removeDead() {
	kept := s.enemies[:0]
	for _, e := range s.enemies {
		if e.Removable() {
			s.logger.Debug("enemy removed", "x", e.Position.X, "y", e.Position.Y)
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.enemies); i++ {
		s.enemies[i] = nil
	}
	s.enemies = kept
}

// advanceLevel loads the next level, or ends the run after the last one
func (s *Session) advanceLevel() {
	next := s.levelIndex + 1
	if next >= len(s.levels) {
		s.state = state.StateVictory
		s.logger.Info("victory", "ticks", s.tick, "kills", s.kills)
		return
	}

	if err := s.loadLevel(next); err != nil {
		// A level that fails to build ends the run
		s.logger.Error("failed to advance level", "error", err)
		s.state = state.StateVictory
		return
	}
	s.state = state.StatePlaying
	s.checkpoint()
}

// SetPaused pauses or resumes a running session
func (s *Session) SetPaused(paused bool) {
	switch {
	case paused && s.state == state.StatePlaying:
		s.state = state.StatePaused
	case !paused && s.state == state.StatePaused:
		s.state = state.StatePlaying
	}
}

// ApplyTuning swaps the tuning between ticks. Positions are kept and health
// is clamped to the new maximum.
func (s *Session) ApplyTuning(t *config.Tuning) {
	if t == nil {
		return
	}
	s.tuning = t
	s.physics.SetConfig(t)
	s.ai.SetConfig(t)

	s.player.SetStats(t.PlayerStats())
	for _, e := range s.enemies {
		e.SetStats(t.EnemyStats())
	}
	s.logger.Info("tuning applied")
}

// Snapshot returns the persistent state of the session
func (s *Session) Snapshot() entity.GameData {
	data := entity.GameData{
		Player: s.player.Snapshot(),
		Level:  s.levelIndex,
	}
	for _, e := range s.enemies {
		if e.IsDead() {
			continue
		}
		data.Enemies = append(data.Enemies, e.Snapshot())
	}
	return data
}

// Player returns the player character
func (s *Session) Player() *entity.Character { return s.player }

// Enemies returns the live roster in update order
func (s *Session) Enemies() []*entity.Enemy { return s.enemies }

// Stage returns the current stage
func (s *Session) Stage() *entity.Stage { return s.stage }

// State returns the session state
func (s *Session) State() state.GameState { return s.state }

// Level returns the index of the current level
func (s *Session) Level() int { return s.levelIndex }

// Tick returns the number of simulated ticks
func (s *Session) Tick() int { return s.tick }

// Kills returns the number of enemies killed
func (s *Session) Kills() int { return s.kills }

// Tuning returns the active tuning
func (s *Session) Tuning() *config.Tuning { return s.tuning }

// Hitbox returns the current melee hitbox of c
func (s *Session) Hitbox(c *entity.Character) entity.Rect { return s.combat.Hitbox(c) }
