package loop

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/rockstorm/internal/audio"
	"github.com/tomz197/rockstorm/internal/bridge"
	"github.com/tomz197/rockstorm/internal/level"
	"github.com/tomz197/rockstorm/internal/loop/config"
	"github.com/tomz197/rockstorm/internal/object"
	"github.com/tomz197/rockstorm/internal/physics"
	"github.com/tomz197/rockstorm/internal/settings"
)

// Phase is the screen the session is on.
type Phase int

const (
	PhaseTitle    Phase = iota // Title screen
	PhasePlaying               // Active gameplay
	PhasePaused                // Gameplay frozen
	PhaseDesign                // Ship editor, gameplay frozen
	PhaseSettings              // Settings menu
	PhaseGameOver              // Out of lives
	PhaseWon                   // Every level cleared
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseDesign:
		return "design"
	case PhaseSettings:
		return "settings"
	case PhaseGameOver:
		return "game over"
	case PhaseWon:
		return "won"
	default:
		return "title"
	}
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	Screen       object.Screen
	Levels       []level.Config // Defaults to level.Defaults()
	SettingsPath string         // Empty disables loading and saving settings
	Sounds       audio.Sounds   // Defaults to audio.Nop
	Logger       *zap.Logger    // Defaults to a no-op logger
	ScanDuration time.Duration  // Defaults to bridge.ScanDuration
}

// volumeSetter is implemented by sound backends that honor the volume setting.
type volumeSetter interface {
	SetVolume(v float64)
}

// Session holds all state of one game: the entity store, the particles, the
// bridges to background workers, score, lives and the current screen.
// It is owned by a single goroutine.
type Session struct {
	Store     *object.Store
	Particles *object.ParticleSystem
	Settings  settings.Settings
	Phase     Phase
	Score     int
	Lives     int
	LevelIdx  int

	Message     string  // Timed on-screen message
	MessageTime float64 // Seconds left for Message
	MenuIndex   int     // Selected settings menu row

	levels    []level.Config
	level     level.Config // levels[LevelIdx] scaled for difficulty
	milestone int
	colorIdx  int
	gameOver  bool
	quit      bool
	fps       float64

	game     int // Incremented on every new game
	scanGame int // Game the pending scan was started in

	settingsPath    string
	settingsLoader  *bridge.SettingsLoader
	settingsTouched bool
	settingsReturn  Phase // Screen the settings menu was opened from
	bursts          *bridge.Particles
	scan            *bridge.Scan

	grid       *physics.SpatialGrid
	candidates []int

	sounds audio.Sounds
	log    *zap.Logger
}

// NewSession validates the level table and builds a session on the title
// screen. An invalid table is returned as an error listing every problem.
func NewSession(opts Options) (*Session, error) {
	levels := opts.Levels
	if levels == nil {
		levels = level.Defaults()
	}
	if err := level.ValidateAll(levels); err != nil {
		return nil, fmt.Errorf("level table: %w", err)
	}
	if opts.Screen.Width <= 0 || opts.Screen.Height <= 0 {
		opts.Screen = object.NewScreen(config.DefaultWidth, config.DefaultHeight)
	}
	if opts.Sounds == nil {
		opts.Sounds = audio.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ScanDuration <= 0 {
		opts.ScanDuration = bridge.ScanDuration
	}

	s := &Session{
		Store:        object.NewStore(opts.Screen),
		Particles:    object.NewParticleSystem(),
		Settings:     settings.Default(),
		Phase:        PhaseTitle,
		Lives:        config.InitialLives,
		levels:       levels,
		settingsPath: opts.SettingsPath,
		bursts:       bridge.NewParticles(),
		scan:         bridge.NewScan(opts.ScanDuration),
		grid:         physics.NewSpatialGrid(opts.Screen.Width, opts.Screen.Height, minGridCell),
		sounds:       opts.Sounds,
		log:          opts.Logger,
	}
	if s.settingsPath != "" {
		s.settingsLoader = bridge.LoadSettings(s.settingsPath)
	}
	s.applyVolume()
	s.newGame()
	return s, nil
}

// Close stops the background workers.
func (s *Session) Close() {
	s.bursts.Close()
}

// Done reports whether the player asked to quit.
func (s *Session) Done() bool {
	return s.quit
}

// FPS returns the smoothed frame rate.
func (s *Session) FPS() float64 {
	return s.fps
}

// Levels returns the number of levels in the table.
func (s *Session) Levels() int {
	return len(s.levels)
}

// newGame resets score, lives and progress and loads the first level.
// The ship keeps its design.
func (s *Session) newGame() {
	s.game++
	s.Score = 0
	s.Lives = config.InitialLives
	s.milestone = 0
	s.LevelIdx = 0
	s.gameOver = false
	s.Message = ""
	s.MessageTime = 0

	p := &s.Store.Player
	p.Active = true
	p.Invulnerable = false
	p.InvulnerableTime = 0
	p.Angle = 0
	s.Particles.Clear()
	s.loadLevel()
}

// loadLevel centers the ship, clears bullets and seeds the current level.
func (s *Session) loadLevel() {
	s.level = s.levels[s.LevelIdx].Scaled(
		s.Settings.Difficulty.SpeedMultiplier(),
		s.Settings.Difficulty.SpawnMultiplier(),
	)
	cx, cy := s.Store.Screen.Center()
	s.Store.Player.MoveTo(cx, cy)
	s.Store.ClearBullets()
	level.Load(s.level, s.Store, s.log.With(zap.Int("level", s.LevelIdx+1)))
}

// advanceLevel moves to the next level, or ends the game as won.
func (s *Session) advanceLevel() {
	next, won := level.Next(s.LevelIdx, s.levels)
	if won {
		s.Phase = PhaseWon
		s.log.Info("all levels cleared", zap.Int("score", s.Score))
		return
	}
	s.LevelIdx = next
	s.loadLevel()
}

// randomPosition returns a uniformly random point on the playfield.
func (s *Session) randomPosition() (float64, float64) {
	return rand.Float64() * s.Store.Screen.Width, rand.Float64() * s.Store.Screen.Height
}

func (s *Session) showMessage(msg string, seconds float64) {
	s.Message = msg
	s.MessageTime = seconds
}

func (s *Session) tickMessage(dt float64) {
	if s.MessageTime <= 0 {
		return
	}
	s.MessageTime -= dt
	if s.MessageTime <= 0 {
		s.MessageTime = 0
		s.Message = ""
	}
}

func (s *Session) applyVolume() {
	if vs, ok := s.sounds.(volumeSetter); ok {
		vs.SetVolume(s.Settings.Volume)
	}
}

// inGame reports whether a game is running, paused or being edited,
// including a settings menu opened from the pause screen.
func (s *Session) inGame() bool {
	switch s.Phase {
	case PhasePlaying, PhasePaused, PhaseDesign:
		return true
	case PhaseSettings:
		return s.settingsReturn == PhasePaused
	}
	return false
}
