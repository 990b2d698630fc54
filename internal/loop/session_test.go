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

	"github.com/tomz197/rockstorm/internal/audio"
	"github.com/tomz197/rockstorm/internal/draw"
	"github.com/tomz197/rockstorm/internal/input"
	"github.com/tomz197/rockstorm/internal/level"
	"github.com/tomz197/rockstorm/internal/loop/config"
	"github.com/tomz197/rockstorm/internal/object"
	"github.com/tomz197/rockstorm/internal/settings"
)

func TestNewSessionRejectsInvalidLevels(t *testing.T) {
	levels := level.Defaults()
	levels[1].AsteroidCount = 0

	_, err := NewSession(Options{Levels: levels})
	if !errors.Is(err, level.ErrNoObstacles) {
		t.Fatalf("expected ErrNoObstacles, got %v", err)
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s, _ := newTestSession(t, Options{})

	if s.Phase != PhaseTitle {
		t.Errorf("expected title phase, got %v", s.Phase)
	}
	if s.Lives != config.InitialLives || s.Score != 0 {
		t.Errorf("unexpected lives %d score %d", s.Lives, s.Score)
	}
	if s.Store.Screen.Width != config.DefaultWidth || s.Store.Screen.Height != config.DefaultHeight {
		t.Errorf("unexpected screen %+v", s.Store.Screen)
	}
	if got := len(s.Store.Asteroids); got != level.Defaults()[0].AsteroidCount {
		t.Errorf("expected first level seeded, got %d asteroids", got)
	}
	if s.Levels() != 3 {
		t.Errorf("expected 3 levels, got %d", s.Levels())
	}
}

func TestStartGameFromTitle(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Step(input.Of(input.Enter), frame)

	if s.Phase != PhasePlaying {
		t.Fatalf("expected playing, got %v", s.Phase)
	}
	cx, cy := s.Store.Screen.Center()
	if s.Store.Player.X != cx || s.Store.Player.Y != cy {
		t.Errorf("expected ship centered, got (%v, %v)", s.Store.Player.X, s.Store.Player.Y)
	}
}

func TestFireAddsBulletAndPlaysShoot(t *testing.T) {
	s, rec := newPlayingSession(t)
	s.Step(input.Of(input.Fire), frame)

	if len(s.Store.Bullets) != 1 || s.Store.Bullets[0].Owner != object.OwnerPlayer {
		t.Fatalf("expected one player bullet, got %+v", s.Store.Bullets)
	}
	if rec.count(audio.Shoot) != 1 {
		t.Errorf("expected shoot cue, got %v", rec.played)
	}
}

func TestHyperspaceStopsShip(t *testing.T) {
	s, rec := newPlayingSession(t)
	s.Store.Player.VX = 4
	s.Step(input.Of(input.Hyperspace), frame)

	p := s.Store.Player
	if p.VX != 0 || p.VY != 0 {
		t.Errorf("expected ship stopped, got (%v, %v)", p.VX, p.VY)
	}
	if rec.count(audio.Warp) != 1 {
		t.Errorf("expected warp cue, got %v", rec.played)
	}
}

func TestLevelClearedAdvances(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Store.ClearLevel()
	s.Store.AddAsteroid(object.NewAsteroid(100, 100, 0, 0, 10))
	s.Store.AddBullet(object.NewBullet(100, 100, 0, 0, 1, object.OwnerPlayer))
	s.Store.AddBullet(object.NewBullet(700, 100, 0, 0, 1, object.OwnerPlayer))
	s.Store.Player.X, s.Store.Player.VX = 10, 1

	s.Step(idle(), frame)

	if s.LevelIdx != 1 {
		t.Fatalf("expected level 2, got index %d", s.LevelIdx)
	}
	if got := len(s.Store.Asteroids); got != level.Defaults()[1].AsteroidCount {
		t.Errorf("expected %d asteroids, got %d", level.Defaults()[1].AsteroidCount, got)
	}
	if len(s.Store.Bullets) != 0 {
		t.Errorf("expected bullets cleared, got %d", len(s.Store.Bullets))
	}
	cx, cy := s.Store.Screen.Center()
	p := s.Store.Player
	if p.X != cx || p.Y != cy || p.VX != 0 || p.VY != 0 {
		t.Errorf("expected ship centered and stopped, got %+v", p)
	}
	if s.Phase != PhasePlaying {
		t.Errorf("expected still playing, got %v", s.Phase)
	}
}

func TestLastLevelClearedWins(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.LevelIdx = 2
	s.Store.ClearLevel()
	s.Store.AddAsteroid(object.NewAsteroid(100, 100, 0, 0, 10))
	s.Store.AddBullet(object.NewBullet(100, 100, 0, 0, 1, object.OwnerPlayer))

	s.Step(idle(), frame)

	if s.Phase != PhaseWon {
		t.Fatalf("expected won, got %v", s.Phase)
	}
	if s.Score != config.ScoreAsteroid {
		t.Errorf("expected score kept, got %d", s.Score)
	}

	s.Step(input.Of(input.Restart), frame)
	if s.Phase != PhasePlaying || s.LevelIdx != 0 || s.Score != 0 {
		t.Errorf("expected fresh game, got phase %v level %d score %d", s.Phase, s.LevelIdx, s.Score)
	}
}

func TestLevelNotClearedWhileFlyerAlive(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Store.ClearLevel()
	s.Store.AddUfo(object.NewUfo(100, 0))

	s.Step(idle(), frame)

	if s.LevelIdx != 0 {
		t.Errorf("expected level held by live flyer, got index %d", s.LevelIdx)
	}
}

func TestExtraLifeAtMilestone(t *testing.T) {
	s, rec := newPlayingSession(t)
	s.Score = 2950
	s.Store.AddAsteroid(object.NewAsteroid(100, 100, 0, 0, 10))
	s.Store.AddBullet(object.NewBullet(100, 100, 0, 0, 1, object.OwnerPlayer))

	s.Step(idle(), frame)

	if s.Score != 3050 {
		t.Fatalf("expected 3050, got %d", s.Score)
	}
	if s.Lives != config.InitialLives+1 {
		t.Errorf("expected extra life, got %d lives", s.Lives)
	}
	if rec.count(audio.Warp) != 1 {
		t.Errorf("expected warp cue, got %v", rec.played)
	}

	s.Store.AddAsteroid(object.NewAsteroid(100, 100, 0, 0, 10))
	s.Store.AddBullet(object.NewBullet(100, 100, 0, 0, 1, object.OwnerPlayer))
	s.Step(idle(), frame)
	if s.Lives != config.InitialLives+1 {
		t.Errorf("expected one life per milestone, got %d lives", s.Lives)
	}
}

func TestGameOverRestart(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Lives = 1
	s.Store.AddBullet(object.NewBullet(400, 300, 0, 0, 1, object.OwnerHostile))
	s.Step(idle(), frame)
	if s.Phase != PhaseGameOver {
		t.Fatalf("expected game over, got %v", s.Phase)
	}

	s.Step(input.Of(input.Fire), frame)
	if s.Phase != PhaseGameOver {
		t.Errorf("expected fire ignored on game over, got %v", s.Phase)
	}

	s.Step(input.Of(input.Restart), frame)
	if s.Phase != PhasePlaying || s.Lives != config.InitialLives || !s.Store.Player.Active {
		t.Errorf("expected fresh game, got phase %v lives %d", s.Phase, s.Lives)
	}
}

func TestPauseFreezesGameplay(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Store.AddBullet(object.NewBullet(100, 100, 2, 0, 1, object.OwnerPlayer))

	s.Step(input.Of(input.Pause), frame)
	if s.Phase != PhasePaused {
		t.Fatalf("expected paused, got %v", s.Phase)
	}
	s.Step(idle(), frame)
	if s.Store.Bullets[0].X != 100 {
		t.Errorf("expected bullet frozen, got x=%v", s.Store.Bullets[0].X)
	}

	s.Step(input.Of(input.Pause), frame)
	if s.Phase != PhasePlaying {
		t.Errorf("expected resumed, got %v", s.Phase)
	}
}

func TestDesignModeEditsShip(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Store.Player.VX = 3
	s.Step(input.Of(input.Design), frame)

	if s.Phase != PhaseDesign {
		t.Fatalf("expected design, got %v", s.Phase)
	}
	if s.Store.Player.VX != 0 {
		t.Errorf("expected ship stopped, got vx=%v", s.Store.Player.VX)
	}

	s.Step(input.Of(input.Right), frame)
	s.Step(input.Of(input.Up), frame)
	s.Step(input.Of(input.Color), frame)
	p := s.Store.Player
	if p.Sides != object.PlayerSides+1 || p.Radius != object.PlayerRadius+1 || p.Color != object.ShipColors[1] {
		t.Errorf("unexpected ship after edits: %+v", p)
	}

	for i := 0; i < 20; i++ {
		s.Step(input.Of(input.Left), frame)
	}
	if s.Store.Player.Sides != object.MinPlayerSides {
		t.Errorf("expected sides floored at %d, got %d", object.MinPlayerSides, s.Store.Player.Sides)
	}
	for i := 0; i < 100; i++ {
		s.Step(input.Of(input.Up), frame)
	}
	if s.Store.Player.Radius != object.MaxPlayerRadius {
		t.Errorf("expected radius capped at %v, got %v", object.MaxPlayerRadius, s.Store.Player.Radius)
	}

	s.Step(input.Of(input.Escape), frame)
	if s.Phase != PhasePlaying {
		t.Errorf("expected back to playing, got %v", s.Phase)
	}
}

func TestDesignSurvivesNewGame(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Store.Player.Sides = 6
	s.startGame()
	if s.Store.Player.Sides != 6 {
		t.Errorf("expected design kept, got %d sides", s.Store.Player.Sides)
	}
}

func TestQuitFromAnyPhase(t *testing.T) {
	for _, phase := range []Phase{PhaseTitle, PhasePlaying, PhasePaused, PhaseDesign, PhaseSettings, PhaseGameOver, PhaseWon} {
		t.Run(phase.String(), func(t *testing.T) {
			s, _ := newTestSession(t, Options{})
			s.Phase = phase
			s.Step(input.Of(input.Quit), frame)
			if !s.Done() {
				t.Error("expected session done")
			}
		})
	}

	s, _ := newTestSession(t, Options{})
	s.Step(input.Input{Closed: true}, frame)
	if !s.Done() {
		t.Error("expected closed input to end the session")
	}
}

func TestScanAwardsBonus(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Step(input.Of(input.Scan), 0)
	if !s.Scanning() {
		t.Fatal("expected scan pending")
	}
	s.Step(input.Of(input.Scan), 0)

	stepUntil(t, s, func() bool { return !s.Scanning() })

	if s.Score != 250 {
		t.Errorf("expected one bonus of 250, got %d", s.Score)
	}
	if s.Message != config.ScanMessage {
		t.Errorf("expected scan message, got %q", s.Message)
	}

	s.Step(idle(), config.ScanMessageDuration+0.1)
	if s.Message != "" {
		t.Errorf("expected message expired, got %q", s.Message)
	}
}

func TestStaleScanIgnored(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Step(input.Of(input.Scan), 0)
	s.Phase = PhaseGameOver

	stepUntil(t, s, func() bool { return !s.Scanning() })

	if s.Score != 0 {
		t.Errorf("expected stale bonus dropped, got %d", s.Score)
	}
}

func TestSettingsLoadedAtStartup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.txt")
	if err := os.WriteFile(path, []byte("volume=0.3\ndifficulty=3\nshow_fps=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, rec := newTestSession(t, Options{SettingsPath: path})

	stepUntil(t, s, func() bool { return s.Settings.Difficulty == settings.Hard })

	if s.Settings.Volume != 0.3 || !s.Settings.ShowFPS {
		t.Errorf("unexpected settings %+v", s.Settings)
	}
	if rec.volume != 0.3 {
		t.Errorf("expected volume applied to sounds, got %v", rec.volume)
	}

	s.Step(input.Of(input.Enter), frame)
	want := level.Defaults()[0].AsteroidSpeedMax * settings.Hard.SpeedMultiplier()
	if s.level.AsteroidSpeedMax != want {
		t.Errorf("expected scaled max speed %v, got %v", want, s.level.AsteroidSpeedMax)
	}
}

func TestSettingsMissingFileKeepsDefaults(t *testing.T) {
	s, _ := newTestSession(t, Options{SettingsPath: filepath.Join(t.TempDir(), "none.txt")})
	deadline := time.Now().Add(100 * time.Millisecond)
	for time.Now().Before(deadline) {
		s.Step(idle(), 0)
		time.Sleep(time.Millisecond)
	}
	if s.Settings != settings.Default() {
		t.Errorf("expected defaults, got %+v", s.Settings)
	}
}

func TestSettingsMenuSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.txt")
	s, rec := newTestSession(t, Options{SettingsPath: path})

	s.Step(input.Of(input.Options), frame)
	if s.Phase != PhaseSettings {
		t.Fatalf("expected settings menu, got %v", s.Phase)
	}
	s.Step(input.Of(input.Right), frame) // difficulty
	s.Step(input.Of(input.Down), frame)
	s.Step(input.Of(input.Left), frame) // volume
	s.Step(input.Of(input.Down), frame)
	s.Step(input.Of(input.Right), frame) // show fps
	s.Step(input.Of(input.Escape), frame)

	if s.Phase != PhaseTitle {
		t.Fatalf("expected back on title, got %v", s.Phase)
	}
	saved, err := settings.Load(path)
	if err != nil {
		t.Fatalf("expected saved settings, got %v", err)
	}
	want := settings.Settings{Volume: 0.7, Difficulty: settings.Hard, ShowFPS: true}
	if saved != want {
		t.Errorf("expected %+v, got %+v", want, saved)
	}
	if rec.volume != 0.7 {
		t.Errorf("expected volume applied, got %v", rec.volume)
	}
}

func TestMenuWraps(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	s.Phase = PhaseSettings
	s.Step(input.Of(input.Up), frame)
	if s.MenuIndex != MenuShowFPS {
		t.Errorf("expected wrap to last row, got %d", s.MenuIndex)
	}
	s.Step(input.Of(input.Down), frame)
	if s.MenuIndex != MenuDifficulty {
		t.Errorf("expected wrap to first row, got %d", s.MenuIndex)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Store.AddBullet(object.NewBullet(100, 100, 0, 0, 1, object.OwnerPlayer))

	snap := s.Snapshot()
	snap.Bullets[0].X = 999
	snap.Asteroids[0].Radius = 1

	if s.Store.Bullets[0].X != 100 || s.Store.Asteroids[0].Radius != 10 {
		t.Error("snapshot shares memory with the session")
	}
	if snap.Level != 1 || snap.Levels != 3 || snap.Phase != PhasePlaying {
		t.Errorf("unexpected snapshot header %+v", snap)
	}
}

func TestRendererDrawsEveryPhase(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Store.AddBullet(object.NewBullet(100, 100, 0, 0, 1, object.OwnerPlayer))
	u := object.NewUfo(200, 0)
	s.Store.AddUfo(u)

	var out bytes.Buffer
	r := NewRenderer(&out, draw.FixedSize(100, 40), s.Store.Screen)
	for _, phase := range []Phase{PhaseTitle, PhasePlaying, PhasePaused, PhaseDesign, PhaseSettings, PhaseGameOver, PhaseWon} {
		s.Phase = phase
		out.Reset()
		if err := r.Draw(s.Snapshot()); err != nil {
			t.Fatalf("%v: %v", phase, err)
		}
		if out.Len() == 0 {
			t.Errorf("%v: expected output", phase)
		}
	}

	s.Phase = PhasePlaying
	out.Reset()
	if err := r.Draw(s.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Score:") {
		t.Errorf("expected HUD in output")
	}
}

func TestRunEndsOnQuit(t *testing.T) {
	s, _ := newTestSession(t, Options{})
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(s, IO{
			In:       bufio.NewReader(strings.NewReader("q")),
			Out:      &out,
			TermSize: draw.FixedSize(80, 24),
		}, 120)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	if !s.Done() {
		t.Error("expected session done")
	}
}

func TestPauseExits(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Step(input.Of(input.Pause), frame)
	s.Step(input.Of(input.Escape), frame)
	if s.Phase != PhaseTitle {
		t.Errorf("expected title after escape from pause, got %v", s.Phase)
	}

	s, _ = newPlayingSession(t)
	s.Step(input.Of(input.Escape), frame)
	if s.Phase != PhasePaused {
		t.Fatalf("expected escape to pause, got %v", s.Phase)
	}
	s.Step(input.Of(input.Options), frame)
	if s.Phase != PhaseSettings {
		t.Fatalf("expected settings from pause, got %v", s.Phase)
	}
	s.Step(input.Of(input.Right), frame)
	s.Step(input.Of(input.Enter), frame)
	if s.Phase != PhasePaused {
		t.Errorf("expected back on pause, got %v", s.Phase)
	}
	if s.Settings.Difficulty != settings.Hard {
		t.Errorf("expected difficulty changed, got %v", s.Settings.Difficulty)
	}
}

func TestScanCompletesInSettingsFromPause(t *testing.T) {
	s, _ := newPlayingSession(t)
	s.Step(input.Of(input.Scan), 0)
	s.Step(input.Of(input.Pause), 0)
	s.Step(input.Of(input.Options), 0)

	stepUntil(t, s, func() bool { return !s.Scanning() })

	if s.Score != 250 {
		t.Errorf("expected bonus kept for the paused game, got %d", s.Score)
	}
}
