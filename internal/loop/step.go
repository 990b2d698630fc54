package loop

import (
	"go.uber.org/zap"

	"github.com/tomz197/rockstorm/internal/audio"
	"github.com/tomz197/rockstorm/internal/bridge"
	"github.com/tomz197/rockstorm/internal/input"
	"github.com/tomz197/rockstorm/internal/level"
	"github.com/tomz197/rockstorm/internal/loop/config"
	"github.com/tomz197/rockstorm/internal/physics"
)

// Step advances the session by one frame of dt seconds.
//
// Bridges are polled and particles advance on every frame whatever the
// screen; gameplay only advances while playing.
func (s *Session) Step(in input.Input, dt float64) {
	if dt > 0 {
		s.fps = s.fps*0.9 + 0.1/dt
	}
	s.pollBridges()
	s.Particles.Update(dt)

	if in.Pressed(input.Quit) || in.Closed {
		s.quit = true
		return
	}

	switch s.Phase {
	case PhaseTitle:
		s.updateTitle(in)
	case PhasePlaying:
		s.updatePlaying(in, dt)
	case PhasePaused:
		s.updatePaused(in)
	case PhaseDesign:
		s.updateDesign(in)
	case PhaseSettings:
		s.updateSettings(in)
	case PhaseGameOver, PhaseWon:
		s.updateEnded(in)
	}
	s.tickMessage(dt)
}

// pollBridges takes whatever the background workers have finished, without
// waiting for anything.
func (s *Session) pollBridges() {
	s.bursts.Poll(s.Particles)

	if s.settingsLoader != nil {
		if res, ok := s.settingsLoader.Poll(); ok {
			s.receiveSettings(res.Settings, res.Err)
		}
	}

	bonus, ok := s.scan.Poll()
	switch {
	case !ok:
	case s.scanGame != s.game || !s.inGame():
		s.log.Debug("stale scan result ignored")
	default:
		s.Score += bonus
		s.showMessage(config.ScanMessage, config.ScanMessageDuration)
		s.log.Info("scan complete", zap.Int("bonus", bonus), zap.Int("score", s.Score))
	}
}

// updatePlaying runs one gameplay frame: input, spawn policy, integration,
// collision passes, compaction and end-of-frame transitions.
func (s *Session) updatePlaying(in input.Input, dt float64) {
	switch {
	case in.Pressed(input.Pause), in.Pressed(input.Escape):
		s.Phase = PhasePaused
		return
	case in.Pressed(input.Design):
		s.enterDesign()
		return
	}

	st := s.Store
	s.handleShipInput(in, dt)

	if level.MaybeSpawnUfo(s.level, st) {
		s.sounds.Play(audio.Warp)
		s.log.Debug("ufo spawned")
	}

	st.Player.TickInvulnerability(dt)
	st.UpdatePlayer()
	st.UpdateBullets(dt)
	st.UpdateAsteroids()
	for shots := st.UpdateUfos(dt); shots > 0; shots-- {
		s.sounds.Play(audio.Shoot)
	}

	s.resolveCollisions()
	st.Compact()

	// A frame that takes the last life grants nothing, even past a milestone.
	if !s.gameOver && physics.CrossedScoreMilestone(s.Score, &s.milestone) {
		s.Lives++
		s.sounds.Play(audio.Warp)
		s.log.Info("extra life", zap.Int("lives", s.Lives), zap.Int("score", s.Score))
	}

	switch {
	case s.gameOver:
		s.Phase = PhaseGameOver
	case st.LevelCleared():
		s.advanceLevel()
	}
}

func (s *Session) handleShipInput(in input.Input, dt float64) {
	p := &s.Store.Player

	if in.Held(input.Left) {
		p.Rotate(-1, dt)
	}
	if in.Held(input.Right) {
		p.Rotate(1, dt)
	}
	if in.Held(input.Up) {
		p.Thrust()
	}
	if in.Pressed(input.Fire) {
		s.Store.AddBullet(p.Fire())
		s.sounds.Play(audio.Shoot)
	}
	if in.Pressed(input.Hyperspace) {
		p.MoveTo(s.randomPosition())
		s.sounds.Play(audio.Warp)
	}
	if in.Pressed(input.Scan) && s.scan.Start() {
		s.scanGame = s.game
		s.log.Info("scan started")
	}
}

// Scanning reports whether a scan is running.
func (s *Session) Scanning() bool {
	return s.scan.State() == bridge.Pending
}
