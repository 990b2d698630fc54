package loop

import (
	"go.uber.org/zap"

	"github.com/tomz197/rockstorm/internal/input"
	"github.com/tomz197/rockstorm/internal/object"
	"github.com/tomz197/rockstorm/internal/settings"
)

// Settings menu rows.
const (
	MenuDifficulty = iota
	MenuVolume
	MenuShowFPS
	menuRows
)

// updateTitle handles the title screen.
func (s *Session) updateTitle(in input.Input) {
	switch {
	case in.Pressed(input.Enter), in.Pressed(input.Fire):
		s.startGame()
	case in.Pressed(input.Options):
		s.openSettings()
	}
}

// openSettings shows the settings menu. Leaving it returns to the screen
// it was opened from.
func (s *Session) openSettings() {
	s.settingsReturn = s.Phase
	s.MenuIndex = MenuDifficulty
	s.Phase = PhaseSettings
}

// startGame starts a fresh game from level 1.
func (s *Session) startGame() {
	s.newGame()
	s.Phase = PhasePlaying
	s.log.Info("game started", zap.Stringer("difficulty", s.Settings.Difficulty))
}

// updatePaused resumes, abandons the game for the title screen, or opens
// the settings menu.
func (s *Session) updatePaused(in input.Input) {
	switch {
	case in.Pressed(input.Pause), in.Pressed(input.Enter):
		s.Phase = PhasePlaying
	case in.Pressed(input.Escape):
		s.Phase = PhaseTitle
		s.log.Info("game abandoned", zap.Int("score", s.Score))
	case in.Pressed(input.Options):
		s.openSettings()
	}
}

// enterDesign opens the ship editor. The ship stops so it does not drift
// while being edited.
func (s *Session) enterDesign() {
	p := &s.Store.Player
	p.VX, p.VY = 0, 0
	s.Phase = PhaseDesign
}

func (s *Session) updateDesign(in input.Input) {
	p := &s.Store.Player
	switch {
	case in.Pressed(input.Design), in.Pressed(input.Escape):
		s.Phase = PhasePlaying
	case in.Pressed(input.Right):
		p.ReshapeBy(1)
	case in.Pressed(input.Left):
		p.ReshapeBy(-1)
	case in.Pressed(input.Up):
		p.ResizeBy(1)
	case in.Pressed(input.Down):
		p.ResizeBy(-1)
	case in.Pressed(input.Color):
		s.colorIdx = (s.colorIdx + 1) % len(object.ShipColors)
		p.Color = object.ShipColors[s.colorIdx]
	}
}

// updateSettings handles the settings menu. Leaving it saves the settings.
func (s *Session) updateSettings(in input.Input) {
	switch {
	case in.Pressed(input.Escape), in.Pressed(input.Enter), in.Pressed(input.Options):
		s.leaveSettings()
	case in.Pressed(input.Up):
		s.MenuIndex = (s.MenuIndex + menuRows - 1) % menuRows
	case in.Pressed(input.Down):
		s.MenuIndex = (s.MenuIndex + 1) % menuRows
	case in.Pressed(input.Right):
		s.adjustSetting(1)
	case in.Pressed(input.Left):
		s.adjustSetting(-1)
	}
}

func (s *Session) adjustSetting(dir int) {
	s.settingsTouched = true
	switch s.MenuIndex {
	case MenuDifficulty:
		if dir > 0 {
			s.Settings.Difficulty = s.Settings.Difficulty.Next()
		} else {
			s.Settings.Difficulty = s.Settings.Difficulty.Prev()
		}
	case MenuVolume:
		s.Settings.AdjustVolume(float64(dir) * settings.VolumeStep)
		s.applyVolume()
	case MenuShowFPS:
		s.Settings.ShowFPS = !s.Settings.ShowFPS
	}
}

func (s *Session) leaveSettings() {
	s.Phase = s.settingsReturn
	if s.settingsPath == "" {
		return
	}
	if err := settings.Save(s.settingsPath, s.Settings); err != nil {
		s.log.Warn("failed to save settings", zap.Error(err))
		return
	}
	s.log.Info("settings saved", zap.String("path", s.settingsPath))
}

// receiveSettings applies the settings loaded at startup, unless the player
// already changed them in the menu.
func (s *Session) receiveSettings(loaded settings.Settings, err error) {
	if err != nil {
		s.log.Warn("settings unavailable, using defaults", zap.Error(err))
		return
	}
	if s.settingsTouched {
		s.log.Debug("loaded settings superseded by menu changes")
		return
	}
	s.Settings = loaded
	s.applyVolume()
	s.log.Info("settings loaded",
		zap.Float64("volume", loaded.Volume),
		zap.Stringer("difficulty", loaded.Difficulty),
		zap.Bool("show_fps", loaded.ShowFPS),
	)
}

// updateEnded handles the game over and win screens.
func (s *Session) updateEnded(in input.Input) {
	if in.Pressed(input.Restart) || in.Pressed(input.Enter) {
		s.startGame()
	}
}
