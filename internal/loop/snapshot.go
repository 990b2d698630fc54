package loop

import (
	"image/color"
	"slices"

	"github.com/tomz197/rockstorm/internal/object"
	"github.com/tomz197/rockstorm/internal/settings"
)

// ParticleView is a particle as the renderer sees it.
type ParticleView struct {
	X, Y  float64
	Size  float64
	Color color.NRGBA
	Alpha float64
}

// Snapshot is a read-only copy of everything the renderer needs for one
// frame. It shares no memory with the session.
type Snapshot struct {
	Screen    object.Screen
	Phase     Phase
	Score     int
	Lives     int
	Level     int // 1-based
	Levels    int
	Player    object.Player
	Bullets   []object.Bullet
	Asteroids []object.Asteroid
	Ufos      []object.Ufo
	Particles []ParticleView

	Message   string
	Scanning  bool
	FPS       float64
	Settings  settings.Settings
	MenuIndex int
}

// Snapshot copies the current state for rendering.
func (s *Session) Snapshot() Snapshot {
	st := s.Store
	snap := Snapshot{
		Screen:    st.Screen,
		Phase:     s.Phase,
		Score:     s.Score,
		Lives:     s.Lives,
		Level:     s.LevelIdx + 1,
		Levels:    len(s.levels),
		Player:    st.Player,
		Bullets:   slices.Clone(st.Bullets),
		Asteroids: slices.Clone(st.Asteroids),
		Ufos:      slices.Clone(st.Ufos),
		Message:   s.Message,
		Scanning:  s.Scanning(),
		FPS:       s.fps,
		Settings:  s.Settings,
		MenuIndex: s.MenuIndex,
	}
	particles := s.Particles.Particles()
	snap.Particles = make([]ParticleView, len(particles))
	for i := range particles {
		p := &particles[i]
		snap.Particles[i] = ParticleView{X: p.X, Y: p.Y, Size: p.Size, Color: p.Color, Alpha: p.Alpha()}
	}
	return snap
}
