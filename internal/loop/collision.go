package loop

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/tomz197/rockstorm/internal/audio"
	"github.com/tomz197/rockstorm/internal/loop/config"
	"github.com/tomz197/rockstorm/internal/object"
	"github.com/tomz197/rockstorm/internal/physics"
)

// minGridCell is the smallest broad-phase cell edge. The grid grows when an
// asteroid is larger than a cell.
const minGridCell = 64.0

// resolveCollisions runs every collision pass in a fixed order. Passes only
// clear Active flags and queue fragments; nothing is removed until Compact.
func (s *Session) resolveCollisions() {
	s.bulletsVsAsteroids()
	s.bulletsVsUfos()
	s.bulletsVsPlayer()
	s.playerVsAsteroids()
	s.ufosVsAsteroids()
	s.playerVsUfos()
}

// indexAsteroids rebuilds the broad-phase grid over the live asteroids.
func (s *Session) indexAsteroids() {
	largest := 0.0
	for i := range s.Store.Asteroids {
		largest = max(largest, s.Store.Asteroids[i].Radius)
	}
	cell := max(minGridCell, largest+object.BulletRadius)
	if cell > s.grid.CellSize() {
		s.grid = physics.NewSpatialGrid(s.Store.Screen.Width, s.Store.Screen.Height, cell)
	} else {
		s.grid.Clear()
	}
	for i := range s.Store.Asteroids {
		a := &s.Store.Asteroids[i]
		if a.Active {
			s.grid.Insert(a.X, a.Y, i)
		}
	}
}

// bulletsVsAsteroids consumes at most one asteroid per bullet: the lowest
// indexed one it overlaps.
func (s *Session) bulletsVsAsteroids() {
	st := s.Store
	s.indexAsteroids()

	for i := range st.Bullets {
		b := &st.Bullets[i]
		if !b.Active {
			continue
		}
		s.candidates = s.grid.Candidates(b.X, b.Y, s.candidates)
		for _, j := range s.candidates {
			a := &st.Asteroids[j]
			if !a.Active || !physics.CirclesOverlap(b.X, b.Y, object.BulletRadius, a.X, a.Y, a.Radius) {
				continue
			}
			b.Active = false
			s.destroyAsteroid(a)
			if b.Owner == object.OwnerPlayer {
				s.Score += config.ScoreAsteroid
				s.log.Debug("asteroid destroyed", zap.Int("score", s.Score))
			}
			break
		}
	}
}

func (s *Session) bulletsVsUfos() {
	st := s.Store
	for i := range st.Bullets {
		b := &st.Bullets[i]
		if !b.Active || b.Owner != object.OwnerPlayer {
			continue
		}
		for j := range st.Ufos {
			u := &st.Ufos[j]
			if !u.Active || !physics.CirclesOverlap(b.X, b.Y, object.BulletRadius, u.X, u.Y, u.Radius) {
				continue
			}
			b.Active = false
			s.destroyUfo(u)
			s.Score += config.ScoreUfo
			s.log.Debug("ufo destroyed", zap.Int("score", s.Score))
			break
		}
	}
}

func (s *Session) bulletsVsPlayer() {
	st := s.Store
	for i := range st.Bullets {
		if !s.playerVulnerable() {
			return
		}
		b := &st.Bullets[i]
		if !b.Active || b.Owner != object.OwnerHostile {
			continue
		}
		p := &st.Player
		if physics.CirclesOverlap(b.X, b.Y, object.BulletRadius, p.X, p.Y, p.Radius) {
			b.Active = false
			s.damagePlayer("ufo bullet")
		}
	}
}

func (s *Session) playerVsAsteroids() {
	st := s.Store
	for i := range st.Asteroids {
		if !s.playerVulnerable() {
			return
		}
		a := &st.Asteroids[i]
		p := &st.Player
		if a.Active && physics.CirclesOverlap(p.X, p.Y, p.Radius, a.X, a.Y, a.Radius) {
			s.destroyAsteroid(a)
			s.damagePlayer("asteroid")
		}
	}
}

func (s *Session) ufosVsAsteroids() {
	st := s.Store
	for i := range st.Ufos {
		u := &st.Ufos[i]
		if !u.Active {
			continue
		}
		for j := range st.Asteroids {
			a := &st.Asteroids[j]
			if !a.Active || !physics.CirclesOverlap(u.X, u.Y, u.Radius, a.X, a.Y, a.Radius) {
				continue
			}
			s.destroyUfo(u)
			s.destroyAsteroid(a)
			s.log.Debug("ufo collided with asteroid")
			break
		}
	}
}

func (s *Session) playerVsUfos() {
	st := s.Store
	for i := range st.Ufos {
		if !s.playerVulnerable() {
			return
		}
		u := &st.Ufos[i]
		p := &st.Player
		if u.Active && physics.CirclesOverlap(p.X, p.Y, p.Radius, u.X, u.Y, u.Radius) {
			s.destroyUfo(u)
			s.damagePlayer("ufo")
		}
	}
}

func (s *Session) playerVulnerable() bool {
	p := &s.Store.Player
	return p.Active && !p.Invulnerable
}

// destroyAsteroid deactivates a and queues its fragments, if any.
func (s *Session) destroyAsteroid(a *object.Asteroid) {
	a.Active = false
	if fragments := a.Fragments(); len(fragments) > 0 {
		s.Store.SpawnFragments(fragments...)
	}
	s.sounds.Play(audio.Bang)
	s.explode(a.X, a.Y, object.Gray, config.AsteroidBurstCount)
}

func (s *Session) destroyUfo(u *object.Ufo) {
	u.Active = false
	s.sounds.Play(audio.Bang)
	s.explode(u.X, u.Y, object.Red, config.UfoBurstCount)
}

// damagePlayer takes a life. The ship either respawns somewhere random with
// a fresh invulnerability window or, on the last life, the game ends.
func (s *Session) damagePlayer(cause string) {
	p := &s.Store.Player
	s.sounds.Play(audio.Bang)
	s.explode(p.X, p.Y, p.Color, config.PlayerBurstCount)

	s.Lives--
	if s.Lives <= 0 {
		p.Active = false
		s.gameOver = true
		s.log.Warn("game over", zap.String("cause", cause), zap.Int("score", s.Score))
		return
	}
	s.log.Warn("player hit", zap.String("cause", cause), zap.Int("lives", s.Lives))
	x, y := s.randomPosition()
	p.Respawn(x, y, config.InvincibilitySeconds)
}

// explode requests a particle burst. It never blocks.
func (s *Session) explode(x, y float64, c color.NRGBA, count int) {
	s.bursts.Request(object.SpawnRequest{
		X:     x,
		Y:     y,
		Color: c,
		Count: count,
		Speed: config.BurstSpeed,
		Life:  config.BurstLife,
		Size:  config.BurstSize,
	})
}
