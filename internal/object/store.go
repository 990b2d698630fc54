package object

// Store owns every entity collection of a game session.
//
// Collections hold values, not pointers; callers mutate entries in place by
// index and only clear Active. Compact is the single place where entries are
// removed, and the only place where fragments queued with SpawnFragments
// join the live asteroid list.
type Store struct {
	Screen    Screen
	Player    Player
	Bullets   []Bullet
	Asteroids []Asteroid
	Ufos      []Ufo

	pending []Asteroid // Fragments to add after the current collision pass
}

// NewStore creates a store with the player at the center of the screen.
func NewStore(screen Screen) *Store {
	cx, cy := screen.Center()
	return &Store{
		Screen: screen,
		Player: NewPlayer(cx, cy),
	}
}

// AddBullet adds a live bullet.
func (s *Store) AddBullet(b Bullet) {
	s.Bullets = append(s.Bullets, b)
}

// AddAsteroid adds a live asteroid immediately. Use SpawnFragments during
// collision resolution instead.
func (s *Store) AddAsteroid(a Asteroid) {
	s.Asteroids = append(s.Asteroids, a)
}

// AddUfo adds a live hostile flyer.
func (s *Store) AddUfo(u Ufo) {
	s.Ufos = append(s.Ufos, u)
}

// SpawnFragments queues asteroids to be merged at the next Compact.
func (s *Store) SpawnFragments(fragments ...Asteroid) {
	s.pending = append(s.pending, fragments...)
}

// Pending returns the number of queued fragments.
func (s *Store) Pending() int {
	return len(s.pending)
}

// HasActiveUfo reports whether a hostile flyer is currently alive.
func (s *Store) HasActiveUfo() bool {
	for i := range s.Ufos {
		if s.Ufos[i].Active {
			return true
		}
	}
	return false
}

// UpdatePlayer integrates the ship.
func (s *Store) UpdatePlayer() {
	s.Player.Update(s.Screen)
}

// UpdateBullets moves every bullet and decays its lifetime.
func (s *Store) UpdateBullets(dt float64) {
	for i := range s.Bullets {
		s.Bullets[i].Update(s.Screen, dt)
	}
}

// UpdateAsteroids moves every asteroid.
func (s *Store) UpdateAsteroids() {
	for i := range s.Asteroids {
		s.Asteroids[i].Update(s.Screen)
	}
}

// UpdateUfos moves every flyer and adds the bullets they fire this frame.
// It returns the number of shots fired.
func (s *Store) UpdateUfos(dt float64) int {
	shots := 0
	for i := range s.Ufos {
		u := &s.Ufos[i]
		if !u.Update(s.Screen, dt) {
			continue
		}
		tx, ty := PickTarget(s.Player, s.Asteroids)
		s.AddBullet(u.FireAt(tx, ty))
		shots++
	}
	return shots
}

// Compact keeps only active bullets, asteroids and flyers, then appends the
// queued fragments to the asteroid list.
func (s *Store) Compact() {
	keptBullets := s.Bullets[:0]
	for _, b := range s.Bullets {
		if b.Active {
			keptBullets = append(keptBullets, b)
		}
	}
	s.Bullets = keptBullets

	keptAsteroids := s.Asteroids[:0]
	for _, a := range s.Asteroids {
		if a.Active {
			keptAsteroids = append(keptAsteroids, a)
		}
	}
	s.Asteroids = keptAsteroids

	keptUfos := s.Ufos[:0]
	for _, u := range s.Ufos {
		if u.Active {
			keptUfos = append(keptUfos, u)
		}
	}
	s.Ufos = keptUfos

	for _, a := range s.pending {
		if a.Active {
			s.Asteroids = append(s.Asteroids, a)
		}
	}
	s.pending = s.pending[:0]
}

// ClearLevel removes every asteroid, flyer and queued fragment.
func (s *Store) ClearLevel() {
	s.Asteroids = s.Asteroids[:0]
	s.Ufos = s.Ufos[:0]
	s.pending = s.pending[:0]
}

// ClearBullets removes every bullet.
func (s *Store) ClearBullets() {
	s.Bullets = s.Bullets[:0]
}

// LevelCleared reports whether no asteroid or flyer is left.
func (s *Store) LevelCleared() bool {
	return len(s.Asteroids) == 0 && len(s.Ufos) == 0 && len(s.pending) == 0
}
