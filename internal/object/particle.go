package object

import (
	"image/color"
	"math"
	"math/rand"
	"slices"
)

// Bounds on how many particles a single request may produce.
const (
	MinBurstParticles = 1
	MaxBurstParticles = 250
)

// minParticleLife keeps the opacity ratio finite for zero-life particles.
const minParticleLife = 0.01

// SpawnRequest asks the particle generator for one burst.
type SpawnRequest struct {
	X, Y  float64
	Color color.NRGBA
	Count int
	Speed float64 // Upper bound of particle speed, units per second
	Life  float64 // Upper bound of particle life, seconds
	Size  float64
}

// ParticleInit is the initial state of one generated particle.
// It is a plain value so batches can cross goroutines by copy.
type ParticleInit struct {
	X, Y   float64
	VX, VY float64
	Life   float64
	Color  color.NRGBA
	Size   float64
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity, units per second
	Life    float64 // Seconds remaining
	MaxLife float64 // Life at spawn (for fade calculation)
	Color   color.NRGBA
	Size    float64
}

// Alpha is the derived opacity: remaining over initial life, clamped to [0,1].
func (p *Particle) Alpha() float64 {
	return math.Max(0, math.Min(1, p.Life/p.MaxLife))
}

// ClampCount limits value to [lo, hi].
func ClampCount(value, lo, hi int) int {
	return max(lo, min(hi, value))
}

// GenerateBurst turns a request into a randomized batch of particles
// radiating from the request position.
func GenerateBurst(req SpawnRequest) []ParticleInit {
	count := ClampCount(req.Count, MinBurstParticles, MaxBurstParticles)
	batch := make([]ParticleInit, 0, count)

	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		speed := between(req.Speed*0.5, req.Speed)
		batch = append(batch, ParticleInit{
			X:     req.X,
			Y:     req.Y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  between(req.Life*0.6, req.Life),
			Color: req.Color,
			Size:  between(req.Size*0.6, req.Size*1.2),
		})
	}
	return batch
}

// between returns a value uniformly drawn from [lo, hi).
func between(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

// ParticleSystem owns the live particles.
type ParticleSystem struct {
	particles []Particle
}

// NewParticleSystem creates an empty particle system.
func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

// SpawnBatch appends a generated batch in order.
func (ps *ParticleSystem) SpawnBatch(batch []ParticleInit) {
	ps.particles = slices.Grow(ps.particles, len(batch))
	for _, init := range batch {
		ps.particles = append(ps.particles, Particle{
			X:       init.X,
			Y:       init.Y,
			VX:      init.VX,
			VY:      init.VY,
			Life:    init.Life,
			MaxLife: math.Max(init.Life, minParticleLife),
			Color:   init.Color,
			Size:    init.Size,
		})
	}
}

// Update advances every particle and culls the expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	kept := ps.particles[:0]
	for _, p := range ps.particles {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Life -= dt
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	clear(ps.particles[len(kept):])
	ps.particles = kept
}

// Particles returns the live particles. The slice is owned by the system
// and only valid until the next Update or SpawnBatch.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Clear drops every particle.
func (ps *ParticleSystem) Clear() {
	ps.particles = ps.particles[:0]
}
