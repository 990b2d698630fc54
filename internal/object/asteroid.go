package object

import (
	"math/rand"
)

// SplitRadius is the size above which a destroyed asteroid breaks in two.
const SplitRadius = 15.0

// FragmentSpeed bounds each velocity axis of a fragment.
const FragmentSpeed = 2.0

// Asteroid is a destructible space rock.
type Asteroid struct {
	X, Y   float64 // Position (center)
	VX, VY float64 // Velocity per frame
	Radius float64 // Collision/draw radius, always > 0
	Sides  int     // Polygon side count (visual only)
	Active bool
}

// NewAsteroid creates an active asteroid with a random 5-8 sided outline.
func NewAsteroid(x, y, vx, vy, radius float64) Asteroid {
	return Asteroid{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Radius: radius,
		Sides:  5 + rand.Intn(4),
		Active: true,
	}
}

// Update moves the asteroid and wraps it around the screen.
func (a *Asteroid) Update(screen Screen) {
	a.X += a.VX
	a.Y += a.VY
	screen.WrapPosition(&a.X, &a.Y)
}

// Splits reports whether destroying the asteroid produces fragments.
func (a *Asteroid) Splits() bool {
	return a.Radius > SplitRadius
}

// Fragments returns the two half-size children of a destroyed asteroid, or
// nil when it is too small to split. Each child gets its own random velocity.
func (a *Asteroid) Fragments() []Asteroid {
	if !a.Splits() {
		return nil
	}
	r := a.Radius / 2
	return []Asteroid{
		NewAsteroid(a.X, a.Y, randomAxis(FragmentSpeed), randomAxis(FragmentSpeed), r),
		NewAsteroid(a.X, a.Y, randomAxis(FragmentSpeed), randomAxis(FragmentSpeed), r),
	}
}

// randomAxis returns a value uniformly drawn from [-limit, limit).
func randomAxis(limit float64) float64 {
	return (rand.Float64()*2 - 1) * limit
}
