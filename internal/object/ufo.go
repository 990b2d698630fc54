package object

import (
	"math"
	"math/rand"
)

// Hostile flyer behaviour.
const (
	UfoRadius        = 20.0
	UfoTurnInterval  = 2.0 // Seconds between vertical retargets
	UfoShootInterval = 2.0 // Seconds between shots
	UfoBulletSpeed   = 6.0
	UfoBulletLife    = 2.0
)

// Ufo is the hostile flyer. At most one is active at a time.
type Ufo struct {
	X, Y       float64
	VX, VY     float64
	Speed      float64 // Level speed, used when retargeting
	Radius     float64
	Active     bool
	ShootTimer float64 // Counts up; fires past UfoShootInterval
	TurnTimer  float64 // Counts up; retargets past UfoTurnInterval
}

// NewUfo creates a flyer entering from the left edge at height y, moving right.
func NewUfo(y, speed float64) Ufo {
	return Ufo{
		X:      0,
		Y:      y,
		VX:     speed,
		Speed:  speed,
		Radius: UfoRadius,
		Active: true,
	}
}

// Update moves the flyer, advances both timers and retargets when due.
// It reports whether the flyer wants to fire this frame.
func (u *Ufo) Update(screen Screen, dt float64) (fire bool) {
	u.X += u.VX
	u.Y += u.VY
	screen.WrapPosition(&u.X, &u.Y)

	u.TurnTimer += dt
	u.ShootTimer += dt

	if u.TurnTimer > UfoTurnInterval {
		u.VY = randomAxis(1) * u.Speed
		u.TurnTimer = 0
	}
	if u.ShootTimer > UfoShootInterval {
		u.ShootTimer = 0
		return true
	}
	return false
}

// FireAt returns a hostile bullet aimed at (tx, ty).
func (u *Ufo) FireAt(tx, ty float64) Bullet {
	dx, dy := tx-u.X, ty-u.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		dx, dy, dist = 1, 0, 1
	}
	dx /= dist
	dy /= dist
	return NewBullet(
		u.X+dx*u.Radius, u.Y+dy*u.Radius,
		dx*UfoBulletSpeed, dy*UfoBulletSpeed,
		UfoBulletLife, OwnerHostile,
	)
}

// PickTarget chooses where the flyer aims: usually the player, and one time
// in three the first asteroid when any exist.
func PickTarget(player Player, asteroids []Asteroid) (float64, float64) {
	if len(asteroids) > 0 && rand.Intn(3) == 0 {
		return asteroids[0].X, asteroids[0].Y
	}
	return player.X, player.Y
}
