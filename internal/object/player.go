package object

import (
	"image/color"
	"math"
)

// Ship handling, in logical units per frame.
const (
	PlayerRadius      = 15.0
	PlayerSides       = 3
	PlayerThrust      = 0.15 // Velocity added per frame while thrusting
	PlayerFriction    = 0.98 // Velocity kept per frame
	PlayerTurnSpeed   = 4.0  // Radians per second
	MinPlayerSides    = 3
	MaxPlayerSides    = 8
	MinPlayerRadius   = 5.0
	MaxPlayerRadius   = 50.0
	PlayerBulletSpeed = 8.0
	PlayerBulletLife  = 1.5
)

// Player is the player-controlled ship. Exactly one exists per session.
type Player struct {
	X, Y   float64 // Position (center of ship)
	VX, VY float64 // Velocity per frame
	Angle  float64 // Facing in radians (0 = pointing right)
	Radius float64 // Collision radius, editable only in design mode
	Sides  int     // Polygon side count, editable only in design mode
	Color  color.NRGBA
	Active bool

	Invulnerable     bool
	InvulnerableTime float64 // Seconds left; counts down to zero then clears Invulnerable
}

// NewPlayer creates a ship at the given position.
func NewPlayer(x, y float64) Player {
	return Player{
		X:      x,
		Y:      y,
		Radius: PlayerRadius,
		Sides:  PlayerSides,
		Color:  White,
		Active: true,
	}
}

// Rotate turns the ship; dir is -1 (left) or +1 (right).
func (p *Player) Rotate(dir, dt float64) {
	p.Angle += dir * PlayerTurnSpeed * dt
}

// Thrust accelerates the ship in its facing direction.
func (p *Player) Thrust() {
	p.VX += math.Cos(p.Angle) * PlayerThrust
	p.VY += math.Sin(p.Angle) * PlayerThrust
}

// Update integrates velocity, applies friction and wraps around the screen.
func (p *Player) Update(screen Screen) {
	p.X += p.VX
	p.Y += p.VY
	p.VX *= PlayerFriction
	p.VY *= PlayerFriction
	screen.WrapPosition(&p.X, &p.Y)
}

// Fire returns a player bullet leaving the nose of the ship.
func (p *Player) Fire() Bullet {
	dx, dy := math.Cos(p.Angle), math.Sin(p.Angle)
	return NewBullet(
		p.X+dx*p.Radius, p.Y+dy*p.Radius,
		dx*PlayerBulletSpeed, dy*PlayerBulletSpeed,
		PlayerBulletLife, OwnerPlayer,
	)
}

// MoveTo places the ship and stops it.
func (p *Player) MoveTo(x, y float64) {
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
}

// Respawn moves the ship to (x, y), stops it and grants invulnerability.
func (p *Player) Respawn(x, y, invulnerableFor float64) {
	p.MoveTo(x, y)
	p.Active = true
	p.Invulnerable = true
	p.InvulnerableTime = invulnerableFor
}

// TickInvulnerability counts the invulnerability window down.
func (p *Player) TickInvulnerability(dt float64) {
	if !p.Invulnerable {
		return
	}
	p.InvulnerableTime -= dt
	if p.InvulnerableTime <= 0 {
		p.InvulnerableTime = 0
		p.Invulnerable = false
	}
}

// ResizeBy changes the collision radius within the design limits.
func (p *Player) ResizeBy(delta float64) {
	p.Radius = math.Max(MinPlayerRadius, math.Min(MaxPlayerRadius, p.Radius+delta))
}

// ReshapeBy changes the polygon side count within the design limits.
func (p *Player) ReshapeBy(delta int) {
	p.Sides = max(MinPlayerSides, min(MaxPlayerSides, p.Sides+delta))
}
