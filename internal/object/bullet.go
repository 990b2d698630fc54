package object

// Owner identifies who fired a bullet.
type Owner int

const (
	OwnerPlayer Owner = iota
	OwnerHostile
)

func (o Owner) String() string {
	if o == OwnerHostile {
		return "hostile"
	}
	return "player"
}

// BulletRadius is the collision radius of a bullet. Bullets collide as points.
const BulletRadius = 0.0

// Bullet is a projectile. Its owner never changes after creation.
type Bullet struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity per frame
	Lifetime float64 // Seconds remaining before removal
	Active   bool
	Owner    Owner
}

// NewBullet creates an active bullet.
func NewBullet(x, y, vx, vy, lifetime float64, owner Owner) Bullet {
	return Bullet{
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		Lifetime: lifetime,
		Active:   true,
		Owner:    owner,
	}
}

// Update moves the bullet, decays its lifetime and wraps it around the screen.
func (b *Bullet) Update(screen Screen, dt float64) {
	b.X += b.VX
	b.Y += b.VY
	b.Lifetime -= dt
	if b.Lifetime <= 0 {
		b.Active = false
	}
	screen.WrapPosition(&b.X, &b.Y)
}
