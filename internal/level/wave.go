package level

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/tomz197/rockstorm/internal/object"
	"github.com/tomz197/rockstorm/internal/physics"
)

// Placement rules for a freshly loaded level.
const (
	SafeRadius           = 150.0 // Keep-out distance around the player spawn point
	MaxPlacementAttempts = 50
	MinAsteroidRadius    = 30.0
	MaxAsteroidRadius    = 50.0
)

// Load clears the asteroids and flyers from the store and seeds the level.
// cfg is expected to be already scaled for difficulty.
func Load(cfg Config, store *object.Store, log *zap.Logger) {
	store.ClearLevel()
	log.Info("loading level",
		zap.Int("asteroids", cfg.AsteroidCount),
		zap.Float64("speed_min", cfg.AsteroidSpeedMin),
		zap.Float64("speed_max", cfg.AsteroidSpeedMax),
		zap.Float64("size_mult", cfg.AsteroidSizeMult),
	)

	for i := 0; i < cfg.AsteroidCount; i++ {
		x, y, ok := safePosition(store.Screen)
		if !ok {
			log.Warn("spawn safety check exhausted; placing asteroid anyway",
				zap.Int("attempts", MaxPlacementAttempts))
		}
		store.AddAsteroid(object.NewAsteroid(
			x, y,
			randomSpeed(cfg.AsteroidSpeedMin, cfg.AsteroidSpeedMax),
			randomSpeed(cfg.AsteroidSpeedMin, cfg.AsteroidSpeedMax),
			between(MinAsteroidRadius, MaxAsteroidRadius)*cfg.AsteroidSizeMult,
		))
	}
	log.Info("level loaded", zap.Int("asteroids", len(store.Asteroids)))
}

// safePosition draws random positions until one lies outside SafeRadius of
// the screen center. After MaxPlacementAttempts it returns the last draw
// with ok=false.
func safePosition(screen object.Screen) (x, y float64, ok bool) {
	cx, cy := screen.Center()
	for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
		x = rand.Float64() * screen.Width
		y = rand.Float64() * screen.Height
		if physics.Distance(x, y, cx, cy) > SafeRadius {
			return x, y, true
		}
	}
	return x, y, false
}

// randomSpeed draws a magnitude in [lo, hi) with a random sign.
func randomSpeed(lo, hi float64) float64 {
	v := between(lo, hi)
	if rand.Intn(2) == 0 {
		return -v
	}
	return v
}

func between(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

// MaybeSpawnUfo rolls once for a hostile flyer. A flyer only spawns when none
// is active; it enters from the left edge at a random height.
func MaybeSpawnUfo(cfg Config, store *object.Store) bool {
	if store.HasActiveUfo() {
		return false
	}
	if rand.Float64() >= cfg.UfoSpawnChance {
		return false
	}
	store.AddUfo(object.NewUfo(rand.Float64()*store.Screen.Height, cfg.UfoSpeed))
	return true
}

// Next returns the level after idx and whether the table is exhausted.
func Next(idx int, levels []Config) (next int, won bool) {
	next = idx + 1
	return next, next >= len(levels)
}
