// Package level holds the level table and the spawn and wave policy.
package level

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Validation failures. Wrapped with the 1-based level number.
var (
	ErrNoLevels    = errors.New("level table is empty")
	ErrNoObstacles = errors.New("asteroid count must be greater than 0")
	ErrSpeedRange  = errors.New("min asteroid speed cannot be greater than max speed")
	ErrSpawnChance = errors.New("ufo spawn chance must be between 0.0 and 1.0")
)

// Config describes one level. It is never mutated after validation;
// difficulty scaling derives a copy with Scaled.
type Config struct {
	AsteroidCount    int     `yaml:"asteroid_count"`
	AsteroidSpeedMin float64 `yaml:"asteroid_speed_min"`
	AsteroidSpeedMax float64 `yaml:"asteroid_speed_max"`
	AsteroidSizeMult float64 `yaml:"asteroid_size_mult"`
	UfoSpawnChance   float64 `yaml:"ufo_spawn_chance"` // Probability per frame
	UfoSpeed         float64 `yaml:"ufo_speed"`
}

// Defaults returns the built-in three-level table.
func Defaults() []Config {
	return []Config{
		// Introduction
		{AsteroidCount: 4, AsteroidSpeedMin: 1.0, AsteroidSpeedMax: 2.0, AsteroidSizeMult: 1.0},
		// Faster, occasional UFOs
		{AsteroidCount: 6, AsteroidSpeedMin: 2.0, AsteroidSpeedMax: 3.5, AsteroidSizeMult: 1.0, UfoSpawnChance: 0.002, UfoSpeed: 2.0},
		// Chaos
		{AsteroidCount: 8, AsteroidSpeedMin: 3.0, AsteroidSpeedMax: 5.0, AsteroidSizeMult: 1.2, UfoSpawnChance: 0.008, UfoSpeed: 3.5},
	}
}

// Validate checks one level. idx is the 0-based table index.
func (c Config) Validate(idx int) error {
	var err error
	if c.AsteroidCount <= 0 {
		err = multierr.Append(err, fmt.Errorf("level %d: %w", idx+1, ErrNoObstacles))
	}
	if c.AsteroidSpeedMin > c.AsteroidSpeedMax {
		err = multierr.Append(err, fmt.Errorf("level %d: %w", idx+1, ErrSpeedRange))
	}
	if c.UfoSpawnChance < 0 || c.UfoSpawnChance > 1 {
		err = multierr.Append(err, fmt.Errorf("level %d: %w", idx+1, ErrSpawnChance))
	}
	return err
}

// ValidateAll checks every level and returns all problems combined, so a
// broken table is reported in full before any gameplay starts.
func ValidateAll(levels []Config) error {
	if len(levels) == 0 {
		return ErrNoLevels
	}
	var err error
	for i, c := range levels {
		err = multierr.Append(err, c.Validate(i))
	}
	return err
}

// Scaled returns a copy with speeds multiplied by speedMult and the UFO spawn
// chance multiplied by spawnMult (capped at 1).
func (c Config) Scaled(speedMult, spawnMult float64) Config {
	c.AsteroidSpeedMin *= speedMult
	c.AsteroidSpeedMax *= speedMult
	c.UfoSpeed *= speedMult
	c.UfoSpawnChance = min(1, c.UfoSpawnChance*spawnMult)
	return c
}
