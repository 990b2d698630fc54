// Package config centralizes all tunable game parameters.
package config

import "time"

// Logical playfield. Rendering scales it to the terminal.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Max render resolution in terminal cells. Larger terminals get a centered
// canvas with a border.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)

// Scoring
const (
	ScoreAsteroid = 100
	ScoreUfo      = 500
)

// Player
const (
	InitialLives         = 3
	InvincibilitySeconds = 3.0
	PlayerBlinkFrequency = 10.0 // Hz
)

// Explosion bursts
const (
	AsteroidBurstCount = 30
	UfoBurstCount      = 40
	PlayerBurstCount   = 60
	BurstSpeed         = 120.0 // Logical units per second
	BurstLife          = 0.8   // Seconds
	BurstSize          = 3.0
)

// Scan task
const (
	ScanMessage         = "SCAN COMPLETE +250"
	ScanPendingMessage  = "SCANNING..."
	ScanMessageDuration = 2.5 // Seconds
)

// Frame timing
const (
	DefaultFPS = 60
	// MaxFrameDelta caps dt after a stall so timers don't jump.
	MaxFrameDelta = 250 * time.Millisecond
)
