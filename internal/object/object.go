// Package object holds the game entities, the entity store and the particle system.
//
// Entities are plain records with an Active flag. Collision passes only clear
// the flag; removal happens once per frame in Store.Compact.
package object

import (
	"image/color"

	"github.com/tomz197/rockstorm/internal/physics"
)

// Screen is the playfield in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// NewScreen creates a playfield of the given logical size.
func NewScreen(width, height float64) Screen {
	return Screen{Width: width, Height: height}
}

// Center returns the middle of the playfield (the player spawn point).
func (s Screen) Center() (float64, float64) {
	return s.Width / 2, s.Height / 2
}

// WrapPosition wraps x and y around the playfield edges (Asteroids-style).
func (s Screen) WrapPosition(x, y *float64) {
	*x, *y = physics.Wrap(*x, *y, s.Width, s.Height)
}

// Palette colors shared by entities and effects.
var (
	White   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Gray    = color.NRGBA{R: 130, G: 130, B: 130, A: 255}
	Red     = color.NRGBA{R: 230, G: 41, B: 55, A: 255}
	Orange  = color.NRGBA{R: 255, G: 161, B: 0, A: 255}
	Yellow  = color.NRGBA{R: 253, G: 249, B: 0, A: 255}
	Green   = color.NRGBA{R: 0, G: 228, B: 48, A: 255}
	SkyBlue = color.NRGBA{R: 102, G: 191, B: 255, A: 255}
	Blue    = color.NRGBA{R: 0, G: 121, B: 241, A: 255}
	Purple  = color.NRGBA{R: 200, G: 122, B: 255, A: 255}
	Pink    = color.NRGBA{R: 255, G: 109, B: 194, A: 255}
)

// ShipColors is the palette the design mode cycles through.
var ShipColors = []color.NRGBA{White, Red, Orange, Yellow, Green, SkyBlue, Blue, Purple, Pink}

// ShouldRenderBlink returns true if an object with remaining protection
// time should be rendered this frame (for blinking effect).
// Returns true always if remainingTime <= 0 (no protection).
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
