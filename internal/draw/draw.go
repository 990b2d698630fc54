// Package draw renders colored shapes to an ANSI terminal using half-block
// characters, two vertical pixels per terminal cell.
package draw

import (
	"image/color"
	"math"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// RegularPolygon fills dst with the vertices of a regular polygon centered on
// (cx, cy). The first vertex points along angle (radians).
func RegularPolygon(dst []Point, cx, cy, radius, angle float64) []Point {
	n := len(dst)
	for i := range dst {
		a := angle + 2*math.Pi*float64(i)/float64(n)
		dst[i] = Point{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)}
	}
	return dst
}

// Fade scales c toward black by alpha in [0, 1]. The result is opaque.
func Fade(c color.NRGBA, alpha float64) color.NRGBA {
	alpha = max(0, min(1, alpha))
	return color.NRGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: 255,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
