// Package physics provides collision detection, screen wrapping and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles overlap.
// Touching circles (distance == r1+r2) do not overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// Wrap maps a position that left the [0,width]x[0,height] area back inside it.
// Each axis is handled independently: past the upper bound snaps to zero,
// below zero snaps to the bound. Positions on a bound are left alone.
func Wrap(x, y, width, height float64) (float64, float64) {
	if x > width {
		x = 0
	}
	if x < 0 {
		x = width
	}
	if y > height {
		y = 0
	}
	if y < 0 {
		y = height
	}
	return x, y
}
