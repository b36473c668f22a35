// Package core provides fundamental types and utilities for the breaker
// platform. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in playfield units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// CenterX returns the x-coordinate of the rectangle's center.
func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

// CenterY returns the y-coordinate of the rectangle's center.
func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// CircleIntersectsRect reports whether a circle overlaps the rectangle.
// It is a plain interval-overlap test of the circle's bounding box on both
// axes, not a swept test: a fast circle can pass through a thin rectangle
// between two ticks.
func CircleIntersectsRect(cx, cy, radius float64, r Rect) bool {
	if cx+radius < r.X || cx-radius > r.Right() {
		return false
	}
	if cy+radius < r.Y || cy-radius > r.Bottom() {
		return false
	}
	return true
}

// Speed returns the magnitude of the velocity vector (dx, dy).
func Speed(dx, dy float64) float64 {
	return math.Hypot(dx, dy)
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Clamp restricts an integer value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
