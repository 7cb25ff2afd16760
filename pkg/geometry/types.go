// Package geometry provides basic geometric types used throughout the tracker.
package geometry

import (
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// PointInt represents a 2D point with integer coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RectInt represents a half-open integer rectangle [X0, X1) x [Y0, Y1).
type RectInt struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// NewRectInt creates a new RectInt.
func NewRectInt(x0, y0, x1, y1 int) RectInt {
	return RectInt{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Dx returns the rectangle width.
func (r RectInt) Dx() int {
	return r.X1 - r.X0
}

// Dy returns the rectangle height.
func (r RectInt) Dy() int {
	return r.Y1 - r.Y0
}

// Empty returns true if the rectangle contains no points.
func (r RectInt) Empty() bool {
	return r.X0 >= r.X1 || r.Y0 >= r.Y1
}
