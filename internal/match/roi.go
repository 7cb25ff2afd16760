// Package match locates a template inside a frame: search-region
// extraction, normalized cross-correlation, and peak neighborhood
// extraction from the correlation surface.
package match

import (
	"math"

	"marker-tracker/pkg/geometry"
)

// ExtractROI computes the search rectangle for a template centered near
// pos, padded by margin pixels on every side and clamped to the frame
// bounds. Clamping silently shrinks the rectangle; positions near an edge
// never produce out-of-bounds coordinates.
func ExtractROI(frameW, frameH, templW, templH int, pos geometry.Point2D, margin int) geometry.RectInt {
	m := float64(margin)
	x0 := clamp(int(math.Round(pos.X-float64(templW)/2-m)), 0, frameW)
	x1 := clamp(int(math.Round(pos.X+float64(templW)/2+m)), 0, frameW)
	y0 := clamp(int(math.Round(pos.Y-float64(templH)/2-m)), 0, frameH)
	y1 := clamp(int(math.Round(pos.Y+float64(templH)/2+m)), 0, frameH)
	return geometry.RectInt{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
