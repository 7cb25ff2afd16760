// Package subpixel refines a discrete correlation peak to a continuous
// position by fitting a smooth surface to the peak neighborhood and
// maximizing it with a derivative-free local optimizer.
package subpixel

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"marker-tracker/pkg/geometry"
)

// Surface is a smooth interpolant over an n x n score window sampled on
// integer coordinates 0..n-1. It uses separable natural cubic splines:
// one spline per window row, fitted once, and a column spline fitted per
// evaluation across the row values.
type Surface struct {
	n    int
	grid []float64
	rows []interp.NaturalCubic
}

// NewSurface fits an interpolant to a square score window.
func NewSurface(window *mat.Dense) (*Surface, error) {
	h, w := window.Dims()
	if h != w {
		return nil, fmt.Errorf("window must be square, got %dx%d", w, h)
	}
	if h < 3 {
		return nil, fmt.Errorf("window too small to interpolate: %dx%d", w, h)
	}

	grid := make([]float64, h)
	for i := range grid {
		grid[i] = float64(i)
	}

	s := &Surface{n: h, grid: grid, rows: make([]interp.NaturalCubic, h)}
	for y := 0; y < h; y++ {
		if err := s.rows[y].Fit(grid, mat.Row(nil, y, window)); err != nil {
			return nil, fmt.Errorf("fit row %d: %w", y, err)
		}
	}
	return s, nil
}

// At evaluates the interpolated score at a continuous coordinate.
// Coordinates outside [0, n-1] clamp to the boundary spline values.
func (s *Surface) At(x, y float64) float64 {
	col := make([]float64, s.n)
	for j := 0; j < s.n; j++ {
		col[j] = s.rows[j].Predict(x)
	}
	var nc interp.NaturalCubic
	if err := nc.Fit(s.grid, col); err != nil {
		// Fit only fails on malformed abscissae, which s.grid is not.
		return col[s.n/2]
	}
	return nc.Predict(y)
}

// Refine locates the continuous maximum of the interpolated surface with
// Nelder-Mead, starting from the window center. Non-convergence is not an
// error: the optimizer's final candidate is used. The candidate must stay
// local to the discrete peak: cubic splines overshoot beside a sharp
// correlation peak, producing spurious maxima away from the sampled one,
// and a genuine subpixel offset is under a pixel. A candidate farther
// than one pixel from the window center, or one the interpolant scores
// below the center, falls back to the center.
func (s *Surface) Refine() geometry.Point2D {
	center := float64(s.n-1) / 2
	start := geometry.Point2D{X: center, Y: center}
	problem := optimize.Problem{
		Func: func(p []float64) float64 { return -s.At(p[0], p[1]) },
	}

	res, _ := optimize.Minimize(problem, []float64{center, center}, nil, &optimize.NelderMead{})
	if res == nil || len(res.X) != 2 {
		return start
	}

	cand := geometry.Point2D{X: res.X[0], Y: res.X[1]}
	if cand.Distance(start) > 1.0 || s.At(cand.X, cand.Y) < s.At(center, center) {
		return start
	}
	return cand
}

// MapToFrame converts a refined window-local peak back to full-frame
// coordinates: ROI origin, discrete peak offset, subpixel displacement
// from the window center, and the template's half extent. The result is
// the template center in frame space.
func MapToFrame(roi geometry.RectInt, maxLoc geometry.PointInt, local geometry.Point2D, n, templW, templH int) geometry.Point2D {
	center := float64(n-1) / 2
	return geometry.Point2D{
		X: float64(roi.X0+maxLoc.X) + (local.X - center) + float64(templW-1)/2,
		Y: float64(roi.Y0+maxLoc.Y) + (local.Y - center) + float64(templH-1)/2,
	}
}
