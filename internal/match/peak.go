package match

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"marker-tracker/pkg/geometry"
)

// PeakWindow copies the n x n neighborhood of the correlation surface
// centered on loc. n must be odd and at least 3. The window must lie
// fully inside the surface; a peak closer than (n-1)/2 to a surface edge
// is an error rather than a silently shrunken window, since a smaller
// window would change the interpolation domain and bias the refinement.
func PeakWindow(surface *mat.Dense, loc geometry.PointInt, n int) (*mat.Dense, error) {
	if n < 3 || n%2 == 0 {
		return nil, fmt.Errorf("peak window size must be odd and >= 3, got %d", n)
	}

	sh, sw := surface.Dims()
	half := (n - 1) / 2
	if loc.X-half < 0 || loc.Y-half < 0 || loc.X+half >= sw || loc.Y+half >= sh {
		return nil, fmt.Errorf("peak (%d, %d) too close to surface edge for %dx%d window (surface %dx%d)",
			loc.X, loc.Y, n, n, sw, sh)
	}

	window := mat.NewDense(n, n, nil)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			window.Set(y, x, surface.At(loc.Y-half+y, loc.X-half+x))
		}
	}
	return window, nil
}
