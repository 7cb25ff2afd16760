package match

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"marker-tracker/pkg/geometry"
)

func rampSurface(w, h int) *mat.Dense {
	s := mat.NewDense(h, w, nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.Set(y, x, float64(100*x+y))
		}
	}
	return s
}

func TestPeakWindow_Centered(t *testing.T) {
	surface := rampSurface(20, 20)

	window, err := PeakWindow(surface, geometry.PointInt{X: 10, Y: 10}, 5)
	if err != nil {
		t.Fatalf("extract window: %v", err)
	}

	h, w := window.Dims()
	if h != 5 || w != 5 {
		t.Fatalf("expected 5x5 window, got %dx%d", h, w)
	}
	if got := window.At(0, 0); got != surface.At(8, 8) {
		t.Errorf("window corner = %v, surface(8,8) = %v", got, surface.At(8, 8))
	}
	if got := window.At(2, 2); got != surface.At(10, 10) {
		t.Errorf("window center = %v, surface(10,10) = %v", got, surface.At(10, 10))
	}
	if got := window.At(4, 4); got != surface.At(12, 12) {
		t.Errorf("window corner = %v, surface(12,12) = %v", got, surface.At(12, 12))
	}
}

func TestPeakWindow_TooCloseToEdge(t *testing.T) {
	surface := rampSurface(20, 20)

	cases := []geometry.PointInt{
		{X: 1, Y: 10},
		{X: 10, Y: 1},
		{X: 18, Y: 10},
		{X: 10, Y: 18},
	}
	for _, loc := range cases {
		_, err := PeakWindow(surface, loc, 5)
		if err == nil {
			t.Errorf("expected edge error for peak at %+v", loc)
			continue
		}
		if !strings.Contains(err.Error(), "surface edge") {
			t.Errorf("peak %+v: unexpected error %v", loc, err)
		}
	}
}

func TestPeakWindow_InvalidSize(t *testing.T) {
	surface := rampSurface(20, 20)
	center := geometry.PointInt{X: 10, Y: 10}

	for _, n := range []int{0, 1, 2, 4, 10} {
		if _, err := PeakWindow(surface, center, n); err == nil {
			t.Errorf("expected error for window size %d", n)
		}
	}
}
