package match

import (
	"errors"
	"math"
	"testing"

	"marker-tracker/internal/frame"
	"marker-tracker/pkg/geometry"
)

// markerFrame builds a w x h frame with a textured 11x11 bright patch
// whose center pixel sits at (cx, cy). The patch carries a small ramp so
// its correlation against itself is well conditioned.
func markerFrame(t *testing.T, w, h, cx, cy int) *frame.Frame {
	t.Helper()
	f := frame.New(w, h)
	for dy := -5; dy <= 5; dy++ {
		for dx := -5; dx <= 5; dx++ {
			f.Set(cx+dx, cy+dy, 200+2*float64(dx)+3*float64(dy))
		}
	}
	return f
}

func cutTemplate(t *testing.T, f *frame.Frame, cx, cy, size int) *frame.Frame {
	t.Helper()
	half := (size - 1) / 2
	templ, err := f.SubRect(geometry.NewRectInt(cx-half, cy-half, cx+half+1, cy+half+1))
	if err != nil {
		t.Fatalf("cut template: %v", err)
	}
	return templ
}

func TestNCC_SelfMatchPeak(t *testing.T) {
	f := markerFrame(t, 100, 100, 50, 50)
	templ := cutTemplate(t, f, 50, 50, 11)

	res, err := NCC{}.Correlate(f, templ)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}

	sh, sw := res.Surface.Dims()
	if sh != 90 || sw != 90 {
		t.Errorf("expected 90x90 surface, got %dx%d", sh, sw)
	}
	if res.MaxLoc != (geometry.PointInt{X: 45, Y: 45}) {
		t.Errorf("expected peak at (45, 45), got %+v", res.MaxLoc)
	}
	if math.Abs(res.MaxVal-1.0) > 1e-9 {
		t.Errorf("expected self-match score 1.0, got %v", res.MaxVal)
	}
}

func TestNCC_OffCenterPeak(t *testing.T) {
	f := markerFrame(t, 120, 90, 30, 60)
	templ := cutTemplate(t, f, 30, 60, 11)

	res, err := NCC{}.Correlate(f, templ)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if res.MaxLoc != (geometry.PointInt{X: 25, Y: 55}) {
		t.Errorf("expected peak at (25, 55), got %+v", res.MaxLoc)
	}
}

// Intensity shifts must not move the peak: NCC is invariant to additive
// and multiplicative changes.
func TestNCC_IntensityInvariance(t *testing.T) {
	f := markerFrame(t, 100, 100, 50, 50)
	templ := cutTemplate(t, f, 50, 50, 11)

	shifted := frame.New(f.W, f.H)
	for i, v := range f.Pix {
		shifted.Pix[i] = 0.5*v + 40
	}

	res, err := NCC{}.Correlate(shifted, templ)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if res.MaxLoc != (geometry.PointInt{X: 45, Y: 45}) {
		t.Errorf("expected peak at (45, 45), got %+v", res.MaxLoc)
	}
	if math.Abs(res.MaxVal-1.0) > 1e-9 {
		t.Errorf("expected score 1.0 under intensity shift, got %v", res.MaxVal)
	}
}

func TestNCC_ROISmallerThanTemplate(t *testing.T) {
	roi := frame.New(5, 5)
	templ := frame.New(11, 11)

	_, err := NCC{}.Correlate(roi, templ)
	if err == nil {
		t.Fatal("expected error for ROI smaller than template")
	}
	var sizeErr *SizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected SizeError, got %v", err)
	}
	if sizeErr.ROIW != 5 || sizeErr.TemplW != 11 {
		t.Errorf("unexpected error detail: %+v", sizeErr)
	}
}

func TestNCC_EmptyTemplate(t *testing.T) {
	if _, err := (NCC{}).Correlate(frame.New(10, 10), frame.New(0, 0)); err == nil {
		t.Fatal("expected error for empty template")
	}
}

// A flat window has no variation to normalize by; its score is defined
// as zero rather than NaN.
func TestNCC_FlatRegionScoresZero(t *testing.T) {
	f := markerFrame(t, 60, 60, 30, 30)
	templ := cutTemplate(t, f, 30, 30, 11)

	res, err := NCC{}.Correlate(f, templ)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if v := res.Surface.At(0, 0); v != 0 {
		t.Errorf("expected flat corner score 0, got %v", v)
	}
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if math.IsNaN(res.Surface.At(y, x)) {
				t.Fatalf("NaN score at (%d, %d)", x, y)
			}
		}
	}
}
