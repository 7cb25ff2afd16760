package match

import (
	"testing"

	"marker-tracker/pkg/geometry"
)

func TestExtractROI_Centered(t *testing.T) {
	roi := ExtractROI(200, 200, 11, 11, geometry.NewPoint2D(100, 100), 50)

	want := geometry.NewRectInt(45, 45, 156, 156)
	if roi != want {
		t.Errorf("expected %+v, got %+v", want, roi)
	}
	if roi.Dx() != 111 || roi.Dy() != 111 {
		t.Errorf("expected 111x111 region, got %dx%d", roi.Dx(), roi.Dy())
	}
}

func TestExtractROI_ClampsAtOrigin(t *testing.T) {
	roi := ExtractROI(100, 100, 11, 11, geometry.NewPoint2D(2, 3), 50)

	if roi.X0 != 0 || roi.Y0 != 0 {
		t.Errorf("expected origin clamp, got %+v", roi)
	}
	if roi.X1 != 58 || roi.Y1 != 59 {
		t.Errorf("unexpected far edge: %+v", roi)
	}
}

func TestExtractROI_ClampsAtFarEdge(t *testing.T) {
	roi := ExtractROI(100, 100, 11, 11, geometry.NewPoint2D(98, 97), 50)

	if roi.X1 != 100 || roi.Y1 != 100 {
		t.Errorf("expected far edge clamp, got %+v", roi)
	}
	if roi.X0 != 43 || roi.Y0 != 42 {
		t.Errorf("unexpected near edge: %+v", roi)
	}
}

// A position far outside the frame must still produce in-bounds (possibly
// empty) coordinates, never negative or past the frame dimension.
func TestExtractROI_NeverOutOfBounds(t *testing.T) {
	positions := []geometry.Point2D{
		{X: -500, Y: -500},
		{X: 500, Y: 500},
		{X: 0, Y: 99},
		{X: 99, Y: 0},
	}
	for _, pos := range positions {
		roi := ExtractROI(100, 100, 11, 11, pos, 50)
		if roi.X0 < 0 || roi.Y0 < 0 || roi.X1 > 100 || roi.Y1 > 100 {
			t.Errorf("pos %+v: rect %+v outside frame", pos, roi)
		}
		if roi.X0 > roi.X1 || roi.Y0 > roi.Y1 {
			t.Errorf("pos %+v: inverted rect %+v", pos, roi)
		}
	}
}
