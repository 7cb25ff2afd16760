package match

import (
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"

	"marker-tracker/internal/frame"
	"marker-tracker/pkg/geometry"
)

// GoCV is an OpenCV-backed correlator using TM_CCOEFF_NORMED. It produces
// the same surface as NCC but uses OpenCV's FFT-based matcher, which is
// much faster for large search regions.
type GoCV struct{}

// Correlate runs gocv.MatchTemplate over the ROI and copies the result
// into a dense surface.
func (GoCV) Correlate(roi, templ *frame.Frame) (*Result, error) {
	if err := checkSizes(roi, templ); err != nil {
		return nil, err
	}

	src := matFromFrame(roi)
	defer src.Close()
	tpl := matFromFrame(templ)
	defer tpl.Close()

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(src, tpl, &result, gocv.TmCcoeffNormed, mask)

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)

	sh, sw := result.Rows(), result.Cols()
	surface := mat.NewDense(sh, sw, nil)
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			surface.Set(y, x, float64(result.GetFloatAt(y, x)))
		}
	}

	return &Result{
		Surface: surface,
		MaxVal:  float64(maxVal),
		MaxLoc:  geometry.PointInt{X: maxLoc.X, Y: maxLoc.Y},
	}, nil
}

// matFromFrame copies a frame into a CV_32F Mat.
func matFromFrame(f *frame.Frame) gocv.Mat {
	m := gocv.NewMatWithSize(f.H, f.W, gocv.MatTypeCV32F)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			m.SetFloatAt(y, x, float32(f.At(x, y)))
		}
	}
	return m
}
