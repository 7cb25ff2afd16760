package match

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"marker-tracker/internal/frame"
	"marker-tracker/pkg/geometry"
)

// Result holds a correlation surface and its discrete maximum. The
// surface has (roiH-templH+1) rows and (roiW-templW+1) columns; entry
// (row, col) is the score for the template placed with its top-left
// corner at (col, row) in the ROI.
type Result struct {
	Surface *mat.Dense
	MaxVal  float64
	MaxLoc  geometry.PointInt
}

// Correlator computes a normalized cross-correlation surface for a
// template slid over a search region. Scores are normalized with higher
// meaning a better match.
type Correlator interface {
	Correlate(roi, templ *frame.Frame) (*Result, error)
}

// SizeError reports a search region smaller than the template. It occurs
// when edge clamping shrinks the ROI below the template size.
type SizeError struct {
	ROIW, ROIH     int
	TemplW, TemplH int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("search region %dx%d smaller than template %dx%d",
		e.ROIW, e.ROIH, e.TemplW, e.TemplH)
}

func checkSizes(roi, templ *frame.Frame) error {
	if templ.W == 0 || templ.H == 0 {
		return fmt.Errorf("empty template")
	}
	if roi.W < templ.W || roi.H < templ.H {
		return &SizeError{ROIW: roi.W, ROIH: roi.H, TemplW: templ.W, TemplH: templ.H}
	}
	return nil
}

// NCC is a pure Go zero-mean normalized cross-correlation, equivalent to
// OpenCV's TM_CCOEFF_NORMED. Kept alongside the gocv-backed correlator
// for compatibility with builds that have no OpenCV available.
type NCC struct{}

// Correlate evaluates the correlation surface directly. Windows with no
// intensity variation score zero.
func (NCC) Correlate(roi, templ *frame.Frame) (*Result, error) {
	if err := checkSizes(roi, templ); err != nil {
		return nil, err
	}

	tw, th := templ.W, templ.H
	n := float64(tw * th)

	// Zero-mean template and its norm, computed once.
	var tSum float64
	for _, v := range templ.Pix {
		tSum += v
	}
	tMean := tSum / n
	tZero := make([]float64, tw*th)
	var tNorm float64
	for i, v := range templ.Pix {
		tZero[i] = v - tMean
		tNorm += tZero[i] * tZero[i]
	}

	sh := roi.H - th + 1
	sw := roi.W - tw + 1
	surface := mat.NewDense(sh, sw, nil)

	maxVal := math.Inf(-1)
	var maxLoc geometry.PointInt
	for v := 0; v < sh; v++ {
		for u := 0; u < sw; u++ {
			var rSum float64
			for y := 0; y < th; y++ {
				row := roi.Pix[(v+y)*roi.W+u:]
				for x := 0; x < tw; x++ {
					rSum += row[x]
				}
			}
			rMean := rSum / n

			var num, rNorm float64
			for y := 0; y < th; y++ {
				row := roi.Pix[(v+y)*roi.W+u:]
				trow := tZero[y*tw:]
				for x := 0; x < tw; x++ {
					d := row[x] - rMean
					num += d * trow[x]
					rNorm += d * d
				}
			}

			score := 0.0
			if denom := math.Sqrt(rNorm * tNorm); denom > 0 {
				score = num / denom
			}
			surface.Set(v, u, score)
			if score > maxVal {
				maxVal = score
				maxLoc = geometry.PointInt{X: u, Y: v}
			}
		}
	}

	return &Result{Surface: surface, MaxVal: maxVal, MaxLoc: maxLoc}, nil
}
