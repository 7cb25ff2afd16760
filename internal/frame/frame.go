// Package frame provides grayscale frame grids, image decoding, and frame
// sequence loading for the tracker.
package frame

import (
	"fmt"
	"image"

	"marker-tracker/pkg/geometry"
)

// Frame is a single-channel intensity grid. Pixels are stored row-major as
// float64 intensities. Frames are treated as immutable once constructed;
// the tracker only reads them.
type Frame struct {
	W   int
	H   int
	Pix []float64
}

// New creates a zero-filled frame of the given dimensions.
func New(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]float64, w*h)}
}

// FromSamples wraps an existing row-major sample slice as a frame.
func FromSamples(w, h int, pix []float64) (*Frame, error) {
	if len(pix) != w*h {
		return nil, fmt.Errorf("sample count %d does not match %dx%d", len(pix), w, h)
	}
	return &Frame{W: w, H: h, Pix: pix}, nil
}

// FromImage converts an image to a grayscale frame using the standard
// luma weights (0.299 R + 0.587 G + 0.114 B), matching OpenCV's BGR2GRAY.
func FromImage(img image.Image) *Frame {
	b := img.Bounds()
	f := New(b.Dx(), b.Dy())
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			// 16-bit channels scaled back to 0..255
			f.Pix[i] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / 257.0
			i++
		}
	}
	return f
}

// At returns the intensity at (x, y). No bounds check; callers index
// within [0, W) x [0, H).
func (f *Frame) At(x, y int) float64 {
	return f.Pix[y*f.W+x]
}

// Set writes the intensity at (x, y). Used by synthetic frame builders;
// tracked frames are never written.
func (f *Frame) Set(x, y int, v float64) {
	f.Pix[y*f.W+x] = v
}

// SubRect copies the half-open rectangle r out of the frame.
func (f *Frame) SubRect(r geometry.RectInt) (*Frame, error) {
	if r.Empty() || r.X0 < 0 || r.Y0 < 0 || r.X1 > f.W || r.Y1 > f.H {
		return nil, fmt.Errorf("rect [%d,%d)x[%d,%d) outside frame %dx%d",
			r.X0, r.X1, r.Y0, r.Y1, f.W, f.H)
	}
	out := New(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		src := (r.Y0+y)*f.W + r.X0
		copy(out.Pix[y*out.W:(y+1)*out.W], f.Pix[src:src+r.Dx()])
	}
	return out, nil
}
