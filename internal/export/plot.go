package export

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"marker-tracker/internal/track"
)

// PlotPath renders the trajectory as an XY path in frame coordinates.
// The Y axis is inverted to match image row order.
func PlotPath(path string, traj track.Trajectory) error {
	p := plot.New()
	p.Title.Text = "Trajectory"
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = invertedScale{}
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(traj))
	for i, pt := range traj {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("failed to build trajectory line: %w", err)
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// PlotComponents renders x and y against the frame index, one line each.
func PlotComponents(path string, traj track.Trajectory) error {
	p := plot.New()
	p.Title.Text = "Position per frame"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "position (px)"
	p.Add(plotter.NewGrid())

	xs := make(plotter.XYs, len(traj))
	ys := make(plotter.XYs, len(traj))
	for i, pt := range traj {
		xs[i].X = float64(i)
		xs[i].Y = pt.X
		ys[i].X = float64(i)
		ys[i].Y = pt.Y
	}

	xLine, err := plotter.NewLine(xs)
	if err != nil {
		return fmt.Errorf("failed to build x line: %w", err)
	}
	xLine.Color = color.RGBA{R: 255, A: 255}
	yLine, err := plotter.NewLine(ys)
	if err != nil {
		return fmt.Errorf("failed to build y line: %w", err)
	}
	yLine.Color = color.RGBA{B: 255, A: 255}

	p.Add(xLine, yLine)
	p.Legend.Add("x", xLine)
	p.Legend.Add("y", yLine)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// invertedScale flips the axis so increasing image rows point down.
type invertedScale struct{}

func (invertedScale) Normalize(min, max, x float64) float64 {
	return (max - x) / (max - min)
}
