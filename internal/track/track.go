// Package track drives subpixel template matching across a frame
// sequence, producing one refined position per frame for one or two
// independently tracked templates.
package track

import (
	"context"
	"fmt"
	"sync"

	"marker-tracker/internal/frame"
	"marker-tracker/internal/match"
	"marker-tracker/internal/subpixel"
	"marker-tracker/pkg/geometry"
)

// Trajectory is the ordered sequence of tracked positions, one per input
// frame.
type Trajectory []geometry.Point2D

// PositionPair holds the per-frame positions of a dual track.
type PositionPair struct {
	Left  geometry.Point2D `json:"left"`
	Right geometry.Point2D `json:"right"`
}

// Config holds tracker configuration parameters.
type Config struct {
	ROIOffset      int              // Search margin in pixels around the predicted position
	PeakWindowSize int              // Odd size of the peak neighborhood used for refinement
	Correlator     match.Correlator // Correlation backend; nil selects the pure Go matcher
}

// DefaultConfig returns the default tracker configuration.
func DefaultConfig() Config {
	return Config{
		ROIOffset:      50,
		PeakWindowSize: 11,
		Correlator:     match.NCC{},
	}
}

func (c *Config) correlator() match.Correlator {
	if c.Correlator == nil {
		return match.NCC{}
	}
	return c.Correlator
}

func (c *Config) validate(frames []*frame.Frame, templates ...*frame.Frame) error {
	if len(frames) == 0 {
		return fmt.Errorf("empty frame sequence")
	}
	for i, t := range templates {
		if t == nil || t.W == 0 || t.H == 0 {
			return fmt.Errorf("template %d is empty", i)
		}
	}
	if c.ROIOffset < 0 {
		return fmt.Errorf("roi offset must be >= 0, got %d", c.ROIOffset)
	}
	if c.PeakWindowSize < 3 || c.PeakWindowSize%2 == 0 {
		return fmt.Errorf("peak window size must be odd and >= 3, got %d", c.PeakWindowSize)
	}
	return nil
}

// Track follows one template through the frame sequence, starting the
// search at start and re-centering it on each frame's refined result.
// The returned trajectory has exactly one position per frame. A failing
// frame aborts the whole track; the error names the frame index. There
// is no confidence check and no re-detection: a bad match biases the
// search center for all subsequent frames.
func Track(ctx context.Context, frames []*frame.Frame, templ *frame.Frame, start geometry.Point2D, cfg Config) (Trajectory, error) {
	if err := cfg.validate(frames, templ); err != nil {
		return nil, err
	}
	return trackOne(ctx, frames, templ, start, cfg)
}

// TrackDual follows two templates through the same frame sequence. The
// two tracks are fully independent and run concurrently; they share
// nothing but the frame slice. Results are paired by frame index.
func TrackDual(ctx context.Context, frames []*frame.Frame, left, right *frame.Frame, leftStart, rightStart geometry.Point2D, cfg Config) ([]PositionPair, error) {
	if err := cfg.validate(frames, left, right); err != nil {
		return nil, err
	}

	var (
		wg    sync.WaitGroup
		trajs [2]Trajectory
		errs  [2]error
	)
	targets := [2]struct {
		templ *frame.Frame
		start geometry.Point2D
	}{
		{left, leftStart},
		{right, rightStart},
	}
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			trajs[i], errs[i] = trackOne(ctx, frames, targets[i].templ, targets[i].start, cfg)
		}(i)
	}
	wg.Wait()

	if errs[0] != nil {
		return nil, fmt.Errorf("left track: %w", errs[0])
	}
	if errs[1] != nil {
		return nil, fmt.Errorf("right track: %w", errs[1])
	}

	pairs := make([]PositionPair, len(frames))
	for i := range pairs {
		pairs[i] = PositionPair{Left: trajs[0][i], Right: trajs[1][i]}
	}
	return pairs, nil
}

// trackOne folds step over the frame sequence with a single mutable
// search center. Cancellation is only checked between frames; a frame's
// refinement is never interrupted mid-computation.
func trackOne(ctx context.Context, frames []*frame.Frame, templ *frame.Frame, start geometry.Point2D, cfg Config) (Trajectory, error) {
	curr := start
	traj := make(Trajectory, 0, len(frames))
	for i, f := range frames {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("frame %d: %w", i, ctx.Err())
			default:
			}
		}

		next, err := step(f, templ, curr, cfg)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		curr = next
		traj = append(traj, curr)
	}
	return traj, nil
}

// step refines the template position in a single frame: extract the
// search region around the predicted position, correlate, pull the peak
// neighborhood, and localize the continuous maximum.
func step(f *frame.Frame, templ *frame.Frame, pos geometry.Point2D, cfg Config) (geometry.Point2D, error) {
	roi := match.ExtractROI(f.W, f.H, templ.W, templ.H, pos, cfg.ROIOffset)
	sub, err := f.SubRect(roi)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("extract search region: %w", err)
	}

	res, err := cfg.correlator().Correlate(sub, templ)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("correlate: %w", err)
	}

	window, err := match.PeakWindow(res.Surface, res.MaxLoc, cfg.PeakWindowSize)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("extract peak window: %w", err)
	}

	surface, err := subpixel.NewSurface(window)
	if err != nil {
		return geometry.Point2D{}, fmt.Errorf("interpolate peak window: %w", err)
	}

	local := surface.Refine()
	return subpixel.MapToFrame(roi, res.MaxLoc, local, cfg.PeakWindowSize, templ.W, templ.H), nil
}
