// Command tracktest runs subpixel template tracking over a frame
// directory and prints the resulting trajectory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"marker-tracker/internal/export"
	"marker-tracker/internal/frame"
	"marker-tracker/internal/match"
	"marker-tracker/internal/track"
	"marker-tracker/internal/version"
	"marker-tracker/pkg/geometry"
)

func main() {
	framesDir := flag.String("frames", "", "Directory of frame images (lexical order = frame order)")
	templPath := flag.String("template", "", "Template image path")
	templPath2 := flag.String("template2", "", "Second template path (enables dual tracking)")
	x := flag.Float64("x", 0, "Initial x of the template center")
	y := flag.Float64("y", 0, "Initial y of the template center")
	x2 := flag.Float64("x2", 0, "Initial x of the second template center")
	y2 := flag.Float64("y2", 0, "Initial y of the second template center")
	offset := flag.Int("offset", 50, "Search margin in pixels around the predicted position")
	winSize := flag.Int("win", 11, "Peak window size for subpixel refinement (odd)")
	useGoCV := flag.Bool("gocv", false, "Use the OpenCV-backed correlator")
	csvOut := flag.String("csv", "", "Write trajectory CSV to this path")
	plotOut := flag.String("plot", "", "Write XY trajectory plot to this path")
	plotCompOut := flag.String("plotcomp", "", "Write per-frame x/y component plot to this path")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *framesDir == "" || *templPath == "" {
		fmt.Println("Usage: tracktest -frames <dir> -template <img> -x <x> -y <y> [-template2 <img> -x2 <x> -y2 <y>]")
		os.Exit(1)
	}

	fmt.Printf("=== Loading frames: %s ===\n", *framesDir)
	frames, err := frame.LoadSequence(*framesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load frames: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d frames, %dx%d\n", len(frames), frames[0].W, frames[0].H)

	templ, err := frame.Load(*templPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load template: %v\n", err)
		os.Exit(1)
	}

	cfg := track.DefaultConfig()
	cfg.ROIOffset = *offset
	cfg.PeakWindowSize = *winSize
	if *useGoCV {
		cfg.Correlator = match.GoCV{}
	}

	ctx := context.Background()

	if *templPath2 != "" {
		templ2, err := frame.Load(*templPath2)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load second template: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("\n=== Dual tracking ===\n")
		pairs, err := track.TrackDual(ctx, frames, templ, templ2,
			geometry.NewPoint2D(*x, *y), geometry.NewPoint2D(*x2, *y2), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Tracking failed: %v\n", err)
			os.Exit(1)
		}
		for i, p := range pairs {
			fmt.Printf("frame %4d: left=(%.3f, %.3f) right=(%.3f, %.3f)\n",
				i, p.Left.X, p.Left.Y, p.Right.X, p.Right.Y)
		}
		if *csvOut != "" {
			if err := export.WriteDualCSV(*csvOut, pairs); err != nil {
				fmt.Fprintf(os.Stderr, "CSV export failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("\nWrote %s\n", *csvOut)
		}
		return
	}

	fmt.Printf("\n=== Tracking ===\n")
	traj, err := track.Track(ctx, frames, templ, geometry.NewPoint2D(*x, *y), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tracking failed: %v\n", err)
		os.Exit(1)
	}
	for i, p := range traj {
		fmt.Printf("frame %4d: (%.3f, %.3f)\n", i, p.X, p.Y)
	}

	if *csvOut != "" {
		if err := export.WriteCSV(*csvOut, traj); err != nil {
			fmt.Fprintf(os.Stderr, "CSV export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %s\n", *csvOut)
	}
	if *plotOut != "" {
		if err := export.PlotPath(*plotOut, traj); err != nil {
			fmt.Fprintf(os.Stderr, "Plot export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *plotOut)
	}
	if *plotCompOut != "" {
		if err := export.PlotComponents(*plotCompOut, traj); err != nil {
			fmt.Fprintf(os.Stderr, "Plot export failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *plotCompOut)
	}
}
