// Package export writes tracked trajectories to CSV files and renders
// trajectory plots for offline inspection.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"marker-tracker/internal/track"
)

// WriteCSV writes a single-template trajectory as frame,x,y rows.
func WriteCSV(path string, traj track.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"frame", "x", "y"}); err != nil {
		return err
	}
	for i, p := range traj {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteDualCSV writes a dual-template track as
// frame,left_x,left_y,right_x,right_y rows.
func WriteDualCSV(path string, pairs []track.PositionPair) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"frame", "left_x", "left_y", "right_x", "right_y"}); err != nil {
		return err
	}
	for i, p := range pairs {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.Left.X, 'f', -1, 64),
			strconv.FormatFloat(p.Left.Y, 'f', -1, 64),
			strconv.FormatFloat(p.Right.X, 'f', -1, 64),
			strconv.FormatFloat(p.Right.Y, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
