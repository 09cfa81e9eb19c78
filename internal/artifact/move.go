// Package artifact relocates a run's output files into its results folder.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmcateer/simbatch/internal/control"
)

// ResultsDir returns the results folder name for a run.
func ResultsDir(name string) string {
	return fmt.Sprintf("%s_results", name)
}

// runFiles lists the well-known artifacts belonging to one run, in the
// order they are moved.
func runFiles(name string) []string {
	return []string{
		control.AlignmentFileName(name),
		control.PartitionFileName(name),
		control.ControlFileName,
		control.LogFileName(name),
		control.NewickFileName,
	}
}

// Move creates the run's results folder under dir (idempotently) and
// renames each artifact into it. Files that do not exist are skipped
// silently, which makes a second Move for the same run a no-op. Returns
// the results folder path.
func Move(dir, name string) (string, error) {
	folder := filepath.Join(dir, ResultsDir(name))
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("create results folder: %w", err)
	}

	for _, file := range runFiles(name) {
		src := filepath.Join(dir, file)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, filepath.Join(folder, file)); err != nil {
			return "", fmt.Errorf("move %s: %w", file, err)
		}
	}

	return folder, nil
}
