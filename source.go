package mdpage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	// DefaultSourcePath is where the tracker Markdown is looked up by default.
	DefaultSourcePath = "tracker/project_tracker.md"
	// DefaultFallback is rendered when the source file does not exist.
	DefaultFallback = "# Project Tracker File Not Found"
)

// ReadSource returns the contents of path, or fallback if path does not exist.
// An empty fallback means DefaultFallback. Any other failure is returned.
func ReadSource(path, fallback string) (string, error) {
	if fallback == "" {
		fallback = DefaultFallback
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fallback, nil
		}
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}
