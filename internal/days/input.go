package days

import (
	"fmt"
	"os"
	"path/filepath"
)

// InputPath is where LoadInput looks for the input of day.
func InputPath(dir string, day int) string {
	return filepath.Join(dir, fmt.Sprintf("day%d.txt", day))
}

// LoadInput reads the puzzle input of day from dir.
func LoadInput(dir string, day int) (string, error) {
	text, err := ReadInput(InputPath(dir, day))
	if err != nil {
		return "", fmt.Errorf("day %d: %w", day, err)
	}
	return text, nil
}

// ReadInput reads a puzzle input from an explicit path.
func ReadInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}
