package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes items as an indented JSON array, creating parent directories
// as needed. The file is always a flat array of independent records.
func Save[T any](path string, items []T) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode artifacts: %w", err)
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// Load reads a JSON array file written by Save.
func Load[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return items, nil
}
