package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LoadFavicon reads the icon once. A missing file yields nil without error.
func LoadFavicon(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
