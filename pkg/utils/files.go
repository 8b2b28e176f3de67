package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"gochip8/pkg/cpu"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadROM reads a raw program image and checks that it fits above 0x200.
func ReadROM(path string) ([]byte, error) {
	fullPath, _, err := GetPathInfo(path)
	if err != nil {
		return nil, fmt.Errorf("resolving ROM path %q: %w", path, err)
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading ROM %q: %w", fullPath, err)
	}
	if len(data) > cpu.MaxProgramSize {
		return nil, fmt.Errorf("ROM %q: %w: %d bytes > %d bytes", fullPath, cpu.ErrLoadTooLarge, len(data), cpu.MaxProgramSize)
	}
	return data, nil
}
